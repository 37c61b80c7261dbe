package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/maxaizer/intern-match/internal/domain/events"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/maxaizer/intern-match/internal/metrics"
	"github.com/maxaizer/intern-match/internal/repositories"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"strings"
	"time"
)

type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ApplicationRepository interface {
	FindByUserAndPosting(ctx context.Context, userID string, postingID uint) (*models.Application, error)
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	GetDetails(ctx context.Context, id string) (*models.ApplicationDetails, error)
	ListByUser(ctx context.Context, userID string) ([]models.Application, error)
	ListAll(ctx context.Context) ([]models.Application, error)
	Count(ctx context.Context) (int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
}

type PostingCatalog interface {
	GetAll(ctx context.Context) ([]models.Posting, error)
	GetByID(ctx context.Context, id uint) (*models.Posting, error)
}

type userDirectory interface {
	GetByID(ctx context.Context, userID string) (*models.Profile, error)
}

type ApplicationService struct {
	tx           Transactor
	applications ApplicationRepository
	postings     PostingCatalog
	users        userDirectory
	bus          EventBus.Bus
}

func NewApplicationService(tx Transactor, applications ApplicationRepository, postings PostingCatalog,
	users userDirectory, bus EventBus.Bus) *ApplicationService {
	return &ApplicationService{
		tx:           tx,
		applications: applications,
		postings:     postings,
		users:        users,
		bus:          bus,
	}
}

// Apply records a Pending application of userID to postingID and returns its
// identifier. A second application for the same pair fails with
// ErrDuplicateApplication no matter how the calls interleave.
func (s *ApplicationService) Apply(ctx context.Context, userID string, postingID uint) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || postingID == 0 {
		return "", withKind(ErrValidation, errors.New("user id and internship id are required"))
	}

	var application models.Application
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		_, err := s.applications.FindByUserAndPosting(ctx, userID, postingID)
		if err == nil {
			return errors.Wrapf(ErrDuplicateApplication, "user %s, internship %d", userID, postingID)
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return notFound(err)
		}

		posting, err := s.postings.GetByID(ctx, postingID)
		if err != nil {
			return notFound(err)
		}

		now := time.Now().UTC()
		application = models.Application{
			ID:           uuid.NewString(),
			UserID:       userID,
			PostingID:    postingID,
			UserName:     user.FullName,
			UserEmail:    user.Email,
			PostingTitle: posting.Title,
			CompanyName:  posting.Company,
			Status:       models.StatusPending,
			AppliedAt:    now,
			UpdatedAt:    now,
		}

		err = s.applications.Create(ctx, &application)
		if errors.Is(err, repositories.ErrDuplicate) {
			return withKind(ErrDuplicateApplication, err)
		}
		return err
	})

	if err != nil {
		if errors.Is(err, ErrDuplicateApplication) {
			metrics.DuplicateApplicationsCounter.Inc()
		}
		return "", classify(err, "apply")
	}

	metrics.ApplicationsSubmittedCounter.Inc()
	log.Infof("user %s applied to internship %d, application %s", userID, postingID, application.ID)
	s.bus.Publish(events.ApplicationSubmittedTopic, events.ApplicationSubmitted{Application: application})

	return application.ID, nil
}

// SetStatus overwrites the status of an application. Any status may follow
// any other and the last write wins. An unrecognised status changes nothing.
func (s *ApplicationService) SetStatus(ctx context.Context, applicationID string, status string) error {
	newStatus, err := models.ParseStatus(status)
	if err != nil {
		return withKind(ErrInvalidStatus, err)
	}

	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return withKind(ErrValidation, errors.New("application id is required"))
	}

	var previous models.Application
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		application, err := s.applications.GetByID(ctx, applicationID)
		if err != nil {
			return notFound(err)
		}
		previous = *application

		return notFound(s.applications.UpdateStatus(ctx, applicationID, newStatus))
	})
	if err != nil {
		return classify(err, "update application status")
	}

	metrics.StatusChangesCounter.WithLabelValues(string(newStatus)).Inc()

	if previous.Status != newStatus {
		log.Infof("application %s status changed from %s to %s", applicationID, previous.Status, newStatus)
		s.bus.Publish(events.ApplicationStatusChangedTopic, events.ApplicationStatusChanged{
			ApplicationID: applicationID,
			UserID:        previous.UserID,
			From:          previous.Status,
			To:            newStatus,
		})
	}

	return nil
}

func (s *ApplicationService) ListForUser(ctx context.Context, userID string) ([]models.Application, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, withKind(ErrValidation, errors.New("user id is required"))
	}
	applications, err := s.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, classify(err, "list applications of user")
	}
	return applications, nil
}

func (s *ApplicationService) ListAll(ctx context.Context) ([]models.Application, error) {
	applications, err := s.applications.ListAll(ctx)
	if err != nil {
		return nil, classify(err, "list applications")
	}
	return applications, nil
}

// Summary reads the count and the list in one transaction so they agree.
func (s *ApplicationService) Summary(ctx context.Context) (*models.ApplicationsSummary, error) {
	var summary models.ApplicationsSummary
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if summary.Total, err = s.applications.Count(ctx); err != nil {
			return err
		}
		summary.Applications, err = s.applications.ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, classify(err, "applications summary")
	}
	return &summary, nil
}

func (s *ApplicationService) Get(ctx context.Context, applicationID string) (*models.ApplicationDetails, error) {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return nil, withKind(ErrValidation, errors.New("application id is required"))
	}
	details, err := s.applications.GetDetails(ctx, applicationID)
	if err != nil {
		return nil, classify(notFound(err), "get application")
	}
	return details, nil
}

func (s *ApplicationService) CountForUser(ctx context.Context, userID string) (int64, error) {
	count, err := s.applications.CountByUser(ctx, userID)
	if err != nil {
		return 0, classify(err, "count applications of user")
	}
	return count, nil
}
