package repositories

import (
	"context"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"strings"
	"time"
)

var ErrDuplicate = errors.New("duplicate record")

type statusCount struct {
	Status models.ApplicationStatus
	Total  int64
}

type Applications struct {
	db *gorm.DB
}

func NewApplicationsRepository(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

func (repo *Applications) FindByUserAndPosting(ctx context.Context, userID string, postingID uint) (*models.Application, error) {
	var application models.Application
	err := conn(ctx, repo.db).
		Where("user_id = ? AND posting_id = ?", userID, postingID).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "application of user %s for posting %d", userID, postingID)
		}
		return nil, errors.Wrap(err, "query application by user and posting")
	}
	return &application, nil
}

// Create inserts the application. The unique index on (user_id, posting_id)
// rejects a second row for the same pair, reported as ErrDuplicate.
func (repo *Applications) Create(ctx context.Context, application *models.Application) error {
	err := conn(ctx, repo.db).Create(application).Error
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return errors.Wrapf(ErrDuplicate, "application of user %s for posting %d",
			application.UserID, application.PostingID)
	}
	return errors.Wrap(err, "create application")
}

func (repo *Applications) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var application models.Application
	if err := conn(ctx, repo.db).First(&application, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "application %s", id)
		}
		return nil, errors.Wrapf(err, "query application %s", id)
	}
	return &application, nil
}

// GetDetails joins the live posting description. The join is a left join so
// applications to removed postings still load with an empty description.
func (repo *Applications) GetDetails(ctx context.Context, id string) (*models.ApplicationDetails, error) {
	var rows []models.ApplicationDetails
	err := conn(ctx, repo.db).
		Model(&models.Application{}).
		Select("applications.*, COALESCE(postings.description, '') AS description").
		Joins("LEFT JOIN postings ON postings.id = applications.posting_id").
		Where("applications.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrapf(err, "query application details %s", id)
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "application %s", id)
	}
	return &rows[0], nil
}

func (repo *Applications) ListByUser(ctx context.Context, userID string) ([]models.Application, error) {
	applications := make([]models.Application, 0)
	if err := conn(ctx, repo.db).
		Where("user_id = ?", userID).
		Order("applied_at desc, id desc").
		Find(&applications).Error; err != nil {
		return nil, errors.Wrapf(err, "query applications of user %s", userID)
	}
	return applications, nil
}

func (repo *Applications) ListAll(ctx context.Context) ([]models.Application, error) {
	applications := make([]models.Application, 0)
	if err := conn(ctx, repo.db).
		Order("applied_at desc, id desc").
		Find(&applications).Error; err != nil {
		return nil, errors.Wrap(err, "query applications")
	}
	return applications, nil
}

func (repo *Applications) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, repo.db).Model(&models.Application{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count applications")
	}
	return count, nil
}

func (repo *Applications) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := conn(ctx, repo.db).Model(&models.Application{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "count applications of user %s", userID)
	}
	return count, nil
}

func (repo *Applications) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	var rows []statusCount
	if err := conn(ctx, repo.db).Model(&models.Application{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "count applications by status")
	}

	counts := make(map[models.ApplicationStatus]int64, len(models.ApplicationStatuses))
	for _, status := range models.ApplicationStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (repo *Applications) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	res := conn(ctx, repo.db).Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update status of application %s", id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "application %s", id)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
