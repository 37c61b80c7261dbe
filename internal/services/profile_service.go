package services

import (
	"context"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/pkg/errors"
	"strings"
)

type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Save(ctx context.Context, profile models.Profile) error
}

type applicationCounter interface {
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type ProfileService struct {
	tx           Transactor
	profiles     ProfileRepository
	applications applicationCounter
	validate     *validator.Validate
}

func NewProfileService(tx Transactor, profiles ProfileRepository, applications applicationCounter) *ProfileService {
	return &ProfileService{
		tx:           tx,
		profiles:     profiles,
		applications: applications,
		validate:     validator.New(),
	}
}

// Save stores the profile and replaces all of its collections atomically.
// On any failure the previously stored profile stays as it was.
func (s *ProfileService) Save(ctx context.Context, profile models.Profile) error {
	profile.UserID = strings.TrimSpace(profile.UserID)
	if err := s.validate.Struct(profile); err != nil {
		return withKind(ErrValidation, err)
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		return s.profiles.Save(ctx, profile)
	})
	return classify(err, "save profile")
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, withKind(ErrValidation, errors.New("user id is required"))
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, classify(notFound(err), "get profile")
	}

	profile.TotalApplications, err = s.applications.CountByUser(ctx, userID)
	if err != nil {
		return nil, classify(err, "count applications of user")
	}
	return profile, nil
}
