package repositories

import (
	"context"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Profiles struct {
	db *gorm.DB
}

func NewProfilesRepository(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

// GetByID loads the bare profile row, without child collections.
func (repo *Profiles) GetByID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := conn(ctx, repo.db).First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "profile %s", userID)
		}
		return nil, errors.Wrapf(err, "query profile %s", userID)
	}
	return &profile, nil
}

func (repo *Profiles) Get(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := conn(ctx, repo.db).
		Preload("Skills", orderByID).
		Preload("Education", orderByID).
		Preload("Certifications", orderByID).
		Preload("Achievements", orderByID).
		Preload("Projects", orderByID).
		First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "profile %s", userID)
		}
		return nil, errors.Wrapf(err, "query profile %s", userID)
	}
	return &profile, nil
}

// Save upserts the profile row and replaces every child collection: all rows
// of the user are deleted, then the new ones inserted. It is not atomic on its
// own; callers run it inside Transactor.WithTx.
func (repo *Profiles) Save(ctx context.Context, profile models.Profile) error {
	db := conn(ctx, repo.db)

	if err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "email", "title", "phone", "location", "about", "picture_url",
			"completion_score", "preferred_role", "internship_type", "preferred_location",
			"expected_stipend", "updated_at",
		}),
	}).Create(&profile).Error; err != nil {
		return errors.Wrapf(err, "upsert profile %s", profile.UserID)
	}

	userID := profile.UserID
	profile.Skills = cloneRows(profile.Skills)
	profile.Education = cloneRows(profile.Education)
	profile.Certifications = cloneRows(profile.Certifications)
	profile.Achievements = cloneRows(profile.Achievements)
	profile.Projects = cloneRows(profile.Projects)
	for i := range profile.Skills {
		profile.Skills[i].ID, profile.Skills[i].UserID = 0, userID
	}
	for i := range profile.Education {
		profile.Education[i].ID, profile.Education[i].UserID = 0, userID
	}
	for i := range profile.Certifications {
		profile.Certifications[i].ID, profile.Certifications[i].UserID = 0, userID
	}
	for i := range profile.Achievements {
		profile.Achievements[i].ID, profile.Achievements[i].UserID = 0, userID
	}
	for i := range profile.Projects {
		profile.Projects[i].ID, profile.Projects[i].UserID = 0, userID
	}

	collections := []struct {
		name  string
		model any
		rows  any
		size  int
	}{
		{"skills", &models.Skill{}, &profile.Skills, len(profile.Skills)},
		{"education", &models.Education{}, &profile.Education, len(profile.Education)},
		{"certifications", &models.Certification{}, &profile.Certifications, len(profile.Certifications)},
		{"achievements", &models.Achievement{}, &profile.Achievements, len(profile.Achievements)},
		{"projects", &models.Project{}, &profile.Projects, len(profile.Projects)},
	}

	for _, c := range collections {
		if err := db.Where("user_id = ?", userID).Delete(c.model).Error; err != nil {
			return errors.Wrapf(err, "clear %s of %s", c.name, userID)
		}
		if c.size == 0 {
			continue
		}
		if err := db.Create(c.rows).Error; err != nil {
			return errors.Wrapf(err, "insert %s of %s", c.name, userID)
		}
	}

	return nil
}

func cloneRows[T any](rows []T) []T {
	return append([]T(nil), rows...)
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id asc")
}
