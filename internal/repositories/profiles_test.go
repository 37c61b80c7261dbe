package repositories

import (
	"context"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"testing"
)

func Test_Profiles_SaveReplacesCollections(t *testing.T) {
	ctx := context.Background()
	db := newTestDbContext(t).DB
	repo := NewProfilesRepository(db)
	tx := NewTransactor(db)

	profile := models.Profile{
		UserID:   "u1",
		FullName: "Ann",
		Email:    "ann@example.com",
		Skills:   []models.Skill{{Name: "Python"}, {Name: "SQL"}},
		Projects: []models.Project{{Title: "Parser"}},
	}
	require.NoError(t, tx.WithTx(ctx, func(ctx context.Context) error {
		return repo.Save(ctx, profile)
	}))
	assert.Zero(t, profile.Skills[0].ID, "caller's slices must stay untouched")

	profile.FullName = "Ann Lee"
	profile.Skills = []models.Skill{{Name: "Go"}}
	profile.Projects = nil
	require.NoError(t, tx.WithTx(ctx, func(ctx context.Context) error {
		return repo.Save(ctx, profile)
	}))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", got.FullName)
	assert.Equal(t, []string{"Go"}, got.SkillNames())
	assert.Empty(t, got.Projects)

	var skillRows int64
	require.NoError(t, db.Model(&models.Skill{}).Where("user_id = ?", "u1").Count(&skillRows).Error)
	assert.Equal(t, int64(1), skillRows)

	_, err = repo.Get(ctx, "nobody")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = repo.GetByID(ctx, "nobody")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func Test_Profiles_FailedSaveRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDbContext(t).DB
	repo := NewProfilesRepository(db)
	tx := NewTransactor(db)

	original := models.Profile{
		UserID:   "u1",
		FullName: "Ann",
		Skills:   []models.Skill{{Name: "Python"}, {Name: "SQL"}},
		Projects: []models.Project{{Title: "Parser"}},
	}
	require.NoError(t, tx.WithTx(ctx, func(ctx context.Context) error {
		return repo.Save(ctx, original)
	}))

	injected := errors.New("disk full")
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("fail_projects", func(d *gorm.DB) {
		if d.Statement.Table == "profile_projects" {
			_ = d.AddError(injected)
		}
	}))
	t.Cleanup(func() { _ = db.Callback().Create().Remove("fail_projects") })

	changed := original
	changed.FullName = "Somebody Else"
	changed.Skills = []models.Skill{{Name: "Go"}}
	changed.Projects = []models.Project{{Title: "Compiler"}}

	err := tx.WithTx(ctx, func(ctx context.Context) error {
		return repo.Save(ctx, changed)
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, injected))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.FullName)
	assert.Equal(t, []string{"Python", "SQL"}, got.SkillNames())
	require.Len(t, got.Projects, 1)
	assert.Equal(t, "Parser", got.Projects[0].Title)
}
