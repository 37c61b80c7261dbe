package services

import (
	"context"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_ProfileService_SkillsAreReplaced(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	service := env.profileService()

	profile := models.Profile{
		UserID: "u1",
		Skills: []models.Skill{{Name: "Python"}, {Name: "SQL"}},
	}
	require.NoError(t, service.Save(ctx, profile))

	profile.Skills = []models.Skill{{Name: "Go"}}
	require.NoError(t, service.Save(ctx, profile))

	got, err := service.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.SkillNames())
}

func Test_ProfileService_GetCountsApplications(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	service := env.profileService()
	require.NoError(t, service.Save(ctx, models.Profile{UserID: "u1", FullName: "Ann"}))
	posting := env.addPosting(t, models.Posting{Title: "Go Intern", Company: "Globex"})

	_, err := env.applicationService().Apply(ctx, "u1", posting.ID)
	require.NoError(t, err)

	got, err := service.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.FullName)
	assert.Equal(t, int64(1), got.TotalApplications)

	_, err = service.Get(ctx, "nobody")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func Test_ProfileService_Validation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	service := env.profileService()

	tests := []struct {
		name    string
		profile models.Profile
	}{
		{"missing user id", models.Profile{UserID: "  "}},
		{"bad email", models.Profile{UserID: "u1", Email: "not-an-email"}},
		{"completion above range", models.Profile{UserID: "u1", CompletionScore: 120}},
		{"unnamed skill", models.Profile{UserID: "u1", Skills: []models.Skill{{Name: ""}}}},
		{"untitled project", models.Profile{UserID: "u1", Projects: []models.Project{{Year: "2024"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Save(ctx, tt.profile)
			assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
		})
	}

	_, err := service.Get(ctx, "u1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

type failingProfiles struct {
	ProfileRepository
	err error
}

func (f failingProfiles) Save(ctx context.Context, profile models.Profile) error {
	return f.err
}

func Test_ProfileService_StorageFailure(t *testing.T) {
	env := newTestEnv(t)
	cause := errors.New("disk full")
	service := NewProfileService(env.tx, failingProfiles{ProfileRepository: env.profiles, err: cause}, env.applications)

	err := service.Save(context.Background(), models.Profile{UserID: "u1"})
	assert.True(t, errors.Is(err, ErrStorageFailure))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, IsRetryable(err))
}
