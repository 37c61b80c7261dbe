package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/maxaizer/intern-match/internal/repositories"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

type testEnv struct {
	db           *repositories.DbContext
	tx           *repositories.Transactor
	postings     *repositories.Postings
	applications *repositories.Applications
	profiles     *repositories.Profiles
	bus          EventBus.Bus
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbContext, err := repositories.NewDbContext(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())
	t.Cleanup(func() { _ = dbContext.Close() })

	return &testEnv{
		db:           dbContext,
		tx:           repositories.NewTransactor(dbContext.DB),
		postings:     repositories.NewPostingsRepository(dbContext.DB),
		applications: repositories.NewApplicationsRepository(dbContext.DB),
		profiles:     repositories.NewProfilesRepository(dbContext.DB),
		bus:          EventBus.New(),
	}
}

func (e *testEnv) applicationService() *ApplicationService {
	return NewApplicationService(e.tx, e.applications, e.postings, e.profiles, e.bus)
}

func (e *testEnv) profileService() *ProfileService {
	return NewProfileService(e.tx, e.profiles, e.applications)
}

func (e *testEnv) addPosting(t *testing.T, posting models.Posting) models.Posting {
	t.Helper()
	require.NoError(t, e.postings.Add(context.Background(), &posting))
	return posting
}

func (e *testEnv) addProfile(t *testing.T, profile models.Profile) {
	t.Helper()
	require.NoError(t, e.tx.WithTx(context.Background(), func(ctx context.Context) error {
		return e.profiles.Save(ctx, profile)
	}))
}
