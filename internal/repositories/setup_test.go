package repositories

import (
	"context"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func newTestDbContext(t *testing.T) *DbContext {
	t.Helper()

	dbContext, err := NewDbContext(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())

	t.Cleanup(func() {
		_ = dbContext.Close()
	})
	return dbContext
}

func addPostings(t *testing.T, repo *Postings, postings ...models.Posting) []models.Posting {
	t.Helper()
	for i := range postings {
		require.NoError(t, repo.Add(context.Background(), &postings[i]))
	}
	return postings
}
