package repositories

import (
	"context"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_Transactor_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := newTestDbContext(t).DB
	repo := NewPostingsRepository(db)
	tx := NewTransactor(db)

	failure := errors.New("boom")
	err := tx.WithTx(ctx, func(ctx context.Context) error {
		if err := repo.Add(ctx, &models.Posting{Title: "Go Intern", Company: "Globex"}); err != nil {
			return err
		}
		return failure
	})
	assert.True(t, errors.Is(err, failure))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func Test_Transactor_NestedCallsJoinOuterTransaction(t *testing.T) {
	ctx := context.Background()
	db := newTestDbContext(t).DB
	repo := NewPostingsRepository(db)
	tx := NewTransactor(db)

	err := tx.WithTx(ctx, func(ctx context.Context) error {
		if err := repo.Add(ctx, &models.Posting{Title: "Go Intern", Company: "Globex"}); err != nil {
			return err
		}
		return tx.WithTx(ctx, func(ctx context.Context) error {
			all, err := repo.GetAll(ctx)
			if err != nil {
				return err
			}
			assert.Len(t, all, 1)
			return errors.New("inner failure")
		})
	})
	require.Error(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
