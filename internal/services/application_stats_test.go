package services

import (
	"context"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/maxaizer/intern-match/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_ApplicationStats_Refresh(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addProfile(t, models.Profile{UserID: "u1"})
	posting := env.addPosting(t, models.Posting{Title: "Go Intern", Company: "Globex"})

	id, err := env.applicationService().Apply(ctx, "u1", posting.ID)
	require.NoError(t, err)
	require.NoError(t, env.applicationService().SetStatus(ctx, id, "Rejected"))

	stats, err := NewApplicationStats(env.applications, "@every 1h")
	require.NoError(t, err)
	require.NoError(t, stats.Refresh(ctx))

	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ApplicationsByStatus.WithLabelValues("Pending")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ApplicationsByStatus.WithLabelValues("Rejected")))
}

func Test_ApplicationStats_InvalidSchedule(t *testing.T) {
	_, err := NewApplicationStats(nil, "")
	assert.Error(t, err)

	_, err = NewApplicationStats(nil, "not a schedule")
	assert.Error(t, err)
}
