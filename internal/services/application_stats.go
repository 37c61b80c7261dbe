package services

import (
	"context"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/maxaizer/intern-match/internal/logger"
	"github.com/maxaizer/intern-match/internal/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"time"
)

type StatusCountRepository interface {
	CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error)
}

// ApplicationStats periodically publishes the number of applications per
// status as a gauge.
type ApplicationStats struct {
	applications StatusCountRepository
	cron         *cron.Cron
	timeout      time.Duration
}

func NewApplicationStats(applications StatusCountRepository, schedule string) (*ApplicationStats, error) {

	if schedule == "" {
		return nil, errors.New("stats schedule must not be empty")
	}

	s := &ApplicationStats{
		applications: applications,
		cron:         cron.New(),
		timeout:      30 * time.Second,
	}

	_, err := s.cron.AddFunc(schedule, s.refresh)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid stats schedule %q", schedule)
	}

	return s, nil
}

func (s *ApplicationStats) Start() {
	s.refresh()
	s.cron.Start()
	log.Info("application stats started")
}

func (s *ApplicationStats) Stop() {
	<-s.cron.Stop().Done()
}

// Refresh reads the counts once and updates the gauge.
func (s *ApplicationStats) Refresh(ctx context.Context) error {
	counts, err := s.applications.CountByStatus(ctx)
	if err != nil {
		return err
	}
	for status, count := range counts {
		metrics.ApplicationsByStatus.WithLabelValues(string(status)).Set(float64(count))
	}
	return nil
}

func (s *ApplicationStats) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.Refresh(ctx); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to refresh application stats: %v", err)
	} else {
		log.Debugf("application stats refreshed at %v", time.Now())
	}
}
