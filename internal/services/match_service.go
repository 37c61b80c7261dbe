package services

import (
	"context"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/maxaizer/intern-match/internal/logger"
	"github.com/maxaizer/intern-match/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"strings"
	"time"
)

const defaultScoringTimeout = 5 * time.Second

type Scorer interface {
	Score(ctx context.Context, profile models.Profile, postings []models.Posting) ([]models.Suggestion, error)
}

type profileReader interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
}

type MatchService struct {
	scorer   Scorer
	profiles profileReader
	postings PostingCatalog
	timeout  time.Duration
}

func NewMatchService(scorer Scorer, profiles profileReader, postings PostingCatalog, timeout time.Duration) *MatchService {
	if timeout <= 0 {
		timeout = defaultScoringTimeout
	}
	return &MatchService{
		scorer:   scorer,
		profiles: profiles,
		postings: postings,
		timeout:  timeout,
	}
}

// FindMatches asks the scorer to rank the catalog for the user and returns
// only the suggestions that resolve to a catalog posting, in scorer order.
func (s *MatchService) FindMatches(ctx context.Context, userID string) ([]models.Match, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, withKind(ErrValidation, errors.New("user id is required"))
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, classify(notFound(err), "load candidate profile")
	}

	catalog, err := s.postings.GetAll(ctx)
	if err != nil {
		return nil, classify(err, "load catalog")
	}
	if len(catalog) == 0 {
		metrics.MatchRequestsCounter.WithLabelValues("empty_catalog").Inc()
		return []models.Match{}, nil
	}

	suggestions, err := s.score(ctx, *profile, catalog)
	if err != nil {
		return nil, err
	}

	matches, dropped := Reconcile(suggestions, catalog)
	for _, suggestion := range dropped {
		log.WithFields(log.Fields{
			"user_id": userID,
			"title":   suggestion.Title,
			"company": suggestion.Company,
		}).Warn("suggestion does not match any catalog posting, dropped")
	}

	metrics.DroppedSuggestionsCounter.Add(float64(len(dropped)))
	metrics.MatchRequestsCounter.WithLabelValues("ok").Inc()
	log.Debugf("user %s: %d suggestions, %d matches", userID, len(suggestions), len(matches))

	return matches, nil
}

func (s *MatchService) score(ctx context.Context, profile models.Profile, catalog []models.Posting) ([]models.Suggestion, error) {
	scoreCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	suggestions, err := s.scorer.Score(scoreCtx, profile, catalog)
	metrics.ScoringDuration.Observe(time.Since(start).Seconds())

	if err == nil {
		return suggestions, nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(scoreCtx.Err(), context.DeadlineExceeded) {
		metrics.MatchRequestsCounter.WithLabelValues("timeout").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeScorer).
			Errorf("scorer timed out after %v for user %s", s.timeout, profile.UserID)
		return nil, withKind(ErrAIMatchTimeout, err)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		metrics.MatchRequestsCounter.WithLabelValues("cancelled").Inc()
		log.Debugf("match request for user %s cancelled by caller", profile.UserID)
		return nil, ctxErr
	}

	metrics.MatchRequestsCounter.WithLabelValues("malformed").Inc()
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeScorer).
		Errorf("scorer failed for user %s: %v", profile.UserID, err)
	return nil, withKind(ErrAIMatchMalformed, err)
}
