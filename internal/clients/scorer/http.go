package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
	"io"
	"net/http"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPScorer posts the scoring request to a remote matcher service.
type HTTPScorer struct {
	url         string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewHTTPScorer(url string) *HTTPScorer {
	return &HTTPScorer{url: url, httpClient: &http.Client{}}
}

func (s *HTTPScorer) SetHTTPClient(client HTTPClient) {
	s.httpClient = client
}

func (s *HTTPScorer) SetRateLimit(maxRequestsPerSecond float32) {
	s.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (s *HTTPScorer) Score(ctx context.Context, profile models.Profile, postings []models.Posting) ([]models.Suggestion, error) {
	payload, err := json.Marshal(NewRequest(profile, postings))
	if err != nil {
		return nil, errors.Wrap(err, "marshal scorer request")
	}

	body, err := s.sendRequest(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	return ParseResponse(body)
}

func (s *HTTPScorer) sendRequest(ctx context.Context, method string, url string, body io.Reader) ([]byte, error) {

	if s.rateLimiter != nil {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrapf(ErrScorerFailed, "error sending request: %v", err)
	}
	defer resp.Body.Close()

	return s.handleResponse(resp)
}

func (s *HTTPScorer) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(ErrScorerFailed, "error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrScorerFailed, "request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}
