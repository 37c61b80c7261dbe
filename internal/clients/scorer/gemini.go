package scorer

import (
	"context"
	_ "embed"
	"encoding/json"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"strconv"
	"strings"
	"unicode/utf8"
)

type generator interface {
	GenerateResponse(ctx context.Context, request string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultLimit    = 5
	defaultMinScore = 60
)

// GeminiScorer asks a language model to rank the catalog for a candidate.
type GeminiScorer struct {
	generator generator
	limit     int
	minScore  float64
}

func NewGeminiScorer(generator generator) *GeminiScorer {
	return &GeminiScorer{generator: generator, limit: defaultLimit, minScore: defaultMinScore}
}

func (g *GeminiScorer) SetLimit(limit int) {
	if limit > 0 {
		g.limit = limit
	}
}

func (g *GeminiScorer) SetMinScore(minScore float64) {
	g.minScore = minScore
}

func (g *GeminiScorer) Score(ctx context.Context, profile models.Profile, postings []models.Posting) ([]models.Suggestion, error) {
	requestJSON, err := json.MarshalIndent(NewRequest(profile, postings), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal scorer request")
	}

	prompt := g.buildPrompt(string(requestJSON))
	log.Debugf("gemini scorer request for user %s, prompt length %d", profile.UserID, utf8.RuneCountInString(prompt))

	response, err := g.generator.GenerateResponse(ctx, prompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrapf(ErrScorerFailed, "gemini: %v", err)
	}

	log.Debugf("gemini scorer response for user %s, length %d", profile.UserID, utf8.RuneCountInString(response))
	return ParseResponse([]byte(response))
}

func (g *GeminiScorer) buildPrompt(requestJSON string) string {
	prompt := strings.ReplaceAll(promptTemplate, "{{LIMIT}}", strconv.Itoa(g.limit))
	prompt = strings.ReplaceAll(prompt, "{{MIN_SCORE}}", strconv.FormatFloat(g.minScore, 'f', -1, 64))
	return strings.ReplaceAll(prompt, "{{REQUEST_JSON}}", requestJSON)
}
