package scorer

import (
	"context"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

type generatorMock struct {
	mock.Mock
}

func (m *generatorMock) GenerateResponse(ctx context.Context, request string) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}

func Test_GeminiScorer_BuildsPromptAndParsesReply(t *testing.T) {
	generator := &generatorMock{}
	generator.On("GenerateResponse", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return assert.Contains(t, prompt, `"title": "Data Analyst Intern"`) &&
			assert.Contains(t, prompt, "at most 3 postings with a score of at least 72.5") &&
			assert.NotContains(t, prompt, "{{")
	})).Return("```json\n{\"matches\": [{\"title\": \"Data Analyst Intern\", \"company\": \"Acme\", \"score\": 88}]}\n```", nil)

	s := NewGeminiScorer(generator)
	s.SetLimit(3)
	s.SetMinScore(72.5)

	suggestions, err := s.Score(context.Background(), models.Profile{UserID: "u1"}, testPostings)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, 88.0, suggestions[0].Score)
	generator.AssertExpectations(t)
}

func Test_GeminiScorer_GeneratorFailure(t *testing.T) {
	generator := &generatorMock{}
	generator.On("GenerateResponse", mock.Anything, mock.Anything).Return("", errors.New("Error 500"))

	_, err := NewGeminiScorer(generator).Score(context.Background(), models.Profile{UserID: "u1"}, testPostings)
	assert.True(t, errors.Is(err, ErrScorerFailed))
}

func Test_GeminiScorer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	generator := &generatorMock{}
	generator.On("GenerateResponse", mock.Anything, mock.Anything).Return("", context.Canceled)

	_, err := NewGeminiScorer(generator).Score(ctx, models.Profile{UserID: "u1"}, testPostings)
	assert.True(t, errors.Is(err, context.Canceled))
}
