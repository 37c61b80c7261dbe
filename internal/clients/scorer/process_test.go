package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestHelperProcess is not a real test. It is run as the scorer program by
// the process scorer tests.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	input, _ := io.ReadAll(os.Stdin)
	var request Request
	_ = json.Unmarshal(input, &request)

	switch os.Getenv("HELPER_MODE") {
	case "echo":
		matches := make([]map[string]any, 0, len(request.Internships))
		for _, internship := range request.Internships {
			matches = append(matches, map[string]any{
				"title":   internship.Title,
				"company": internship.Company,
				"score":   80,
				"reasons": []string{"for " + request.User.UserID},
			})
		}
		_ = json.NewEncoder(os.Stdout).Encode(map[string]any{"matches": matches})
		fmt.Fprintln(os.Stderr, "warming up")
	case "cwd":
		dir, _ := os.Getwd()
		_ = json.NewEncoder(os.Stdout).Encode(map[string]any{"matches": []map[string]any{{
			"title":   request.Internships[0].Title,
			"company": request.Internships[0].Company,
			"score":   70,
			"reasons": []string{dir},
		}}})
	case "fail":
		fmt.Fprintln(os.Stderr, "traceback: model not found")
		os.Exit(2)
	case "garbage":
		fmt.Fprintln(os.Stdout, "loading model... done")
	case "sleep":
		time.Sleep(10 * time.Second)
	}
}

func helperScorer(mode string) *ProcessScorer {
	s := NewProcessScorer(os.Args[0], "-test.run=TestHelperProcess", "--")
	s.SetEnv("GO_WANT_HELPER_PROCESS=1", "HELPER_MODE="+mode)
	return s
}

var testPostings = []models.Posting{
	{ID: 1, Title: "Data Analyst Intern", Company: "Acme"},
	{ID: 2, Title: "Go Intern", Company: "Globex"},
}

func Test_ProcessScorer_Success(t *testing.T) {
	suggestions, err := helperScorer("echo").Score(context.Background(), models.Profile{UserID: "u1"}, testPostings)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Data Analyst Intern", suggestions[0].Title)
	assert.Equal(t, "Globex", suggestions[1].Company)
	assert.Equal(t, 80.0, suggestions[1].Score)
	assert.Equal(t, []string{"for u1"}, suggestions[0].Reasons)
}

func Test_ProcessScorer_RunsInConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	s := helperScorer("cwd")
	s.SetDir(dir)

	suggestions, err := s.Score(context.Background(), models.Profile{UserID: "u1"}, testPostings)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	require.Len(t, suggestions[0].Reasons, 1)

	expected, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	actual, err := filepath.EvalSymlinks(suggestions[0].Reasons[0])
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func Test_ProcessScorer_NonZeroExit(t *testing.T) {
	_, err := helperScorer("fail").Score(context.Background(), models.Profile{UserID: "u1"}, testPostings)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScorerFailed))
	assert.Contains(t, err.Error(), "model not found")
}

func Test_ProcessScorer_UnparseableOutput(t *testing.T) {
	_, err := helperScorer("garbage").Score(context.Background(), models.Profile{UserID: "u1"}, testPostings)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func Test_ProcessScorer_KilledOnTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := helperScorer("sleep").Score(ctx, models.Profile{UserID: "u1"}, testPostings)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func Test_ProcessScorer_MissingCommand(t *testing.T) {
	_, err := NewProcessScorer("definitely-not-a-scorer-binary").
		Score(context.Background(), models.Profile{UserID: "u1"}, testPostings)
	assert.True(t, errors.Is(err, ErrScorerFailed))
}
