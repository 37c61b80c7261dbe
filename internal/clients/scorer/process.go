package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"os/exec"
	"strings"
)

// ProcessScorer runs an external matcher program per request. The request is
// written to its stdin as JSON and the reply read from its stdout.
type ProcessScorer struct {
	command string
	args    []string
	dir     string
	env     []string
}

func NewProcessScorer(command string, args ...string) *ProcessScorer {
	return &ProcessScorer{command: command, args: args}
}

func (p *ProcessScorer) SetDir(dir string) {
	p.dir = dir
}

// SetEnv appends variables to the environment the program inherits.
func (p *ProcessScorer) SetEnv(env ...string) {
	p.env = append(p.env, env...)
}

// Score blocks until the program exits. Cancelling ctx kills the program.
func (p *ProcessScorer) Score(ctx context.Context, profile models.Profile, postings []models.Posting) ([]models.Suggestion, error) {
	input, err := json.Marshal(NewRequest(profile, postings))
	if err != nil {
		return nil, errors.Wrap(err, "marshal scorer request")
	}

	cmd := exec.CommandContext(ctx, p.command, p.args...)
	cmd.Dir = p.dir
	if len(p.env) > 0 {
		cmd.Env = append(cmd.Environ(), p.env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err = cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrapf(ErrScorerFailed, "%s: %v: %s", p.command, err, strings.TrimSpace(stderr.String()))
	}

	if stderr.Len() > 0 {
		log.Warnf("scorer %s wrote to stderr: %s", p.command, strings.TrimSpace(stderr.String()))
	}

	return ParseResponse(stdout.Bytes())
}
