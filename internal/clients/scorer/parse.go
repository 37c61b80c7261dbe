package scorer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/pkg/errors"
	"strconv"
	"strings"
)

var (
	ErrMalformedResponse = errors.New("malformed scorer response")
	ErrScorerFailed      = errors.New("scorer failed")
)

var validate = validator.New()

type response struct {
	Matches []suggestion `json:"matches"`
	Error   string       `json:"error"`
}

type suggestion struct {
	Title    flexString `json:"title"`
	Company  flexString `json:"company"`
	Score    *float64   `json:"score"`
	Location flexString `json:"location"`
	Stipend  flexString `json:"stipend"`
	Field    flexString `json:"field"`
	Duration flexString `json:"duration"`
	Skills   flexString `json:"skills"`
	Type     flexString `json:"type"`
	Reasons  []string   `json:"reasons"`
}

// ParseResponse decodes a scorer reply. A single invalid suggestion rejects
// the whole reply: partially trusted output is never returned.
func ParseResponse(raw []byte) ([]models.Suggestion, error) {
	cleaned := extractJSON(raw)
	if len(cleaned) == 0 {
		return nil, errors.Wrap(ErrMalformedResponse, "empty output")
	}

	var resp response
	decoder := json.NewDecoder(bytes.NewReader(cleaned))
	if err := decoder.Decode(&resp); err != nil {
		return nil, errors.Wrapf(ErrMalformedResponse, "decode: %v", err)
	}

	if resp.Error != "" && len(resp.Matches) == 0 {
		return nil, errors.Wrap(ErrScorerFailed, resp.Error)
	}

	suggestions := make([]models.Suggestion, 0, len(resp.Matches))
	for i, s := range resp.Matches {
		if s.Score == nil {
			return nil, errors.Wrapf(ErrMalformedResponse, "match %d: score is missing", i)
		}
		parsed := models.Suggestion{
			Title:    string(s.Title),
			Company:  string(s.Company),
			Score:    *s.Score,
			Location: string(s.Location),
			Stipend:  string(s.Stipend),
			Field:    string(s.Field),
			Duration: string(s.Duration),
			Skills:   string(s.Skills),
			Type:     string(s.Type),
			Reasons:  s.Reasons,
		}
		if err := validate.Struct(parsed); err != nil {
			return nil, errors.Wrapf(ErrMalformedResponse, "match %d: %v", i, err)
		}
		suggestions = append(suggestions, parsed)
	}
	return suggestions, nil
}

// extractJSON strips markdown fences and any chatter around the outermost
// JSON object, which language models tend to add.
func extractJSON(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	start, end := strings.Index(s, "{"), strings.LastIndex(s, "}")
	if start == -1 || end < start {
		return []byte(s)
	}
	return []byte(s[start : end+1])
}

// flexString accepts a JSON string, number, bool, list of strings or null.
// Scorers echo catalog fields back with whatever types they like.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*f = ""
	case string:
		*f = flexString(val)
	case float64:
		*f = flexString(strconv.FormatFloat(val, 'f', -1, 64))
	case bool:
		*f = flexString(strconv.FormatBool(val))
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprint(item))
		}
		*f = flexString(strings.Join(parts, ", "))
	default:
		return fmt.Errorf("unsupported value %s", string(data))
	}
	return nil
}
