package config

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
	"time"
)

type matcherProvider string

const (
	ProviderProcess matcherProvider = "process"
	ProviderHTTP    matcherProvider = "http"
	ProviderGemini  matcherProvider = "gemini"
)

type MatcherConfig struct {
	Provider               matcherProvider `mapstructure:"provider"`
	Command                string          `mapstructure:"command"`
	Args                   []string        `mapstructure:"args"`
	Dir                    string          `mapstructure:"dir"`
	URL                    string          `mapstructure:"url"`
	MaxRequestsPerSecond   float32         `mapstructure:"max_requests_per_second"`
	Timeout                time.Duration   `mapstructure:"timeout"`
	AIKey                  string          `mapstructure:"ai_key"`
	AiModel                string          `mapstructure:"ai_model"`
	AiMaxRequestsPerMinute float32         `mapstructure:"ai_max_requests_per_minute"`
	AiMaxRequestsPerDay    float32         `mapstructure:"ai_max_requests_per_day"`
	AiLimit                int             `mapstructure:"ai_limit"`
	AiMinScore             float64         `mapstructure:"ai_min_score"`
}

func (config MatcherConfig) validate() error {

	var missingFields []string

	switch config.Provider {
	case ProviderProcess:
		if config.Command == "" {
			missingFields = append(missingFields, "command")
		}
	case ProviderHTTP:
		if config.URL == "" {
			missingFields = append(missingFields, "url")
		}
	case ProviderGemini:
		if config.AIKey == "" {
			missingFields = append(missingFields, "ai_key")
		}
		if config.AiModel == "" {
			missingFields = append(missingFields, "ai_model")
		}
	default:
		return fmt.Errorf("unknown provider %q", config.Provider)
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if config.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("max_requests_per_second can't be negative")
	}

	if config.AiMinScore < 0 || config.AiMinScore > 100 {
		return fmt.Errorf("ai_min_score must be between 0 and 100")
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	return nil
}

func (config MatcherConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnv(v, map[string]string{
		"matcher.provider":                   "MATCHER_PROVIDER",
		"matcher.command":                    "MATCHER_COMMAND",
		"matcher.dir":                        "MATCHER_DIR",
		"matcher.url":                        "MATCHER_URL",
		"matcher.max_requests_per_second":    "MATCHER_MAX_REQUESTS_PER_SECOND",
		"matcher.timeout":                    "MATCHER_TIMEOUT",
		"matcher.ai_key":                     "AI_KEY",
		"matcher.ai_model":                   "AI_MODEL",
		"matcher.ai_max_requests_per_minute": "AI_MAX_REQUESTS_PER_MINUTE",
		"matcher.ai_max_requests_per_day":    "AI_MAX_REQUESTS_PER_DAY",
		"matcher.ai_limit":                   "AI_LIMIT",
		"matcher.ai_min_score":               "AI_MIN_SCORE",
	})
}
