package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfig = `
logger:
  log_level: DEBUG
  app_name: intern-match-test
  output_file: ./logs/test.log
db:
  connection_string: file.db
server:
  address: ":9090"
matcher:
  provider: process
  command: python3
  args: ["AI_Matcher/Ai-model.py", "--json"]
  dir: /srv/matcher
  timeout: 3s
catalog:
  cache_ttl: 30s
stats:
  schedule: "*/5 * * * *"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func Test_Config_LoadsFileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, "intern-match-test", cfg.Logger.AppName)
	assert.Equal(t, "file.db", cfg.DB.ConnectionString)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, ProviderProcess, cfg.Matcher.Provider)
	assert.Equal(t, []string{"AI_Matcher/Ai-model.py", "--json"}, cfg.Matcher.Args)
	assert.Equal(t, "/srv/matcher", cfg.Matcher.Dir)
	assert.Equal(t, 3*time.Second, cfg.Matcher.Timeout)
	assert.Equal(t, 5, cfg.Matcher.AiLimit)
	assert.Equal(t, 60.0, cfg.Matcher.AiMinScore)
	assert.Equal(t, 30*time.Second, cfg.Catalog.CacheTTL)
	assert.Equal(t, "*/5 * * * *", cfg.Stats.Schedule)
}

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("DB_CONNECTION_STRING", "override.db")
	t.Setenv("SERVER_ADDRESS", ":7070")
	t.Setenv("MATCHER_PROVIDER", "gemini")
	t.Setenv("MATCHER_TIMEOUT", "8s")
	t.Setenv("AI_KEY", "overrideKey")
	t.Setenv("AI_MODEL", "super_duper_model")
	t.Setenv("AI_MAX_REQUESTS_PER_MINUTE", "88")
	t.Setenv("AI_MAX_REQUESTS_PER_DAY", "89")
	t.Setenv("AI_LIMIT", "7")
	t.Setenv("AI_MIN_SCORE", "45.5")
	t.Setenv("MATCHER_DIR", "/opt/matcher")
	t.Setenv("MATCHER_MAX_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("CATALOG_CACHE_TTL", "2m")
	t.Setenv("STATS_SCHEDULE", "@hourly")

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, LevelError, cfg.Logger.LogLevel)
	assert.Equal(t, "override.db", cfg.DB.ConnectionString)
	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, ProviderGemini, cfg.Matcher.Provider)
	assert.Equal(t, 8*time.Second, cfg.Matcher.Timeout)
	assert.Equal(t, "overrideKey", cfg.Matcher.AIKey)
	assert.Equal(t, "super_duper_model", cfg.Matcher.AiModel)
	assert.Equal(t, float32(88), cfg.Matcher.AiMaxRequestsPerMinute)
	assert.Equal(t, float32(89), cfg.Matcher.AiMaxRequestsPerDay)
	assert.Equal(t, 7, cfg.Matcher.AiLimit)
	assert.Equal(t, 45.5, cfg.Matcher.AiMinScore)
	assert.Equal(t, "/opt/matcher", cfg.Matcher.Dir)
	assert.Equal(t, float32(2.5), cfg.Matcher.MaxRequestsPerSecond)
	assert.Equal(t, 2*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, "@hourly", cfg.Stats.Schedule)
}

func Test_Config_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing db", `
logger: {log_level: INFO, output_file: out.log}
`},
		{"unknown log level", `
logger: {log_level: LOUD, output_file: out.log}
db: {connection_string: file.db}
`},
		{"gemini without key", `
logger: {log_level: INFO, output_file: out.log}
db: {connection_string: file.db}
matcher: {provider: gemini}
`},
		{"unknown provider", `
logger: {log_level: INFO, output_file: out.log}
db: {connection_string: file.db}
matcher: {provider: oracle}
`},
		{"min score above 100", `
logger: {log_level: INFO, output_file: out.log}
db: {connection_string: file.db}
matcher: {ai_min_score: 150}
`},
		{"negative http rate limit", `
logger: {log_level: INFO, output_file: out.log}
db: {connection_string: file.db}
matcher: {provider: http, url: "http://matcher", max_requests_per_second: -1}
`},
		{"bad schedule", `
logger: {log_level: INFO, output_file: out.log}
db: {connection_string: file.db}
stats: {schedule: "every now and then"}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func Test_Config_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
