package config

import (
	"fmt"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"time"
)

type CatalogConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func (config CatalogConfig) validate() error {
	if config.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative")
	}
	return nil
}

func (config CatalogConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("catalog.cache_ttl", "CATALOG_CACHE_TTL")
}

type StatsConfig struct {
	Schedule string `mapstructure:"schedule"`
}

func (config StatsConfig) validate() error {
	if config.Schedule == "" {
		return fmt.Errorf("missing variable: schedule")
	}
	if _, err := cron.ParseStandard(config.Schedule); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", config.Schedule, err)
	}
	return nil
}

func (config StatsConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("stats.schedule", "STATS_SCHEDULE")
}
