package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger"`
	DB      DBConfig      `mapstructure:"db"`
	Server  ServerConfig  `mapstructure:"server"`
	Matcher MatcherConfig `mapstructure:"matcher"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Stats   StatsConfig   `mapstructure:"stats"`
}

const defaultConfigFile = "./configs/config.yaml"

// Get loads the configuration or terminates the process.
func Get() *Config {
	config, err := Load(configFile())
	if err != nil {
		log.Fatal(err)
	}
	return config
}

func configFile() string {
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		return value
	}
	return defaultConfigFile
}

// Load reads the yaml file, applies a .env file from the working directory
// if there is one, and then environment overrides.
func Load(file string) (*Config, error) {

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(file)
	setDefaults(v)

	if err := bindEnvironmentVariables(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", file, err)
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", string(LevelInfo))
	v.SetDefault("logger.app_name", "intern-match")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("matcher.provider", string(ProviderProcess))
	v.SetDefault("matcher.command", "python3")
	v.SetDefault("matcher.args", []string{"AI_Matcher/Ai-model.py"})
	v.SetDefault("matcher.timeout", "5s")
	v.SetDefault("matcher.ai_model", "gemini-1.5-flash")
	v.SetDefault("matcher.ai_limit", 5)
	v.SetDefault("matcher.ai_min_score", 60)
	v.SetDefault("catalog.cache_ttl", "1m")
	v.SetDefault("stats.schedule", "@every 1m")
}

func bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	sections := []struct {
		name string
		bind func(v *viper.Viper) error
	}{
		{"LoggerConfig", LoggerConfig{}.bindEnvironmentVariables},
		{"DBConfig", DBConfig{}.bindEnvironmentVariables},
		{"ServerConfig", ServerConfig{}.bindEnvironmentVariables},
		{"MatcherConfig", MatcherConfig{}.bindEnvironmentVariables},
		{"CatalogConfig", CatalogConfig{}.bindEnvironmentVariables},
		{"StatsConfig", StatsConfig{}.bindEnvironmentVariables},
	}

	for _, section := range sections {
		if err := section.bind(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", section.name, err))
		}
	}

	return createMultiError(errs)
}

func (config Config) validate() error {
	var errs []error

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Server.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := config.Matcher.validate(); err != nil {
		errs = append(errs, fmt.Errorf("MatcherConfig: %w", err))
	}

	if err := config.Catalog.validate(); err != nil {
		errs = append(errs, fmt.Errorf("CatalogConfig: %w", err))
	}

	if err := config.Stats.validate(); err != nil {
		errs = append(errs, fmt.Errorf("StatsConfig: %w", err))
	}

	return createMultiError(errs)
}

func createMultiError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
}

func bindEnv(v *viper.Viper, bindings map[string]string) error {
	var errs []error
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return createMultiError(errs)
}
