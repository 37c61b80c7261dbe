package config

import (
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

func (config ServerConfig) validate() error {
	var errs []error
	if config.Address == "" {
		errs = append(errs, fmt.Errorf("missing variable: address"))
	}
	if config.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("read_timeout must be positive"))
	}
	if config.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("write_timeout must be positive"))
	}
	return createMultiError(errs)
}

func (config ServerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnv(v, map[string]string{
		"server.address":       "SERVER_ADDRESS",
		"server.read_timeout":  "SERVER_READ_TIMEOUT",
		"server.write_timeout": "SERVER_WRITE_TIMEOUT",
	})
}
