package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mark3labs/openapi2locust/internal/emitter/locustemitter"
)

// Config holds the HTTP service settings plus the fallbacks applied to
// generation requests that omit optional fields.
type Config struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownGrace     time.Duration `mapstructure:"shutdown_grace"`

	Generate GenerateDefaults `mapstructure:"generate"`
}

// GenerateDefaults are the per-request option fallbacks.
type GenerateDefaults struct {
	ClientType    string `mapstructure:"client_type"`
	UserClassName string `mapstructure:"user_class_name"`
	TaskWeight    int    `mapstructure:"task_weight"`
}

// DefaultConfig returns the settings used when no config file or
// environment overrides are present.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownGrace:     10 * time.Second,
		Generate: GenerateDefaults{
			ClientType:    string(locustemitter.FastHTTP),
			UserClassName: "GeneratedUser",
			TaskWeight:    1,
		},
	}
}

// LoadConfig reads an optional YAML/JSON config file and applies
// OPENAPI2LOCUST_* environment overrides on top of the defaults. An
// empty path loads defaults and environment only.
func LoadConfig(path string) (Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("addr", def.Addr)
	v.SetDefault("read_header_timeout", def.ReadHeaderTimeout)
	v.SetDefault("shutdown_grace", def.ShutdownGrace)
	v.SetDefault("generate.client_type", def.Generate.ClientType)
	v.SetDefault("generate.user_class_name", def.Generate.UserClassName)
	v.SetDefault("generate.task_weight", def.Generate.TaskWeight)

	v.SetEnvPrefix("OPENAPI2LOCUST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("server: read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("server: decode config: %w", err)
	}
	if cfg.Generate.TaskWeight < 1 {
		cfg.Generate.TaskWeight = 1
	}
	return cfg, nil
}
