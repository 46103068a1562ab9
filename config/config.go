// Package config loads dispatcher configuration from YAML files and
// environment variables and applies it to a group registry.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/isaccanedo/introduction-to-hystrix/hystrix"
	"github.com/isaccanedo/introduction-to-hystrix/logger"
)

// Config is the root configuration: logging plus per-group command settings.
type Config struct {
	Logging  logger.Config               `yaml:"logging" mapstructure:"logging"`
	Commands map[string]hystrix.Settings `yaml:"commands" mapstructure:"commands" validate:"dive"`
}

// LoaderConfig holds optional file overrides for Load.
type LoaderConfig struct {
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load reads configuration from config.yml and the environment, validates
// it, and returns it. Missing files are not an error: the result falls back
// to defaults.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	if lc.EnvFile != "" {
		if err := godotenv.Load(lc.EnvFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", lc.EnvFile, err)
		}
	} else {
		// Best effort: a local .env is optional.
		_ = godotenv.Load()
	}

	v := viper.New()
	if lc.ConfigFile != "" {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", lc.ConfigFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Logging.ApplyDefaults()
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	for name, s := range cfg.Commands {
		s.ApplyDefaults()
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("command group %q: %w", name, err)
		}
		cfg.Commands[name] = s
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Apply configures every command group from cfg on the registry.
func Apply(cfg *Config, registry *hystrix.Registry) error {
	for name, settings := range cfg.Commands {
		if err := registry.Configure(name, settings); err != nil {
			return err
		}
	}
	return nil
}
