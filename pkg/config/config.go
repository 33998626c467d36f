package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable overrides, e.g. TERMTRACKER_DATABASE_PATH.
const EnvPrefix = "TERMTRACKER"

// Config is the validated application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig locates the sqlite file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LogConfig controls the debug log written while the terminal ui runs.
type LogConfig struct {
	Path  string `mapstructure:"path" validate:"required"`
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
}

// ZerologLevel returns the configured level.
func (c LogConfig) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.InfoLevel
	}

	return level
}

// Loader reads a Config from defaults, an optional yaml file and the environment.
type Loader struct {
	viper     *viper.Viper
	validator *validator.Validate
	home      string
}

// NewLoader returns a Loader reading configFile, or config.yaml from the working directory or
// ~/.config/term-tracker when configFile is empty.
func NewLoader(configFile string) (*Loader, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to find home directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if configFile != "" {
		path, err := homedir.Expand(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path %s: %w", configFile, err)
		}

		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(home, ".config", "term-tracker"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{
		viper:     v,
		validator: validator.New(),
		home:      home,
	}, nil
}

// Viper exposes the underlying viper instance so command line flags can be bound to keys.
func (loader *Loader) Viper() *viper.Viper {
	return loader.viper
}

// Load applies defaults, reads the config file if there is one, expands ~ in paths and
// validates the result.
func (loader *Loader) Load() (*Config, error) {
	v := loader.viper

	dataDir := filepath.Join(loader.home, ".term-tracker")

	v.SetDefault("database.path", filepath.Join(dataDir, "terms.sqlite"))
	v.SetDefault("log.path", filepath.Join(dataDir, "debug.log"))
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	for _, p := range []*string{&cfg.Database.Path, &cfg.Log.Path} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", *p, err)
		}

		*p = expanded
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}

		msgs := []string{}
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Namespace(), e.Tag()))
		}

		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
	}

	return &cfg, nil
}
