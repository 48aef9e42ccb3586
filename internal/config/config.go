// Package config provides configuration management for inkit using Viper
// for loading from files, environment variables, and command-line flags.
//
// The configuration covers the preview server (host, port, allowed
// origins), the stylesheet being previewed and its hot reload, the default
// button style applied to previews, and logging. Values are validated with
// go-playground/validator struct tags plus domain checks (the default style
// must parse into a button.Style).
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/conneroisu/inkit/internal/errors"
	"github.com/conneroisu/inkit/internal/validation"
	"github.com/conneroisu/inkit/pkg/button"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Preview PreviewConfig `mapstructure:"preview" yaml:"preview"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`

	// File is the config file the values were read from, or "".
	File string `mapstructure:"-" yaml:"-"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port" yaml:"port" validate:"min=0,max=65535"`
	Host           string   `mapstructure:"host" yaml:"host" validate:"required,hostname_rfc1123|ip"`
	Open           bool     `mapstructure:"open" yaml:"open"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins" validate:"dive,url"`
}

type PreviewConfig struct {
	Title      string            `mapstructure:"title" yaml:"title"`
	Stylesheet string            `mapstructure:"stylesheet" yaml:"stylesheet" validate:"required"`
	Watch      bool              `mapstructure:"watch" yaml:"watch"`
	Debounce   time.Duration     `mapstructure:"debounce" yaml:"debounce" validate:"min=0"`
	Default    map[string]string `mapstructure:"default" yaml:"default"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

const (
	DefaultHost       = "localhost"
	DefaultPort       = 8080
	DefaultStylesheet = "styles/button.css"
	DefaultDebounce   = 300 * time.Millisecond
	DefaultTitle      = "Button preview"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFile reads the configuration from path alone, without flags or
// environment overrides.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid, "failed to read configuration").
			WithCause(err).
			WithLocation(path, 0, 0)
	}
	return LoadFrom(v)
}

// LoadFrom reads, defaults and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid, "failed to decode configuration").WithCause(err)
	}
	config.File = v.ConfigFileUsed()

	if config.Server.Host == "" {
		config.Server.Host = DefaultHost
	}
	if !v.IsSet("server.port") {
		config.Server.Port = DefaultPort
	}

	// Handle a flag-provided log level (bound as "log-level" on the root command)
	if v.IsSet("log-level") && !v.IsSet("log.level") {
		config.Log.Level = v.GetString("log-level")
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}

	if config.Preview.Title == "" {
		config.Preview.Title = DefaultTitle
	}
	if config.Preview.Stylesheet == "" {
		config.Preview.Stylesheet = DefaultStylesheet
	}
	if !v.IsSet("preview.watch") {
		config.Preview.Watch = true
	}
	if !v.IsSet("preview.debounce") {
		config.Preview.Debounce = DefaultDebounce
	}
	if config.Preview.Default == nil {
		config.Preview.Default = map[string]string{}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultStyle returns the style every preview starts from.
func (c *Config) DefaultStyle() button.Style {
	s, err := button.ParseStyle(c.Preview.Default)
	if err != nil {
		// validateConfig rejects unparsable defaults.
		return button.Style{}
	}
	return s
}

// Addr returns the host:port the preview server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid, "invalid configuration").WithCause(err)
	}

	if _, err := validation.ValidatePath(config.Preview.Stylesheet); err != nil {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid, "invalid preview.stylesheet").
			WithCause(err).
			WithContext("path", config.Preview.Stylesheet)
	}

	for kind := range config.Preview.Default {
		if button.Values(kind) == nil {
			return errors.NewConfigError(errors.ErrCodeConfigInvalid,
				fmt.Sprintf("preview.default: unknown style kind %q", kind))
		}
	}
	if _, err := button.ParseStyle(config.Preview.Default); err != nil {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid, "preview.default").WithCause(errors.FromStyle(err))
	}

	return nil
}
