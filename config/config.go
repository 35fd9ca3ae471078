// Package config loads trendcast settings from a YAML file, the environment
// and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/sartorproj/trendcast/forecast"
)

// EnvPrefix is prepended to every environment override,
// e.g. TRENDCAST_BACKEND_ACCELERATOR.
const EnvPrefix = "TRENDCAST"

// Config is the full trendcast configuration.
type Config struct {
	LogLevel  string         `mapstructure:"log_level" validate:"oneof=trace debug info warn warning error"`
	LogFormat string         `mapstructure:"log_format" validate:"oneof=text json"`
	Backend   BackendConfig  `mapstructure:"backend"`
	Forecast  ForecastConfig `mapstructure:"forecast"`
	Limits    LimitsConfig   `mapstructure:"limits"`
	Output    OutputConfig   `mapstructure:"output"`
}

// BackendConfig selects the accelerator probed at startup.
type BackendConfig struct {
	Accelerator  string        `mapstructure:"accelerator"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout" validate:"gt=0"`
}

// ForecastConfig holds the engine settings.
type ForecastConfig struct {
	HoldoutFraction float64 `mapstructure:"holdout_fraction" validate:"gt=0,lt=1"`
	Method          string  `mapstructure:"method"`
	ConfidenceLevel float64 `mapstructure:"confidence_level" validate:"gte=0.5,lte=0.99"`
}

// LimitsConfig bounds the requests the command accepts.
type LimitsConfig struct {
	MinPoints  int `mapstructure:"min_points" validate:"gte=1"`
	MaxPoints  int `mapstructure:"max_points" validate:"gtefield=MinPoints"`
	MaxHorizon int `mapstructure:"max_horizon" validate:"gte=1"`
}

// OutputConfig controls how reports are printed.
type OutputConfig struct {
	Format    string `mapstructure:"format" validate:"oneof=json yaml"`
	Precision int32  `mapstructure:"precision" validate:"gte=0,lte=15"`
}

var validate = validator.New()

// Load reads configuration. When path is empty, config.yaml is searched for in
// ./configs and the working directory and a missing file is not an error.
// An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	config.LogLevel = strings.ToLower(config.LogLevel)
	config.LogFormat = strings.ToLower(config.LogFormat)
	config.Output.Format = strings.ToLower(config.Output.Format)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks ranges and enumerations and normalizes the forecast method
// to its canonical name.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	method, err := forecast.ParseMethod(c.Forecast.Method)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	c.Forecast.Method = string(method)
	return nil
}

// Engine converts the forecast section into an engine configuration.
func (c *Config) Engine() *forecast.Config {
	config := forecast.DefaultConfig()
	config.HoldoutFraction = c.Forecast.HoldoutFraction
	config.ConfidenceLevel = c.Forecast.ConfidenceLevel
	if method, err := forecast.ParseMethod(c.Forecast.Method); err == nil {
		config.Method = method
	}
	return config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetDefault("backend.accelerator", "none")
	v.SetDefault("backend.probe_timeout", 2*time.Second)

	v.SetDefault("forecast.holdout_fraction", 0.3)
	v.SetDefault("forecast.method", string(forecast.Auto))
	v.SetDefault("forecast.confidence_level", 0.95)

	v.SetDefault("limits.min_points", 10)
	v.SetDefault("limits.max_points", 10000)
	v.SetDefault("limits.max_horizon", 365)

	v.SetDefault("output.format", "json")
	v.SetDefault("output.precision", 6)
}
