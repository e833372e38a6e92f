// SPDX-License-Identifier: EPL-2.0

// Package config loads application settings with viper. Values come from,
// in increasing priority: built-in defaults, an optional YAML file,
// HEARTBPM_* environment variables and bound command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ik5/heartbpm"
	"github.com/ik5/heartbpm/heartrate"
	"github.com/ik5/heartbpm/internal/logging"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "HEARTBPM"
	// FileName is looked up in the working directory when no file is given.
	FileName = "heartbpm"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// SetDefaults registers a default for every key so that environment
// variables are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("estimator.max_bpm", heartrate.DefaultMaxBPM)
	v.SetDefault("estimator.min_bpm", heartrate.DefaultMinBPM)
	v.SetDefault("estimator.height_threshold", heartrate.DefaultHeightThreshold)
	v.SetDefault("estimator.rounding", heartrate.RoundNearest.String())

	v.SetDefault("loader.target_rate", 0)
	v.SetDefault("loader.buffer_size", heartbpm.DefaultBufferSize)
	v.SetDefault("loader.max_duration", heartbpm.DefaultMaxDuration)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_bytes", 32<<20)
	v.SetDefault("server.rate_limit", 2.0)
	v.SetDefault("server.rate_burst", 5)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// Load reads file, or ./heartbpm.yaml when file is empty, and returns the
// validated configuration. A missing default file is not an error; a missing
// explicit file is.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)

	return &cfg
}

// Validate reports every out of range value at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	e := c.Estimator
	if !(e.MaxBPM > 0) {
		bad("estimator.max_bpm must be positive, got %v", e.MaxBPM)
	}
	if !(e.MinBPM >= 0) || e.MinBPM >= e.MaxBPM {
		bad("estimator.min_bpm must be in [0, max_bpm), got %v", e.MinBPM)
	}
	if !(e.HeightThreshold >= 0 && e.HeightThreshold <= 1) {
		bad("estimator.height_threshold must be in [0, 1], got %v", e.HeightThreshold)
	}
	if _, err := heartrate.ParseRounding(e.Rounding); err != nil {
		bad("estimator.rounding %q", e.Rounding)
	}

	l := c.Loader
	if l.TargetRate < 0 {
		bad("loader.target_rate must not be negative, got %d", l.TargetRate)
	}
	if l.BufferSize <= 0 {
		bad("loader.buffer_size must be positive, got %d", l.BufferSize)
	}
	if l.MaxDuration < 0 {
		bad("loader.max_duration must not be negative, got %s", l.MaxDuration)
	}

	s := c.Server
	if s.Port <= 0 || s.Port > 65535 {
		bad("server.port %d", s.Port)
	}
	if s.MaxUploadBytes <= 0 {
		bad("server.max_upload_bytes must be positive, got %d", s.MaxUploadBytes)
	}
	if !(s.RateLimit > 0) || s.RateBurst <= 0 {
		bad("server.rate_limit and server.rate_burst must be positive, got %v/%d", s.RateLimit, s.RateBurst)
	}
	if s.ShutdownTimeout <= 0 {
		bad("server.shutdown_timeout must be positive, got %s", s.ShutdownTimeout)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		bad("log.level %q", c.Log.Level)
	}

	return errors.Join(errs...)
}

// EstimatorOptions converts the estimator section to heartrate options.
func (c *Config) EstimatorOptions() ([]heartrate.Option, error) {
	rounding, err := heartrate.ParseRounding(c.Estimator.Rounding)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return []heartrate.Option{
		heartrate.WithMaxBPM(c.Estimator.MaxBPM),
		heartrate.WithMinBPM(c.Estimator.MinBPM),
		heartrate.WithHeightThreshold(c.Estimator.HeightThreshold),
		heartrate.WithRounding(rounding),
	}, nil
}

// NewEstimator builds an estimator from the estimator section.
func (c *Config) NewEstimator() (*heartrate.Estimator, error) {
	opts, err := c.EstimatorOptions()
	if err != nil {
		return nil, err
	}

	est, err := heartrate.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return est, nil
}

// LoadOptions converts the loader section; recordings are always downmixed.
func (c *Config) LoadOptions() heartbpm.LoadOptions {
	return heartbpm.LoadOptions{
		TargetRate:  c.Loader.TargetRate,
		Mono:        true,
		BufferSize:  c.Loader.BufferSize,
		MaxDuration: c.Loader.MaxDuration,
	}
}
