// SPDX-License-Identifier: EPL-2.0

package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Estimator EstimatorConfig `mapstructure:"estimator"`
	Loader    LoaderConfig    `mapstructure:"loader"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
}

// EstimatorConfig tunes the peak based estimator.
type EstimatorConfig struct {
	MaxBPM          float64 `mapstructure:"max_bpm"`
	MinBPM          float64 `mapstructure:"min_bpm"`
	HeightThreshold float64 `mapstructure:"height_threshold"`
	Rounding        string  `mapstructure:"rounding"`
}

// LoaderConfig controls decoding. TargetRate 0 keeps the native rate.
type LoaderConfig struct {
	TargetRate  int           `mapstructure:"target_rate"`
	BufferSize  int           `mapstructure:"buffer_size"`
	MaxDuration time.Duration `mapstructure:"max_duration"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}
