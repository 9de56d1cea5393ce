// Package config loads CLI configuration from YAML files with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full cycleprof CLI configuration.
type Config struct {
	Log         LogConfig         `yaml:"log"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Report      ReportConfig      `yaml:"report"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level  string `yaml:"level" env:"CYCLEPROF_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"CYCLEPROF_LOG_PRETTY"`
}

// CalibrationConfig controls the cycles-to-wall-clock calibration.
type CalibrationConfig struct {
	// Sample is the busy-wait window used to measure the cycle frequency.
	Sample time.Duration `yaml:"sample" env:"CYCLEPROF_CALIBRATION_SAMPLE"`
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	// Color is one of auto, always, never.
	Color string `yaml:"color" env:"CYCLEPROF_REPORT_COLOR"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	return Config{
		Log:         LogConfig{Level: "info", Pretty: true},
		Calibration: CalibrationConfig{Sample: 100 * time.Millisecond},
		Report:      ReportConfig{Color: "auto"},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (optional when path is empty; required to exist otherwise), then env
// overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := LoadFromEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field domains after all layers have applied.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	if c.Calibration.Sample <= 0 {
		return fmt.Errorf("calibration sample must be positive, got %v", c.Calibration.Sample)
	}

	switch c.Report.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid report color mode %q (want auto, always, or never)", c.Report.Color)
	}
	return nil
}
