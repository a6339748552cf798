// Package config manages application configuration.
package config

import "time"

// Config represents the application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
	Watch  WatchConfig  `yaml:"watch"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"` // empty logs to stderr
}

// OutputConfig contains record output options.
type OutputConfig struct {
	Format     string `yaml:"format"` // json or text
	Pretty     bool   `yaml:"pretty"`
	HumanSizes bool   `yaml:"human_sizes"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format:     "json",
			Pretty:     true,
			HumanSizes: true,
		},
		Watch: WatchConfig{
			Debounce: 250 * time.Millisecond,
		},
	}
}
