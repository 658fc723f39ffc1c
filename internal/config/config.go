// Package config loads the agent configuration from YAML. Flags layered on
// top by the CLI override whatever the file says.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the agent.
type Config struct {
	// Class is the device class enumerated from the registry.
	Class string `yaml:"class"`
	// QueueSize is the capacity of the outbound event channel. Zero is
	// legal and means every event races the consumer.
	QueueSize int            `yaml:"queue_size"`
	Database  DatabaseConfig `yaml:"database"`
	Logging   LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig holds the SQLite inventory settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds the console logger settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Class:     "usb",
		QueueSize: 16,
		Database:  DatabaseConfig{Path: "usbscout.db"},
		Logging:   LoggingConfig{Level: "info"},
	}
}

// Load reads and validates a YAML config file. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Class == "" {
		return fmt.Errorf("config: class must not be empty")
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("config: queue_size must not be negative, got %d", c.QueueSize)
	}
	return nil
}
