// Package config loads the monitor's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the as5600-monitor settings. Any field left out of the
// file keeps its default.
type Config struct {
	// Bus is the I2C bus name or number, e.g. "1" or "/dev/i2c-1".
	// Empty selects the first available bus.
	Bus string `yaml:"bus"`

	// Address is the 7-bit device address. Defaults to 0x36, the fixed
	// AS5600 address; only needed behind an address translator.
	Address uint16 `yaml:"address"`

	// PollIntervalMs is the dashboard refresh interval in milliseconds.
	PollIntervalMs int `yaml:"poll_interval_ms"`

	// Mock selects the simulated chip instead of real hardware.
	Mock bool `yaml:"mock"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Address:        0x36,
		PollIntervalMs: 800,
	}
}

// Load reads and validates a YAML config file, applying defaults for
// absent fields.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Address > 0x7F {
		return fmt.Errorf("address 0x%02x exceeds 7-bit range", c.Address)
	}
	if c.PollIntervalMs <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive, got %d", c.PollIntervalMs)
	}
	return nil
}

// PollInterval returns the refresh interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}
