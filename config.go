package rle565

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

const (
	defaultWorkers = 4
	maxColors      = 256
)

// Config controls how images are converted.
type Config struct {
	// Colors reduces the image to at most this many colors before
	// encoding, zero disables the reduction
	Colors int `yaml:"colors"`
	// Workers is the number of concurrent conversions in batch mode
	Workers int `yaml:"workers"`
	// Cache is the path to the conversion cache database, if any
	Cache string `yaml:"cache"`
	// Limit caps the size in bytes of each RLE565 output, zero is no limit
	Limit int `yaml:"limit"`
	// Extensions lists the file extensions picked up in batch mode
	Extensions []string `yaml:"extensions"`
}

// DefaultConfig returns the configuration used when none is provided.
func DefaultConfig() *Config {
	return &Config{
		Workers:    defaultWorkers,
		Extensions: []string{".png"},
	}
}

// LoadConfig reads a YAML configuration file. Any value not present in the
// file keeps its default.
func LoadConfig(file string) (*Config, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.UnmarshalStrict(b, config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file '%s': %w", file, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration values are within range.
func (c *Config) Validate() error {
	switch {
	case c.Colors < 0 || c.Colors == 1 || c.Colors > maxColors:
		return fmt.Errorf("colors must be 0 or between 2 and %d", maxColors)
	case c.Workers < 1:
		return fmt.Errorf("workers must be at least 1")
	case c.Limit < 0:
		return fmt.Errorf("limit must not be negative")
	case len(c.Extensions) == 0:
		return fmt.Errorf("at least one extension is required")
	}
	return nil
}
