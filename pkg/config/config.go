// Package config provides configuration loading and management for ftmixer.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ftmixer/internal/models"
	"ftmixer/pkg/codec"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Mixer parameters applied when the command line does not override them
	Mixer struct {
		// Mode is "magphase" or "realimag"
		Mode string `yaml:"mode"`

		// Region is "whole", "inner" or "outer"
		Region string `yaml:"region"`

		// RegionSize is the size of the region rectangle in percent
		RegionSize float64 `yaml:"regionSize"`

		// Weights holds the default weight of each slot
		Weights []float64 `yaml:"weights"`

		// Components holds the default component of each slot
		Components []string `yaml:"components"`

		// Resample selects the filter used to bring images to a common size
		Resample string `yaml:"resample"`
	} `yaml:"mixer"`

	// Output parameters
	Output struct {
		// JPEGQuality is used when an output path ends in .jpg or .jpeg
		JPEGQuality int `yaml:"jpegQuality"`

		// PreviewOverlay outlines the active region on component previews
		PreviewOverlay bool `yaml:"previewOverlay"`

		// PreviewDir is where component previews are written by default
		PreviewDir string `yaml:"previewDir"`
	} `yaml:"output"`

	// Logging parameters
	Logging struct {
		// Verbose enables debug output
		Verbose bool `yaml:"verbose"`
	} `yaml:"logging"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Mixer.Mode = models.MagPhase.String()
	cfg.Mixer.Region = models.Whole.String()
	cfg.Mixer.RegionSize = models.DefaultRegionPercent
	cfg.Mixer.Weights = []float64{1, 1, 1, 1}
	cfg.Mixer.Components = []string{"magnitude", "phase", "magnitude", "phase"}
	cfg.Mixer.Resample = "lanczos"

	cfg.Output.JPEGQuality = codec.DefaultJPEGQuality
	cfg.Output.PreviewOverlay = true
	cfg.Output.PreviewDir = "previews"

	cfg.Logging.Verbose = false

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		return cfg, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}

// Validate checks that every named value can be parsed
func (c *Config) Validate() error {
	if _, err := c.MixMode(); err != nil {
		return err
	}
	if _, err := c.MixRegion(); err != nil {
		return err
	}
	if _, err := c.SlotComponents(); err != nil {
		return err
	}
	if _, err := ResampleFilter(c.Mixer.Resample); err != nil {
		return err
	}
	if len(c.Mixer.Weights) > models.NumSlots {
		return fmt.Errorf("at most %d weights allowed, got %d", models.NumSlots, len(c.Mixer.Weights))
	}
	if q := c.Output.JPEGQuality; q < 1 || q > 100 {
		return fmt.Errorf("jpegQuality must be 1-100, got %d", q)
	}
	return nil
}

// MixMode returns the configured mode
func (c *Config) MixMode() (models.Mode, error) {
	return models.ParseMode(c.Mixer.Mode)
}

// MixRegion returns the configured region
func (c *Config) MixRegion() (models.Region, error) {
	kind, err := models.ParseRegionKind(c.Mixer.Region)
	if err != nil {
		return models.Region{}, err
	}
	if c.Mixer.RegionSize < 0 || c.Mixer.RegionSize > 100 {
		return models.Region{}, fmt.Errorf("regionSize must be 0-100, got %g", c.Mixer.RegionSize)
	}
	return models.Region{Kind: kind, Percent: c.Mixer.RegionSize}, nil
}

// SlotComponents returns the configured component of each slot
func (c *Config) SlotComponents() ([]models.Component, error) {
	if len(c.Mixer.Components) > models.NumSlots {
		return nil, fmt.Errorf("at most %d components allowed, got %d", models.NumSlots, len(c.Mixer.Components))
	}
	out := make([]models.Component, len(c.Mixer.Components))
	for i, name := range c.Mixer.Components {
		kind, err := models.ParseComponent(name)
		if err != nil {
			return nil, err
		}
		out[i] = kind
	}
	return out, nil
}
