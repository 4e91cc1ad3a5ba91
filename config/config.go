// Package config provides configuration loading and management for the
// ontoschema generator.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete generator configuration
type Config struct {
	Model    ModelConfig    `yaml:"model"`
	Shapes   ShapesConfig   `yaml:"shapes"`
	Output   OutputConfig   `yaml:"output"`
	Generate GenerateConfig `yaml:"generate"`
	Serve    ServeConfig    `yaml:"serve"`
}

// ModelConfig locates the class-model source
type ModelConfig struct {
	// Source is the class-model path; doublestar globs select multiple
	// fragments (e.g. "ontology/**/*.ttl")
	Source string `yaml:"source"`
}

// ShapesConfig locates the constraint-shape source
type ShapesConfig struct {
	// Source is the shape source path (single canonical serialization)
	Source string `yaml:"source"`
}

// OutputConfig controls the emitted documents
type OutputConfig struct {
	// Dir is the target directory for generated documents
	Dir string `yaml:"dir"`
	// Vocabulary names the combined document (default: derived from the
	// model source file name)
	Vocabulary string `yaml:"vocabulary"`
	// BaseID is the IRI prefix stamped into document $id fields
	BaseID string `yaml:"base_id"`
	// JTD additionally emits one JTD definition per class
	JTD bool `yaml:"jtd"`
}

// GenerateConfig controls pipeline execution
type GenerateConfig struct {
	// Workers bounds concurrent per-class emission (0 = GOMAXPROCS)
	Workers int `yaml:"workers"`
}

// ServeConfig configures the schema file server
type ServeConfig struct {
	// Addr is the listen address for the serve command
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir: "schemas",
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Generate.Workers < 0 {
		return fmt.Errorf("generate.workers must not be negative")
	}
	if c.Serve.Addr == "" {
		return fmt.Errorf("serve.addr is required")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Model.Source != "" {
		c.Model.Source = other.Model.Source
	}
	if other.Shapes.Source != "" {
		c.Shapes.Source = other.Shapes.Source
	}

	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
	if other.Output.Vocabulary != "" {
		c.Output.Vocabulary = other.Output.Vocabulary
	}
	if other.Output.BaseID != "" {
		c.Output.BaseID = other.Output.BaseID
	}
	if other.Output.JTD {
		c.Output.JTD = true
	}

	if other.Generate.Workers != 0 {
		c.Generate.Workers = other.Generate.Workers
	}

	if other.Serve.Addr != "" {
		c.Serve.Addr = other.Serve.Addr
	}
}
