package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fjglira/GoE2E-StepResolver/internal/domain"
)

// Config is the top-level configuration struct.
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Environment EnvironmentConfig `yaml:"environment"`
	Markdown    MarkdownConfig    `yaml:"markdown"`
	Loader      LoaderConfig      `yaml:"loader"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type InputConfig struct {
	Directories []string `yaml:"directories"`
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	Recursive   *bool    `yaml:"recursive"` // pointer to distinguish unset from false
}

type EnvironmentConfig struct {
	File string `yaml:"file"`
}

// MarkdownConfig selects which fenced code blocks of Markdown files carry
// descriptions.
type MarkdownConfig struct {
	Tags []string `yaml:"tags"`
}

type LoaderConfig struct {
	Parallelism int `yaml:"parallelism"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads a YAML configuration file and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError("config", path, 0, "failed to read config file", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewError("config", path, 0, "failed to parse config file", err)
	}

	return cfg, nil
}
