package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dlclark/regexp2"
	"gopkg.in/yaml.v3"

	"ddp-generator/internal/models"
)

type Config struct {
	TemplatePath     string            `yaml:"template_path"`
	LayoutIndex      *int              `yaml:"default_layout_index"`
	DefaultOutputDir string            `yaml:"default_output_dir"`
	FilePrefix       string            `yaml:"file_prefix"`
	FileExtension    string            `yaml:"file_extension"`
	StepPattern      string            `yaml:"step_pattern"`
	Placeholders     PlaceholderConfig `yaml:"placeholders"`
	Reports          ReportConfig      `yaml:"reports"`
}

// PlaceholderConfig names the template shapes that receive step text.
type PlaceholderConfig struct {
	Header       string `yaml:"header"`
	Description  string `yaml:"description"`
	Rules        string `yaml:"rules"`
	ProcessToken string `yaml:"process_token"`
}

type ReportConfig struct {
	Enabled bool `yaml:"enabled"`
}

const (
	defaultTemplatePath  = "DDP_TEMPLATE.pptx"
	defaultLayoutIndex   = 1
	defaultOutputDir     = "output"
	defaultFilePrefix    = "DDP_"
	defaultFileExtension = ".pptx"
)

func DefaultConfig() *Config {
	layout := defaultLayoutIndex
	return &Config{
		TemplatePath:     defaultTemplatePath,
		LayoutIndex:      &layout,
		DefaultOutputDir: defaultOutputDir,
		FilePrefix:       defaultFilePrefix,
		FileExtension:    defaultFileExtension,
		StepPattern:      models.StepRegex,
		Placeholders: PlaceholderConfig{
			Header:       models.HeaderPlaceholder,
			Description:  models.DescriptionPlaceholder,
			Rules:        models.RulesPlaceholder,
			ProcessToken: models.ProcessNameToken,
		},
	}
}

// LoadConfig reads the YAML file at path. A missing file yields the defaults.
// A relative template path is resolved against the config file's directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if fileCfg.TemplatePath != "" && !filepath.IsAbs(fileCfg.TemplatePath) {
		fileCfg.TemplatePath = filepath.Join(filepath.Dir(path), fileCfg.TemplatePath)
	}
	cfg.merge(&fileCfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge copies every non-zero field of other into c.
func (c *Config) merge(other *Config) {
	if other.TemplatePath != "" {
		c.TemplatePath = other.TemplatePath
	}
	if other.LayoutIndex != nil {
		c.LayoutIndex = other.LayoutIndex
	}
	if other.DefaultOutputDir != "" {
		c.DefaultOutputDir = other.DefaultOutputDir
	}
	if other.FilePrefix != "" {
		c.FilePrefix = other.FilePrefix
	}
	if other.FileExtension != "" {
		c.FileExtension = other.FileExtension
	}
	if other.StepPattern != "" {
		c.StepPattern = other.StepPattern
	}
	if other.Placeholders.Header != "" {
		c.Placeholders.Header = other.Placeholders.Header
	}
	if other.Placeholders.Description != "" {
		c.Placeholders.Description = other.Placeholders.Description
	}
	if other.Placeholders.Rules != "" {
		c.Placeholders.Rules = other.Placeholders.Rules
	}
	if other.Placeholders.ProcessToken != "" {
		c.Placeholders.ProcessToken = other.Placeholders.ProcessToken
	}
	c.Reports.Enabled = c.Reports.Enabled || other.Reports.Enabled
}

func (c *Config) Validate() error {
	if c.Layout() < 0 {
		return fmt.Errorf("default_layout_index must not be negative, got %d", c.Layout())
	}
	if _, err := regexp2.Compile(c.StepPattern, regexp2.Singleline); err != nil {
		return fmt.Errorf("invalid step_pattern: %w", err)
	}
	return nil
}

// Layout returns the configured slide layout index.
func (c *Config) Layout() int {
	if c.LayoutIndex == nil {
		return defaultLayoutIndex
	}
	return *c.LayoutIndex
}
