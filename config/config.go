// Package config handles configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/lex00/nghint/attr"
	"github.com/lex00/nghint/format"
	"github.com/lex00/nghint/lint"
	"github.com/lex00/nghint/logging"
)

// ConfigFilename is the standard name for nghint configuration files.
const ConfigFilename = ".nghint.yaml"

// ErrNoFiles is returned by Validate when no input files are configured.
var ErrNoFiles = errors.New("no files to lint")

// ValidationError reports an out-of-range configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// StringList is a list that also accepts a single scalar in YAML.
type StringList []string

// UnmarshalYAML widens a scalar to a one-element list.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Value == "" {
			*l = nil
			return nil
		}
		*l = StringList{node.Value}
		return nil
	}

	var list []string
	if err := node.Decode(&list); err != nil {
		return err
	}
	*l = list
	return nil
}

// Config holds all linter configuration.
type Config struct {
	// Files lists file names, directories or glob patterns to lint.
	Files StringList `envconfig:"NGHINT_FILES" yaml:"files"`
	// IgnoreAttributes lists attributes, in any spelling, exempt from the
	// empty-attribute check.
	IgnoreAttributes StringList `envconfig:"NGHINT_IGNORE_ATTRIBUTES" yaml:"ignoreAttributes,omitempty"`
	// Disable lists rule or sub-rule IDs to skip.
	Disable StringList `envconfig:"NGHINT_DISABLE" yaml:"disable,omitempty"`
	// MinSeverity is the lowest severity reported: error, warning or info.
	MinSeverity string `envconfig:"NGHINT_MIN_SEVERITY" yaml:"minSeverity"`
	// Format selects the output format: text, json or yaml.
	Format string `envconfig:"NGHINT_FORMAT" yaml:"format"`
	// Template renders each diagnostic in text output.
	Template string `envconfig:"NGHINT_TEMPLATE" yaml:"template"`
	// Concurrency bounds how many files are linted at once; 0 uses GOMAXPROCS.
	Concurrency int `envconfig:"NGHINT_CONCURRENCY" yaml:"concurrency,omitempty"`
	// ChunkSize is the read size used when loading files.
	ChunkSize int `envconfig:"NGHINT_CHUNK_SIZE" yaml:"chunkSize,omitempty"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"NGHINT_LOG_LEVEL" yaml:"level"`
	Format string `envconfig:"NGHINT_LOG_FORMAT" yaml:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	cfg.MinSeverity = "info"
	cfg.Format = "text"
	cfg.Template = format.DefaultTemplate
	cfg.Log.Level = "warn"
	cfg.Log.Format = "text"
}

// Load builds the configuration from defaults, the config file at path (or
// the nearest ConfigFilename above the working directory when path is
// empty), environment variables and finally overrides, then validates it.
// It returns the config file used, if any.
func Load(path string, overrides ...func(*Config)) (*Config, string, error) {
	cfg := Default()

	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get current directory: %w", err)
		}
		if path, err = Find(cwd); err != nil {
			return nil, "", err
		}
	}

	// Load from YAML file if found (overrides defaults)
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, "", fmt.Errorf("loading config file: %w", err)
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", cfg); err != nil {
		return nil, "", fmt.Errorf("processing env config: %w", err)
	}

	for _, o := range overrides {
		o(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Find walks up from startDir looking for ConfigFilename. It returns an
// empty path when none exists.
func Find(startDir string) (string, error) {
	// Normalize the start directory
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	currentDir := absDir
	for {
		configPath := filepath.Join(currentDir, ConfigFilename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return nil
}

// Validate checks that the configuration can drive a lint run. It reports
// every problem found.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Files) == 0 {
		errs = append(errs, ErrNoFiles)
	}
	if _, err := lint.ParseSeverity(c.MinSeverity); err != nil {
		errs = append(errs, &ValidationError{Field: "minSeverity", Message: err.Error()})
	}
	if !format.ValidFormat(c.Format) {
		errs = append(errs, &ValidationError{Field: "format", Message: fmt.Sprintf("unsupported format %q", c.Format)})
	}
	if c.Concurrency < 0 {
		errs = append(errs, &ValidationError{Field: "concurrency", Message: "must not be negative"})
	}
	if c.ChunkSize < 0 {
		errs = append(errs, &ValidationError{Field: "chunkSize", Message: "must not be negative"})
	}
	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, &ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)})
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, &ValidationError{Field: "log.format", Message: fmt.Sprintf("unknown format %q", c.Log.Format)})
	}

	return errors.Join(errs...)
}

// LintConfig converts the configuration into engine settings. Ignored
// attributes are normalized so that any spelling matches.
func (c *Config) LintConfig() (*lint.Config, error) {
	sev, err := lint.ParseSeverity(c.MinSeverity)
	if err != nil {
		return nil, &ValidationError{Field: "minSeverity", Message: err.Error()}
	}

	ignore := make(map[string]bool, len(c.IgnoreAttributes))
	for _, name := range c.IgnoreAttributes {
		if name = strings.TrimSpace(name); name != "" {
			ignore[attr.Normalize(name)] = true
		}
	}

	return &lint.Config{
		DisabledRules:    append([]string(nil), c.Disable...),
		MinSeverity:      sev,
		IgnoreAttributes: ignore,
		ChunkSize:        c.ChunkSize,
		Concurrency:      c.Concurrency,
	}, nil
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
