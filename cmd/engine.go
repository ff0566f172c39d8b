package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lex00/nghint/config"
	"github.com/lex00/nghint/lint"
	"github.com/lex00/nghint/source"
)

// Engine lints with a rule registry and writes starter configurations.
type Engine struct {
	Registry *lint.Registry
	Walk     source.WalkOptions
}

// NewEngine returns an Engine over reg with the default walk options.
func NewEngine(reg *lint.Registry) *Engine {
	return &Engine{Registry: reg, Walk: source.DefaultWalkOptions}
}

// Lint expands the configured patterns and lints every file found. Pattern
// and configuration problems are returned before any file is read.
func (e *Engine) Lint(ctx context.Context, opts LintOptions) ([]lint.FileResult, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, config.ErrNoFiles
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lcfg, err := cfg.LintConfig()
	if err != nil {
		return nil, err
	}
	for _, id := range lcfg.DisabledRules {
		if !e.Registry.Known(id) && opts.Log != nil {
			opts.Log.Warn("unknown rule in disable list", "rule", id)
		}
	}

	paths, err := source.Expand(cfg.Files, e.Walk)
	if err != nil {
		return nil, err
	}

	return lint.LintFiles(ctx, paths, e.Registry.All(), lcfg, opts.Log), nil
}

// Init writes a default configuration to path. An existing file is only
// replaced when opts.Force is set.
func (e *Engine) Init(ctx context.Context, path string, opts InitOptions) error {
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg := config.Default()
	cfg.Files = opts.Files
	if len(cfg.Files) == 0 {
		cfg.Files = config.StringList{"."}
	}
	return cfg.SaveTo(path)
}
