package lint

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lex00/nghint/logging"
	"github.com/lex00/nghint/markup"
	"github.com/lex00/nghint/source"
	"github.com/lex00/nghint/tree"
)

// FileResult is the outcome of linting one source unit. A failed unit keeps
// its identity and whatever diagnostics were produced before the failure.
type FileResult struct {
	File        string
	Diagnostics []Diagnostic
	Err         error
}

// analyzer feeds markup events into a tree builder and runs every rule each
// time an element opens.
type analyzer struct {
	builder *tree.Builder
	rules   []Rule
	cfg     *Config
	sink    Sink
}

func (a *analyzer) Attribute(name, value string) {
	a.builder.Attribute(name, value)
}

func (a *analyzer) Open(tag string, line int) {
	el := a.builder.Open(tag, line)
	ctx := &Context{Tree: a.builder.Tree(), Element: el, Config: a.cfg}

	for _, rule := range a.rules {
		if a.cfg != nil && a.cfg.IsRuleDisabled(rule.ID()) {
			continue
		}

		var emitted Sink
		rule.Check(ctx, &emitted)
		for _, d := range emitted.Diagnostics() {
			if d.Rule == "" {
				d.Rule = rule.ID()
			}
			// Filter by config
			if a.cfg != nil && !a.cfg.ShouldReport(d) {
				continue
			}
			a.sink.Add(d)
		}
	}
}

func (a *analyzer) Close(tag string) {
	a.builder.Close(tag)
}

// LintAnnotated lints location-tagged markup read from r. Elements without a
// location marker are attributed to file at the tokenizer's line.
func LintAnnotated(file string, r io.Reader, rules []Rule, cfg *Config) (diags []Diagnostic, err error) {
	a := &analyzer{
		builder: tree.NewBuilder(file),
		rules:   rules,
		cfg:     cfg,
	}

	defer func() {
		if p := recover(); p != nil {
			diags = a.sink.Diagnostics()
			err = fmt.Errorf("linting %s: %v", file, p)
		}
	}()

	if err := markup.Parse(r, a); err != nil {
		return a.sink.Diagnostics(), fmt.Errorf("parsing %s: %w", file, err)
	}
	return a.sink.Diagnostics(), nil
}

// LintBytes lints untagged source code. The filename is used for diagnostic
// reporting.
func LintBytes(src []byte, filename string, rules []Rule, cfg *Config) ([]Diagnostic, error) {
	return LintAnnotated(filename, bytes.NewReader(source.Annotate(filename, src)), rules, cfg)
}

// LintFile lints a single file with the given rules and config.
func LintFile(path string, rules []Rule, cfg *Config) ([]Diagnostic, error) {
	chunk := 0
	if cfg != nil {
		chunk = cfg.ChunkSize
	}

	src, err := source.ReadFile(path, chunk)
	if err != nil {
		return nil, err
	}
	return LintAnnotated(path, bytes.NewReader(src), rules, cfg)
}

// LintFiles lints paths concurrently and returns one result per path, in
// input order. A failing unit never affects the others.
func LintFiles(ctx context.Context, paths []string, rules []Rule, cfg *Config, log *logging.Logger) []FileResult {
	if log == nil {
		log = logging.Discard()
	}
	log = log.WithComponent("lint")

	limit := runtime.GOMAXPROCS(0)
	if cfg != nil && cfg.Concurrency > 0 {
		limit = cfg.Concurrency
	}

	results := make([]FileResult, len(paths))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = FileResult{File: path}
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			diags, err := LintFile(path, rules, cfg)
			results[i].Diagnostics = diags
			results[i].Err = err

			if err != nil {
				log.WithFile(path).WithError(err).Warn("lint failed")
				return nil
			}
			log.WithFile(path).Debug("linted", "diagnostics", len(diags))
			return nil
		})
	}
	// Workers never return errors; failures are kept per result.
	_ = g.Wait()

	return results
}

// LintDir lints every markup file under dir.
func LintDir(ctx context.Context, dir string, rules []Rule, cfg *Config, log *logging.Logger) ([]FileResult, error) {
	paths, err := source.Expand([]string{dir}, source.DefaultWalkOptions)
	if err != nil {
		return nil, err
	}
	return LintFiles(ctx, paths, rules, cfg, log), nil
}

// Diagnostics concatenates the diagnostics of results in order.
func Diagnostics(results []FileResult) []Diagnostic {
	var all []Diagnostic
	for _, r := range results {
		all = append(all, r.Diagnostics...)
	}
	return all
}
