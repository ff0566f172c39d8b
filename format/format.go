// Package format renders lint results as text, JSON or YAML.
package format

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lex00/nghint/lint"
)

// DefaultTemplate renders one diagnostic per line.
const DefaultTemplate = "{file}:{line} [{type}] {message}"

// Failure records a file that could not be linted.
type Failure struct {
	File  string `json:"file" yaml:"file"`
	Error string `json:"error" yaml:"error"`
}

// Summary totals a run.
type Summary struct {
	Files       int `json:"files" yaml:"files"`
	lint.Counts `yaml:",inline"`
}

// Report is the serializable outcome of a lint run.
type Report struct {
	Diagnostics []lint.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	Failures    []Failure         `json:"failures,omitempty" yaml:"failures,omitempty"`
	Summary     Summary           `json:"summary" yaml:"summary"`
}

// NewReport merges per-file results, keeping file order.
func NewReport(results []lint.FileResult) *Report {
	r := &Report{Diagnostics: []lint.Diagnostic{}}
	for _, res := range results {
		r.Diagnostics = append(r.Diagnostics, res.Diagnostics...)
		if res.Err != nil {
			r.Failures = append(r.Failures, Failure{File: res.File, Error: res.Err.Error()})
		}
	}
	r.Summary = Summary{Files: len(results), Counts: lint.Count(r.Diagnostics)}
	return r
}

// Render fills the placeholders {file} {line} {type} {attrs} {message} and
// {rule} of template with d's fields.
func Render(d lint.Diagnostic, template string) string {
	if template == "" {
		template = DefaultTemplate
	}
	return strings.NewReplacer(
		"{file}", d.File,
		"{line}", strconv.Itoa(d.Line),
		"{type}", d.Severity.String(),
		"{attrs}", strings.Join(d.Attrs, ", "),
		"{message}", d.Message,
		"{rule}", d.Rule,
	).Replace(template)
}

// FormatReport formats a Report based on the requested output format.
// Supported formats: text, json, yaml. The template applies to text only.
func FormatReport(r *Report, format, template string) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		return formatJSON(r)
	case "yaml", "yml":
		return formatYAML(r)
	case "text", "":
		return formatText(r, template), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json, yaml)", format)
	}
}

// ValidFormat reports whether FormatReport supports format.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case "json", "yaml", "yml", "text", "":
		return true
	}
	return false
}

// formatJSON formats the Report as JSON.
func formatJSON(r *Report) (string, error) {
	bytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(bytes) + "\n", nil
}

// formatYAML formats the Report as YAML.
func formatYAML(r *Report) (string, error) {
	bytes, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(bytes), nil
}

// formatText renders each diagnostic with template, then failures and a
// summary line.
func formatText(r *Report, template string) string {
	var sb strings.Builder

	for _, d := range r.Diagnostics {
		sb.WriteString(Render(d, template))
		sb.WriteString("\n")
	}

	for _, f := range r.Failures {
		sb.WriteString(fmt.Sprintf("%s: %s\n", f.File, f.Error))
	}

	sb.WriteString(SummaryLine(r.Summary, len(r.Failures)))
	sb.WriteString("\n")
	return sb.String()
}

// SummaryLine describes the totals of a run in one line.
func SummaryLine(s Summary, failures int) string {
	files := plural(s.Files, "file", "files")
	if s.Errors+s.Warnings+s.Infos == 0 && failures == 0 {
		return fmt.Sprintf("✓ No problems found in %s", files)
	}

	line := fmt.Sprintf("✗ %s, %s, %s in %s",
		plural(s.Errors, "error", "errors"),
		plural(s.Warnings, "warning", "warnings"),
		plural(s.Infos, "info", "infos"),
		files)
	if failures > 0 {
		line += fmt.Sprintf(" (%s could not be read)", plural(failures, "file", "files"))
	}
	return line
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
