// Package lint runs directive rules over markup element trees.
package lint

import (
	"fmt"
	"slices"
	"strings"
)

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	// SeverityError indicates markup that will misbehave at runtime.
	SeverityError Severity = iota
	// SeverityWarning indicates a likely mistake that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates a suggestion or informational message.
	SeverityInfo
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a severity name to a Severity.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(name) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Diagnostic is a single finding reported by a rule.
type Diagnostic struct {
	// Rule is the identifier of the rule that emitted the diagnostic.
	Rule string `json:"rule" yaml:"rule"`
	// File is the path of the source unit.
	File string `json:"file" yaml:"file"`
	// Line is the 1-based line of the element's opening tag.
	Line int `json:"line" yaml:"line"`
	// Severity is set by the emitting rule.
	Severity Severity `json:"severity" yaml:"severity"`
	// Attrs lists the implicated attribute keys or raw names.
	Attrs []string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	// Message describes the finding.
	Message string `json:"message" yaml:"message"`
	// Suggestions lists replacement spellings, when the rule has any.
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// Config controls linting behavior.
type Config struct {
	// DisabledRules is a list of rule IDs to skip. Sub-rule IDs are accepted.
	DisabledRules []string
	// MinSeverity is the minimum severity level to report.
	// Diagnostics with lower severity will be filtered out.
	MinSeverity Severity
	// IgnoreAttributes holds normalized keys exempt from the empty-attribute
	// check. It has no effect on any other rule.
	IgnoreAttributes map[string]bool
	// ChunkSize is the read size used when loading files.
	ChunkSize int
	// Concurrency bounds how many files are linted at once.
	Concurrency int
}

// DefaultConfig reports every severity and disables nothing.
func DefaultConfig() *Config {
	return &Config{MinSeverity: SeverityInfo}
}

// IsRuleDisabled returns true if the given rule ID is disabled.
func (c *Config) IsRuleDisabled(ruleID string) bool {
	return slices.Contains(c.DisabledRules, ruleID)
}

// IsIgnored reports whether key is exempt from the empty-attribute check.
func (c *Config) IsIgnored(key string) bool {
	return c != nil && c.IgnoreAttributes[key]
}

// ShouldReport returns true if the diagnostic should be reported based on config.
func (c *Config) ShouldReport(d Diagnostic) bool {
	if c.IsRuleDisabled(d.Rule) {
		return false
	}
	// Lower severity value means higher priority (Error=0 is most severe)
	return d.Severity <= c.MinSeverity
}

// Sink accumulates diagnostics in emission order.
type Sink struct {
	diags []Diagnostic
}

// Add appends a diagnostic.
func (s *Sink) Add(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// Len returns the number of diagnostics collected.
func (s *Sink) Len() int {
	return len(s.diags)
}

// Diagnostics returns the collected diagnostics.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diags
}

// Counts tallies diagnostics by severity.
type Counts struct {
	Errors   int `json:"errors" yaml:"errors"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Infos    int `json:"infos" yaml:"infos"`
}

// Count tallies diags by severity.
func Count(diags []Diagnostic) Counts {
	var c Counts
	for _, d := range diags {
		switch d.Severity {
		case SeverityError:
			c.Errors++
		case SeverityWarning:
			c.Warnings++
		default:
			c.Infos++
		}
	}
	return c
}
