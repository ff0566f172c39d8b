package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lex00/nghint/directive"
	"github.com/lex00/nghint/format"
	"github.com/lex00/nghint/lint"
	"github.com/lex00/nghint/logging"
	"github.com/lex00/nghint/lsp"
	"github.com/lex00/nghint/source"
	"github.com/lex00/nghint/suggest"
)

// Tool names.
const (
	ToolLintTemplate = "lint_template"
	ToolLintFiles    = "lint_files"
	ToolListRules    = "list_rules"
	ToolExplain      = "explain_directive"
	ToolComplete     = "complete_directive"
)

// defaultName labels diagnostics of a template passed inline.
const defaultName = "template.html"

var formatProperty = map[string]any{
	"type":        "string",
	"enum":        []string{"text", "json", "yaml"},
	"description": "Output format (default: text)",
}

// LintTemplateSchema is the JSON schema for the lint_template tool.
var LintTemplateSchema = objectSchema(map[string]any{
	"content": map[string]any{
		"type":        "string",
		"description": "Template markup to lint",
	},
	"name": map[string]any{
		"type":        "string",
		"description": "File name used in diagnostics (default: " + defaultName + ")",
	},
	"format": formatProperty,
}, "content")

// LintFilesSchema is the JSON schema for the lint_files tool.
var LintFilesSchema = objectSchema(map[string]any{
	"patterns": map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": "Files, directories or glob patterns to lint",
	},
	"format": formatProperty,
}, "patterns")

// ExplainSchema is the JSON schema for the explain_directive tool.
var ExplainSchema = objectSchema(map[string]any{
	"name": map[string]any{
		"type":        "string",
		"description": "Attribute name in any spelling, e.g. data-ng-click",
	},
}, "name")

// CompleteSchema is the JSON schema for the complete_directive tool.
var CompleteSchema = objectSchema(map[string]any{
	"prefix": map[string]any{
		"type":        "string",
		"description": "Beginning of a dashed directive name, e.g. ng-cl",
	},
}, "prefix")

func objectSchema(properties map[string]any, required ...string) map[string]any {
	if properties == nil {
		properties = map[string]any{}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Linter holds what the lint tools need.
type Linter struct {
	Registry *lint.Registry
	Config   *lint.Config
	Walk     source.WalkOptions
	Log      *logging.Logger
}

// RegisterTools adds the nghint tool set to s.
func RegisterTools(s *Server, l *Linter) {
	s.RegisterTool(ToolLintTemplate, "Lint AngularJS directives in a template passed as text", l.lintTemplate, LintTemplateSchema)
	s.RegisterTool(ToolLintFiles, "Lint AngularJS directives in template files", l.lintFiles, LintFilesSchema)
	s.RegisterTool(ToolListRules, "List the lint rules as JSON", l.listRules, nil)
	s.RegisterTool(ToolExplain, "Explain a directive attribute name", explain, ExplainSchema)
	s.RegisterTool(ToolComplete, "List known directives matching a prefix", complete, CompleteSchema)
}

func (l *Linter) lintTemplate(ctx context.Context, args map[string]any) (string, error) {
	content, err := stringArg(args, "content", "")
	if err != nil {
		return "", err
	}
	name, err := stringArg(args, "name", defaultName)
	if err != nil {
		return "", err
	}
	outputFormat, err := stringArg(args, "format", "text")
	if err != nil {
		return "", err
	}

	diags, err := lint.LintBytes([]byte(content), name, l.Registry.All(), l.Config)
	results := []lint.FileResult{{File: name, Diagnostics: diags, Err: err}}
	return format.FormatReport(format.NewReport(results), outputFormat, "")
}

func (l *Linter) lintFiles(ctx context.Context, args map[string]any) (string, error) {
	patterns, err := stringsArg(args, "patterns")
	if err != nil {
		return "", err
	}
	outputFormat, err := stringArg(args, "format", "text")
	if err != nil {
		return "", err
	}
	if !format.ValidFormat(outputFormat) {
		return "", fmt.Errorf("unsupported format: %s", outputFormat)
	}

	paths, err := source.Expand(patterns, l.Walk)
	if err != nil {
		return "", err
	}
	results := lint.LintFiles(ctx, paths, l.Registry.All(), l.Config, l.Log)
	return format.FormatReport(format.NewReport(results), outputFormat, "")
}

func (l *Linter) listRules(ctx context.Context, args map[string]any) (string, error) {
	out, err := json.MarshalIndent(l.Registry.Describe(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func explain(ctx context.Context, args map[string]any) (string, error) {
	name, err := stringArg(args, "name", "")
	if err != nil {
		return "", err
	}
	text := lsp.Explain(name)
	if text == "" {
		return "", fmt.Errorf("%s is not a directive attribute", name)
	}
	return text, nil
}

func complete(ctx context.Context, args map[string]any) (string, error) {
	prefix, err := stringArg(args, "prefix", "")
	if err != nil {
		return "", err
	}
	return strings.Join(suggest.Complete(prefix, directive.Canonical), "\n"), nil
}

// stringArg reads a string argument. An empty def makes it required.
func stringArg(args map[string]any, key, def string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		if def == "" {
			return "", fmt.Errorf("missing argument %q", key)
		}
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", key)
	}
	return s, nil
}

func stringsArg(args map[string]any, key string) ([]string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("missing argument %q", key)
	}
	switch v := v.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("argument %q must be a list of strings", key)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("argument %q must be a list of strings", key)
}
