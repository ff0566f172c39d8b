package lsp

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/lex00/nghint/attr"
	"github.com/lex00/nghint/directive"
	"github.com/lex00/nghint/lint"
	"github.com/lex00/nghint/suggest"
)

// SourceName tags every diagnostic produced here.
const SourceName = "nghint"

// Linter provides lint diagnostics for documents.
type Linter struct {
	Docs   *Documents
	Rules  []lint.Rule
	Config *lint.Config
}

// Diagnose lints the current text of uri.
func (l *Linter) Diagnose(ctx context.Context, uri string) ([]Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := l.Docs.Get(uri)
	if err != nil {
		return nil, err
	}
	name, err := Path(uri)
	if err != nil {
		return nil, err
	}

	diags, err := lint.LintBytes([]byte(text), name, l.Rules, l.Config)
	if err != nil {
		return nil, err
	}

	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, Convert(d, text))
	}
	return out, nil
}

// Convert maps a lint diagnostic onto document text. The range covers the
// first of the diagnostic's attributes found on its line, or else the line.
func Convert(d lint.Diagnostic, text string) Diagnostic {
	line := max(d.Line-1, 0)
	src := lineAt(text, line)

	start, end := attrSpan(src, d.Attrs)
	return Diagnostic{
		Range: Range{
			Start: Position{Line: line, Character: utf16Len(src[:start])},
			End:   Position{Line: line, Character: utf16Len(src[:end])},
		},
		Severity: severity(d.Severity),
		Code:     d.Rule,
		Source:   SourceName,
		Message:  d.Message,
	}
}

func severity(s lint.Severity) DiagnosticSeverity {
	switch s {
	case lint.SeverityError:
		return SeverityError
	case lint.SeverityWarning:
		return SeverityWarning
	default:
		return SeverityInformation
	}
}

// attrSpan locates the first attribute of keys on line, in any spelling.
// It falls back to the line without its indentation.
func attrSpan(line string, keys []string) (int, int) {
	lower := strings.ToLower(line)
	for _, key := range keys {
		for _, probe := range []string{attr.Denormalize(key), strings.ToLower(key)} {
			idx := strings.Index(lower, probe)
			if idx < 0 {
				continue
			}
			start, end := idx, idx+len(probe)
			for start > 0 && isNameByte(line[start-1]) {
				start--
			}
			for end < len(line) && isNameByte(line[end]) {
				end++
			}
			return start, end
		}
	}

	trimmed := strings.TrimLeft(line, " \t")
	return len(line) - len(trimmed), len(line)
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '-' || c == ':' || c == '_'
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// byteOffset converts a UTF-16 character offset on line to a byte offset.
func byteOffset(line string, char int) int {
	units := 0
	for i, r := range line {
		if units >= char {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(line)
}

// wordAt returns the bounds of the attribute name containing byte offset off.
func wordAt(line string, off int) (int, int) {
	start, end := off, off
	for start > 0 && isNameByte(line[start-1]) {
		start--
	}
	for end < len(line) && isNameByte(line[end]) {
		end++
	}
	return start, end
}

// splitPrefix separates a data- or x- prefix from a typed attribute name.
func splitPrefix(name string) (string, string) {
	lower := strings.ToLower(name)
	for _, p := range []string{"data-", "x-"} {
		if strings.HasPrefix(lower, p) {
			return name[:len(p)], name[len(p):]
		}
	}
	return "", name
}

// Completer offers directive names for the attribute being typed.
type Completer struct {
	Docs *Documents
}

// Complete returns the canonical directives matching the name before pos.
func (c *Completer) Complete(ctx context.Context, uri string, pos Position) ([]CompletionItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := c.Docs.Get(uri)
	if err != nil {
		return nil, err
	}

	line := lineAt(text, pos.Line)
	off := byteOffset(line, pos.Character)
	start, _ := wordAt(line, off)
	prefix, typed := splitPrefix(line[start:off])
	if typed == "" {
		return []CompletionItem{}, nil
	}

	names := suggest.Complete(typed, directive.Canonical)
	items := make([]CompletionItem, 0, len(names))
	for _, name := range names {
		items = append(items, CompletionItem{
			Label:      name,
			Kind:       CompletionKindProperty,
			Detail:     "directive",
			InsertText: prefix + name,
		})
	}
	return items, nil
}

// Explainer describes the directive under the cursor.
type Explainer struct {
	Docs *Documents
}

// Hover explains the directive at pos: its normalized key, a deprecation,
// or the closest known names for an unknown one.
func (h *Explainer) Hover(ctx context.Context, uri string, pos Position) (*Hover, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := h.Docs.Get(uri)
	if err != nil {
		return nil, err
	}

	line := lineAt(text, pos.Line)
	start, end := wordAt(line, byteOffset(line, pos.Character))
	if start == end {
		return nil, nil
	}
	contents := Explain(line[start:end])
	if contents == "" {
		return nil, nil
	}

	return &Hover{
		Contents: contents,
		Range: &Range{
			Start: Position{Line: pos.Line, Character: utf16Len(line[:start])},
			End:   Position{Line: pos.Line, Character: utf16Len(line[:end])},
		},
	}, nil
}

// Explain describes an attribute name: its normalized key, a deprecation,
// or the closest known names for an unknown directive. It returns "" when
// name is not a directive at all.
func Explain(name string) string {
	key := attr.Normalize(name)
	if !attr.IsDirective(key) {
		return ""
	}

	dashed := attr.Denormalize(key)
	switch {
	case directive.Deprecated[key] != "":
		return fmt.Sprintf("%s is deprecated; use %s.", dashed, attr.Denormalize(directive.Deprecated[key]))
	case directive.IsCanonical(dashed):
		return fmt.Sprintf("%s directive (normalized %s)", dashed, key)
	case isDynamic(key):
		return fmt.Sprintf("%s binds a dynamic target (normalized %s)", dashed, key)
	}

	contents := fmt.Sprintf("%s is not a known directive.", dashed)
	if s := suggest.Suggest(dashed, directive.Canonical); len(s) > 0 {
		contents += " Did you mean " + strings.Join(s, " or ") + "?"
	}
	return contents
}

func isDynamic(key string) bool {
	for _, p := range directive.DynamicPrefixes {
		if len(key) > len(p) && strings.HasPrefix(key, p) {
			r, _ := utf8.DecodeRuneInString(key[len(p):])
			if r >= 'A' && r <= 'Z' {
				return true
			}
		}
	}
	return false
}
