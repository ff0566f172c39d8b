package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lex00/nghint/attr"
	"github.com/lex00/nghint/directive"
	"github.com/lex00/nghint/lint"
	"github.com/lex00/nghint/suggest"
)

const attrPrefix = "ngAttr"

// attributeCheck inspects one attribute key of an element.
type attributeCheck struct {
	info  lint.RuleInfo
	check func(ctx *lint.Context, sink *lint.Sink, key string)
}

// attributesRule walks the element's keys once, running every attribute
// check on each key.
type attributesRule struct {
	checks []attributeCheck
}

// Attributes returns the rule running the per-attribute checks: empty
// values, legacy spellings, native event handlers, ng-attr variants and
// typos. Each check reports under its own ID.
func Attributes() lint.Rule {
	return &attributesRule{
		checks: []attributeCheck{
			{lint.RuleInfo{ID: IDEmptyAttribute, Description: "A directive has an empty value"}, checkEmpty},
			{lint.RuleInfo{ID: IDLegacySpelling, Description: "A directive uses the x- prefix or ':' / '_' separators"}, checkLegacy},
			{lint.RuleInfo{ID: IDNativeEvent, Description: "A native event handler is used instead of its directive"}, checkNativeEvent},
			{lint.RuleInfo{ID: IDAttributeVariant, Description: "An ng-attr- binding duplicates or replaces a directive"}, checkVariant},
			{lint.RuleInfo{ID: IDTypo, Description: "An unknown directive looks like a misspelling"}, checkTypo},
		},
	}
}

func (r *attributesRule) ID() string { return IDAttributes }

func (r *attributesRule) Description() string {
	return "Per-attribute checks over every attribute of an element"
}

func (r *attributesRule) SubRules() []lint.RuleInfo {
	infos := make([]lint.RuleInfo, len(r.checks))
	for i, c := range r.checks {
		infos[i] = c.info
	}
	return infos
}

func (r *attributesRule) Check(ctx *lint.Context, sink *lint.Sink) {
	for _, key := range ctx.Keys() {
		for _, c := range r.checks {
			c.check(ctx, sink, key)
		}
	}
}

func checkEmpty(ctx *lint.Context, sink *lint.Sink, key string) {
	if !attr.IsDirective(key) || directive.AllowedEmpty[key] || ctx.Ignored(key) {
		return
	}
	if v, _ := ctx.Value(key); v != "" {
		return
	}
	report(ctx, sink, IDEmptyAttribute, lint.SeverityWarning, []string{key},
		"%s has an empty value.", attr.Denormalize(key))
}

func checkLegacy(ctx *lint.Context, sink *lint.Sink, key string) {
	raw := ctx.RawName(key)
	if !attr.IsDirective(key) || !attr.IsLegacy(raw) {
		return
	}
	want := attr.Denormalize(key)
	ctx.Report(sink, lint.Diagnostic{
		Rule:        IDLegacySpelling,
		Severity:    lint.SeverityInfo,
		Attrs:       []string{raw},
		Message:     "Use the dashed spelling " + want + " instead of " + raw + ".",
		Suggestions: []string{want},
	})
}

func checkNativeEvent(ctx *lint.Context, sink *lint.Sink, key string) {
	dir, ok := directive.Events[key]
	if !ok || ctx.Has(dir) {
		return
	}
	want := attr.Denormalize(dir)
	ctx.Report(sink, lint.Diagnostic{
		Rule:        IDNativeEvent,
		Severity:    lint.SeverityWarning,
		Attrs:       []string{ctx.RawName(key)},
		Message:     ctx.RawName(key) + " runs outside the framework; use " + want + " instead.",
		Suggestions: []string{want},
	})
}

func checkVariant(ctx *lint.Context, sink *lint.Sink, key string) {
	native, ok := variantTarget(key)
	if !ok {
		return
	}

	if ctx.Has(native) {
		report(ctx, sink, IDAttributeVariant, lint.SeverityWarning, []string{key, native},
			"%s and %s are both set; the interpolated value overwrites the native one.",
			attr.Denormalize(key), attr.Denormalize(native))
		return
	}

	want := "ng-" + attr.Denormalize(native)
	if !directive.IsCanonical(want) {
		return
	}
	ctx.Report(sink, lint.Diagnostic{
		Rule:        IDAttributeVariant,
		Severity:    lint.SeverityInfo,
		Attrs:       []string{key},
		Message:     "Use " + want + " instead of " + attr.Denormalize(key) + ".",
		Suggestions: []string{want},
	})
}

// variantTarget returns the native attribute key bound by an ng-attr- key,
// e.g. ngAttrAriaLabel binds ariaLabel.
func variantTarget(key string) (string, bool) {
	if !strings.HasPrefix(key, attrPrefix) || len(key) == len(attrPrefix) {
		return "", false
	}
	rest := key[len(attrPrefix):]
	r, size := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(r) {
		return "", false
	}
	return string(unicode.ToLower(r)) + rest[size:], true
}

func checkTypo(ctx *lint.Context, sink *lint.Sink, key string) {
	if !attr.IsDirective(key) || isDynamic(key) {
		return
	}
	if _, deprecated := directive.Deprecated[key]; deprecated {
		return
	}
	name := attr.Denormalize(key)
	if directive.IsCanonical(name) {
		return
	}
	candidates := suggest.Suggest(name, directive.Canonical)
	if len(candidates) == 0 {
		return
	}
	ctx.Report(sink, lint.Diagnostic{
		Rule:        IDTypo,
		Severity:    lint.SeverityInfo,
		Attrs:       []string{key},
		Message:     name + " is not a known directive. Did you mean " + joinOr(candidates) + "?",
		Suggestions: candidates,
	})
}

func isDynamic(key string) bool {
	for _, p := range directive.DynamicPrefixes {
		if strings.HasPrefix(key, p) && len(key) > len(p) {
			r, _ := utf8.DecodeRuneInString(key[len(p):])
			if unicode.IsUpper(r) {
				return true
			}
		}
	}
	return false
}
