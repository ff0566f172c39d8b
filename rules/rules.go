// Package rules implements the directive rule catalogue.
//
// Every rule is a pure function of one element's lint.Context: it reads the
// element's attributes and ancestors and reports into the sink it is given.
// Rules never fail and never see each other's diagnostics.
package rules

import (
	"fmt"
	"strings"

	"github.com/lex00/nghint/attr"
	"github.com/lex00/nghint/lint"
)

// Rule IDs, in registration order.
const (
	IDMutuallyExclusive   = "mutually-exclusive"
	IDNativeDirectivePair = "native-directive-pair"
	IDAliasPair           = "alias-pair"
	IDDuplicateAttribute  = "duplicate-attribute"
	IDDeprecatedDirective = "deprecated-directive"
	IDPasswordTrim        = "password-trim"
	IDInitWithoutRepeat   = "init-without-repeat"
	IDHrefWithClick       = "href-with-click"
	IDSubmitOutsideForm   = "submit-outside-form"
	IDRepeatSyntax        = "repeat-syntax"
	IDOptionsSyntax       = "options-syntax"
	IDAncestorRequired    = "ancestor-required"
	IDAttributes          = "attributes"
)

// Sub-rule IDs reported by the attributes rule.
const (
	IDEmptyAttribute   = "empty-attribute"
	IDLegacySpelling   = "legacy-spelling"
	IDNativeEvent      = "native-event"
	IDAttributeVariant = "attribute-variant"
	IDTypo             = "typo"
)

// rule adapts a check function to lint.Rule.
type rule struct {
	id          string
	description string
	check       func(ctx *lint.Context, sink *lint.Sink)
}

func (r *rule) ID() string          { return r.id }
func (r *rule) Description() string { return r.description }

func (r *rule) Check(ctx *lint.Context, sink *lint.Sink) {
	r.check(ctx, sink)
}

// All returns a fresh copy of every rule in registration order.
func All() []lint.Rule {
	return []lint.Rule{
		MutuallyExclusive(),
		NativeDirectivePair(),
		AliasPair(),
		DuplicateAttribute(),
		DeprecatedDirective(),
		PasswordTrim(),
		InitWithoutRepeat(),
		HrefWithClick(),
		SubmitOutsideForm(),
		RepeatSyntax(),
		OptionsSyntax(),
		AncestorRequired(),
		Attributes(),
	}
}

// Default returns a registry holding every rule.
func Default() *lint.Registry {
	return lint.NewRegistry(All()...)
}

func report(ctx *lint.Context, sink *lint.Sink, id string, sev lint.Severity, attrs []string, format string, args ...any) {
	ctx.Report(sink, lint.Diagnostic{
		Rule:     id,
		Severity: sev,
		Attrs:    attrs,
		Message:  fmt.Sprintf(format, args...),
	})
}

// dashed renders keys in their dashed spelling.
func dashed(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = attr.Denormalize(k)
	}
	return out
}

// joinAnd joins names as "a, b and c".
func joinAnd(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// joinOr joins names as "a, b or c".
func joinOr(names []string) string {
	if len(names) < 2 {
		return joinAnd(names)
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
