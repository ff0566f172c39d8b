package rules

import (
	"strings"

	"github.com/lex00/nghint/attr"
	"github.com/lex00/nghint/directive"
	"github.com/lex00/nghint/lint"
)

// DuplicateAttribute reports attributes declared more than once, in any
// spelling.
func DuplicateAttribute() lint.Rule {
	return &rule{
		id:          IDDuplicateAttribute,
		description: "An attribute is declared more than once on one element",
		check: func(ctx *lint.Context, sink *lint.Sink) {
			dups := ctx.Duplicates()
			if len(dups) == 0 {
				return
			}
			for _, key := range ctx.Keys() {
				if _, ok := dups[key]; !ok {
					continue
				}
				report(ctx, sink, IDDuplicateAttribute, lint.SeverityError, []string{key},
					"Attribute %s is declared more than once (%s); only the first value is used.",
					attr.Denormalize(key), strings.Join(spellings(ctx, key), ", "))
			}
		},
	}
}

// spellings lists the raw names that normalize to key, in order.
func spellings(ctx *lint.Context, key string) []string {
	var names []string
	for _, a := range ctx.Raw() {
		if attr.Normalize(a.Name) == key {
			names = append(names, a.Name)
		}
	}
	return names
}

// DeprecatedDirective reports directives removed from the framework.
func DeprecatedDirective() lint.Rule {
	return &rule{
		id:          IDDeprecatedDirective,
		description: "A removed directive is used",
		check: func(ctx *lint.Context, sink *lint.Sink) {
			for _, key := range ctx.Keys() {
				repl, ok := directive.Deprecated[key]
				if !ok {
					continue
				}
				ctx.Report(sink, lint.Diagnostic{
					Rule:        IDDeprecatedDirective,
					Severity:    lint.SeverityWarning,
					Attrs:       []string{key},
					Message:     attr.Denormalize(key) + " is deprecated; use " + attr.Denormalize(repl) + " instead.",
					Suggestions: []string{attr.Denormalize(repl)},
				})
			}
		},
	}
}

// PasswordTrim reports ng-trim on password inputs, which are never trimmed.
func PasswordTrim() lint.Rule {
	return &rule{
		id:          IDPasswordTrim,
		description: "ng-trim is set on a password input",
		check: func(ctx *lint.Context, sink *lint.Sink) {
			if !ctx.Has("ngTrim") || ctx.Tag() != "input" {
				return
			}
			if typ, _ := ctx.Value("type"); !strings.EqualFold(strings.TrimSpace(typ), "password") {
				return
			}
			report(ctx, sink, IDPasswordTrim, lint.SeverityWarning, []string{"ngTrim"},
				"ng-trim has no effect on input[type=password]; password values are never trimmed.")
		},
	}
}

// InitWithoutRepeat reports ng-init outside of ng-repeat.
func InitWithoutRepeat() lint.Rule {
	return &rule{
		id:          IDInitWithoutRepeat,
		description: "ng-init is used without ng-repeat on the same element",
		check: func(ctx *lint.Context, sink *lint.Sink) {
			if !ctx.Has("ngInit") || ctx.Has("ngRepeat") || ctx.Has("ngRepeatStart") {
				return
			}
			report(ctx, sink, IDInitWithoutRepeat, lint.SeverityWarning, []string{"ngInit"},
				"ng-init should only alias special properties of ng-repeat; initialize scope values in a controller instead.")
		},
	}
}

// HrefWithClick reports click handlers on elements that also navigate.
func HrefWithClick() lint.Rule {
	return &rule{
		id:          IDHrefWithClick,
		description: "ng-click is used on an element with a non-empty href",
		check: func(ctx *lint.Context, sink *lint.Sink) {
			if !ctx.Has("ngClick") {
				return
			}
			for _, key := range []string{"href", "ngHref"} {
				if v, ok := ctx.Value(key); ok && strings.TrimSpace(v) != "" {
					report(ctx, sink, IDHrefWithClick, lint.SeverityWarning, []string{key, "ngClick"},
						"ng-click on an element with a non-empty %s also follows the link; remove %s or use a button.",
						attr.Denormalize(key), attr.Denormalize(key))
					return
				}
			}
		},
	}
}

// SubmitOutsideForm reports ng-submit on anything but a form.
func SubmitOutsideForm() lint.Rule {
	return &rule{
		id:          IDSubmitOutsideForm,
		description: "ng-submit is used on an element that is not a form",
		check: func(ctx *lint.Context, sink *lint.Sink) {
			if !ctx.Has("ngSubmit") || ctx.Tag() == "form" {
				return
			}
			report(ctx, sink, IDSubmitOutsideForm, lint.SeverityWarning, []string{"ngSubmit"},
				"ng-submit only fires on form elements, but it is used on <%s>.", ctx.Tag())
		},
	}
}
