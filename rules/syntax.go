package rules

import (
	"github.com/lex00/nghint/grammar"
	"github.com/lex00/nghint/lint"
)

// RepeatSyntax validates ng-repeat and ng-repeat-start expressions.
func RepeatSyntax() lint.Rule {
	return &rule{
		id:          IDRepeatSyntax,
		description: "An ng-repeat expression is malformed",
		check: func(ctx *lint.Context, sink *lint.Sink) {
			for _, key := range []string{"ngRepeat", "ngRepeatStart"} {
				v, ok := ctx.Value(key)
				if !ok {
					continue
				}
				if err := grammar.ValidateRepeat(v); err != nil {
					report(ctx, sink, IDRepeatSyntax, lint.SeverityError, []string{key}, "%s", err.Message)
				}
			}
		},
	}
}

// OptionsSyntax validates ng-options expressions.
func OptionsSyntax() lint.Rule {
	return &rule{
		id:          IDOptionsSyntax,
		description: "An ng-options expression is malformed",
		check: func(ctx *lint.Context, sink *lint.Sink) {
			v, ok := ctx.Value("ngOptions")
			if !ok {
				return
			}
			if err := grammar.ValidateOptions(v); err != nil {
				report(ctx, sink, IDOptionsSyntax, lint.SeverityError, []string{"ngOptions"}, "%s", err.Message)
			}
		},
	}
}
