package rules

import (
	"github.com/lex00/nghint/attr"
	"github.com/lex00/nghint/directive"
	"github.com/lex00/nghint/lint"
)

// intersect calls fn once for every group of which the element carries two
// or more keys. present is in group order.
func intersect(ctx *lint.Context, groups [][]string, fn func(present []string)) {
	for _, group := range groups {
		var present []string
		for _, key := range group {
			if ctx.Has(key) {
				present = append(present, key)
			}
		}
		if len(present) >= 2 {
			fn(present)
		}
	}
}

// MutuallyExclusive reports directives that contradict each other.
func MutuallyExclusive() lint.Rule {
	return &rule{
		id:          IDMutuallyExclusive,
		description: "Directives that contradict each other are used on one element",
		check: func(ctx *lint.Context, sink *lint.Sink) {
			intersect(ctx, directive.Exclusive, func(present []string) {
				report(ctx, sink, IDMutuallyExclusive, lint.SeverityWarning, present,
					"%s should not be used together on the same element.", joinAnd(dashed(present)))
			})
		},
	}
}

// NativeDirectivePair reports a native attribute set next to the directive
// that replaces it.
func NativeDirectivePair() lint.Rule {
	return &rule{
		id:          IDNativeDirectivePair,
		description: "A native attribute is set alongside its directive counterpart",
		check: func(ctx *lint.Context, sink *lint.Sink) {
			intersect(ctx, directive.NativePairs, func(present []string) {
				native, dir := splitPair(present)
				report(ctx, sink, IDNativeDirectivePair, lint.SeverityWarning, present,
					"%s and %s should not be used together; the browser acts on %s before %s interpolates it. Use %s alone.",
					native, dir, native, dir, dir)
			})
		},
	}
}

// AliasPair reports a validation attribute set together with its alias.
func AliasPair() lint.Rule {
	return &rule{
		id:          IDAliasPair,
		description: "A validation attribute is set together with its directive alias",
		check: func(ctx *lint.Context, sink *lint.Sink) {
			intersect(ctx, directive.AliasPairs, func(present []string) {
				native, dir := splitPair(present)
				report(ctx, sink, IDAliasPair, lint.SeverityWarning, present,
					"%s and %s set the same validator; use only one of them.", native, dir)
			})
		},
	}
}

// splitPair returns the native spelling and the dashed directive of a pair.
func splitPair(present []string) (native, dir string) {
	for _, key := range present {
		if attr.IsDirective(key) {
			dir = attr.Denormalize(key)
		} else {
			native = key
		}
	}
	return native, dir
}
