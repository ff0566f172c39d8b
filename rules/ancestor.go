package rules

import (
	"github.com/lex00/nghint/attr"
	"github.com/lex00/nghint/directive"
	"github.com/lex00/nghint/lint"
	"github.com/lex00/nghint/tree"
)

// AncestorRequired reports directives used outside the directive they
// depend on.
func AncestorRequired() lint.Rule {
	return &rule{
		id:          IDAncestorRequired,
		description: "A directive is used outside the directive it requires",
		check: func(ctx *lint.Context, sink *lint.Sink) {
			tagKey := attr.Normalize(ctx.Tag())
			for _, req := range directive.Requirements {
				for _, key := range req.Keys {
					if !ctx.Has(key) && tagKey != key {
						continue
					}
					if req.Self && carries(ctx.Element, req.Parents) {
						continue
					}
					if hasAncestor(ctx, req.Parents) {
						continue
					}
					where := "inside"
					if req.Self {
						where = "on or inside"
					}
					report(ctx, sink, IDAncestorRequired, lint.SeverityWarning, []string{key},
						"%s must be used %s an element with %s.",
						attr.Denormalize(key), where, joinOr(dashed(req.Parents)))
				}
			}
		},
	}
}

// hasAncestor reports whether an enclosing element carries one of keys.
func hasAncestor(ctx *lint.Context, keys []string) bool {
	_, ok := ctx.Ancestor(func(e *tree.Element) bool {
		return carries(e, keys)
	})
	return ok
}

// carries reports whether e has one of keys as an attribute or as its
// element name.
func carries(e *tree.Element, keys []string) bool {
	tagKey := attr.Normalize(e.Tag)
	for _, k := range keys {
		if e.Has(k) || tagKey == k {
			return true
		}
	}
	return false
}
