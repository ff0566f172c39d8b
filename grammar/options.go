package grammar

import "regexp"

var (
	optionsPattern = regexp.MustCompile(`^\s*([\s\S]+?)(?:\s+as\s+([\s\S]+?))?(?:\s+group\s+by\s+([\s\S]+?))?(?:\s+disable\s+when\s+([\s\S]+?))?\s+for\s+(?:([$\w][$\w]*)|(?:\(\s*([$\w][$\w]*)\s*,\s*([$\w][$\w]*)\s*\)))\s+in\s+([\s\S]+?)(?:\s+track\s+by\s+([\s\S]+?))?$`)
	asClause       = regexp.MustCompile(`\s+as\s+`)
	trackByClause  = regexp.MustCompile(`\s+track\s+by\s+`)
)

// Options is a parsed option-binding expression.
type Options struct {
	Select      string
	Label       string
	GroupBy     string
	DisableWhen string
	Key         string
	Value       string
	Collection  string
	TrackBy     string
}

// ParseOptions splits an option-binding expression into its clauses.
func ParseOptions(expr string) (*Options, *Error) {
	m := optionsPattern.FindStringSubmatch(expr)
	if m == nil {
		return nil, newError(KindSyntax, expr,
			"Expected expression in form of '_select_ (as _label_)? for (_key_,)?_value_ in _collection_' but got '%s'.", expr)
	}

	o := &Options{
		Select:      m[1],
		Label:       m[2],
		GroupBy:     m[3],
		DisableWhen: m[4],
		Collection:  m[8],
		TrackBy:     m[9],
	}
	if m[5] != "" {
		o.Value = m[5]
	} else {
		o.Key, o.Value = m[6], m[7]
	}
	return o, nil
}

// ValidateOptions checks an option-binding expression. Combining select as
// with track by is reported even when the expression otherwise parses.
func ValidateOptions(expr string) *Error {
	if loc := trackByClause.FindStringIndex(expr); loc != nil && asClause.MatchString(expr[:loc[0]]) {
		return newError(KindSelectAsTrackBy, expr,
			"select as and track by should not be used together in '%s'.", expr)
	}

	if _, err := ParseOptions(expr); err != nil {
		return err
	}
	return nil
}
