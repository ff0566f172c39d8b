package grammar

import (
	"regexp"

	"github.com/lex00/nghint/directive"
)

var (
	repeatPattern     = regexp.MustCompile(`^\s*([\s\S]+?)\s+in\s+([\s\S]+?)(?:\s+as\s+([\s\S]+?))?(?:\s+track\s+by\s+([\s\S]+?))?\s*$`)
	repeatLHSPattern  = regexp.MustCompile(`^(?:(\s*[$\w]+)|\(\s*([$\w]+)\s*,\s*([$\w]+)\s*\))$`)
	identifierPattern = regexp.MustCompile(`^[$a-zA-Z_][$a-zA-Z0-9_]*$`)
	trackByPattern    = regexp.MustCompile(`\s+track\s+by\s+`)
	trailingClause    = regexp.MustCompile(`\s+(?:as|track\s+by)\s+`)
)

// Repeat is a parsed iteration expression.
type Repeat struct {
	Item       string
	Key        string
	Value      string
	Collection string
	Alias      string
	TrackBy    string
}

// ParseRepeat splits an iteration expression of the form
// "item in collection [as alias] [track by id]" into its clauses.
func ParseRepeat(expr string) (*Repeat, *Error) {
	m := repeatPattern.FindStringSubmatch(expr)
	if m == nil {
		return nil, newError(KindSyntax, expr,
			"Expected expression in form of '_item_ in _collection_[ track by _id_]' but got '%s'.", expr)
	}

	r := &Repeat{Item: m[1], Collection: m[2], Alias: m[3], TrackBy: m[4]}

	lhs := repeatLHSPattern.FindStringSubmatch(r.Item)
	if lhs == nil {
		return nil, newError(KindLHS, r.Item,
			"'_item_' in '_item_ in _collection_' should be an identifier or '(_key_, _value_)' expression, but got '%s'.", r.Item)
	}
	if lhs[1] != "" {
		r.Value = lhs[1]
	} else {
		r.Key, r.Value = lhs[2], lhs[3]
	}

	return r, nil
}

// ValidateRepeat checks an iteration expression. It returns nil when the
// expression is well-formed.
func ValidateRepeat(expr string) *Error {
	r, err := ParseRepeat(expr)
	if err != nil {
		return err
	}

	if loc := trackByPattern.FindStringIndex(expr); loc != nil {
		if trailingClause.MatchString(expr[loc[1]:]) {
			return newError(KindTrackByLast, expr[loc[0]:],
				"track by must always be the last expression, but got '%s'.", expr)
		}
	}

	if r.Alias != "" && (!identifierPattern.MatchString(r.Alias) || directive.ReservedLoopNames[r.Alias]) {
		return newError(KindAlias, r.Alias,
			"alias '%s' is invalid --- must be a valid JS identifier which is not a reserved name.", r.Alias)
	}

	return nil
}
