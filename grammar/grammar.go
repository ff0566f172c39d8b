// Package grammar checks the shape of the iteration and option-binding
// mini-languages. The checks are structural: expressions inside the clauses
// are never evaluated.
package grammar

import "fmt"

// Kind identifies which structural check failed.
type Kind string

const (
	// KindSyntax means the outer pattern did not match.
	KindSyntax Kind = "syntax"
	// KindLHS means the repeat item was neither an identifier nor a (key, value) pair.
	KindLHS Kind = "lhs"
	// KindTrackByLast means a track by clause is followed by another clause.
	KindTrackByLast Kind = "track-by-last"
	// KindAlias means the repeat alias is not a usable identifier.
	KindAlias Kind = "alias"
	// KindSelectAsTrackBy means select as and track by are combined.
	KindSelectAsTrackBy Kind = "select-as-track-by"
)

// Error describes why an expression was rejected.
type Error struct {
	Kind Kind
	// Text is the offending fragment, quoted verbatim in the message.
	Text    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, text, format string, args ...any) *Error {
	return &Error{Kind: kind, Text: text, Message: fmt.Sprintf(format, args...)}
}
