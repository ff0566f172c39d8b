// Package suggest proposes canonical directive names for misspelled or
// partially typed ones.
package suggest

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	maxLengthDelta = 3
	maxDistance    = 3
	overlapRatio   = 0.75
)

// Suggest returns every entry of list that is a plausible correction of
// name, in list order. A candidate qualifies when its length is within
// three of name, more than three quarters of the candidate's characters also
// occur somewhere in name, and their edit distance is at most three.
func Suggest(name string, list []string) []string {
	var out []string
	for _, c := range list {
		if c == name {
			continue
		}
		if abs(len(c)-len(name)) > maxLengthDelta {
			continue
		}
		if float64(sharedChars(name, c)) <= float64(len(c))*overlapRatio {
			continue
		}
		if fuzzy.LevenshteinDistance(name, c) > maxDistance {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Complete returns the entries of list that fuzzily contain prefix,
// ignoring case. Entries that start with prefix come first.
func Complete(prefix string, list []string) []string {
	if prefix == "" {
		return append([]string(nil), list...)
	}

	var head, tail []string
	for _, c := range fuzzy.FindFold(prefix, list) {
		if hasPrefixFold(c, prefix) {
			head = append(head, c)
		} else {
			tail = append(tail, c)
		}
	}
	return append(head, tail...)
}

// sharedChars counts the characters of b, repeats included, that occur in a.
func sharedChars(a, b string) int {
	seen := make(map[rune]bool, len(a))
	for _, r := range a {
		seen[r] = true
	}
	n := 0
	for _, r := range b {
		if seen[r] {
			n++
		}
	}
	return n
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
