// Package attr converts raw markup attribute names into directive keys and back.
//
// A directive can be spelled several ways in markup: ng-repeat, data-ng-repeat,
// x-ng-repeat, ng:repeat and ng_repeat all refer to the same directive. Normalize
// maps every spelling to one camel-case key (ngRepeat) so rules can compare
// attributes without caring how they were written.
package attr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Namespaces lists the directive prefixes recognized by IsDirective.
var Namespaces = []string{"ng"}

// Normalize returns the directive key for a raw attribute name.
func Normalize(raw string) string {
	return camelCase(stripPrefix(raw))
}

// stripPrefix removes a leading x- or data- prefix (any separator, any case).
func stripPrefix(name string) string {
	for _, p := range []string{"data", "x"} {
		if len(name) > len(p) && strings.EqualFold(name[:len(p)], p) && isSeparator(name[len(p)]) {
			return name[len(p)+1:]
		}
	}
	return name
}

func isSeparator(c byte) bool {
	return c == ':' || c == '-' || c == '_'
}

// camelCase folds every separator run followed by a character into that
// character, upper-cased unless the run starts the string.
func camelCase(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))

	for i := 0; i < len(name); {
		if !isSeparator(name[i]) {
			sb.WriteByte(name[i])
			i++
			continue
		}

		start := i
		for i < len(name) && isSeparator(name[i]) {
			i++
		}

		if i == len(name) {
			// A trailing run has no character to fold into; the last
			// separator plays that role when the run is longer than one.
			if i-start > 1 {
				writeFolded(&sb, string(name[i-1]), start)
			} else {
				sb.WriteByte(name[start])
			}
			break
		}

		r, size := utf8.DecodeRuneInString(name[i:])
		writeFolded(&sb, string(r), start)
		i += size
	}

	return mozHack(sb.String())
}

func writeFolded(sb *strings.Builder, s string, offset int) {
	if offset == 0 {
		sb.WriteString(s)
		return
	}
	sb.WriteString(strings.ToUpper(s))
}

// mozHack rewrites a leading "moz" followed by an upper-case letter to "Moz".
func mozHack(name string) string {
	if len(name) > 3 && strings.HasPrefix(name, "moz") {
		r, _ := utf8.DecodeRuneInString(name[3:])
		if unicode.IsUpper(r) {
			return "Moz" + name[3:]
		}
	}
	return name
}

// Denormalize renders a directive key in its canonical dashed form.
// It is a lossy inverse of Normalize: ngRepeat becomes ng-repeat regardless of
// how the attribute was originally spelled.
func Denormalize(key string) string {
	var sb strings.Builder
	sb.Grow(len(key) + 4)
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// IsLegacy reports whether a raw name uses an x- prefix or the ':' / '_'
// separators instead of the dashed spelling.
func IsLegacy(raw string) bool {
	if len(raw) > 2 && (raw[0] == 'x' || raw[0] == 'X') && isSeparator(raw[1]) {
		return true
	}
	return strings.ContainsAny(raw, ":_")
}

// IsDirective reports whether a normalized key belongs to a directive
// namespace, i.e. it is a namespace prefix followed by an upper-case letter.
func IsDirective(key string) bool {
	for _, ns := range Namespaces {
		if len(key) <= len(ns) || !strings.HasPrefix(key, ns) {
			continue
		}
		r, _ := utf8.DecodeRuneInString(key[len(ns):])
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
