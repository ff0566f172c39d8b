// Package markup turns template text into tag events.
//
// Tokens come from the golang.org/x/net/html tokenizer. No HTML5 tree
// construction is attempted: tags are reported as written, except that void
// and self-closing elements get an immediate close so they never become
// parents of their siblings.
package markup

import (
	"bytes"
	"errors"
	"io"

	"golang.org/x/net/html"
)

// Handler receives events in document order. Attribute calls for an element
// precede its Open call.
type Handler interface {
	Attribute(name, value string)
	Open(tag string, line int)
	Close(tag string)
}

// voidElements never have content or an end tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// markupBodies are elements the tokenizer would read as raw text but whose
// contents are scanned as markup. Only script, style, textarea and title
// bodies stay raw.
var markupBodies = map[string]bool{
	"iframe":    true,
	"noembed":   true,
	"noframes":  true,
	"noscript":  true,
	"plaintext": true,
	"xmp":       true,
}

// IsVoid reports whether tag is an HTML void element.
func IsVoid(tag string) bool {
	return voidElements[tag]
}

// Parse tokenizes r and drives h until EOF. Input may arrive from r in pieces
// of any size. The only error returned is a read error from r; malformed
// markup is tolerated.
func Parse(r io.Reader, h Handler) error {
	z := html.NewTokenizer(r)
	line := 1

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return err
			}
			return nil
		}

		// Raw must be read before TagName, which lower-cases in place.
		start := line
		line += bytes.Count(z.Raw(), []byte{'\n'})

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				h.Attribute(string(key), string(val))
			}
			h.Open(tag, start)
			if tt == html.SelfClosingTagToken || IsVoid(tag) {
				h.Close(tag)
			} else if markupBodies[tag] {
				z.NextIsNotRawText()
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if !IsVoid(tag) {
				h.Close(tag)
			}
		}
	}
}
