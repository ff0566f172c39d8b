// Package source reads markup files and prepares them for linting: it expands
// file patterns and tags every opening tag with its source location.
package source

import (
	"bytes"
	"html"
	"io"
	"strconv"

	"github.com/lex00/nghint/tree"
)

type tagState int

const (
	stText    tagState = iota
	stOpen             // after '<'
	stName             // inside an opening tag name
	stTag              // inside a tag, after its name
	stQuote            // inside a quoted attribute value
	stBang             // after "<!"
	stComment          // inside "<!-- -->"
	stRawText          // inside script, style, textarea or title
)

// rawTextElements hold text, not markup. markup.Parse treats exactly these
// as raw text too.
var rawTextElements = map[string]bool{
	"script":   true,
	"style":    true,
	"textarea": true,
	"title":    true,
}

// Tagger is an io.Writer that copies markup to an underlying writer, adding a
// location marker attribute after the name of every opening tag. It keeps its
// scanning state between writes, so the output does not depend on how the
// input is split.
type Tagger struct {
	w    io.Writer
	file string
	line int

	state  tagState
	quote  byte
	dashes int
	name   []byte
	raw    string // closing sequence that ends raw text, e.g. "</script"
	rawPos int
	buf    bytes.Buffer
}

// NewTagger creates a Tagger for file writing to w.
func NewTagger(w io.Writer, file string) *Tagger {
	return &Tagger{w: w, file: html.EscapeString(file), line: 1}
}

// Line returns the current 1-based line.
func (t *Tagger) Line() int {
	return t.line
}

// Write tags p and writes the result to the underlying writer.
func (t *Tagger) Write(p []byte) (int, error) {
	t.buf.Reset()
	for _, c := range p {
		t.step(c)
		t.buf.WriteByte(c)
		if c == '\n' {
			t.line++
		}
	}
	if _, err := t.w.Write(t.buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// step advances the scanner over c, emitting a marker before c when c ends an
// opening tag name.
func (t *Tagger) step(c byte) {
	switch t.state {
	case stText:
		if c == '<' {
			t.state = stOpen
		}

	case stOpen:
		switch {
		case isLetter(c):
			t.state = stName
			t.name = append(t.name[:0], lower(c))
		case c == '!':
			t.state = stBang
			t.dashes = 0
		case c == '/' || c == '?':
			t.state = stTag
			t.name = t.name[:0]
		case c == '<':
		default:
			t.state = stText
		}

	case stName:
		switch {
		case isNameChar(c):
			t.name = append(t.name, lower(c))
		case isSpace(c) || c == '>' || c == '/':
			t.buf.WriteString(` ` + tree.LocationAttr + `="` + t.file + ":" + strconv.Itoa(t.line) + `"`)
			if c == '>' {
				t.state = stText
			} else {
				t.state = stTag
			}
			t.endTag(c)
		default:
			t.state = stTag
		}

	case stTag:
		switch c {
		case '"', '\'':
			t.state = stQuote
			t.quote = c
		case '>':
			t.state = stText
			t.endTag(c)
		}

	case stQuote:
		if c == t.quote {
			t.state = stTag
		}

	case stBang:
		if c == '-' {
			t.dashes++
			if t.dashes == 2 {
				t.state = stComment
				t.dashes = 0
			}
			return
		}
		t.state = stTag
		t.name = t.name[:0]
		if c == '>' {
			t.state = stText
		}

	case stComment:
		switch {
		case c == '-':
			t.dashes++
		case c == '>' && t.dashes >= 2:
			t.state = stText
		default:
			t.dashes = 0
		}

	case stRawText:
		if lower(c) == t.raw[t.rawPos] {
			t.rawPos++
			if t.rawPos == len(t.raw) {
				t.state = stTag
				t.name = t.name[:0]
			}
			return
		}
		t.rawPos = 0
		if c == '<' {
			t.rawPos = 1
		}
	}
}

// endTag switches to raw text mode when a raw text element's opening tag
// closes.
func (t *Tagger) endTag(c byte) {
	if c != '>' || !rawTextElements[string(t.name)] {
		return
	}
	t.state = stRawText
	t.raw = "</" + string(t.name)
	t.rawPos = 0
}

// Annotate tags a complete source text.
func Annotate(file string, src []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(src) + len(src)/8)
	// bytes.Buffer writes never fail
	_, _ = NewTagger(&out, file).Write(src)
	return out.Bytes()
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isNameChar(c byte) bool {
	return isLetter(c) || '0' <= c && c <= '9' || c == '-' || c == ':' || c == '_' || c == '.'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
