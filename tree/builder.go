package tree

import (
	"strings"

	"github.com/lex00/nghint/attr"
)

// pendingElement accumulates the attributes delivered before an Open event.
type pendingElement struct {
	attrs    map[string]string
	rawNames map[string]string
	dups     map[string]string
	keys     []string
	raw      []Attribute
	origin   *Origin
}

func newPendingElement() pendingElement {
	return pendingElement{
		attrs:    make(map[string]string),
		rawNames: make(map[string]string),
		dups:     make(map[string]string),
	}
}

func (p *pendingElement) add(name, value string) {
	if name == LocationAttr {
		if o, ok := ParseLocation(value); ok {
			p.origin = &o
		}
		return
	}

	p.raw = append(p.raw, Attribute{Name: name, Value: value})
	key := attr.Normalize(name)
	if _, seen := p.attrs[key]; seen {
		p.dups[key] = value
		return
	}
	p.attrs[key] = value
	p.rawNames[key] = name
	p.keys = append(p.keys, key)
}

// Builder consumes attribute/open/close events in document order and grows a
// Tree. It never fails: unbalanced close events are ignored.
type Builder struct {
	tree    *Tree
	file    string
	cursor  int
	pending pendingElement
}

// NewBuilder creates a builder for one source unit. file is the origin used
// for elements whose opening tag carries no location marker.
func NewBuilder(file string) *Builder {
	return &Builder{
		tree:    &Tree{},
		file:    file,
		cursor:  NoParent,
		pending: newPendingElement(),
	}
}

// Attribute records an attribute for the next Open event.
func (b *Builder) Attribute(name, value string) {
	b.pending.add(name, value)
}

// Open creates an element under the current cursor from the pending
// attributes and moves the cursor into it. line is the fallback origin line.
func (b *Builder) Open(tag string, line int) *Element {
	p := b.pending
	b.pending = newPendingElement()

	origin := Origin{File: b.file, Line: line}
	if p.origin != nil {
		origin = *p.origin
	}

	id := b.tree.add(Element{
		Tag:      strings.ToLower(tag),
		Attrs:    p.attrs,
		RawNames: p.rawNames,
		Dups:     p.dups,
		Keys:     p.keys,
		Raw:      p.raw,
		Origin:   origin,
		Parent:   b.cursor,
	})
	b.cursor = id
	return b.tree.Node(id)
}

// Close moves the cursor to the parent of the innermost open element named
// tag. A close with no matching open element is ignored.
func (b *Builder) Close(tag string) {
	tag = strings.ToLower(tag)
	for n := b.tree.Node(b.cursor); n != nil; n = b.tree.Node(n.Parent) {
		if n.Tag == tag {
			b.cursor = n.Parent
			return
		}
	}
}

// Current returns the element the cursor points at, or nil at the top level.
func (b *Builder) Current() *Element {
	return b.tree.Node(b.cursor)
}

// Tree returns the tree built so far.
func (b *Builder) Tree() *Tree {
	return b.tree
}
