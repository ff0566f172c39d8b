// Package tree builds a parent-linked element tree from tag events.
//
// Elements live in an arena owned by the Tree; parent links are arena indices,
// installed once when an element is created and never changed. That keeps the
// tree acyclic and every ancestor walk bounded by the nesting depth.
package tree

// NoParent is the parent index of top-level elements.
const NoParent = -1

// Attribute is a raw attribute as declared in markup.
type Attribute struct {
	Name  string
	Value string
}

// Origin is the source position of an element's opening tag.
type Origin struct {
	File string
	Line int
}

// Element is one opened tag and its attribute set.
type Element struct {
	// ID is the element's index in its Tree.
	ID int
	// Tag is the lower-cased tag name.
	Tag string
	// Attrs maps a normalized key to the first declared value.
	Attrs map[string]string
	// RawNames maps a normalized key to the raw name of its first declaration.
	RawNames map[string]string
	// Dups maps a normalized key to the value of its last repeated declaration.
	Dups map[string]string
	// Keys lists normalized keys in declaration order, without repeats.
	Keys []string
	// Raw lists every declared attribute in order, location marker excluded.
	Raw []Attribute
	// Origin is where the opening tag appears.
	Origin Origin
	// Parent is the index of the enclosing element, or NoParent.
	Parent int
}

// Has reports whether the element carries the normalized key.
func (e *Element) Has(key string) bool {
	_, ok := e.Attrs[key]
	return ok
}

// Tree is an arena of elements for one source unit.
type Tree struct {
	nodes []Element
}

// Len returns the number of elements.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the element with the given index, or nil when out of range.
// The pointer is valid until the next element is added.
func (t *Tree) Node(id int) *Element {
	if id < 0 || id >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// Parent returns the enclosing element of id, or nil at the top level.
func (t *Tree) Parent(id int) *Element {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	return t.Node(n.Parent)
}

// HasAncestorMatching walks from the parent of id up to the root and returns
// the first element for which match returns true.
func (t *Tree) HasAncestorMatching(id int, match func(*Element) bool) (*Element, bool) {
	for p := t.Parent(id); p != nil; p = t.Node(p.Parent) {
		if match(p) {
			return p, true
		}
	}
	return nil, false
}

// Depth returns the number of ancestors of id.
func (t *Tree) Depth(id int) int {
	depth := 0
	for p := t.Parent(id); p != nil; p = t.Node(p.Parent) {
		depth++
	}
	return depth
}

func (t *Tree) add(e Element) int {
	e.ID = len(t.nodes)
	t.nodes = append(t.nodes, e)
	return e.ID
}
