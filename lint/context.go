package lint

import (
	"github.com/lex00/nghint/tree"
)

// Context is what a rule sees of one element: its attributes, its position
// in the tree and the active configuration. A fresh Context is built for
// every opening tag; it references the element's maps rather than copying
// them, so rules must treat them as read-only.
type Context struct {
	Tree    *tree.Tree
	Element *tree.Element
	Config  *Config
}

// Tag returns the lower-cased tag name.
func (c *Context) Tag() string {
	return c.Element.Tag
}

// Has reports whether the element carries the normalized key.
func (c *Context) Has(key string) bool {
	return c.Element.Has(key)
}

// Value returns the first declared value of key.
func (c *Context) Value(key string) (string, bool) {
	v, ok := c.Element.Attrs[key]
	return v, ok
}

// Keys returns the normalized keys in declaration order.
func (c *Context) Keys() []string {
	return c.Element.Keys
}

// RawName returns the raw spelling of key's first declaration.
func (c *Context) RawName(key string) string {
	return c.Element.RawNames[key]
}

// Duplicates maps each repeated key to the value of its last repeat.
func (c *Context) Duplicates() map[string]string {
	return c.Element.Dups
}

// Raw returns every declared attribute in order.
func (c *Context) Raw() []tree.Attribute {
	return c.Element.Raw
}

// Ignored reports whether key is exempt from the empty-attribute check.
func (c *Context) Ignored(key string) bool {
	return c.Config.IsIgnored(key)
}

// Ancestor returns the nearest enclosing element for which match is true.
func (c *Context) Ancestor(match func(*tree.Element) bool) (*tree.Element, bool) {
	return c.Tree.HasAncestorMatching(c.Element.ID, match)
}

// Report adds d to sink, stamped with the element's origin.
func (c *Context) Report(sink *Sink, d Diagnostic) {
	d.File = c.Element.Origin.File
	d.Line = c.Element.Origin.Line
	sink.Add(d)
}
