// Package dom is a minimal retained SVG document tree.
//
// An Element is either a named element with ordered attributes and child
// nodes, or a text node (empty Name) carrying character data. The tree
// mirrors the small subset of DOM operations the scene layer needs:
// appending, inserting before a sibling, detaching and replacing the text
// content. Encode serializes a subtree as XML.
package dom

import "slices"

// Attr is a single element attribute. Name may carry a namespace prefix
// such as "xlink:href".
type Attr struct {
	Name  string
	Value string
}

// Element is a node of the document tree.
type Element struct {
	Name string
	Data string

	attrs    []Attr
	children []*Element
	parent   *Element
}

// NewElement creates a detached element with the given name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// NewText creates a detached text node.
func NewText(data string) *Element {
	return &Element{Data: data}
}

// IsText reports whether e is a text node.
func (e *Element) IsText() bool {
	return e.Name == ""
}

// Parent returns the parent element or nil when e is detached.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the child nodes in document order.
// The returned slice must not be modified.
func (e *Element) Children() []*Element {
	return e.children
}

// Attrs returns the attributes in insertion order.
// The returned slice must not be modified.
func (e *Element) Attrs() []Attr {
	return e.attrs
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, keeping its position when it exists.
func (e *Element) SetAttr(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// RemoveAttr deletes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	e.attrs = slices.DeleteFunc(e.attrs, func(a Attr) bool { return a.Name == name })
}

// ClearAttrs removes all attributes.
func (e *Element) ClearAttrs() {
	e.attrs = e.attrs[:0]
}

// AppendChild detaches child from its current parent and appends it to e.
func (e *Element) AppendChild(child *Element) {
	child.Remove()
	child.parent = e
	e.children = append(e.children, child)
}

// InsertBefore detaches child and inserts it immediately before ref.
// When ref is nil or not a child of e, child is appended.
func (e *Element) InsertBefore(child, ref *Element) {
	if child == ref {
		return
	}
	child.Remove()
	i := slices.Index(e.children, ref)
	if ref == nil || i < 0 {
		child.parent = e
		e.children = append(e.children, child)
		return
	}
	child.parent = e
	e.children = slices.Insert(e.children, i, child)
}

// Remove detaches e from its parent. Removing a detached node is a no-op.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	p := e.parent
	p.children = slices.DeleteFunc(p.children, func(c *Element) bool { return c == e })
	e.parent = nil
}

// SetText replaces all children of e with a single text node.
// An empty string leaves e without children.
func (e *Element) SetText(data string) {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = e.children[:0]
	if data != "" {
		e.AppendChild(NewText(data))
	}
}

// TextContent returns the concatenated character data of the subtree.
func (e *Element) TextContent() string {
	if e.IsText() {
		return e.Data
	}
	var s []byte
	for _, c := range e.children {
		s = append(s, c.TextContent()...)
	}
	return string(s)
}
