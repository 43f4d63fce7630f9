package svg

import (
	"slices"

	"github.com/zabbix/svgmap/dom"
)

// Node is one drawable primitive of a Canvas.
//
// A node keeps its own ordered child list next to the document tree. Once
// removed it holds no drawable and every further Remove is a no-op.
type Node struct {
	id     int
	kind   string
	attrs  Attrs
	canvas *Canvas
	parent *Node
	items  []*Node
	elem   *dom.Element

	invalid bool
}

// ID returns the node id, unique within its Canvas.
func (n *Node) ID() int { return n.id }

// Kind returns the element name, or "" for a text node.
func (n *Node) Kind() string { return n.kind }

// Parent returns the parent node or nil.
func (n *Node) Parent() *Node { return n.parent }

// Canvas returns the canvas that created n.
func (n *Node) Canvas() *Canvas { return n.canvas }

// Element returns the underlying drawable, or nil once removed.
func (n *Node) Element() *dom.Element { return n.elem }

// Removed reports whether n has been removed.
func (n *Node) Removed() bool { return n.elem == nil }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.items)
}

// Attrs returns a copy of the current attributes.
func (n *Node) Attrs() Attrs {
	return n.attrs.Clone()
}

// Attr returns the formatted value of one attribute.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	if !ok || v == nil {
		return "", false
	}
	return FormatValue(v), true
}

// Text returns the text content of the node's subtree.
func (n *Node) Text() string {
	if n.elem == nil {
		return ""
	}
	return n.elem.TextContent()
}

// Add creates a child node from s.
func (n *Node) Add(s Spec) *Node {
	return n.canvas.Create(s, n, nil)
}

// AddSpecs creates one child per spec and returns them in input order.
// Blank text areas yield nil entries.
func (n *Node) AddSpecs(specs []Spec) []*Node {
	out := make([]*Node, 0, len(specs))
	for _, s := range specs {
		out = append(out, n.Add(s))
	}
	return out
}

// Insert creates a child node from s placed before target.
func (n *Node) Insert(s Spec, target *Node) *Node {
	return n.canvas.Create(s, n, target)
}

// AddTextArea lays out a text block under n. It returns nil when the text
// is blank.
func (n *Node) AddTextArea(ta TextArea) *Node {
	return n.canvas.layout(ta, n)
}

// Append moves child, typically a detached node, to the end of n.
func (n *Node) Append(child *Node) {
	n.insert(child, nil)
	n.canvas.notify(OpInsert, child)
}

// Update replaces all attributes of n with attrs.
// Use MergeAttributes to keep existing attributes.
func (n *Node) Update(attrs Attrs) {
	if n.elem == nil {
		return
	}
	n.attrs = attrs.Clone()
	n.applyAttrs()
	n.canvas.notify(OpUpdate, n)
}

// Clear removes every child of n.
func (n *Node) Clear() {
	for _, item := range slices.Clone(n.items) {
		item.Remove()
	}
	n.items = nil
}

// Remove detaches n and all its descendants and drops them from the
// canvas registry. Removing a removed node is a no-op.
func (n *Node) Remove() {
	if n.elem == nil {
		return
	}
	n.Clear()
	if n.parent != nil {
		n.parent.items = slices.DeleteFunc(n.parent.items, func(item *Node) bool {
			return item.id == n.id
		})
		n.parent = nil
	}
	n.release()
}

// Replace puts other in place of n, preserving paint order among
// siblings, removes n and returns other.
//
// When n has been invalidated its drawable is no longer a usable anchor:
// other only takes n's place in the parent's child list and its drawable
// stays out of the document.
func (n *Node) Replace(other *Node) *Node {
	if other == n || n.elem == nil {
		return other
	}
	other.detach()

	if !n.invalid {
		if p := n.elem.Parent(); p != nil {
			p.InsertBefore(other.elem, n.elem)
		}
	}
	if p := n.parent; p != nil {
		i := slices.IndexFunc(p.items, func(item *Node) bool { return item.id == n.id })
		other.parent = p
		if i >= 0 {
			p.items[i] = other
		} else {
			p.items = append(p.items, other)
		}
		n.parent = nil
	}
	n.canvas.notify(OpInsert, other)

	n.Clear()
	n.release()
	return other
}

// Invalidate marks n's drawable as stale, for example after its document
// subtree was discarded. A later Replace will not anchor to it.
func (n *Node) Invalidate() {
	n.invalid = true
}

// Invalid reports whether n has been invalidated.
func (n *Node) Invalid() bool { return n.invalid }

// insert places child under n before target, detaching it from any
// previous parent first.
func (n *Node) insert(child, target *Node) {
	child.detach()
	child.parent = n

	i := -1
	if target != nil {
		i = slices.IndexFunc(n.items, func(item *Node) bool { return item.id == target.id })
	}
	if i < 0 {
		n.items = append(n.items, child)
		n.elem.AppendChild(child.elem)
		return
	}
	n.items = slices.Insert(n.items, i, child)
	n.elem.InsertBefore(child.elem, target.elem)
}

// detach unlinks n from its parent's child list and the document tree
// without removing it.
func (n *Node) detach() {
	if n.parent != nil {
		n.parent.items = slices.DeleteFunc(n.parent.items, func(item *Node) bool {
			return item.id == n.id
		})
		n.parent = nil
	}
	if n.elem != nil {
		n.elem.Remove()
	}
}

// release drops the drawable and the registry entry of n.
func (n *Node) release() {
	if n.elem != nil {
		n.elem.Remove()
	}
	n.elem = nil
	delete(n.canvas.nodes, n.id)
	n.canvas.notify(OpRemove, n)
}

func (n *Node) applyAttrs() {
	n.elem.ClearAttrs()
	for _, name := range n.attrs.keys() {
		n.elem.SetAttr(name, FormatValue(n.attrs[name]))
	}
}

func (n *Node) matches(attrs Attrs) bool {
	for name, want := range attrs {
		got, ok := n.Attr(name)
		if !ok || got != FormatValue(want) {
			return false
		}
	}
	return true
}
