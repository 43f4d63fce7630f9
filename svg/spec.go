package svg

import "fmt"

// KindTextArea is the Spec kind handled by the text-flow engine.
const KindTextArea = "textarea"

// Spec describes a node to create.
//
// Content is either Text or Children. A Spec with an empty Kind is a bare
// text node and may only carry Text. A KindTextArea spec must carry
// TextArea and nothing else.
type Spec struct {
	Kind     string
	Attrs    Attrs
	Text     string
	Children []Spec
	TextArea *TextArea
}

// validate panics on malformed specs. These are programming errors.
func (s Spec) validate() {
	switch {
	case s.Kind == KindTextArea:
		if s.TextArea == nil {
			panic("svg: textarea spec without TextArea")
		}
	case s.TextArea != nil:
		panic(fmt.Sprintf("svg: TextArea set on %q spec", s.Kind))
	case s.Kind == "":
		if len(s.Children) > 0 || len(s.Attrs) > 0 {
			panic("svg: bare text spec with attributes or children")
		}
	case !validName(s.Kind):
		panic(fmt.Sprintf("svg: invalid element name %q", s.Kind))
	case s.Text != "" && len(s.Children) > 0:
		panic(fmt.Sprintf("svg: %q spec has both text and children", s.Kind))
	}
}

// validName reports whether name is usable as an element name.
func validName(name string) bool {
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '.' || r == ':'):
		default:
			return false
		}
	}
	return name != ""
}

// Op is the kind of a scene mutation.
type Op int

const (
	// OpCreate reports a newly created node.
	OpCreate Op = iota
	// OpUpdate reports an attribute replacement.
	OpUpdate
	// OpInsert reports an existing node placed into a parent.
	OpInsert
	// OpRemove reports a removed node.
	OpRemove
)

// String returns the name of the operation.
func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	}
	return "unknown"
}

// Mutation describes one change to the scene, reported to the observer
// installed with WithObserver.
type Mutation struct {
	Op   Op
	ID   int
	Kind string
}
