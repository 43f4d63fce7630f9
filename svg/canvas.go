package svg

import (
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/zabbix/svgmap/dom"
	"github.com/zabbix/svgmap/text"
)

// XML namespaces written on the root element.
const (
	NamespaceSVG   = "http://www.w3.org/2000/svg"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
)

// Canvas owns a scene: the root node, the registry of live nodes and the
// shadow buffer used for text measurement.
type Canvas struct {
	width, height int
	config        canvasConfig
	measurer      *text.Measurer

	nextID int
	nodes  map[int]*Node
	root   *Node

	shadow     *Node
	shadowText *dom.Element
}

// NewCanvas creates a canvas of the given size.
func NewCanvas(width, height int, opts ...CanvasOption) *Canvas {
	config := defaultCanvasConfig()
	for _, opt := range opts {
		opt(&config)
	}

	c := &Canvas{
		width:    width,
		height:   height,
		config:   config,
		measurer: config.measurer,
		nodes:    make(map[int]*Node),
	}
	if c.measurer == nil {
		c.measurer = text.Default()
	}
	c.root = c.Create(Spec{Kind: "svg", Attrs: c.rootAttrs()}, nil, nil)
	return c
}

func (c *Canvas) rootAttrs() Attrs {
	attrs := Attrs{
		"xmlns":       NamespaceSVG,
		"xmlns:xlink": NamespaceXLink,
	}
	maps.Copy(attrs, c.sizeAttrs())
	return attrs
}

func (c *Canvas) sizeAttrs() Attrs {
	if c.config.viewBox {
		return Attrs{
			"viewBox":             "0 0 " + strconv.Itoa(c.width) + " " + strconv.Itoa(c.height),
			"style":               "max-width: " + strconv.Itoa(c.width) + "px; max-height: " + strconv.Itoa(c.height) + "px;",
			"preserveAspectRatio": "xMinYMin meet",
		}
	}
	return Attrs{"width": c.width, "height": c.height}
}

// Width returns the canvas width.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height.
func (c *Canvas) Height() int { return c.height }

// Root returns the root <svg> node.
func (c *Canvas) Root() *Node { return c.root }

// MaskEnabled reports whether clipped text is masked rather than clipped.
func (c *Canvas) MaskEnabled() bool { return c.config.mask }

// Measurer returns the measurer used for text layout.
func (c *Canvas) Measurer() *text.Measurer { return c.measurer }

// Create builds a node from s under parent, inserted before the target
// sibling when target is non-nil. A nil parent creates a detached node
// that can later be placed with Node.Append or Node.Replace.
//
// A KindTextArea spec is laid out by the text-flow engine. It returns the
// text block's group node, or nil when the text is blank.
func (c *Canvas) Create(s Spec, parent, target *Node) *Node {
	s.validate()
	if s.Kind == KindTextArea {
		return c.layout(*s.TextArea, parent)
	}

	n := c.newNode(s.Kind, s.Attrs)
	c.nodes[n.id] = n
	c.notify(OpCreate, n)

	if parent != nil {
		parent.insert(n, target)
	}
	switch {
	case s.Kind == "":
		n.elem.Data = s.Text
	case s.Text != "":
		n.elem.SetText(s.Text)
	default:
		for _, child := range s.Children {
			c.Create(child, n, nil)
		}
	}
	return n
}

// Add creates a node under the root.
func (c *Canvas) Add(s Spec) *Node {
	return c.root.Add(s)
}

// Resize changes the canvas size. It reports false, without touching the
// scene, when the size is unchanged.
func (c *Canvas) Resize(width, height int) bool {
	if c.width == width && c.height == height {
		return false
	}
	c.width, c.height = width, height
	c.root.Update(MergeAttributes(c.root.Attrs(), c.sizeAttrs()))
	if c.shadow != nil {
		c.shadow.Update(MergeAttributes(c.shadow.Attrs(), c.sizeAttrs()))
	}
	return true
}

// NodesByAttributes returns the live nodes whose attributes match every
// entry of attrs, ordered by id.
func (c *Canvas) NodesByAttributes(attrs Attrs) []*Node {
	var out []*Node
	for _, n := range c.nodes {
		if n.matches(attrs) {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, func(a, b *Node) int { return a.id - b.id })
	return out
}

// Node returns the live node with the given id.
func (c *Canvas) Node(id int) (*Node, bool) {
	n, ok := c.nodes[id]
	return n, ok
}

// Len returns the number of live registered nodes.
func (c *Canvas) Len() int {
	return len(c.nodes)
}

// RenderInto attaches the root drawable to container. Rendering into the
// container that already holds the root is a no-op.
func (c *Canvas) RenderInto(container *dom.Element) {
	if c.root.elem.Parent() == container {
		return
	}
	container.AppendChild(c.root.elem)
}

// WriteTo writes the scene as an SVG document.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := dom.Encode(cw, c.root.elem, true)
	return cw.n, err
}

// String returns the scene as an SVG document.
func (c *Canvas) String() string {
	return c.root.elem.String()
}

// Shadow returns the shadow buffer root, or nil before the first
// measurement.
func (c *Canvas) Shadow() *Node {
	return c.shadow
}

// newNode allocates a node with the next id. The node is not registered.
func (c *Canvas) newNode(kind string, attrs Attrs) *Node {
	n := &Node{
		id:     c.nextID,
		kind:   kind,
		canvas: c,
		attrs:  attrs.Clone(),
	}
	c.nextID++
	if kind == "" {
		n.elem = dom.NewText("")
	} else {
		n.elem = dom.NewElement(kind)
		n.applyAttrs()
	}
	return n
}

func (c *Canvas) notify(op Op, n *Node) {
	if c.config.observer != nil {
		c.config.observer(Mutation{Op: op, ID: n.id, Kind: n.kind})
	}
}

// shadowBuffer returns the hidden measurement root, creating it on first
// use. It mirrors the root's size and is never rendered.
func (c *Canvas) shadowBuffer() *dom.Element {
	if c.shadow == nil {
		attrs := MergeAttributes(c.rootAttrs(), Attrs{"visibility": "hidden"})
		c.shadow = c.newNode("svg", attrs)
		c.shadowText = dom.NewElement("text")
		c.shadow.elem.AppendChild(c.shadowText)
	}
	return c.shadowText
}

// measureShadow renders line into the shadow buffer with style st and
// returns its width. It reports false when no shadow buffer is available.
func (c *Canvas) measureShadow(line string, st text.Style) (float64, bool) {
	if !c.config.shadow {
		return 0, false
	}
	el := c.shadowBuffer()
	el.SetAttr("font-size", FormatValue(st.Size)+"px")
	el.SetAttr("font-family", st.Family)
	el.SetText(line)
	return c.measurer.Measure(line, st).Width, true
}

// styleOf resolves the text style inherited by a child of parent with
// the given extra attribute layers applied in order.
func (c *Canvas) styleOf(parent *Node, layers ...Attrs) text.Style {
	var chain []Attrs
	for p := parent; p != nil; p = p.parent {
		chain = append(chain, p.attrs)
	}
	slices.Reverse(chain)
	chain = append(chain, layers...)

	st := text.Style{Size: text.DefaultFontSize}
	for _, attrs := range chain {
		if v := attrs.String("font-size"); v != "" {
			st.Size = text.ParseFontSize(v, st.Size)
		}
		if v := attrs.String("font-family"); v != "" {
			st.Family = v
		}
		if v := attrs.String("font-weight"); v != "" {
			st.Bold = text.IsBold(v)
		}
	}
	return st
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
