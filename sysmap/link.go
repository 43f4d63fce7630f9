package sysmap

import (
	"github.com/zabbix/svgmap"
	"github.com/zabbix/svgmap/svg"
)

// endpoint is anything a link can connect to.
type endpoint interface {
	Center() (x, y float64)
}

// Link renders a line between two elements with an optional label.
type Link struct {
	m       *Map
	id      string
	options Document

	ends     [4]float64
	resolved bool
	dirty    bool

	node *svg.Node
}

func newLink(m *Map, id string) *Link {
	return &Link{m: m, id: id}
}

// ID returns the linkid.
func (l *Link) ID() string { return l.id }

// Node returns the link group, or nil when the link is not drawn.
func (l *Link) Node() *svg.Node { return l.node }

// Update renders spec. A link whose endpoints cannot both be resolved is
// removed. The link is redrawn when spec changed or an endpoint moved.
func (l *Link) Update(spec Document) {
	src, dst, ok := l.endpoints(spec)
	var ends [4]float64
	if ok {
		ends[0], ends[1] = src.Center()
		ends[2], ends[3] = dst.Center()
	}
	if !l.dirty && !IsChanged(l.options, spec) && ok == l.resolved && ends == l.ends {
		return
	}
	l.options = spec
	l.dirty = false
	l.ends = ends
	l.resolved = ok

	if !ok {
		svgmap.Logger().Warn("sysmap: link endpoint not found", "id", l.id,
			"selementid1", spec.String("selementid1"), "selementid2", spec.String("selementid2"))
		l.removeNode()
		return
	}

	group := svg.Attrs{
		"stroke":       paint(spec.String("color")),
		"stroke-width": 1,
		"fill":         paint(l.m.theme.String("backgroundcolor")),
	}
	line := svg.Attrs{"x1": ends[0], "y1": ends[1], "x2": ends[2], "y2": ends[3]}
	switch spec.Int("drawtype") {
	case DrawBold:
		group["stroke-width"] = 2
	case DrawDotted:
		line["stroke-dasharray"] = "1,2"
	case DrawDashed:
		line["stroke-dasharray"] = "4,4"
	}

	node := l.m.layers.links.Add(svg.Spec{Kind: "g", Attrs: group, Children: []svg.Spec{{Kind: "line", Attrs: line}}})
	node.AddTextArea(svg.TextArea{
		X:      (ends[0] + ends[2]) / 2,
		Y:      (ends[1] + ends[3]) / 2,
		Anchor: svg.Anchor{Horizontal: svg.AnchorCenter, Vertical: svg.AnchorMiddle},
		Attrs: svg.Attrs{
			"fill":         paint(l.m.theme.String("textcolor")),
			"font-size":    "10px",
			"stroke-width": 0,
		},
		Background: svg.Attrs{},
		Text:       spec.String("label"),
	})

	if l.node != nil {
		l.node.Replace(node)
	}
	l.node = node
}

// refresh redraws the link with its current options when an endpoint
// moved or the theme changed.
func (l *Link) refresh() {
	if l.options != nil {
		l.Update(l.options)
	}
}

// Remove deletes the link from the scene.
func (l *Link) Remove() {
	l.removeNode()
	l.options = nil
}

func (l *Link) removeNode() {
	if l.node != nil {
		l.node.Remove()
		l.node = nil
	}
}

// endpoints resolves both ends among the rendered elements. When neither
// is an element, both are looked up among the shapes that stand in for
// element groups ("e" followed by the selementid).
func (l *Link) endpoints(spec Document) (src, dst endpoint, ok bool) {
	id1, id2 := spec.String("selementid1"), spec.String("selementid2")
	e1, ok1 := l.m.elements[id1]
	e2, ok2 := l.m.elements[id2]
	ok1 = ok1 && e1.image != nil
	ok2 = ok2 && e2.image != nil
	if ok1 && ok2 {
		return e1, e2, true
	}
	// Group shapes stand in only when neither end is a rendered element;
	// a link between an element and a group stays unresolved.
	if ok1 || ok2 {
		return nil, nil, false
	}

	s1, ok1 := l.m.shapes["e"+id1]
	s2, ok2 := l.m.shapes["e"+id2]
	if ok1 && ok2 && s1.node != nil && s2.node != nil {
		return s1, s2, true
	}
	return nil, nil, false
}
