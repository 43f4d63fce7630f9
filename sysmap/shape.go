package sysmap

import (
	"fmt"
	"strings"

	"github.com/zabbix/svgmap/svg"
)

// Shape renders a rectangle, ellipse or line with optional text.
type Shape struct {
	m       *Map
	id      string
	options Document

	x, y, width, height float64

	node *svg.Node
}

func newShape(m *Map, id string) *Shape {
	return &Shape{m: m, id: id}
}

// ID returns the sysmap_shapeid.
func (s *Shape) ID() string { return s.id }

// Node returns the shape node: the primitive itself, or a group holding
// the primitive and its text.
func (s *Shape) Node() *svg.Node { return s.node }

// Center returns the center of the shape's bounding box.
func (s *Shape) Center() (x, y float64) {
	return s.x + s.width/2, s.y + s.height/2
}

// Update renders spec. The new node takes the place of the old one so
// the paint order among shapes is kept.
func (s *Shape) Update(spec Document) error {
	if !IsChanged(s.options, spec) {
		return nil
	}

	attrs := svg.Attrs{
		"fill":   paint(spec.String("background_color")),
		"stroke": paint(spec.String("border_color")),
	}
	if spec.Has("border_width") {
		width := spec.Int("border_width")
		attrs["stroke-width"] = width
		dash, round := dashArray(spec.IntOr("border_type", BorderSolid), width)
		switch dash {
		case "none":
			attrs["stroke-width"] = 0
		case "":
		default:
			attrs["stroke-dasharray"] = dash
			if round {
				attrs["stroke-linecap"] = "round"
			}
		}
	}

	x, y := spec.Float("x"), spec.Float("y")
	w, h := spec.Float("width"), spec.Float("height")
	text := spec.String("text")

	var (
		kind string
		clip svg.Attrs
	)
	switch typ := spec.IntOr("type", -1); typ {
	case ShapeRectangle:
		kind = "rect"
		clip = svg.Attrs{"x": x, "y": y, "width": w, "height": h}
	case ShapeEllipse:
		kind = "ellipse"
		clip = svg.Attrs{"cx": x + w/2, "cy": y + h/2, "rx": w / 2, "ry": h / 2}
	case ShapeLine:
		kind = "line"
		delete(attrs, "fill")
		text = ""
		clip = svg.Attrs{"x1": x, "y1": y, "x2": w, "y2": h}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidShape, spec["type"])
	}
	s.options = spec
	s.x, s.y, s.width, s.height = x, y, w, h
	primitive := svg.Spec{Kind: kind, Attrs: svg.MergeAttributes(attrs, clip)}

	var node *svg.Node
	if strings.TrimSpace(text) == "" {
		node = s.m.layers.shapes.Add(primitive)
	} else {
		node = s.m.layers.shapes.Add(svg.Spec{Kind: "g", Children: []svg.Spec{primitive}})
		node.AddTextArea(s.textArea(spec, kind, clip, text))
	}

	if s.node != nil {
		s.node.Replace(node)
	}
	s.node = node
	return nil
}

// textArea places the text inside the shape's box according to its
// alignment and clips it to the shape.
func (s *Shape) textArea(spec Document, kind string, clip svg.Attrs, text string) svg.TextArea {
	x, y := s.Center()
	anchor := svg.Anchor{Horizontal: svg.AnchorCenter, Vertical: svg.AnchorMiddle}

	switch spec.Int("text_halign") {
	case HAlignLeft:
		x = s.x + svg.TextPadding
		anchor.Horizontal = svg.AnchorLeft
	case HAlignRight:
		x = s.x + s.width - svg.TextPadding
		anchor.Horizontal = svg.AnchorRight
	}
	switch spec.Int("text_valign") {
	case VAlignTop:
		y = s.y + svg.TextPadding
		anchor.Vertical = svg.AnchorTop
	case VAlignBottom:
		y = s.y + s.height - svg.TextPadding
		anchor.Vertical = svg.AnchorBottom
	}

	attrs := svg.Attrs{
		"font-family": fontFamily(spec.IntOr("font", DefaultFont)),
		"font-size":   svg.FormatValue(spec.IntOr("font_size", 11)) + "px",
	}
	if fill := paint(spec.String("font_color")); fill != "none" {
		attrs["fill"] = fill
	}
	return svg.TextArea{
		X:          x,
		Y:          y,
		Anchor:     anchor,
		Attrs:      attrs,
		Clip:       &svg.Spec{Kind: kind, Attrs: clip},
		ParseLinks: true,
		Text:       text,
	}
}

// Remove deletes the shape from the scene.
func (s *Shape) Remove() {
	if s.node != nil {
		s.node.Remove()
		s.node = nil
	}
	s.options = nil
}
