package sysmap

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/zabbix/svgmap/svg"
)

// markerPath is an arrow pointing down, 11px wide and tall.
const markerPath = "M11, 2.91 L5.87, 11 L0, 2.91 L4.08, 2.91 L4.08, 0 L7.9, 0 L7.9, 2.91 Z"

// ackColor outlines the highlight of an acknowledged problem.
const ackColor = "#329632"

// Element renders one map element: an icon with optional highlight,
// "recently changed" markers and label.
type Element struct {
	m       *Map
	id      string
	spec    Document
	options Document

	x, y, width, height float64

	highlight *svg.Node
	markers   *svg.Node
	image     *svg.Node
	label     *svg.Node
}

func newElement(m *Map, id string) *Element {
	return &Element{m: m, id: id}
}

// ID returns the selementid.
func (e *Element) ID() string { return e.id }

// Center returns the center of the icon.
func (e *Element) Center() (x, y float64) {
	return e.x + e.width/2, e.y + e.height/2
}

// Bounds returns the icon position and size.
func (e *Element) Bounds() (x, y, width, height float64) {
	return e.x, e.y, e.width, e.height
}

// Image returns the icon node.
func (e *Element) Image() *svg.Node { return e.image }

// Label returns the label group, or nil.
func (e *Element) Label() *svg.Node { return e.label }

// Highlight returns the highlight shape, or nil.
func (e *Element) Highlight() *svg.Node { return e.highlight }

// Markers returns the group of "recently changed" markers, or nil.
func (e *Element) Markers() *svg.Node { return e.markers }

// Update renders spec. The icon must already be resolved by the image
// cache. Nothing is touched when spec does not differ from the spec of
// the previous update.
func (e *Element) Update(spec Document) error {
	icon := spec.String("icon")
	img, ok := e.m.images.Get(icon)
	if !ok || img == nil {
		return ErrUnresolvedIcon
	}

	e.spec = spec
	spec = spec.Clone()
	if spec.IntOr("label_location", LabelDefault) == LabelDefault {
		spec["label_location"] = e.m.labelLocation
	}
	if !IsChanged(e.options, spec) {
		return nil
	}
	prev := e.options
	e.options = spec

	e.x, e.y = spec.Float("x"), spec.Float("y")
	e.width, e.height = float64(img.Width), float64(img.Height)
	if spec.Has("width") && spec.Has("height") {
		e.width, e.height = spec.Float("width"), spec.Float("height")
	}

	geometry := []string{"x", "y", "width", "height", "icon"}
	if changed(prev, spec, append(geometry, "highlight")...) {
		e.updateHighlight()
	}
	if changed(prev, spec, append(geometry, "latelyChanged", "label_location")...) {
		e.updateMarkers()
	}
	if changed(prev, spec, append(geometry, "actions", "elementtype")...) {
		e.updateImage()
	}
	if changed(prev, spec, append(geometry, "label", "label_location")...) {
		e.updateLabel()
	}
	return nil
}

// Remove deletes every node of the element.
func (e *Element) Remove() {
	for _, n := range []*svg.Node{e.highlight, e.markers, e.image, e.label} {
		if n != nil {
			n.Remove()
		}
	}
	e.highlight, e.markers, e.image, e.label = nil, nil, nil, nil
	e.spec, e.options = nil, nil
}

func (e *Element) updateHighlight() {
	var spec *svg.Spec
	hl := e.options.Doc("highlight")
	cx, cy := e.Center()

	switch {
	case hl.String("hl") != "":
		attrs := svg.Attrs{
			"cx":           cx,
			"cy":           cy,
			"rx":           math.Floor(e.width/2) + 10,
			"ry":           math.Floor(e.width/2) + 10,
			"fill":         paint(hl.String("hl")),
			"fill-opacity": 0.5,
			"stroke-width": 0,
		}
		if hl.Bool("ack") {
			attrs["stroke"] = ackColor
			attrs["stroke-width"] = "4px"
		}
		spec = &svg.Spec{Kind: "ellipse", Attrs: attrs}
	case hl.String("st") != "":
		spec = &svg.Spec{Kind: "rect", Attrs: svg.Attrs{
			"x":            e.x - 2,
			"y":            e.y - 2,
			"width":        e.width + 4,
			"height":       e.height + 4,
			"fill":         paint(hl.String("st")),
			"fill-opacity": 0.5,
		}}
	}

	e.highlight = e.place(e.m.layers.highlights, e.highlight, spec)
}

// updateMarkers draws arrows pointing at the icon from every side except
// the one holding the label.
func (e *Element) updateMarkers() {
	var spec *svg.Spec
	if e.options.Bool("latelyChanged") {
		cx, cy := e.Center()
		radius := math.Floor(e.width/2) + 12
		side := map[int]int{LabelTop: 0, LabelRight: 90, LabelBottom: 180, LabelLeft: 270}

		var arrows []svg.Spec
		for _, loc := range []int{LabelTop, LabelRight, LabelBottom, LabelLeft} {
			if loc == e.options.Int("label_location") {
				continue
			}
			arrows = append(arrows, svg.Spec{Kind: "path", Attrs: svg.Attrs{
				"d": markerPath,
				"transform": "rotate(" + strconv.Itoa(side[loc]) + " " + svg.FormatValue(cx) + " " + svg.FormatValue(cy) + ") " +
					"translate(" + svg.FormatValue(cx-5.5) + " " + svg.FormatValue(cy-radius-11) + ")",
			}})
		}
		spec = &svg.Spec{Kind: "g", Attrs: svg.Attrs{"class": "map-element-markers", "fill": "#f44336"}, Children: arrows}
	}

	e.markers = e.place(e.m.layers.highlights, e.markers, spec)
}

func (e *Element) updateImage() {
	attrs := svg.Attrs{
		"x":          e.x,
		"y":          e.y,
		"width":      e.width,
		"height":     e.height,
		"xlink:href": e.m.config.imagePrefix + e.options.String("icon"),
	}
	if actions := e.options.String("actions"); actions != "" && actions != "null" && hasActions(actions) {
		attrs["data-menu-popup"] = actions
		attrs["style"] = "cursor: pointer"
	}

	if e.image == nil {
		e.image = e.m.layers.elements.Add(svg.Spec{Kind: "image", Attrs: attrs})
		return
	}
	e.image.Update(attrs)
}

// hasActions reports whether an element's context menu has anything to
// show. Plain images without links have none.
func hasActions(actions string) bool {
	var menu struct {
		Data struct {
			ElementType any   `json:"elementtype"`
			URLs        []any `json:"urls"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(actions), &menu); err != nil {
		return true
	}
	typ := Document{"t": menu.Data.ElementType}.IntOr("t", -1)
	return typ != ElementImage || len(menu.Data.URLs) > 0
}

func (e *Element) updateLabel() {
	var spec *svg.Spec
	if ta, ok := e.labelArea(); ok {
		spec = &svg.Spec{Kind: svg.KindTextArea, TextArea: &ta}
	}
	e.label = e.place(e.m.layers.elements, e.label, spec)
}

// labelArea positions the label next to the icon.
func (e *Element) labelArea() (svg.TextArea, bool) {
	lines, ok := labelLines(e.options["label"])
	if !ok {
		return svg.TextArea{}, false
	}

	x, y := e.Center()
	anchor := svg.Anchor{Horizontal: svg.AnchorLeft, Vertical: svg.AnchorTop}
	switch e.options.Int("label_location") {
	case LabelBottom:
		y = e.y + e.height + svg.TextPadding
		anchor.Horizontal = svg.AnchorCenter
	case LabelLeft:
		x = e.x - svg.TextPadding
		anchor = svg.Anchor{Horizontal: svg.AnchorRight, Vertical: svg.AnchorMiddle}
	case LabelRight:
		x = e.x + e.width + svg.TextPadding
		anchor.Vertical = svg.AnchorMiddle
	case LabelTop:
		y = e.y - svg.TextPadding
		anchor = svg.Anchor{Horizontal: svg.AnchorCenter, Vertical: svg.AnchorBottom}
	}

	theme := e.m.theme
	return svg.TextArea{
		X:      x,
		Y:      y,
		Anchor: anchor,
		Attrs:  svg.Attrs{"fill": paint(theme.String("textcolor"))},
		Background: svg.Attrs{
			"fill":    paint(theme.String("backgroundcolor")),
			"opacity": 0.5,
		},
		Lines: lines,
	}, true
}

// labelLines accepts a label as a string or as a list of
// {content, attributes} objects.
func labelLines(v any) ([]svg.Line, bool) {
	switch label := v.(type) {
	case nil:
		return nil, false
	case string:
		if strings.TrimSpace(label) == "" {
			return nil, false
		}
		var lines []svg.Line
		for _, l := range strings.Split(label, "\n") {
			lines = append(lines, svg.Line{Text: l})
		}
		return lines, true
	}
	var lines []svg.Line
	for _, item := range (Document{"l": v}).List("l") {
		attrs := svg.Attrs{}
		for k, a := range item.Doc("attributes") {
			attrs[k] = a
		}
		lines = append(lines, svg.Line{Text: item.String("content"), Attrs: attrs})
	}
	return lines, len(lines) > 0
}

// place swaps old for a node built from spec in layer, keeping old's
// paint position. A nil spec removes old.
func (e *Element) place(layer, old *svg.Node, spec *svg.Spec) *svg.Node {
	if spec == nil {
		if old != nil {
			old.Remove()
		}
		return nil
	}
	n := layer.Add(*spec)
	if old != nil {
		if n == nil {
			old.Remove()
			return nil
		}
		old.Replace(n)
	}
	return n
}

// changed reports whether any of keys differs between prev and next.
func changed(prev, next Document, keys ...string) bool {
	if prev == nil {
		return true
	}
	for _, k := range keys {
		pv, nv := prev[k], next[k]
		if isContainer(nv) {
			if IsChanged(pv, nv) {
				return true
			}
			continue
		}
		if !scalarEqual(pv, nv) {
			return true
		}
	}
	return false
}
