package sysmap

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestMapRendersElement(t *testing.T) {
	m, _ := newTestMap(t, mustDoc(t, baseDoc))

	e, ok := m.Element("1")
	if !ok {
		t.Fatal("Element(1) not found")
	}
	img := e.Image()
	if got := attr(t, img, "xlink:href"); got != "imgstore.php?iconid=i1" {
		t.Errorf("xlink:href = %q", got)
	}
	for name, want := range map[string]string{"x": "10", "y": "20", "width": "32", "height": "32"} {
		if got := attr(t, img, name); got != want {
			t.Errorf("image %s = %q, want %q", name, got, want)
		}
	}
	if e.Highlight() != nil || e.Markers() != nil {
		t.Error("element has highlight or markers, want none")
	}
	label := e.Label()
	if label == nil {
		t.Fatal("Label() = nil")
	}
	if got := label.Text(); got != "Host A" {
		t.Errorf("label text = %q, want %q", got, "Host A")
	}
	if got := attr(t, child(t, label, "rect"), "opacity"); got != "0.5" {
		t.Errorf("label background opacity = %q", got)
	}
	if got := attr(t, child(t, child(t, label, "text"), "tspan"), "text-anchor"); got != "middle" {
		t.Errorf("bottom label text-anchor = %q, want middle", got)
	}
	if got := attr(t, label, "transform"); !strings.HasPrefix(got, "translate(") || !strings.HasSuffix(got, " 52)") {
		t.Errorf("label transform = %q, want y 52", got)
	}
}

func TestMapSameDocumentNoMutations(t *testing.T) {
	m, rec := newTestMap(t, mustDoc(t, baseDoc))
	rec.reset()

	apply(t, m, mustDoc(t, baseDoc), false)
	if len(rec.mutations) != 0 {
		t.Errorf("re-applying the same document made %d mutations: %v", len(rec.mutations), rec.mutations)
	}
}

func TestMapLabelChangeKeepsImage(t *testing.T) {
	m, rec := newTestMap(t, mustDoc(t, baseDoc))
	e, _ := m.Element("1")
	img, oldLabel := e.Image(), e.Label()
	rec.reset()

	apply(t, m, mustDoc(t, strings.Replace(baseDoc, `"Host A"`, `"Host B"`, 1)), false)

	if e.Image() != img {
		t.Error("image node was replaced")
	}
	if rec.touched(img.ID()) {
		t.Error("image node was mutated by a label change")
	}
	if e.Label() == oldLabel || !oldLabel.Removed() {
		t.Error("old label was not replaced")
	}
	if got := e.Label().Text(); got != "Host B" {
		t.Errorf("label text = %q, want %q", got, "Host B")
	}
	elements := m.layers.elements.Children()
	if len(elements) != 2 || elements[0] != img || elements[1] != e.Label() {
		t.Error("image and label are not in paint order")
	}
}

func TestMapRemovesMissingElements(t *testing.T) {
	tests := []struct {
		name        string
		incremental bool
		wantKept    bool
	}{
		{"full", false, false},
		{"incremental", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMap(t, mustDoc(t, baseDoc))
			e, _ := m.Element("1")
			img := e.Image()

			apply(t, m, mustDoc(t, `{"elements": []}`), tt.incremental)

			_, ok := m.Element("1")
			if ok != tt.wantKept {
				t.Errorf("Element(1) present = %v, want %v", ok, tt.wantKept)
			}
			if img.Removed() == tt.wantKept {
				t.Errorf("image removed = %v, want %v", img.Removed(), !tt.wantKept)
			}
		})
	}
}

func TestMapMissingCollectionsUntouched(t *testing.T) {
	m, _ := newTestMap(t, mustDoc(t, baseDoc))
	apply(t, m, mustDoc(t, `{"grid_show": 0}`), false)
	if _, ok := m.Element("1"); !ok {
		t.Error("element removed by a document without elements")
	}
}

func TestMapUnresolvedIcon(t *testing.T) {
	doc := mustDoc(t, `{
		"canvas": {"width": 100, "height": 100},
		"elements": [{"selementid": "7", "x": 0, "y": 0, "icon": "missing"}]
	}`)
	m, err := New(doc, newImages())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	err = waitErr(m)
	if !errors.Is(err, ErrUnresolvedIcon) {
		t.Fatalf("Wait() error = %v, want ErrUnresolvedIcon", err)
	}
	var ee *ElementError
	if !errors.As(err, &ee) || ee.Kind != "element" || ee.ID != "7" {
		t.Errorf("error = %#v, want element 7", ee)
	}

	// The failed icon is cached, so the next update fails synchronously.
	if err := m.Update(doc, false); !errors.Is(err, ErrUnresolvedIcon) {
		t.Errorf("Update() error = %v, want ErrUnresolvedIcon", err)
	}
}

func TestMapElementSize(t *testing.T) {
	m, _ := newTestMap(t, mustDoc(t, `{
		"canvas": {"width": 400, "height": 300},
		"elements": [
			{"selementid": "1", "x": 0, "y": 0, "icon": "i1"},
			{"selementid": "2", "x": 0, "y": 0, "icon": "i1", "width": 64, "height": 48},
			{"selementid": "3", "x": 0, "y": 0, "icon": "i1", "width": 64}
		]
	}`))
	tests := []struct {
		id   string
		w, h float64
	}{
		{"1", 32, 32},
		{"2", 64, 48},
		{"3", 32, 32},
	}
	for _, tt := range tests {
		e, _ := m.Element(tt.id)
		_, _, w, h := e.Bounds()
		if w != tt.w || h != tt.h {
			t.Errorf("element %s size = %vx%v, want %vx%v", tt.id, w, h, tt.w, tt.h)
		}
	}
}

func TestMapHighlight(t *testing.T) {
	tests := []struct {
		name      string
		highlight string
		kind      string
		attrs     map[string]string
	}{
		{
			name:      "problem",
			highlight: `{"hl": "FF0000"}`,
			kind:      "ellipse",
			attrs:     map[string]string{"cx": "26", "cy": "36", "rx": "26", "fill": "#FF0000", "stroke-width": "0"},
		},
		{
			name:      "acknowledged",
			highlight: `{"hl": "FF0000", "ack": true}`,
			kind:      "ellipse",
			attrs:     map[string]string{"stroke": "#329632", "stroke-width": "4px"},
		},
		{
			name:      "status",
			highlight: `{"st": "00FF00"}`,
			kind:      "rect",
			attrs:     map[string]string{"x": "8", "y": "18", "width": "36", "height": "36", "fill": "#00FF00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(baseDoc, `"label_location": -1`, `"label_location": -1, "highlight": `+tt.highlight, 1)
			m, _ := newTestMap(t, mustDoc(t, doc))
			e, _ := m.Element("1")
			hl := e.Highlight()
			if hl == nil || hl.Kind() != tt.kind {
				t.Fatalf("Highlight() = %v, want %s", hl, tt.kind)
			}
			for name, want := range tt.attrs {
				if got := attr(t, hl, name); got != want {
					t.Errorf("%s = %q, want %q", name, got, want)
				}
			}
		})
	}
}

func TestMapMarkers(t *testing.T) {
	doc := strings.Replace(baseDoc, `"label_location": -1`, `"label_location": -1, "latelyChanged": true`, 1)
	m, _ := newTestMap(t, mustDoc(t, doc))
	e, _ := m.Element("1")
	markers := e.Markers()
	if markers == nil {
		t.Fatal("Markers() = nil")
	}
	paths := markers.Children()
	if len(paths) != 3 {
		t.Fatalf("got %d markers, want 3 (label side skipped)", len(paths))
	}
	if got := attr(t, paths[0], "transform"); got != "rotate(0 26 36) translate(20.5 -3)" {
		t.Errorf("top marker transform = %q", got)
	}
	for _, p := range paths {
		if strings.HasPrefix(attr(t, p, "transform"), "rotate(180 ") {
			t.Error("marker drawn on the label side")
		}
	}

	apply(t, m, mustDoc(t, strings.Replace(doc, `"latelyChanged": true`, `"latelyChanged": false`, 1)), false)
	if e.Markers() != nil || !markers.Removed() {
		t.Error("markers not removed")
	}
}

func TestMapActions(t *testing.T) {
	tests := []struct {
		name    string
		actions string
		want    bool
	}{
		{"host", `{"data":{"elementtype":"0"}}`, true},
		{"plain image", `{"data":{"elementtype":"4"}}`, false},
		{"image with urls", `{"data":{"elementtype":4,"urls":[{"url":"x"}]}}`, true},
		{"null", `null`, false},
		{"not json", `menu`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, baseDoc)
			doc.List("elements")[0]["actions"] = tt.actions
			m, _ := newTestMap(t, doc)
			e, _ := m.Element("1")
			popup, ok := e.Image().Attr("data-menu-popup")
			if ok != tt.want {
				t.Fatalf("data-menu-popup present = %v, want %v", ok, tt.want)
			}
			if ok && popup != tt.actions {
				t.Errorf("data-menu-popup = %q, want %q", popup, tt.actions)
			}
		})
	}
}

func TestMapLabelLocations(t *testing.T) {
	tests := []struct {
		location string
		anchor   string
	}{
		{"0", "middle"},
		{"1", "end"},
		{"2", "start"},
		{"3", "middle"},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			doc := strings.Replace(baseDoc, `"label_location": -1`, `"label_location": `+tt.location, 1)
			m, _ := newTestMap(t, mustDoc(t, doc))
			e, _ := m.Element("1")
			span := child(t, child(t, e.Label(), "text"), "tspan")
			if got := attr(t, span, "text-anchor"); got != tt.anchor {
				t.Errorf("text-anchor = %q, want %q", got, tt.anchor)
			}
		})
	}
}

func TestMapMultilineLabel(t *testing.T) {
	doc := mustDoc(t, baseDoc)
	doc.List("elements")[0]["label"] = []any{
		map[string]any{"content": "Host A"},
		map[string]any{"content": "PROBLEM", "attributes": map[string]any{"fill": "#FF0000"}},
	}
	m, _ := newTestMap(t, doc)
	e, _ := m.Element("1")
	spans := child(t, e.Label(), "text").Children()
	if len(spans) != 2 {
		t.Fatalf("got %d lines, want 2", len(spans))
	}
	if got := attr(t, spans[1], "fill"); got != "#FF0000" {
		t.Errorf("second line fill = %q", got)
	}
}

func TestMapLinks(t *testing.T) {
	doc := mustDoc(t, `{
		"canvas": {"width": 400, "height": 300},
		"theme": {"backgroundcolor": "FFFFFF", "textcolor": "000000"},
		"elements": [
			{"selementid": "1", "x": 0, "y": 0, "icon": "i1"},
			{"selementid": "2", "x": 100, "y": 0, "icon": "i1"}
		],
		"links": [
			{"linkid": "10", "selementid1": "1", "selementid2": "2", "color": "FF0000", "drawtype": 2, "label": "uplink"},
			{"linkid": "11", "selementid1": "1", "selementid2": "2", "color": "00FF00", "drawtype": 3},
			{"linkid": "12", "selementid1": "1", "selementid2": "9", "color": "00FF00", "drawtype": 0}
		]
	}`)
	m, _ := newTestMap(t, doc)

	bold, _ := m.Link("10")
	g := bold.Node()
	if g == nil {
		t.Fatal("link 10 not drawn")
	}
	if got := attr(t, g, "stroke"); got != "#FF0000" {
		t.Errorf("stroke = %q", got)
	}
	if got := attr(t, g, "stroke-width"); got != "2" {
		t.Errorf("bold stroke-width = %q, want 2", got)
	}
	line := child(t, g, "line")
	for name, want := range map[string]string{"x1": "16", "y1": "16", "x2": "116", "y2": "16"} {
		if got := attr(t, line, name); got != want {
			t.Errorf("line %s = %q, want %q", name, got, want)
		}
	}
	label := child(t, g, "g")
	if got := label.Text(); got != "uplink" {
		t.Errorf("link label = %q", got)
	}

	dotted, _ := m.Link("11")
	if got := attr(t, child(t, dotted.Node(), "line"), "stroke-dasharray"); got != "1,2" {
		t.Errorf("dotted dasharray = %q, want 1,2", got)
	}
	if len(dotted.Node().Children()) != 1 {
		t.Error("link without label has a label node")
	}

	dangling, _ := m.Link("12")
	if dangling.Node() != nil {
		t.Error("link with a missing endpoint was drawn")
	}
}

func TestMapLinkFollowsElement(t *testing.T) {
	doc := `{
		"canvas": {"width": 400, "height": 300},
		"elements": [
			{"selementid": "1", "x": 0, "y": 0, "icon": "i1"},
			{"selementid": "2", "x": X2, "y": 0, "icon": "i1"}
		],
		"links": [{"linkid": "10", "selementid1": "1", "selementid2": "2", "drawtype": 0}]
	}`
	m, _ := newTestMap(t, mustDoc(t, strings.Replace(doc, "X2", "100", 1)))
	l, _ := m.Link("10")
	old := l.Node()

	apply(t, m, mustDoc(t, strings.Replace(doc, "X2", "200", 1)), false)
	if l.Node() == old {
		t.Fatal("link not redrawn after its endpoint moved")
	}
	if got := attr(t, child(t, l.Node(), "line"), "x2"); got != "216" {
		t.Errorf("x2 = %q, want 216", got)
	}

	// Elements moved without a links list still drag the link along.
	partial := strings.Replace(doc, "X2", "300", 1)
	partial = partial[:strings.Index(partial, `,
		"links"`)] + "}"
	apply(t, m, mustDoc(t, partial), true)
	if got := attr(t, child(t, l.Node(), "line"), "x2"); got != "316" {
		t.Errorf("x2 after partial update = %q, want 316", got)
	}
}

func TestMapLinkGroupFallback(t *testing.T) {
	m, _ := newTestMap(t, mustDoc(t, `{
		"canvas": {"width": 400, "height": 300},
		"shapes": [
			{"sysmap_shapeid": "e5", "type": 0, "x": 0, "y": 0, "width": 40, "height": 20},
			{"sysmap_shapeid": "e6", "type": 0, "x": 100, "y": 100, "width": 40, "height": 20}
		],
		"links": [{"linkid": "1", "selementid1": "5", "selementid2": "6"}]
	}`))
	l, _ := m.Link("1")
	if l.Node() == nil {
		t.Fatal("group link not drawn")
	}
	line := child(t, l.Node(), "line")
	for name, want := range map[string]string{"x1": "20", "y1": "10", "x2": "120", "y2": "110"} {
		if got := attr(t, line, name); got != want {
			t.Errorf("line %s = %q, want %q", name, got, want)
		}
	}
}

func TestMapLinkElementToGroup(t *testing.T) {
	m, _ := newTestMap(t, mustDoc(t, `{
		"canvas": {"width": 400, "height": 300},
		"elements": [{"selementid": "5", "x": 0, "y": 0, "icon": "i1"}],
		"shapes": [
			{"sysmap_shapeid": "e5", "type": 0, "x": 0, "y": 0, "width": 40, "height": 20},
			{"sysmap_shapeid": "e6", "type": 0, "x": 100, "y": 100, "width": 40, "height": 20}
		],
		"links": [{"linkid": "1", "selementid1": "5", "selementid2": "6"}]
	}`))
	l, ok := m.Link("1")
	if !ok {
		t.Fatal("link not tracked")
	}
	if l.Node() != nil {
		t.Error("link between an element and a group drawn")
	}
}

func TestMapShapes(t *testing.T) {
	m, _ := newTestMap(t, mustDoc(t, `{
		"canvas": {"width": 400, "height": 300},
		"shapes": [
			{"sysmap_shapeid": "3", "type": 2, "x": 0, "y": 0, "width": 50, "height": 60, "zindex": 2,
				"border_color": "000000", "border_width": 3, "border_type": 2, "text": "ignored"},
			{"sysmap_shapeid": "1", "type": 0, "x": 10, "y": 10, "width": 100, "height": 40, "zindex": 0,
				"background_color": "FFCC00", "border_width": 2, "border_type": 0,
				"text": "Rack 1", "font": 11, "font_size": 12, "font_color": "112233", "text_halign": 1, "text_valign": 1},
			{"sysmap_shapeid": "2", "type": 1, "x": 200, "y": 100, "width": 80, "height": 40, "zindex": 1,
				"background_color": "bogus"}
		]
	}`))

	children := m.layers.shapes.Children()
	var order []string
	for _, c := range children {
		order = append(order, c.Kind())
	}
	if want := []string{"g", "ellipse", "line"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("shape order = %v, want %v", order, want)
	}

	rack, _ := m.Shape("1")
	rect := child(t, rack.Node(), "rect")
	if got := attr(t, rect, "fill"); got != "#FFCC00" {
		t.Errorf("rect fill = %q", got)
	}
	if got := attr(t, rect, "stroke-width"); got != "0" {
		t.Errorf("border type none stroke-width = %q, want 0", got)
	}
	label := child(t, rack.Node(), "g")
	if got := label.Text(); got != "Rack 1" {
		t.Errorf("shape text = %q", got)
	}
	textNode := child(t, label, "text")
	for name, want := range map[string]string{"font-family": Fonts[11], "font-size": "12px", "fill": "#112233"} {
		if got := attr(t, textNode, name); got != want {
			t.Errorf("text %s = %q, want %q", name, got, want)
		}
	}
	if got := attr(t, child(t, textNode, "tspan"), "text-anchor"); got != "start" {
		t.Errorf("left aligned text-anchor = %q", got)
	}
	if got := attr(t, textNode, "clip-path"); !strings.HasPrefix(got, "url(#clip-") {
		t.Errorf("clip-path = %q", got)
	}

	ellipse, _ := m.Shape("2")
	for name, want := range map[string]string{"cx": "240", "cy": "120", "rx": "40", "ry": "20", "fill": "none"} {
		if got := attr(t, ellipse.Node(), name); got != want {
			t.Errorf("ellipse %s = %q, want %q", name, got, want)
		}
	}

	line, _ := m.Shape("3")
	for name, want := range map[string]string{"x1": "0", "y1": "0", "x2": "50", "y2": "60", "stroke-dasharray": "2,3", "stroke-linecap": "round"} {
		if got := attr(t, line.Node(), name); got != want {
			t.Errorf("line %s = %q, want %q", name, got, want)
		}
	}
	if _, ok := line.Node().Attr("fill"); ok {
		t.Error("line shape has a fill")
	}
}

func TestMapShapesReorder(t *testing.T) {
	doc := `{
		"canvas": {"width": 400, "height": 300},
		"shapes": [
			{"sysmap_shapeid": "a", "type": 0, "x": 0, "y": 0, "width": 10, "height": 10, "zindex": ZA},
			{"sysmap_shapeid": "b", "type": 1, "x": 0, "y": 0, "width": 10, "height": 10, "zindex": ZB}
		]
	}`
	m, _ := newTestMap(t, mustDoc(t, strings.NewReplacer("ZA", "0", "ZB", "1").Replace(doc)))
	apply(t, m, mustDoc(t, strings.NewReplacer("ZA", "5", "ZB", "1").Replace(doc)), false)

	var order []string
	for _, c := range m.layers.shapes.Children() {
		order = append(order, c.Kind())
	}
	if want := []string{"ellipse", "rect"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestMapInvalidShape(t *testing.T) {
	m, err := New(mustDoc(t, `{
		"canvas": {"width": 100, "height": 100},
		"shapes": [{"sysmap_shapeid": "4", "type": 9}]
	}`), newImages())
	if !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("New() error = %v, want ErrInvalidShape", err)
	}
	if m == nil {
		t.Fatal("New() returned a nil map")
	}
	var ee *ElementError
	if !errors.As(err, &ee) || ee.Kind != "shape" || ee.ID != "4" {
		t.Errorf("error = %#v, want shape 4", ee)
	}
}

func TestMapBackground(t *testing.T) {
	m, _ := newTestMap(t, mustDoc(t, `{"canvas": {"width": 400, "height": 300}, "background": "b1"}`))
	bg := m.Background()
	if got := attr(t, bg, "xlink:href"); got != "imgstore.php?iconid=b1" {
		t.Errorf("background href = %q", got)
	}
	if got := attr(t, bg, "width"); got != "32" {
		t.Errorf("background width = %q", got)
	}

	apply(t, m, mustDoc(t, `{"background": "b1"}`), false)
	if m.Background() != bg {
		t.Error("unchanged background was redrawn")
	}

	apply(t, m, mustDoc(t, `{"background": "missing"}`), false)
	if m.Background() != nil || !bg.Removed() {
		t.Error("failed background load left an image behind")
	}

	apply(t, m, mustDoc(t, `{"background": "b2"}`), false)
	if m.Background() == nil {
		t.Fatal("background b2 not drawn")
	}
	apply(t, m, mustDoc(t, `{"background": "0"}`), false)
	if m.Background() != nil {
		t.Error(`background "0" did not remove the image`)
	}
}

func TestMapGrid(t *testing.T) {
	m, rec := newTestMap(t, mustDoc(t, `{"canvas": {"width": 400, "height": 300}, "grid_show": 1, "grid_size": 100}`))
	lines := m.layers.grid.Children()
	if len(lines) != 5 {
		t.Fatalf("got %d grid lines, want 5", len(lines))
	}
	if got := attr(t, lines[0], "x1"); got != "100" {
		t.Errorf("first line x1 = %q", got)
	}

	rec.reset()
	apply(t, m, mustDoc(t, `{"grid_size": 100}`), false)
	if len(rec.mutations) != 0 {
		t.Errorf("unchanged grid made %d mutations", len(rec.mutations))
	}

	apply(t, m, mustDoc(t, `{"grid_show": 0}`), false)
	if n := len(m.layers.grid.Children()); n != 0 {
		t.Errorf("hidden grid has %d lines", n)
	}
}

func TestMapTimestamp(t *testing.T) {
	m, _ := newTestMap(t, mustDoc(t, `{
		"canvas": {"width": 400, "height": 300},
		"show_timestamp": 1,
		"timestamp": "2026-10-14 10:00:00"
	}`))
	ts := m.Timestamp()
	if ts == nil || ts.Text() != "2026-10-14 10:00:00" {
		t.Fatalf("Timestamp() = %v", ts)
	}
	if got := attr(t, ts, "y"); got != "295" {
		t.Errorf("y = %q, want 295", got)
	}

	apply(t, m, mustDoc(t, `{"canvas": {"width": 500, "height": 300}}`), false)
	if m.Timestamp() != ts {
		t.Error("timestamp recreated on resize")
	}
	if got := attr(t, ts, "x"); got != "500" {
		t.Errorf("x after resize = %q, want 500", got)
	}

	apply(t, m, mustDoc(t, `{"show_timestamp": 0}`), false)
	if m.Timestamp() != nil {
		t.Error("timestamp not hidden")
	}
}

func TestMapThemeChange(t *testing.T) {
	m, _ := newTestMap(t, mustDoc(t, baseDoc))
	e, _ := m.Element("1")
	label := e.Label()

	doc := mustDoc(t, baseDoc)
	doc["theme"] = map[string]any{"textcolor": "FF0000"}
	apply(t, m, doc, false)

	if got := attr(t, m.layers.marks, "fill"); got != "#FF0000" {
		t.Errorf("marks fill = %q", got)
	}
	if got := attr(t, m.layers.background, "fill"); got != "#FFFFFF" {
		t.Errorf("background fill = %q, want the previous theme color", got)
	}
	if e.Label() == label {
		t.Fatal("label not redrawn after a theme change")
	}
	if got := attr(t, child(t, e.Label(), "text"), "fill"); got != "#FF0000" {
		t.Errorf("label fill = %q", got)
	}
}

func TestMapThemeOnlyDocument(t *testing.T) {
	m, _ := newTestMap(t, mustDoc(t, baseDoc))
	e, _ := m.Element("1")
	label := e.Label()

	apply(t, m, mustDoc(t, `{"theme": {"textcolor": "FF0000"}}`), false)

	if e.Label() == label {
		t.Fatal("label not redrawn after a theme-only update")
	}
	if got := attr(t, child(t, e.Label(), "text"), "fill"); got != "#FF0000" {
		t.Errorf("label fill = %q, want #FF0000", got)
	}
	if _, ok := m.Element("1"); !ok {
		t.Error("element removed by a document without elements")
	}
}

func TestMapLabelLocationOnlyDocument(t *testing.T) {
	doc := strings.Replace(baseDoc, `"label_location": -1}`,
		`"label_location": -1},
		{"selementid": "2", "x": 100, "y": 20, "icon": "i1", "label": "Host B", "label_location": 3}`, 1)
	m, _ := newTestMap(t, mustDoc(t, doc))
	def, _ := m.Element("1")
	own, _ := m.Element("2")
	ownLabel := own.Label()

	apply(t, m, mustDoc(t, `{"label_location": 1}`), false)

	if got := def.options.Int("label_location"); got != LabelLeft {
		t.Errorf("label_location = %d, want %d", got, LabelLeft)
	}
	span := child(t, child(t, def.Label(), "text"), "tspan")
	if got := attr(t, span, "text-anchor"); got != "end" {
		t.Errorf("text-anchor = %q, want end", got)
	}
	if own.Label() != ownLabel {
		t.Error("label with its own location redrawn")
	}
}

func TestMapWriteTo(t *testing.T) {
	m, _ := newTestMap(t, mustDoc(t, baseDoc))
	var b strings.Builder
	if _, err := m.WriteTo(&b); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	out := b.String()
	for _, want := range []string{`class="map-container"`, `imgstore.php?iconid=i1`, "Host A"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
}

func TestMapImagePrefix(t *testing.T) {
	m, err := New(mustDoc(t, baseDoc), newImages(), WithImagePrefix("icons/"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	wait(t, m)
	e, _ := m.Element("1")
	if got := attr(t, e.Image(), "xlink:href"); got != "icons/i1" {
		t.Errorf("xlink:href = %q, want icons/i1", got)
	}
}
