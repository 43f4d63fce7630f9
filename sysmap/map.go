package sysmap

import (
	"cmp"
	"context"
	"errors"
	"io"
	"slices"
	"strconv"

	"github.com/zabbix/svgmap"
	"github.com/zabbix/svgmap/imagecache"
	"github.com/zabbix/svgmap/svg"
)

// layers are the fixed, depth-ordered groups of a map.
type layers struct {
	container  *svg.Node
	background *svg.Node
	grid       *svg.Node
	shapes     *svg.Node
	highlights *svg.Node
	links      *svg.Node
	elements   *svg.Node
	marks      *svg.Node
}

// Map renders a map-options document and keeps it up to date.
//
// Update diffs each new document against the previous one and mutates
// only the entities that changed. Images are resolved through the image
// cache first, so reconciliation runs in the cache's completion callback:
// synchronously when every image is already known, otherwise during a
// later Wait. Map is not safe for concurrent use.
type Map struct {
	canvas *svg.Canvas
	images *imagecache.Cache
	config mapConfig

	layers  layers
	options Document
	theme   Document

	labelLocation int

	elements map[string]*Element
	links    map[string]*Link
	shapes   map[string]*Shape

	background   *svg.Node
	backgroundID string

	gridKey   string
	timestamp *svg.Node
	stampText string

	errs []error
}

// New creates a map from its first options document.
func New(doc Document, images *imagecache.Cache, opts ...Option) (*Map, error) {
	config := defaultMapConfig()
	for _, opt := range opts {
		opt(&config)
	}

	size := doc.Doc("canvas")
	m := &Map{
		canvas:   svg.NewCanvas(size.Int("width"), size.Int("height"), config.canvasOptions...),
		images:   images,
		config:   config,
		elements: make(map[string]*Element),
		links:    make(map[string]*Link),
		shapes:   make(map[string]*Shape),
	}
	m.createLayers(doc.Doc("theme"))
	return m, m.Update(doc, false)
}

func (m *Map) createLayers(theme Document) {
	m.theme = theme
	m.layers.container = m.canvas.Add(svg.Spec{Kind: "g", Attrs: svg.Attrs{
		"class":       "map-container",
		"font-family": Fonts[DefaultFont],
		"font-size":   "10px",
	}})
	attrs := layerAttrs(theme)
	nodes := m.layers.container.AddSpecs([]svg.Spec{
		{Kind: "g", Attrs: attrs["background"]},
		{Kind: "g", Attrs: attrs["grid"]},
		{Kind: "g", Attrs: attrs["shapes"]},
		{Kind: "g", Attrs: attrs["highlights"]},
		{Kind: "g", Attrs: attrs["links"]},
		{Kind: "g", Attrs: attrs["elements"]},
		{Kind: "g", Attrs: attrs["marks"]},
	})
	m.layers.background = nodes[0]
	m.layers.grid = nodes[1]
	m.layers.shapes = nodes[2]
	m.layers.highlights = nodes[3]
	m.layers.links = nodes[4]
	m.layers.elements = nodes[5]
	m.layers.marks = nodes[6]
}

func layerAttrs(theme Document) map[string]svg.Attrs {
	grid := paint(theme.String("gridcolor"))
	return map[string]svg.Attrs{
		"background": {"class": "map-background", "fill": paint(theme.String("backgroundcolor"))},
		"grid": {
			"class":            "map-grid",
			"stroke":           grid,
			"fill":             grid,
			"stroke-width":     1,
			"stroke-dasharray": "4,4",
			"shape-rendering":  "crispEdges",
		},
		"shapes":     {"class": "map-shapes"},
		"highlights": {"class": "map-highlights"},
		"links":      {"class": "map-links"},
		"elements":   {"class": "map-elements"},
		"marks":      {"class": "map-marks", "fill": paint(theme.String("textcolor")), "font-size": "8px"},
	}
}

// Canvas returns the scene the map renders into.
func (m *Map) Canvas() *svg.Canvas { return m.canvas }

// Options returns the merged options document of all applied updates.
func (m *Map) Options() Document { return m.options }

// Element returns the renderer of the element with the given selementid.
func (m *Map) Element(id string) (*Element, bool) {
	e, ok := m.elements[id]
	return e, ok
}

// Link returns the renderer of the link with the given linkid.
func (m *Map) Link(id string) (*Link, bool) {
	l, ok := m.links[id]
	return l, ok
}

// Shape returns the renderer of the shape with the given sysmap_shapeid.
func (m *Map) Shape(id string) (*Shape, bool) {
	s, ok := m.shapes[id]
	return s, ok
}

// Background returns the background image node, or nil.
func (m *Map) Background() *svg.Node { return m.background }

// Timestamp returns the timestamp mark, or nil.
func (m *Map) Timestamp() *svg.Node { return m.timestamp }

// WriteTo writes the rendered map as an SVG document.
func (m *Map) WriteTo(w io.Writer) (int64, error) {
	return m.canvas.WriteTo(w)
}

// Update applies a new options document. With incremental set, entities
// missing from doc are kept instead of removed; collections missing from
// doc are left untouched either way.
//
// The images doc refers to are preloaded first. When they are all cached
// the document is applied before Update returns and any render error is
// returned; otherwise it is applied during Wait, which returns the error.
func (m *Map) Update(doc Document, incremental bool) error {
	doc = normalize(doc)
	done := false
	m.images.Preload(m.imageURLs(doc), func() {
		if err := m.reconcile(doc, incremental); err != nil {
			m.errs = append(m.errs, err)
		}
		done = true
	})
	if done {
		return m.takeErr()
	}
	return nil
}

// Wait blocks until every pending update has been applied and returns
// the errors of those updates.
func (m *Map) Wait(ctx context.Context) error {
	if err := m.images.Wait(ctx); err != nil {
		return err
	}
	return m.takeErr()
}

func (m *Map) takeErr() error {
	err := errors.Join(m.errs...)
	m.errs = nil
	return err
}

// imageURLs collects the icons and background the document refers to.
func (m *Map) imageURLs(doc Document) map[string]string {
	urls := make(map[string]string)
	for _, v := range asDocument(doc["elements"]) {
		e := asDocument(v)
		if e.Has("icon") {
			icon := e.String("icon")
			urls[icon] = m.config.imagePrefix + icon
		}
	}
	if bg := doc.String("background"); bg != "" && bg != "0" {
		urls[bg] = m.config.imagePrefix + bg
	}
	return urls
}

func (m *Map) reconcile(doc Document, incremental bool) error {
	eff := Extend(m.options, doc)
	location := eff.IntOr("label_location", LabelBottom)
	restyle := location != m.labelLocation
	m.labelLocation = location

	if m.applyTheme(doc.Doc("theme")) {
		restyle = true
	}
	resized := false
	if size := doc.Doc("canvas"); size != nil {
		resized = m.canvas.Resize(size.Int("width"), size.Int("height"))
	}

	items, ok := doc["elements"].(Document)
	if ok {
		if err := m.updateElements(items, incremental); err != nil {
			return err
		}
	}
	if restyle {
		if err := m.restyleElements(items); err != nil {
			return err
		}
	}
	if items, ok := doc["shapes"].([]Document); ok {
		if err := m.updateShapes(items, incremental); err != nil {
			return err
		}
	}
	if items, ok := doc["links"].(Document); ok {
		if err := m.updateLinks(items, incremental); err != nil {
			return err
		}
	} else {
		for _, key := range sortedKeys(m.links) {
			m.links[key].refresh()
		}
	}
	m.updateBackground(eff.String("background"))
	m.updateGrid(eff)
	m.updateTimestamp(eff, resized)

	m.options = eff
	return nil
}

// applyTheme repaints the layers and forces labels to be redrawn when
// the theme colors change. It reports whether the theme changed.
func (m *Map) applyTheme(theme Document) bool {
	if theme == nil || !IsChanged(m.theme, theme) {
		return false
	}
	m.theme = Extend(m.theme, theme)
	attrs := layerAttrs(m.theme)
	for name, layer := range map[string]*svg.Node{
		"background": m.layers.background,
		"grid":       m.layers.grid,
		"marks":      m.layers.marks,
	} {
		layer.Update(svg.MergeAttributes(layer.Attrs(), attrs[name]))
	}
	for _, e := range m.elements {
		e.options = nil
	}
	for _, l := range m.links {
		l.dirty = true
	}
	return true
}

// restyleElements redraws the elements doc did not carry from their last
// spec, so a theme or label location change reaches all of them.
func (m *Map) restyleElements(updated Document) error {
	for _, key := range sortedKeys(m.elements) {
		if _, ok := updated[key]; ok {
			continue
		}
		e := m.elements[key]
		if e.spec == nil {
			continue
		}
		if err := e.Update(e.spec); err != nil {
			return &ElementError{Kind: "element", ID: key, Err: err}
		}
	}
	return nil
}

func (m *Map) updateElements(items Document, incremental bool) error {
	if !incremental {
		for _, key := range sortedKeys(m.elements) {
			if _, ok := items[key]; !ok {
				m.elements[key].Remove()
				delete(m.elements, key)
				svgmap.Logger().Debug("sysmap: element removed", "id", key)
			}
		}
	}
	for _, key := range sortedKeys(items) {
		spec := asDocument(items[key])
		if spec == nil {
			continue
		}
		e, ok := m.elements[key]
		if !ok {
			e = newElement(m, key)
			m.elements[key] = e
		}
		if err := e.Update(spec); err != nil {
			return &ElementError{Kind: "element", ID: key, Err: err}
		}
	}
	return nil
}

func (m *Map) updateLinks(items Document, incremental bool) error {
	if !incremental {
		for _, key := range sortedKeys(m.links) {
			if _, ok := items[key]; !ok {
				m.links[key].Remove()
				delete(m.links, key)
				svgmap.Logger().Debug("sysmap: link removed", "id", key)
			}
		}
	}
	for _, key := range sortedKeys(items) {
		spec := asDocument(items[key])
		if spec == nil {
			continue
		}
		l, ok := m.links[key]
		if !ok {
			l = newLink(m, key)
			m.links[key] = l
		}
		l.Update(spec)
	}
	return nil
}

func (m *Map) updateShapes(items []Document, incremental bool) error {
	keys := make([]string, len(items))
	present := make(map[string]bool, len(items))
	for i, spec := range items {
		keys[i] = spec.String("sysmap_shapeid")
		present[keys[i]] = true
	}

	if !incremental {
		for _, key := range sortedKeys(m.shapes) {
			if !present[key] {
				m.shapes[key].Remove()
				delete(m.shapes, key)
				svgmap.Logger().Debug("sysmap: shape removed", "id", key)
			}
		}
	}
	for i, spec := range items {
		s, ok := m.shapes[keys[i]]
		if !ok {
			s = newShape(m, keys[i])
			m.shapes[keys[i]] = s
		}
		if err := s.Update(spec); err != nil {
			return &ElementError{Kind: "shape", ID: keys[i], Err: err}
		}
	}
	m.orderShapes(keys)
	return nil
}

// orderShapes moves shape nodes into z-index order when an update left
// them out of order.
func (m *Map) orderShapes(keys []string) {
	var want []*svg.Node
	for _, key := range keys {
		if s, ok := m.shapes[key]; ok && s.node != nil && !slices.Contains(want, s.node) {
			want = append(want, s.node)
		}
	}
	var got []*svg.Node
	for _, n := range m.layers.shapes.Children() {
		if slices.Contains(want, n) {
			got = append(got, n)
		}
	}
	if slices.Equal(got, want) {
		return
	}
	for _, n := range want {
		m.layers.shapes.Append(n)
	}
}

// updateBackground swaps the background image. A failed image load
// leaves the map without a background.
func (m *Map) updateBackground(id string) {
	if id == "" || id == "0" {
		if m.background != nil {
			m.background.Remove()
			m.background = nil
		}
		m.backgroundID = ""
		return
	}
	if m.background != nil && id == m.backgroundID {
		return
	}

	var node *svg.Node
	if img, _ := m.images.Get(id); img != nil {
		node = m.layers.background.Add(svg.Spec{Kind: "image", Attrs: svg.Attrs{
			"x":          0,
			"y":          0,
			"width":      img.Width,
			"height":     img.Height,
			"xlink:href": m.config.imagePrefix + id,
		}})
	}
	if m.background != nil {
		m.background.Remove()
	}
	m.background = node
	m.backgroundID = id
}

// updateGrid redraws the grid when its size, visibility or the canvas
// size changed.
func (m *Map) updateGrid(eff Document) {
	show := eff.Bool("grid_show")
	size := eff.Int("grid_size")
	w, h := m.canvas.Width(), m.canvas.Height()

	key := strconv.FormatBool(show) + "/" + strconv.Itoa(size) + "/" + strconv.Itoa(w) + "x" + strconv.Itoa(h)
	if key == m.gridKey {
		return
	}
	m.gridKey = key
	m.layers.grid.Clear()
	if !show || size <= 0 {
		return
	}

	var lines []svg.Spec
	for x := size; x < w; x += size {
		lines = append(lines, svg.Spec{Kind: "line", Attrs: svg.Attrs{"x1": x, "y1": 0, "x2": x, "y2": h}})
	}
	for y := size; y < h; y += size {
		lines = append(lines, svg.Spec{Kind: "line", Attrs: svg.Attrs{"x1": 0, "y1": y, "x2": w, "y2": y}})
	}
	m.layers.grid.AddSpecs(lines)
}

// updateTimestamp shows the timestamp in the bottom right corner.
func (m *Map) updateTimestamp(eff Document, resized bool) {
	text := ""
	if eff.Bool("show_timestamp") {
		text = eff.String("timestamp")
	}
	attrs := svg.Attrs{
		"class":       "map-timestamp",
		"x":           m.canvas.Width(),
		"y":           m.canvas.Height() - svg.TextPadding,
		"text-anchor": "end",
	}

	switch {
	case text == "":
		if m.timestamp != nil {
			m.timestamp.Remove()
			m.timestamp = nil
		}
	case m.timestamp == nil || text != m.stampText:
		if m.timestamp != nil {
			m.timestamp.Remove()
		}
		m.timestamp = m.layers.marks.Add(svg.Spec{Kind: "text", Attrs: attrs, Text: text})
	case resized:
		m.timestamp.Update(attrs)
	}
	m.stampText = text
}

// normalize keys the element and link lists by identity and sorts the
// shapes by z-index. The input document is not modified.
func normalize(doc Document) Document {
	doc = doc.Clone()
	if doc == nil {
		doc = Document{}
	}
	if items, ok := keyed(doc["elements"], "selementid"); ok {
		doc["elements"] = items
	}
	if items, ok := keyed(doc["links"], "linkid"); ok {
		doc["links"] = items
	}
	if _, ok := doc["shapes"]; ok {
		shapes := doc.List("shapes")
		slices.SortStableFunc(shapes, func(a, b Document) int {
			return cmp.Compare(a.Float("zindex"), b.Float("zindex"))
		})
		doc["shapes"] = shapes
	}
	return doc
}

// keyed converts a list of objects to an object keyed by field. Objects
// are accepted as already keyed.
func keyed(v any, field string) (Document, bool) {
	switch c := v.(type) {
	case []any, []Document:
		out := make(Document)
		for _, item := range (Document{"items": c}).List("items") {
			out[item.String(field)] = item
		}
		return out, true
	case map[string]any, Document:
		out := make(Document)
		for k, item := range asDocument(c) {
			if d := asDocument(item); d != nil {
				out[k] = d
			}
		}
		return out, true
	}
	return nil, false
}

// sortedKeys orders keys numerically when they are numbers and
// lexically otherwise.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		ia, errA := strconv.Atoi(a)
		ib, errB := strconv.Atoi(b)
		switch {
		case errA == nil && errB == nil:
			return cmp.Compare(ia, ib)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		}
		return cmp.Compare(a, b)
	})
	return keys
}
