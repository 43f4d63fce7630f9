package svg

import (
	"math"
	"strconv"
	"strings"

	"github.com/zabbix/svgmap/text"
)

// HAlign is the horizontal anchor of a text block.
type HAlign int

const (
	AnchorLeft HAlign = iota
	AnchorCenter
	AnchorRight
)

// VAlign is the vertical anchor of a text block.
type VAlign int

const (
	AnchorTop VAlign = iota
	AnchorMiddle
	AnchorBottom
)

// Anchor selects which point of a text block sits at its origin.
type Anchor struct {
	Horizontal HAlign
	Vertical   VAlign
}

// textAnchor returns the SVG text-anchor matching h.
func (h HAlign) textAnchor() string {
	switch h {
	case AnchorCenter:
		return "middle"
	case AnchorRight:
		return "end"
	}
	return "start"
}

// Line is one logical line of a text block with its own attributes.
type Line struct {
	Text  string
	Attrs Attrs
}

// TextArea describes a multi-line text block.
type TextArea struct {
	// X and Y position the anchor point.
	X, Y float64

	Anchor Anchor

	// Attrs are applied to the <text> element (fill, font-size, ...).
	Attrs Attrs

	// Background, when non-nil, adds a padded rectangle behind the text
	// with these attributes. An empty non-nil set still draws it.
	Background Attrs

	// Clip constrains the text to a rect, ellipse or circle given in the
	// parent's coordinates. Its width also bounds line wrapping.
	Clip *Spec

	// ParseLinks turns ftp, file and http(s) URLs into hyperlinks.
	ParseLinks bool

	// Text is split on newlines. Lines, when set, takes precedence.
	Text  string
	Lines []Line
}

func (ta TextArea) lines() []Line {
	if len(ta.Lines) > 0 {
		return ta.Lines
	}
	parts := strings.Split(ta.Text, "\n")
	lines := make([]Line, len(parts))
	for i, p := range parts {
		lines[i] = Line{Text: p}
	}
	return lines
}

// blank reports whether there is nothing to draw.
func (ta TextArea) blank() bool {
	if len(ta.Lines) == 0 {
		return strings.TrimSpace(ta.Text) == ""
	}
	for _, l := range ta.Lines {
		if strings.TrimSpace(l.Text) != "" {
			return false
		}
	}
	return true
}

// clipWidth returns the width available to text inside the clip shape,
// or 0 when there is no clip.
func (ta TextArea) clipWidth() float64 {
	if ta.Clip == nil {
		return 0
	}
	switch ta.Clip.Kind {
	case "ellipse":
		return 2 * ta.Clip.Attrs.Float("rx")
	case "circle":
		return 2 * ta.Clip.Attrs.Float("r")
	}
	return ta.Clip.Attrs.Float("width")
}

// textBlock is the transient state of one layout.
type textBlock struct {
	canvas *Canvas
	area   TextArea
	parent *Node

	x, y          float64
	width, height float64
	offset        float64
}

// layout renders ta under parent and returns the group node holding it.
func (c *Canvas) layout(ta TextArea, parent *Node) *Node {
	if ta.blank() {
		return nil
	}
	b := &textBlock{canvas: c, area: ta, parent: parent, x: ta.X, y: ta.Y}

	textAttrs := ta.Attrs.Clone()
	if textAttrs == nil {
		textAttrs = Attrs{}
	}
	tspans, lines := b.buildLines(textAttrs)

	group := c.Create(Spec{Kind: "g"}, parent, nil)
	var background *Node
	if ta.Background != nil {
		b.x -= TextPadding
		b.y -= TextPadding
		b.offset = TextPadding
		background = group.Add(Spec{Kind: "rect", Attrs: ta.Background})
	}
	textNode := group.Add(Spec{Kind: "text", Attrs: textAttrs, Children: tspans})

	b.measure(textAttrs, lines)
	b.alignToAnchor()

	if background != nil {
		background.Update(MergeAttributes(background.Attrs(), Attrs{
			"width":  b.width + 2*TextPadding,
			"height": b.height + 2*TextPadding,
		}))
	}
	if ta.Clip != nil {
		b.clip(group, textNode)
	}

	textNode.Update(MergeAttributes(textNode.Attrs(), Attrs{
		"transform": "translate(" + FormatValue(b.hOffset()+b.offset) + " " + FormatValue(b.offset) + ")",
	}))
	group.Update(Attrs{
		"transform": "translate(" + FormatValue(b.x) + " " + FormatValue(b.y) + ")",
	})
	return group
}

// laidLine is a wrapped line with the spacing before it, in tenths of an em.
type laidLine struct {
	text  string
	attrs Attrs
	skip  int
}

// buildLines wraps the logical lines and returns the tspan specs along
// with the measured lines they came from.
func (b *textBlock) buildLines(textAttrs Attrs) ([]Spec, []laidLine) {
	anchor := b.area.Anchor.Horizontal.textAnchor()
	maxWidth := b.area.clipWidth() - 2*TextPadding

	var (
		specs []Spec
		lines []laidLine
		skip  = 9
	)
	for _, line := range b.area.lines() {
		if strings.TrimSpace(line.Text) == "" {
			skip += 12
			continue
		}
		content := strings.ReplaceAll(line.Text, "\r", "")
		st := b.canvas.styleOf(b.parent, textAttrs, line.Attrs)
		for _, wrapped := range b.wrap(content, st, maxWidth) {
			attrs := MergeAttributes(Attrs{
				"x":           0,
				"dy":          strconv.FormatFloat(float64(skip)/10, 'f', -1, 64) + "em",
				"text-anchor": anchor,
			}, line.Attrs)
			spec := Spec{Kind: "tspan", Attrs: attrs}
			if b.area.ParseLinks {
				spec.Children = linkSpecs(ParseLinks(wrapped))
			} else {
				spec.Text = wrapped
			}
			specs = append(specs, spec)
			lines = append(lines, laidLine{text: wrapped, attrs: line.Attrs, skip: skip})
			skip = 12
		}
	}
	return specs, lines
}

// wrap splits line into lines no wider than maxWidth, breaking between
// words only. Without a shadow buffer or a clip width line is returned
// unchanged.
func (b *textBlock) wrap(line string, st text.Style, maxWidth float64) []string {
	if b.area.Clip == nil {
		return []string{line}
	}
	width, ok := b.canvas.measureShadow(line, st)
	if !ok || width <= maxWidth {
		return []string{line}
	}

	var (
		out   []string
		words []string
	)
	for _, word := range strings.Split(line, " ") {
		words = append(words, word)
		w, _ := b.canvas.measureShadow(strings.Join(words, " "), st)
		if w <= maxWidth {
			continue
		}
		if len(words) > 1 {
			out = append(out, strings.Join(words[:len(words)-1], " "))
			words = words[len(words)-1:]
		} else {
			out = append(out, word)
			words = nil
		}
	}
	if len(words) > 0 {
		out = append(out, strings.Join(words, " "))
	}
	return out
}

// measure computes the block size the way a bounding box query on the
// rendered text would: the widest line by the bottom of the last line.
func (b *textBlock) measure(textAttrs Attrs, lines []laidLine) {
	var width, baseline, bottom float64
	for _, l := range lines {
		st := b.canvas.styleOf(b.parent, textAttrs, l.attrs)
		ext := b.canvas.measurer.Measure(l.text, st)
		baseline += float64(l.skip) / 10 * st.Size
		width = max(width, ext.Width)
		bottom = baseline + ext.Descent
	}
	b.width = math.Ceil(width)
	b.height = math.Ceil(bottom)
}

// hOffset is the distance from the block's left edge to its anchor.
func (b *textBlock) hOffset() float64 {
	switch b.area.Anchor.Horizontal {
	case AnchorCenter:
		return math.Floor(b.width / 2)
	case AnchorRight:
		return b.width
	}
	return 0
}

func (b *textBlock) alignToAnchor() {
	b.x -= b.hOffset()
	switch b.area.Anchor.Vertical {
	case AnchorMiddle:
		b.y -= math.Floor(b.height / 2)
	case AnchorBottom:
		b.y -= b.height
	}
}

// clip attaches the clip shape to the text element, as a clip-path or as
// a mask depending on the canvas mode. The shape is moved into the text
// element's coordinate space first.
func (b *textBlock) clip(group, textNode *Node) {
	dx := b.x + b.hOffset() + b.offset
	dy := b.y + b.offset

	shape := *b.area.Clip
	attrs := shape.Attrs.Clone()
	if attrs == nil {
		attrs = Attrs{}
	}
	switch shape.Kind {
	case "ellipse", "circle":
		attrs["cx"] = attrs.Float("cx") - dx
		attrs["cy"] = attrs.Float("cy") - dy
	case "line":
		attrs["x1"] = attrs.Float("x1") - dx
		attrs["y1"] = attrs.Float("y1") - dy
		attrs["x2"] = attrs.Float("x2") - dx
		attrs["y2"] = attrs.Float("y2") - dy
	default:
		attrs["x"] = attrs.Float("x") - dx
		attrs["y"] = attrs.Float("y") - dy
	}
	shape = Spec{Kind: shape.Kind, Attrs: attrs}

	if b.canvas.config.mask {
		id := "mask-" + strconv.FormatInt(UniqueID(), 10)
		shape.Attrs["fill"] = "#ffffff"
		group.Add(Spec{Kind: "mask", Attrs: Attrs{"id": id}, Children: []Spec{
			{Kind: "rect", Attrs: Attrs{
				"x":      -b.hOffset() - b.offset,
				"y":      -b.offset,
				"width":  b.width + 2*b.offset,
				"height": b.height + 2*b.offset,
				"fill":   MaskColor,
			}},
			shape,
		}})
		textNode.Update(MergeAttributes(textNode.Attrs(), Attrs{"mask": "url(#" + id + ")"}))
		return
	}

	id := "clip-" + strconv.FormatInt(UniqueID(), 10)
	group.Add(Spec{Kind: "clipPath", Attrs: Attrs{"id": id}, Children: []Spec{shape}})
	textNode.Update(MergeAttributes(textNode.Attrs(), Attrs{"clip-path": "url(#" + id + ")"}))
}
