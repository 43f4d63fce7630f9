package sysmap

import (
	"regexp"
	"strconv"
	"strings"
)

// Label locations of an element. LabelDefault defers to the map.
const (
	LabelDefault = -1
	LabelBottom  = 0
	LabelLeft    = 1
	LabelRight   = 2
	LabelTop     = 3
)

// Element types as sent by the frontend.
const (
	ElementHost      = 0
	ElementMap       = 1
	ElementTrigger   = 2
	ElementHostGroup = 3
	ElementImage     = 4
)

// Link draw types.
const (
	DrawLine   = 0
	DrawBold   = 2
	DrawDotted = 3
	DrawDashed = 4
)

// Shape types.
const (
	ShapeRectangle = 0
	ShapeEllipse   = 1
	ShapeLine      = 2
)

// Horizontal text alignment of a shape.
const (
	HAlignCenter = 0
	HAlignLeft   = 1
	HAlignRight  = 2
)

// Vertical text alignment of a shape.
const (
	VAlignMiddle = 0
	VAlignTop    = 1
	VAlignBottom = 2
)

// Shape border types.
const (
	BorderNone   = 0
	BorderSolid  = 1
	BorderDotted = 2
	BorderDashed = 3
)

// borderDash maps border types to dash patterns. "none" disables the
// border, "" is a solid line.
var borderDash = map[int]string{
	BorderNone:   "none",
	BorderSolid:  "",
	BorderDotted: "1,2",
	BorderDashed: "4,4",
}

// Fonts are the font-family stacks selectable for shape text, by index.
var Fonts = []string{
	"Georgia, serif",
	`"Palatino Linotype", "Book Antiqua", Palatino, serif`,
	`"Times New Roman", Times, serif`,
	"Arial, Helvetica, sans-serif",
	`"Arial Black", Gadget, sans-serif`,
	`"Comic Sans MS", cursive, sans-serif`,
	"Impact, Charcoal, sans-serif",
	`"Lucida Sans Unicode", "Lucida Grande", sans-serif`,
	"Tahoma, Geneva, sans-serif",
	`"Trebuchet MS", Helvetica, sans-serif`,
	"Verdana, Geneva, sans-serif",
	`"Courier New", Courier, monospace`,
	`"Lucida Console", Monaco, monospace`,
}

// DefaultFont is the index of the map's base font.
const DefaultFont = 9

// fontFamily returns the font stack for index i, or the default stack.
func fontFamily(i int) string {
	if i < 0 || i >= len(Fonts) {
		return Fonts[DefaultFont]
	}
	return Fonts[i]
}

var colorPattern = regexp.MustCompile(`(?i)^[0-9a-f]{6}$`)

// paint converts a 6-hex-digit color to an SVG paint, or "none".
func paint(color string) string {
	color = strings.TrimSpace(color)
	if !colorPattern.MatchString(color) {
		return "none"
	}
	return "#" + color
}

// dashArray scales the dash pattern of a border type to the stroke width.
// It reports whether the pattern is a dot pattern that needs round caps.
func dashArray(borderType int, strokeWidth int) (dash string, round bool) {
	dash, ok := borderDash[borderType]
	if !ok || dash == "" || dash == "none" || strokeWidth <= 1 {
		return dash, false
	}
	parts := strings.Split(dash, ",")
	for i, p := range parts {
		v, _ := strconv.ParseFloat(p, 64)
		if i == 0 && v == 1 && strokeWidth > 2 {
			round = true
		}
		parts[i] = strconv.Itoa(max(1, int(roundHalfUp(v*float64(strokeWidth)/2))))
	}
	return strings.Join(parts, ","), round
}

func roundHalfUp(v float64) float64 {
	return float64(int(v + 0.5))
}
