package text

import (
	"strconv"
	"strings"
)

// DefaultFontSize is the CSS "medium" font size in pixels.
const DefaultFontSize = 16.0

// Style selects the face used to measure a string.
type Style struct {
	// Family is a CSS font-family list such as `"Trebuchet MS", sans-serif`.
	Family string

	// Size is the font size in pixels.
	Size float64

	// Bold selects the bold face when one is registered.
	Bold bool
}

// ParseFontSize converts a CSS font-size value to pixels. Relative units
// (em, %) resolve against parent. Unparseable values return parent.
func ParseFontSize(value string, parent float64) float64 {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return parent
	}

	scale := 1.0
	switch {
	case strings.HasSuffix(v, "px"):
		v = strings.TrimSuffix(v, "px")
	case strings.HasSuffix(v, "pt"):
		v = strings.TrimSuffix(v, "pt")
		scale = 4.0 / 3.0
	case strings.HasSuffix(v, "em"):
		v = strings.TrimSuffix(v, "em")
		scale = parent
	case strings.HasSuffix(v, "%"):
		v = strings.TrimSuffix(v, "%")
		scale = parent / 100
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 0 {
		return parent
	}
	return f * scale
}

// IsBold reports whether a CSS font-weight value selects a bold face.
func IsBold(weight string) bool {
	w := strings.TrimSpace(strings.ToLower(weight))
	switch w {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(w)
	return err == nil && n >= 600
}

// ParseFamilies splits a CSS font-family list into normalized names.
func ParseFamilies(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if name := normalizeFamily(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// normalizeFamily trims whitespace and quotes and lowercases a family name.
func normalizeFamily(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, `"'`)
	return strings.ToLower(strings.TrimSpace(name))
}

// Generic font families understood by the Measurer.
const (
	familySerif     = "serif"
	familySansSerif = "sans-serif"
	familyMonospace = "monospace"
)

// monospaceFamilies are well known fixed-pitch names that fall back to the
// monospace face when not registered explicitly.
var monospaceFamilies = map[string]bool{
	"courier":        true,
	"courier new":    true,
	"lucida console": true,
	"monaco":         true,
	"consolas":       true,
}
