// Package text measures strings against real font data.
//
// The measurement pipeline follows a separation of concerns:
//
//   - FontSource: heavyweight, shared font resource (parses TTF/OTF data)
//   - Face: lightweight font instance at a specific pixel size
//   - Shaper: turns a run of text into an advance width (HarfBuzz by default)
//   - Measurer: resolves a CSS-like Style to a Face and returns Extents
//
// Extents follow SVG getBBox semantics for text: the width is the sum of
// glyph advances and the vertical extent is the font's ascent and descent,
// independent of the glyphs actually present.
//
// # Example usage
//
//	m := text.Default()
//	ext := m.Measure("Host A", text.Style{Family: "Arial, sans-serif", Size: 10})
//	fmt.Println(ext.Width, ext.Height())
//
// Custom fonts are registered per family name:
//
//	src, err := text.NewFontSourceFromFile("DejaVuSans.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m := text.NewMeasurer(text.WithFamily("dejavu sans", src))
package text
