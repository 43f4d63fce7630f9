package text

// Shaper computes the advance width of a single-direction run.
// Implementations must be safe for concurrent use.
type Shaper interface {
	Advance(text string, face Face, dir Direction) float64
}

// BuiltinShaper sums per-glyph advances without kerning or ligatures.
type BuiltinShaper struct{}

// Advance implements Shaper.
func (BuiltinShaper) Advance(text string, face Face, _ Direction) float64 {
	if text == "" || face == nil {
		return 0
	}
	return face.Advance(text)
}
