package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoFonts is returned when a Measurer has no font to fall back to.
	ErrNoFonts = errors.New("text: no fonts registered")
)
