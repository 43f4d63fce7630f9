package text

import (
	"golang.org/x/text/unicode/bidi"
)

// Run is a contiguous piece of text with a single direction.
type Run struct {
	Text      string
	Direction Direction
}

// Segment splits text into direction runs in logical order.
// Text without right-to-left characters is returned as a single LTR run.
func Segment(text string) []Run {
	if text == "" {
		return nil
	}
	if !hasRTL(text) {
		return []Run{{Text: text, Direction: DirectionLTR}}
	}

	var p bidi.Paragraph
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return []Run{{Text: text, Direction: DirectionLTR}}
	}
	ordering, err := p.Order()
	if err != nil {
		return []Run{{Text: text, Direction: DirectionLTR}}
	}

	runs := make([]Run, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		r := ordering.Run(i)
		dir := DirectionLTR
		if r.Direction() == bidi.RightToLeft {
			dir = DirectionRTL
		}
		runs = append(runs, Run{Text: r.String(), Direction: dir})
	}
	return runs
}

// hasRTL reports whether text contains a strong right-to-left character.
func hasRTL(text string) bool {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return true
		}
	}
	return false
}
