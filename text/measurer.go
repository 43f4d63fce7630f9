package text

import (
	"github.com/zabbix/svgmap/cache"
)

// widthKey identifies a measured run in the width cache.
type widthKey struct {
	source *FontSource
	size   float64
	dir    Direction
	text   string
}

// Measurer resolves styles to faces and measures strings.
//
// Measurer is safe for concurrent use. Widths are memoized in a
// soft-limited cache since wrapping re-measures the same prefixes.
type Measurer struct {
	families map[string]*FontSource
	regular  *FontSource
	bold     *FontSource
	mono     *FontSource
	shaper   Shaper
	widths   *cache.Cache[widthKey, float64]
}

// NewMeasurer creates a Measurer. Without WithRegular the first registered
// family becomes the fallback; a Measurer with no fonts at all measures
// every string as zero.
func NewMeasurer(opts ...MeasurerOption) *Measurer {
	config := defaultMeasurerConfig()
	for _, opt := range opts {
		opt(&config)
	}

	m := &Measurer{
		families: config.families,
		regular:  config.regular,
		bold:     config.bold,
		mono:     config.mono,
		shaper:   config.shaper,
		widths:   cache.New[widthKey, float64](config.cacheLimit),
	}
	if m.shaper == nil {
		m.shaper = NewGoTextShaper()
	}
	if m.regular == nil {
		for _, src := range m.families {
			m.regular = src
			break
		}
	}
	return m
}

// Source resolves the font used for st, or nil when nothing is registered.
func (m *Measurer) Source(st Style) *FontSource {
	for _, name := range ParseFamilies(st.Family) {
		if src, ok := m.families[name]; ok {
			return src
		}
		switch {
		case name == familyMonospace || monospaceFamilies[name]:
			if m.mono != nil {
				return m.mono
			}
		case name == familySerif || name == familySansSerif:
			return m.pick(st)
		}
	}
	return m.pick(st)
}

func (m *Measurer) pick(st Style) *FontSource {
	if st.Bold && m.bold != nil {
		return m.bold
	}
	return m.regular
}

// Face returns the face used to measure st.
func (m *Measurer) Face(st Style) (Face, error) {
	src := m.Source(st)
	if src == nil {
		return nil, ErrNoFonts
	}
	return src.Face(sizeOf(st)), nil
}

// Measure returns the extents of a single line of text.
func (m *Measurer) Measure(s string, st Style) Extents {
	face, err := m.Face(st)
	if err != nil {
		return Extents{}
	}
	metrics := face.Metrics()
	ext := Extents{Ascent: metrics.Ascent, Descent: metrics.Descent}
	for _, run := range Segment(s) {
		ext.Width += m.advance(run, face)
	}
	return ext
}

// CacheStats returns hit/miss statistics of the width cache.
func (m *Measurer) CacheStats() cache.Stats {
	return m.widths.Stats()
}

func (m *Measurer) advance(run Run, face Face) float64 {
	key := widthKey{source: face.Source(), size: face.Size(), dir: run.Direction, text: run.Text}
	return m.widths.GetOrCreate(key, func() float64 {
		return m.shaper.Advance(run.Text, face, run.Direction)
	})
}

func sizeOf(st Style) float64 {
	if st.Size <= 0 {
		return DefaultFontSize
	}
	return st.Size
}
