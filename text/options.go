package text

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	parserName string
	name       string
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName: defaultParserName,
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" which uses golang.org/x/image/font/opentype.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// WithName overrides the family name read from the font file.
func WithName(name string) SourceOption {
	return func(c *sourceConfig) {
		c.name = name
	}
}

// MeasurerOption configures a Measurer.
type MeasurerOption func(*measurerConfig)

// measurerConfig holds configuration for Measurer.
type measurerConfig struct {
	families   map[string]*FontSource
	regular    *FontSource
	bold       *FontSource
	mono       *FontSource
	shaper     Shaper
	cacheLimit int
}

// defaultMeasurerConfig returns the default measurer configuration.
func defaultMeasurerConfig() measurerConfig {
	return measurerConfig{
		families:   make(map[string]*FontSource),
		cacheLimit: 4096,
	}
}

// WithFamily registers src for a font-family name. Matching is
// case-insensitive and ignores surrounding quotes.
func WithFamily(family string, src *FontSource) MeasurerOption {
	return func(c *measurerConfig) {
		c.families[normalizeFamily(family)] = src
	}
}

// WithRegular sets the fallback font used for serif, sans-serif and
// unknown families.
func WithRegular(src *FontSource) MeasurerOption {
	return func(c *measurerConfig) {
		c.regular = src
	}
}

// WithBold sets the font used when Style.Bold is set.
func WithBold(src *FontSource) MeasurerOption {
	return func(c *measurerConfig) {
		c.bold = src
	}
}

// WithMono sets the font used for the monospace generic family.
func WithMono(src *FontSource) MeasurerOption {
	return func(c *measurerConfig) {
		c.mono = src
	}
}

// WithShaper replaces the default HarfBuzz shaper.
func WithShaper(s Shaper) MeasurerOption {
	return func(c *measurerConfig) {
		c.shaper = s
	}
}

// WithCacheLimit sets the soft limit of the width cache.
// A value of 0 disables the limit.
func WithCacheLimit(n int) MeasurerOption {
	return func(c *measurerConfig) {
		c.cacheLimit = n
	}
}
