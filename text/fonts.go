package text

import (
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	defaultOnce     sync.Once
	defaultMeasurer *Measurer
)

// Default returns a shared Measurer backed by the Go fonts: Go Regular for
// serif, sans-serif and unknown families, Go Bold for bold text and Go Mono
// for monospace families.
func Default() *Measurer {
	defaultOnce.Do(func() {
		defaultMeasurer = NewMeasurer(GoFonts()...)
	})
	return defaultMeasurer
}

// GoFonts returns options registering the embedded Go font family.
// The fonts are known valid, so a parse failure panics.
func GoFonts() []MeasurerOption {
	return []MeasurerOption{
		WithRegular(mustSource(goregular.TTF)),
		WithBold(mustSource(gobold.TTF)),
		WithMono(mustSource(gomono.TTF)),
	}
}

func mustSource(data []byte) *FontSource {
	src, err := NewFontSource(data)
	if err != nil {
		panic(err)
	}
	return src
}
