package imagecache

import (
	"context"
	"fmt"
	"image"
	"io"

	// Decoders for the formats icons and backgrounds are stored in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a resolved image resource.
type Image struct {
	// URL the image was loaded from.
	URL string

	// Width and Height are the natural dimensions in pixels.
	Width, Height int

	// Format is the decoder name, such as "png".
	Format string
}

// Loader fetches one image. Implementations must be safe for concurrent
// use and must honor ctx.
type Loader interface {
	Load(ctx context.Context, url string) (*Image, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, url string) (*Image, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, url string) (*Image, error) {
	return f(ctx, url)
}

// DecodeConfig reads the image header from r and returns its dimensions.
func DecodeConfig(r io.Reader, url string) (*Image, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("imagecache: decode %s: %w", url, err)
	}
	return &Image{URL: url, Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
