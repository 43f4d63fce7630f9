package sysmap

import "github.com/zabbix/svgmap/svg"

// DefaultImagePrefix is prepended to icon and background ids to build
// image URLs.
const DefaultImagePrefix = "imgstore.php?iconid="

// Option configures a Map.
type Option func(*mapConfig)

type mapConfig struct {
	imagePrefix   string
	canvasOptions []svg.CanvasOption
}

func defaultMapConfig() mapConfig {
	return mapConfig{imagePrefix: DefaultImagePrefix}
}

// WithImagePrefix sets the URL prefix for image ids.
func WithImagePrefix(prefix string) Option {
	return func(c *mapConfig) {
		c.imagePrefix = prefix
	}
}

// WithCanvasOptions passes options to the underlying svg.Canvas.
func WithCanvasOptions(opts ...svg.CanvasOption) Option {
	return func(c *mapConfig) {
		c.canvasOptions = append(c.canvasOptions, opts...)
	}
}
