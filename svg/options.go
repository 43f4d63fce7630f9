package svg

import "github.com/zabbix/svgmap/text"

// Defaults shared by every canvas.
const (
	// TextPadding is the inset between a text block and its background.
	TextPadding = 5

	// MaskColor tints text outside its clip shape in mask mode.
	MaskColor = "#3d3d3d"
)

// CanvasOption configures a Canvas.
type CanvasOption func(*canvasConfig)

type canvasConfig struct {
	mask     bool
	viewBox  bool
	shadow   bool
	measurer *text.Measurer
	observer func(Mutation)
}

func defaultCanvasConfig() canvasConfig {
	return canvasConfig{shadow: true}
}

// WithMask selects mask mode for clipped text: text outside the clip
// shape is dimmed instead of hidden.
func WithMask(enabled bool) CanvasOption {
	return func(c *canvasConfig) {
		c.mask = enabled
	}
}

// WithViewBox makes the root scale to its container: the size is written
// as a viewBox and a max-width/max-height style instead of width and height.
func WithViewBox(enabled bool) CanvasOption {
	return func(c *canvasConfig) {
		c.viewBox = enabled
	}
}

// WithShadowBuffer enables or disables the hidden measurement buffer.
// Without it text is never wrapped. Enabled by default.
func WithShadowBuffer(enabled bool) CanvasOption {
	return func(c *canvasConfig) {
		c.shadow = enabled
	}
}

// WithMeasurer sets the text measurer. The default is text.Default().
func WithMeasurer(m *text.Measurer) CanvasOption {
	return func(c *canvasConfig) {
		c.measurer = m
	}
}

// WithObserver installs a callback invoked for every scene mutation.
func WithObserver(fn func(Mutation)) CanvasOption {
	return func(c *canvasConfig) {
		c.observer = fn
	}
}
