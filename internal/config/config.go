package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/zabbix/svgmap/imagecache"
	"github.com/zabbix/svgmap/svg"
	"github.com/zabbix/svgmap/sysmap"
	"github.com/zabbix/svgmap/text"
)

// Config holds mapsvg configuration.
type Config struct {
	Images ImagesConfig `toml:"images"`
	Canvas CanvasConfig `toml:"canvas"`
	Fonts  FontsConfig  `toml:"fonts"`
	Render RenderConfig `toml:"render"`
}

// ImagesConfig controls how icons and backgrounds are fetched.
type ImagesConfig struct {
	// Prefix is prepended to image ids. An http(s) prefix loads over the
	// network, anything else is a path below the images directory.
	Prefix      string `toml:"prefix"`
	Concurrency int    `toml:"concurrency"`
	Timeout     string `toml:"timeout"` // Go duration, "0" disables
}

// CanvasConfig controls the SVG output.
type CanvasConfig struct {
	Mask         bool `toml:"mask"`
	UseViewBox   bool `toml:"use_viewbox"`
	ShadowBuffer bool `toml:"shadow_buffer"`
}

// FontsConfig names font files used to measure text. Empty entries fall
// back to the Go fonts.
type FontsConfig struct {
	Regular string `toml:"regular"`
	Bold    string `toml:"bold"`
	Mono    string `toml:"mono"`
}

// RenderConfig holds defaults applied to documents that leave them out.
type RenderConfig struct {
	LabelLocation int `toml:"label_location"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Images: ImagesConfig{Prefix: sysmap.DefaultImagePrefix, Concurrency: 4, Timeout: "30s"},
		Canvas: CanvasConfig{ShadowBuffer: true},
		Render: RenderConfig{LabelLocation: sysmap.LabelBottom},
	}
}

// ConfigDir returns the mapsvg config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mapsvg")
}

// DefaultPath is the config file read when no path is given.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks values the libraries would reject.
func (c *Config) Validate() error {
	if c.Images.Concurrency < 1 {
		return fmt.Errorf("images.concurrency must be at least 1, got %d", c.Images.Concurrency)
	}
	if _, err := c.Images.TimeoutDuration(); err != nil {
		return err
	}
	switch c.Render.LabelLocation {
	case sysmap.LabelBottom, sysmap.LabelLeft, sysmap.LabelRight, sysmap.LabelTop:
	default:
		return fmt.Errorf("render.label_location must be 0-3, got %d", c.Render.LabelLocation)
	}
	return nil
}

// TimeoutDuration parses the per-image timeout.
func (c ImagesConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" || c.Timeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("images.timeout: %w", err)
	}
	return d, nil
}

// CacheOptions returns the image cache options.
func (c ImagesConfig) CacheOptions() ([]imagecache.Option, error) {
	timeout, err := c.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	return []imagecache.Option{
		imagecache.WithConcurrency(c.Concurrency),
		imagecache.WithTimeout(timeout),
	}, nil
}

// CanvasOptions returns the canvas options, measuring text with m.
func (c CanvasConfig) CanvasOptions(m *text.Measurer) []svg.CanvasOption {
	return []svg.CanvasOption{
		svg.WithMask(c.Mask),
		svg.WithViewBox(c.UseViewBox),
		svg.WithShadowBuffer(c.ShadowBuffer),
		svg.WithMeasurer(m),
	}
}

// Measurer loads the configured fonts.
func (c FontsConfig) Measurer() (*text.Measurer, error) {
	if c == (FontsConfig{}) {
		return text.Default(), nil
	}

	opts := text.GoFonts()
	for _, f := range []struct {
		path string
		opt  func(*text.FontSource) text.MeasurerOption
	}{
		{c.Regular, text.WithRegular},
		{c.Bold, text.WithBold},
		{c.Mono, text.WithMono},
	} {
		if f.path == "" {
			continue
		}
		src, err := text.NewFontSourceFromFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("config: font %s: %w", f.path, err)
		}
		opts = append(opts, f.opt(src))
	}
	return text.NewMeasurer(opts...), nil
}
