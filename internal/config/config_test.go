package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/zabbix/svgmap/sysmap"
	"github.com/zabbix/svgmap/text"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Images.Prefix != sysmap.DefaultImagePrefix {
		t.Errorf("default prefix = %q", cfg.Images.Prefix)
	}
	if cfg.Images.Concurrency != 4 {
		t.Errorf("default concurrency = %d, want 4", cfg.Images.Concurrency)
	}
	if !cfg.Canvas.ShadowBuffer {
		t.Error("default shadow buffer should be enabled")
	}
	if cfg.Canvas.Mask || cfg.Canvas.UseViewBox {
		t.Error("default mask and viewBox should be disabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Images.Timeout != "30s" {
		t.Errorf("timeout = %q, want defaults", cfg.Images.Timeout)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[images]
prefix = "https://zabbix.example.com/imgstore.php?iconid="
timeout = "5s"

[canvas]
mask = true

[render]
label_location = 3
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Images.Prefix != "https://zabbix.example.com/imgstore.php?iconid=" {
		t.Errorf("prefix = %q", cfg.Images.Prefix)
	}
	if cfg.Images.Concurrency != 4 {
		t.Errorf("concurrency = %d, want default 4", cfg.Images.Concurrency)
	}
	if !cfg.Canvas.Mask || !cfg.Canvas.ShadowBuffer {
		t.Errorf("canvas = %+v, want mask and default shadow buffer", cfg.Canvas)
	}
	if cfg.Render.LabelLocation != sysmap.LabelTop {
		t.Errorf("label_location = %d, want %d", cfg.Render.LabelLocation, sysmap.LabelTop)
	}
	if d, _ := cfg.Images.TimeoutDuration(); d != 5*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 5s", d)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[images\nprefix = 1"},
		{"concurrency", "[images]\nconcurrency = 0\n"},
		{"timeout", "[images]\ntimeout = \"soon\"\n"},
		{"label location", "[render]\nlabel_location = 7\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Images.Prefix = "icons/"
	cfg.Fonts.Mono = "/fonts/mono.ttf"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestTimeoutDisabled(t *testing.T) {
	for _, v := range []string{"", "0"} {
		d, err := ImagesConfig{Timeout: v}.TimeoutDuration()
		if err != nil || d != 0 {
			t.Errorf("TimeoutDuration(%q) = (%v, %v), want (0, nil)", v, d, err)
		}
	}
}

func TestConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultPath(); got != filepath.Join("/tmp/xdg", "mapsvg", "config.toml") {
		t.Errorf("DefaultPath() = %q", got)
	}
}

func TestFontsMeasurer(t *testing.T) {
	m, err := FontsConfig{}.Measurer()
	if err != nil {
		t.Fatalf("Measurer() error = %v", err)
	}
	if m != text.Default() {
		t.Error("empty fonts config should use the shared default measurer")
	}

	path := filepath.Join(t.TempDir(), "mono.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	m, err = FontsConfig{Mono: path}.Measurer()
	if err != nil {
		t.Fatalf("Measurer() error = %v", err)
	}
	if got := m.Measure("abc", text.Style{Family: "monospace", Size: 10}); got.Width <= 0 {
		t.Errorf("Measure() width = %v, want > 0", got.Width)
	}

	if _, err := (FontsConfig{Regular: filepath.Join(t.TempDir(), "missing.ttf")}).Measurer(); err == nil {
		t.Error("Measurer() with a missing font file: error = nil")
	}
}
