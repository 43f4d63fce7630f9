package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/zabbix/svgmap/imagecache"
	"github.com/zabbix/svgmap/internal/config"
	"github.com/zabbix/svgmap/sysmap"
)

// session keeps one map alive across renders so that later documents are
// reconciled against the earlier ones.
type session struct {
	cfg     *config.Config
	images  *imagecache.Cache
	mapOpts []sysmap.Option
	m       *sysmap.Map
}

func newSession(cfg *config.Config, imagesDir string) (*session, error) {
	measurer, err := cfg.Fonts.Measurer()
	if err != nil {
		return nil, err
	}
	cacheOpts, err := cfg.Images.CacheOptions()
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:    cfg,
		images: imagecache.New(newLoader(cfg.Images.Prefix, imagesDir), cacheOpts...),
		mapOpts: []sysmap.Option{
			sysmap.WithImagePrefix(cfg.Images.Prefix),
			sysmap.WithCanvasOptions(cfg.Canvas.CanvasOptions(measurer)...),
		},
	}, nil
}

// newLoader fetches over HTTP for URL prefixes and from dir otherwise.
func newLoader(prefix, dir string) imagecache.Loader {
	if strings.HasPrefix(prefix, "http://") || strings.HasPrefix(prefix, "https://") {
		return imagecache.HTTPLoader{Client: &http.Client{}}
	}
	return imagecache.FSLoader{FS: os.DirFS(dir)}
}

func (s *session) applyFile(ctx context.Context, path string, incremental bool) error {
	doc, err := sysmap.ReadFile(path)
	if err != nil {
		return err
	}
	return s.apply(ctx, doc, incremental)
}

// apply renders doc and waits for its images.
func (s *session) apply(ctx context.Context, doc sysmap.Document, incremental bool) error {
	if !doc.Has("label_location") {
		doc["label_location"] = s.cfg.Render.LabelLocation
	}
	if s.m == nil {
		m, err := sysmap.New(doc, s.images, s.mapOpts...)
		s.m = m
		if err != nil {
			return err
		}
	} else if err := s.m.Update(doc, incremental); err != nil {
		return err
	}
	return s.m.Wait(ctx)
}

// write stores the SVG at path, or on stdout for "-". Files are replaced
// atomically so watchers of the output never see a partial document.
func (s *session) write(path string, stdout io.Writer) (int64, error) {
	if path == "-" {
		return s.m.WriteTo(stdout)
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".mapsvg-*.svg")
	if err != nil {
		return 0, err
	}
	n, err := s.m.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(f.Name(), path)
	}
	if err != nil {
		os.Remove(f.Name())
		return 0, err
	}
	return n, nil
}
