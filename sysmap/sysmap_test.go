package sysmap

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/zabbix/svgmap/imagecache"
	"github.com/zabbix/svgmap/svg"
	"github.com/zabbix/svgmap/text"
)

// fixedShaper advances every rune by half the font size.
type fixedShaper struct{}

func (fixedShaper) Advance(s string, face text.Face, _ text.Direction) float64 {
	return float64(utf8.RuneCountInString(s)) * face.Size() / 2
}

// testLoader resolves every URL to a 32x32 image, except URLs containing
// "missing" which fail.
var testLoader = imagecache.LoaderFunc(func(_ context.Context, url string) (*imagecache.Image, error) {
	if strings.Contains(url, "missing") {
		return nil, errors.New("not found")
	}
	return &imagecache.Image{URL: url, Width: 32, Height: 32, Format: "png"}, nil
})

// recorder keeps every scene mutation.
type recorder struct {
	mutations []svg.Mutation
}

func (r *recorder) observe(m svg.Mutation) { r.mutations = append(r.mutations, m) }

func (r *recorder) reset() { r.mutations = nil }

func (r *recorder) touched(id int) bool {
	for _, m := range r.mutations {
		if m.ID == id {
			return true
		}
	}
	return false
}

func mustDoc(t *testing.T, src string) Document {
	t.Helper()
	doc, err := DecodeJSON([]byte(src))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	return doc
}

func newTestMap(t *testing.T, doc Document) (*Map, *recorder) {
	t.Helper()
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource() error = %v", err)
	}
	rec := &recorder{}
	m, err := New(doc, imagecache.New(testLoader), WithCanvasOptions(
		svg.WithMeasurer(text.NewMeasurer(text.WithRegular(src), text.WithShaper(fixedShaper{}))),
		svg.WithObserver(rec.observe),
	))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	wait(t, m)
	return m, rec
}

func wait(t *testing.T, m *Map) {
	t.Helper()
	if err := waitErr(m); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
}

func waitErr(m *Map) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Wait(ctx)
}

// apply runs an update to completion.
func apply(t *testing.T, m *Map, doc Document, incremental bool) {
	t.Helper()
	if err := m.Update(doc, incremental); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	wait(t, m)
}

func attr(t *testing.T, n *svg.Node, name string) string {
	t.Helper()
	if n == nil {
		t.Fatalf("node is nil, want attribute %q", name)
	}
	v, ok := n.Attr(name)
	if !ok {
		t.Fatalf("%s node has no %q attribute", n.Kind(), name)
	}
	return v
}

func child(t *testing.T, n *svg.Node, kind string) *svg.Node {
	t.Helper()
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
	}
	t.Fatalf("%s node has no %s child", n.Kind(), kind)
	return nil
}

const baseDoc = `{
	"canvas": {"width": 400, "height": 300},
	"theme": {"backgroundcolor": "FFFFFF", "textcolor": "000000", "gridcolor": "CCCCCC"},
	"label_location": 0,
	"elements": [
		{"selementid": "1", "x": 10, "y": 20, "icon": "i1", "label": "Host A", "label_location": -1}
	],
	"links": [],
	"shapes": []
}`

func newImages() *imagecache.Cache {
	return imagecache.New(testLoader)
}
