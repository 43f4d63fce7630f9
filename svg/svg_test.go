package svg

import (
	"testing"
	"unicode/utf8"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/zabbix/svgmap/text"
)

// fixedShaper advances every rune by half the font size, so widths in
// tests are easy to compute: 5px per character at 10px.
type fixedShaper struct{}

func (fixedShaper) Advance(s string, face text.Face, _ text.Direction) float64 {
	return float64(utf8.RuneCountInString(s)) * face.Size() / 2
}

func testMeasurer(t *testing.T) *text.Measurer {
	t.Helper()
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource() error = %v", err)
	}
	return text.NewMeasurer(text.WithRegular(src), text.WithShaper(fixedShaper{}))
}

func newTestCanvas(t *testing.T, opts ...CanvasOption) *Canvas {
	t.Helper()
	return NewCanvas(200, 100, append([]CanvasOption{WithMeasurer(testMeasurer(t))}, opts...)...)
}

// mutationCounter counts mutations by operation.
type mutationCounter map[Op]int

func (m mutationCounter) observe(mu Mutation) { m[mu.Op]++ }

func childrenOfKind(n *Node, kind string) []*Node {
	var out []*Node
	for _, c := range n.Children() {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

func mustAttr(t *testing.T, n *Node, name string) string {
	t.Helper()
	v, ok := n.Attr(name)
	if !ok {
		t.Fatalf("%s node has no %q attribute", n.Kind(), name)
	}
	return v
}
