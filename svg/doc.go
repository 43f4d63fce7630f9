// Package svg is a retained-mode scene graph over SVG primitives.
//
// A Canvas owns a root <svg> node, a flat registry of every live Node and a
// lazily created hidden shadow buffer used to measure text before it is
// wrapped. Nodes wrap one dom.Element each and keep their own child list,
// so removal and replacement preserve paint order without consulting the
// document tree.
//
// Multi-line labels are built by the text-flow engine (see TextArea): lines
// are wrapped against a clip shape, anchored, optionally given a padded
// background and clipped or masked to the clip geometry.
//
//	c := svg.NewCanvas(640, 480)
//	layer := c.Add(svg.Spec{Kind: "g", Attrs: svg.Attrs{"class": "links"}})
//	layer.Add(svg.Spec{Kind: "line", Attrs: svg.Attrs{"x1": 0, "y1": 0, "x2": 10, "y2": 10}})
//	c.WriteTo(os.Stdout)
//
// A Canvas is not safe for concurrent use.
package svg
