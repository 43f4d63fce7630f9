// Package svgmap is a retained-mode SVG rendering engine for network maps.
//
// # Overview
//
// A map is described by a plain options document (canvas size, theme,
// background, elements, links and shapes). The engine turns that document
// into a tree of scene nodes and, on every following refresh, reconciles the
// new document against the previous one so that only entities whose
// attributes actually changed touch the scene.
//
// # Architecture
//
// The module is organized into:
//   - dom: the minimal SVG document tree the scene nodes drive
//   - svg: Canvas, scene Node and the multi-line text-flow engine
//   - text: font loading and glyph-extent measurement for text wrapping
//   - cache: generic soft-limited cache shared by text and imagecache
//   - imagecache: batched, single-flight image preloading
//   - sysmap: the map reconciler and the element, link and shape renderers
//
// # Quick Start
//
//	doc, err := sysmap.ReadFile("map.json")
//	if err != nil {
//	    return err
//	}
//	loader := imagecache.FSLoader{FS: os.DirFS("icons")}
//	m, err := sysmap.New(doc, imagecache.New(loader), sysmap.WithImagePrefix(""))
//	if err != nil {
//	    return err
//	}
//	if err := m.Wait(ctx); err != nil {
//	    return err
//	}
//	_, err = m.Canvas().WriteTo(w)
//
// # Logging
//
// Nothing is logged by default. See [SetLogger].
package svgmap

// Version is the current version of the module.
const Version = "0.1.0"
