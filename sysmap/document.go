package sysmap

import (
	"maps"
	"strconv"
	"strings"
)

// Document is a decoded map-options document or one of its nested
// objects. Values are the types produced by JSON or YAML decoding: nil,
// bool, string, numbers, []any, map[string]any and Document.
type Document map[string]any

// Has reports whether key is present with a non-nil value.
func (d Document) Has(key string) bool {
	v, ok := d[key]
	return ok && v != nil
}

// String returns the value of key as a string. Numbers are formatted,
// nil and missing keys yield "".
func (d Document) String(key string) string {
	return scalarString(d[key])
}

// Float returns the numeric value of key. Numeric strings are parsed;
// anything else yields 0.
func (d Document) Float(key string) float64 {
	f, _ := toFloat(d[key])
	return f
}

// Int returns the numeric value of key truncated to an int.
func (d Document) Int(key string) int {
	return int(d.Float(key))
}

// IntOr returns the numeric value of key, or def when key is missing or
// not numeric.
func (d Document) IntOr(key string, def int) int {
	f, ok := toFloat(d[key])
	if !ok {
		return def
	}
	return int(f)
}

// Bool reports whether key holds a true value: true, a non-zero number,
// or the strings "1" and "true".
func (d Document) Bool(key string) bool {
	switch v := d[key].(type) {
	case bool:
		return v
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	}
	f, ok := toFloat(d[key])
	return ok && f != 0
}

// Doc returns the nested object stored under key, or nil.
func (d Document) Doc(key string) Document {
	return asDocument(d[key])
}

// List returns the objects of the list stored under key. Entries that are
// not objects are skipped.
func (d Document) List(key string) []Document {
	items, ok := d[key].([]any)
	if !ok {
		if docs, ok := d[key].([]Document); ok {
			return docs
		}
		return nil
	}
	out := make([]Document, 0, len(items))
	for _, item := range items {
		if doc := asDocument(item); doc != nil {
			out = append(out, doc)
		}
	}
	return out
}

// Clone returns a shallow copy of d.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}

// Extend returns a shallow merge of base and overlay; keys of overlay win.
func Extend(base, overlay Document) Document {
	out := make(Document, len(base)+len(overlay))
	maps.Copy(out, base)
	maps.Copy(out, overlay)
	return out
}

// IsChanged reports whether next differs from prev.
//
// The comparison is driven by next only: every key (or index) of next is
// compared with the same key of prev, recursing into objects and lists;
// keys that exist only in prev are ignored. A prev that is not an object
// always counts as changed. Numbers compare by value whatever their
// decoded type, other scalars must match in type and value.
func IsChanged(prev, next any) bool {
	if !isContainer(prev) {
		return true
	}
	switch n := next.(type) {
	case map[string]any:
		return mapChanged(prev, n)
	case Document:
		return mapChanged(prev, n)
	case []any:
		return listChanged(prev, n)
	case []Document:
		items := make([]any, len(n))
		for i, v := range n {
			items[i] = v
		}
		return listChanged(prev, items)
	}
	return true
}

func mapChanged(prev any, next map[string]any) bool {
	for key, nv := range next {
		pv, _ := lookup(prev, key)
		if isContainer(nv) {
			if IsChanged(pv, nv) {
				return true
			}
			continue
		}
		if !scalarEqual(pv, nv) {
			return true
		}
	}
	return false
}

func listChanged(prev any, next []any) bool {
	for i, nv := range next {
		pv, _ := lookup(prev, strconv.Itoa(i))
		if isContainer(nv) {
			if IsChanged(pv, nv) {
				return true
			}
			continue
		}
		if !scalarEqual(pv, nv) {
			return true
		}
	}
	return false
}

// lookup reads a key from an object or an index from a list.
func lookup(container any, key string) (any, bool) {
	switch c := container.(type) {
	case map[string]any:
		v, ok := c[key]
		return v, ok
	case Document:
		v, ok := c[key]
		return v, ok
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	case []Document:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	}
	return nil, false
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, Document, []any, []Document:
		return true
	}
	return false
}

func scalarEqual(a, b any) bool {
	if fa, ok := number(a); ok {
		fb, ok := number(b)
		return ok && fa == fb
	}
	if _, ok := number(b); ok {
		return false
	}
	return a == b
}

// number converts numeric kinds to float64. Strings are not numbers here.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint:
		return float64(n), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	if f, ok := number(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	}
	if f, ok := number(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

func asDocument(v any) Document {
	switch m := v.(type) {
	case Document:
		return m
	case map[string]any:
		return Document(m)
	}
	return nil
}
