package svg

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Attrs is a set of attribute values keyed by attribute name.
// Values are formatted with FormatValue; a nil value omits the attribute.
type Attrs map[string]any

// MergeAttributes returns a new set holding base overlaid with overrides.
// Neither argument is modified. A nil value in overrides removes the
// attribute once the result is passed to Node.Update.
func MergeAttributes(base, overrides Attrs) Attrs {
	out := make(Attrs, len(base)+len(overrides))
	maps.Copy(out, base)
	maps.Copy(out, overrides)
	return out
}

// Clone returns a shallow copy of a.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// String returns the formatted value of name, or "" when absent.
func (a Attrs) String(name string) string {
	v, ok := a[name]
	if !ok || v == nil {
		return ""
	}
	return FormatValue(v)
}

// Float returns the numeric value of name. Strings are parsed, so "10px"
// yields 10 when it has a numeric prefix and 0 otherwise.
func (a Attrs) Float(name string) float64 {
	switch v := a[name].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseLeadingFloat(v)
	}
	return 0
}

// keys returns the attribute names with a non-nil value in sorted order.
func (a Attrs) keys() []string {
	names := make([]string, 0, len(a))
	for k, v := range a {
		if v != nil {
			names = append(names, k)
		}
	}
	slices.Sort(names)
	return names
}

// FormatValue converts an attribute value to its serialized form.
// Floats use the shortest representation that round-trips.
func FormatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

// parseLeadingFloat parses the numeric prefix of s ("10px" → 10).
func parseLeadingFloat(s string) float64 {
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || ((c == '-' || c == '+') && end == 0) {
			end++
			continue
		}
		break
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}
