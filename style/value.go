package style

import (
	"fmt"
	"strconv"
)

// Offset is a composite width/height value such as shadowOffset.
type Offset struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Properties whose values are never plain numbers and always interpolate
// through a 0..1 progress cell.
var interpolated = map[string]bool{
	"rotate":              true,
	"rotateX":             true,
	"rotateY":             true,
	"rotateZ":             true,
	"skewX":               true,
	"skewY":               true,
	"transformMatrix":     true,
	"backgroundColor":     true,
	"borderColor":         true,
	"borderTopColor":      true,
	"borderRightColor":    true,
	"borderBottomColor":   true,
	"borderLeftColor":     true,
	"shadowColor":         true,
	"color":               true,
	"textDecorationColor": true,
	"tintColor":           true,
	"fontWeight":          true,
}

// NeedsInterpolation reports whether a transition of property towards value
// has to run through an interpolated 0..1 cell rather than tweening the
// value directly.
func NeedsInterpolation(property string, value any) bool {
	if interpolated[property] {
		return true
	}
	_, ok := Number(value)
	return !ok
}

// ZeroClamped reports whether property must never be rendered below zero.
func ZeroClamped(property string) bool {
	return property == "width" || property == "height"
}

// Number returns v as a float64 when it holds a plain number.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// Normalize converts decoded values into the shapes used throughout the
// package: numbers become float64, width/height maps become Offset and
// generic maps become Style.
func Normalize(v any) any {
	if n, ok := Number(v); ok {
		return n
	}
	switch t := v.(type) {
	case map[any]any:
		return normalizeMap(toStyle(t))
	case map[string]any:
		return normalizeMap(Style(t))
	case Style:
		return normalizeMap(t)
	case []any:
		out := make([]any, len(t))
		for i, entry := range t {
			out[i] = Normalize(entry)
		}
		return out
	}
	return v
}

func normalizeMap(s Style) any {
	if off, ok := asOffset(s); ok {
		return off
	}
	out := make(Style, len(s))
	for key, value := range s {
		out[key] = Normalize(value)
	}
	return out
}

func asOffset(s Style) (Offset, bool) {
	if len(s) == 0 || len(s) > 2 {
		return Offset{}, false
	}
	var off Offset
	for key, value := range s {
		n, ok := Number(value)
		if !ok {
			return Offset{}, false
		}
		switch key {
		case "width":
			off.Width = n
		case "height":
			off.Height = n
		default:
			return Offset{}, false
		}
	}
	return off, true
}

func toStyle(m map[any]any) Style {
	s := make(Style, len(m))
	for key, value := range m {
		s[fmt.Sprint(key)] = value
	}
	return s
}

// FromMap converts a yaml.v2 style map into a normalised Style.
func FromMap(m map[any]any) Style {
	out := make(Style, len(m))
	for key, value := range toStyle(m) {
		out[key] = Normalize(value)
	}
	return out
}

// Format renders a value the way it appears in style output.
func Format(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case Offset:
		return fmt.Sprintf("{width: %g, height: %g}", t.Width, t.Height)
	}
	if n, ok := Number(v); ok {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}
