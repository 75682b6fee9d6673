// Package style flattens nested style descriptions into property maps and
// nests transform properties back into the list form renderers expect.
package style

import (
	"sort"
)

// Style maps property names to values. Values are float64, string, Offset,
// or for the transform key a list of single-key styles.
type Style map[string]any

// transformOrder is the canonical order of properties nested in a transform list.
var transformOrder = []string{
	"perspective",
	"rotate",
	"rotateX",
	"rotateY",
	"rotateZ",
	"scale",
	"scaleX",
	"scaleY",
	"skewX",
	"skewY",
	"translateX",
	"translateY",
}

var transformSet = func() map[string]int {
	m := make(map[string]int, len(transformOrder))
	for i, name := range transformOrder {
		m[name] = i
	}
	return m
}()

// IsTransform reports whether property must live inside a transform list.
func IsTransform(property string) bool {
	_, ok := transformSet[property]
	return ok
}

// Flatten collapses a style, a list of styles or nested lists of styles into
// one map. Later entries override earlier ones. Entries of a transform list
// are hoisted to the top level and the transform key is removed.
func Flatten(v any) Style {
	out := Style{}
	merge(out, v)

	if t, ok := out["transform"]; ok {
		delete(out, "transform")
		for _, entry := range transformEntries(t) {
			for key, value := range entry {
				out[key] = Normalize(value)
			}
		}
	}
	return out
}

func merge(out Style, v any) {
	switch s := v.(type) {
	case nil:
	case Style:
		for key, value := range s {
			out[key] = Normalize(value)
		}
	case map[string]any:
		merge(out, Style(s))
	case map[any]any:
		merge(out, toStyle(s))
	case []Style:
		for _, entry := range s {
			merge(out, entry)
		}
	case []map[string]any:
		for _, entry := range s {
			merge(out, Style(entry))
		}
	case []any:
		for _, entry := range s {
			merge(out, entry)
		}
	}
}

func transformEntries(v any) []Style {
	var entries []Style
	switch t := v.(type) {
	case []Style:
		entries = t
	case []map[string]any:
		for _, entry := range t {
			entries = append(entries, Style(entry))
		}
	case []any:
		for _, entry := range t {
			switch e := entry.(type) {
			case Style:
				entries = append(entries, e)
			case map[string]any:
				entries = append(entries, Style(e))
			case map[any]any:
				entries = append(entries, toStyle(e))
			}
		}
	}
	return entries
}

// Wrap is the inverse of the transform hoisting done by Flatten: every
// transform property of flat is moved into a transform list in canonical
// order. Other properties are copied unchanged.
func Wrap(flat Style) Style {
	wrapped := Style{}
	var transforms []string
	for key, value := range flat {
		if IsTransform(key) {
			transforms = append(transforms, key)
			continue
		}
		wrapped[key] = value
	}
	if len(transforms) == 0 {
		return wrapped
	}

	sort.Slice(transforms, func(i, j int) bool {
		return transformSet[transforms[i]] < transformSet[transforms[j]]
	})
	list := make([]Style, 0, len(transforms))
	for _, key := range transforms {
		list = append(list, Style{key: flat[key]})
	}
	wrapped["transform"] = list
	return wrapped
}

// Pick returns the flattened values of keys in s, using Default for keys
// that s does not declare.
func Pick(keys []string, s any) Style {
	flat := Flatten(s)
	values := make(Style, len(keys))
	for _, key := range keys {
		if value, ok := flat[key]; ok {
			values[key] = value
		} else {
			values[key] = Default(key, flat)
		}
	}
	return values
}

// Keys returns the property names of s in sorted order.
func (s Style) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
