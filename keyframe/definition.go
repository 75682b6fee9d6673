package keyframe

import (
	"fmt"
	"strconv"

	"github.com/matt-g-everett/animatable/style"
)

// Position aliases accepted as keyframe keys.
const (
	From = "from"
	To   = "to"
)

// Definition is a sparse set of keyframes. Keys of Keyframes are From, To or
// decimal positions in [0,1].
type Definition struct {
	Easing    string
	Style     style.Style
	Keyframes map[string]style.Style
}

// Pos formats a position as a keyframe key.
func Pos(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// parsePosition resolves a keyframe key to a position in [0,1].
func parsePosition(key string) (float64, bool) {
	switch key {
	case From:
		return 0, true
	case To:
		return 1, true
	}
	p, err := strconv.ParseFloat(key, 64)
	if err != nil || p < 0 || p > 1 {
		return 0, false
	}
	return p, true
}

// UnmarshalYAML decodes the author form where positions, easing and style
// are sibling keys:
//
//	easing: ease-out
//	from: {opacity: 0}
//	0.5: {opacity: 0.8}
//	to: {opacity: 1}
func (d *Definition) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[interface{}]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	d.Keyframes = make(map[string]style.Style, len(raw))
	for k, v := range raw {
		key := fmt.Sprint(k)
		switch key {
		case "easing":
			name, ok := v.(string)
			if !ok {
				return fmt.Errorf("easing must be a string, got %T", v)
			}
			d.Easing = name
		case "style":
			m, ok := v.(map[interface{}]interface{})
			if !ok {
				return fmt.Errorf("style must be a map, got %T", v)
			}
			d.Style = style.FromMap(m)
		default:
			if v == nil {
				d.Keyframes[key] = nil
				continue
			}
			m, ok := v.(map[interface{}]interface{})
			if !ok {
				return fmt.Errorf("keyframe %s must be a map, got %T", key, v)
			}
			d.Keyframes[key] = style.FromMap(m)
		}
	}
	return nil
}
