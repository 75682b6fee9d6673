package style

import "strings"

// Directional suffixes and the chain of less specific suffixes to consult,
// in the order they are tried.
var directionalSuffixes = []struct {
	suffix    string
	fallbacks []string
}{
	{"Top", []string{"Vertical", ""}},
	{"Bottom", []string{"Vertical", ""}},
	{"Vertical", []string{""}},
	{"Left", []string{"Horizontal", ""}},
	{"Right", []string{"Horizontal", ""}},
	{"Horizontal", []string{""}},
}

// Default returns the implicit value of key when a style does not declare
// it. flat is the flattened sibling style used for margin and padding
// fallbacks and may be nil.
func Default(key string, flat Style) any {
	switch {
	case key == "backgroundColor":
		return "rgba(0, 0, 0, 0)"
	case key == "color" || strings.Contains(key, "Color"):
		return "rgba(0, 0, 0, 1)"
	case strings.HasPrefix(key, "rotate") || strings.HasPrefix(key, "skew"):
		return "0deg"
	case key == "opacity" || strings.HasPrefix(key, "scale"):
		return 1.0
	case key == "fontSize":
		return 14.0
	}

	if strings.HasPrefix(key, "margin") || strings.HasPrefix(key, "padding") {
		for _, d := range directionalSuffixes {
			if !strings.HasSuffix(key, d.suffix) {
				continue
			}
			prefix := strings.TrimSuffix(key, d.suffix)
			for _, fallback := range d.fallbacks {
				if value, ok := flat[prefix+fallback]; ok {
					return value
				}
			}
			break
		}
	}
	return 0.0
}
