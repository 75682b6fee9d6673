package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"pink":    "#ffc0cb",
	"gray":    "#808080",
	"grey":    "#808080",
}

// ParseColor parses hex, rgb(), rgba(), transparent and a few named colours.
// It returns the colour, its alpha in [0,1] and whether s was a colour.
func ParseColor(s string) (colorful.Color, float64, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "transparent" {
		return colorful.Color{}, 0, true
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}

	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunctional(s[len("rgba(") : len(s)-1])
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunctional(s[len("rgb(") : len(s)-1])
	}
	return colorful.Color{}, 0, false
}

func parseHex(s string) (colorful.Color, float64, bool) {
	alpha := 1.0
	switch len(s) {
	case 4:
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	case 9:
		a, err := strconv.ParseUint(s[7:9], 16, 8)
		if err != nil {
			return colorful.Color{}, 0, false
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, 0, false
	}
	return c, alpha, true
}

func parseFunctional(args string) (colorful.Color, float64, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return colorful.Color{}, 0, false
	}
	var channels [4]float64
	channels[3] = 1
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return colorful.Color{}, 0, false
		}
		channels[i] = v
	}
	c := colorful.Color{R: channels[0] / 255, G: channels[1] / 255, B: channels[2] / 255}
	return c, channels[3], true
}

// FormatColor renders c with alpha a as an rgba() string.
func FormatColor(c colorful.Color, a float64) string {
	r, g, b := c.Clamped().RGB255()
	a = math.Max(0, math.Min(1, a))
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(math.Round(a*1000)/1000, 'f', -1, 64))
}

// BlendColors mixes two colour strings in RGBA space. ok is false when
// either string is not a colour.
func BlendColors(from, to string, t float64) (string, bool) {
	c1, a1, ok1 := ParseColor(from)
	c2, a2, ok2 := ParseColor(to)
	if !ok1 || !ok2 {
		return "", false
	}
	return FormatColor(c1.BlendRgb(c2, t), a1+(a2-a1)*t), true
}
