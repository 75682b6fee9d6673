package stream

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// GradientStop pins a hue to a position between 0 and 1 along the strip.
type GradientStop struct {
	Hue float64 `yaml:"hue"`
	Pos float64 `yaml:"pos"`
}

// GradientTable stores a look-up table of colours interpolated by hue.
type GradientTable []GradientStop

// GetColor gets a colour at the specified point on the look-up table.
func (g GradientTable) GetColor(t, c, l float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Color{}
	}
	if t <= g[0].Pos {
		return colorful.Hcl(g[0].Hue, c, l)
	}
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			if c2.Pos == c1.Pos {
				return colorful.Hcl(c2.Hue, c, l)
			}
			h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
			return colorful.Hcl(h, c, l)
		}
	}

	// Past the last stop.
	return colorful.Hcl(g[len(g)-1].Hue, c, l)
}

func (g GradientTable) validate() error {
	for i, s := range g {
		if s.Pos < 0 || s.Pos > 1 {
			return fmt.Errorf("%w: gradient stop %d at %v is outside 0..1", ErrInvalidConfig, i, s.Pos)
		}
		if i > 0 && s.Pos < g[i-1].Pos {
			return fmt.Errorf("%w: gradient stops must be in ascending order", ErrInvalidConfig)
		}
	}
	return nil
}

// Paint fills f with the background gradient.
func (b Background) Paint(f *Frame) {
	n := f.Len()
	if len(b.Stops) == 0 || n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		f.pixels[i] = b.Stops.GetColor(t, b.Chroma, b.Luminance).Clamped()
	}
}
