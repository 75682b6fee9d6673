package stream

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/animatable/animatable"
	"github.com/matt-g-everett/animatable/style"
)

// Element is a run of pixels driven by an Animatable. One style unit is one
// pixel: translateX slides the run along the strip, scale and scaleX stretch
// it about its centre, translateY fades it out over its own length, opacity
// blends it over whatever is below, backgroundColor tints it and rotate
// turns its hue.
type Element struct {
	name   string
	offset int
	length int
	colour colorful.Color

	playlist []animatable.Config
	index    int
	ended    bool

	anim    *animatable.Animatable
	current style.Style
}

// NewElement creates an element from its config. The controller attaches
// the Animatable that drives it.
func NewElement(cfg ElementConfig) *Element {
	c, _, _ := style.ParseColor(cfg.Color)
	return &Element{
		name:     cfg.Name,
		offset:   cfg.Offset,
		length:   cfg.Length,
		colour:   c,
		playlist: cfg.Playlist,
		current:  style.Style{},
	}
}

// Name returns the element name.
func (e *Element) Name() string {
	return e.name
}

// State describes the playlist entry driving the element and its state.
func (e *Element) State() string {
	if e.anim == nil || len(e.playlist) == 0 {
		return "detached"
	}
	entry := e.playlist[e.index]
	name := entry.Animation.String()
	if name == "" {
		name = "transition"
	}
	return fmt.Sprintf("%s [%d/%d] %s", name, e.index+1, len(e.playlist), e.anim.State())
}

// Apply receives the rendered style of the element.
func (e *Element) Apply(s style.Style) {
	e.current = style.Flatten(s)
}

// Style returns the last applied style, flattened.
func (e *Element) Style() style.Style {
	return e.current
}

// Rasterise composites the element onto f.
func (e *Element) Rasterise(f *Frame) {
	s := e.current

	colour := e.colour
	if v, ok := s["backgroundColor"].(string); ok {
		if tint, a, ok := style.ParseColor(v); ok && a > 0 {
			colour = colour.BlendRgb(tint, clampUnit(a))
		}
	}
	if turn := angle(s["rotate"]) + angle(s["rotateZ"]); turn != 0 {
		h, c, l := colour.Hcl()
		colour = colorful.Hcl(math.Mod(h+turn+360, 360), c, l).Clamped()
	}

	alpha := clampUnit(number(s, "opacity", 1))
	length := float64(e.length)
	if ty := number(s, "translateY", 0); ty != 0 {
		alpha *= math.Max(0, 1-math.Abs(ty)/length)
	}
	if alpha == 0 {
		return
	}

	stretch := math.Abs(number(s, "scale", 1) * number(s, "scaleX", 1))
	centre := float64(e.offset) + length/2 + number(s, "translateX", 0)
	half := length * stretch / 2
	start, end := centre-half, centre+half

	first := int(math.Max(0, math.Floor(start)))
	last := int(math.Min(float64(f.Len()), math.Ceil(end)))
	for i := first; i < last; i++ {
		coverage := math.Min(float64(i+1), end) - math.Max(float64(i), start)
		if coverage <= 0 {
			continue
		}
		f.pixels[i] = f.pixels[i].BlendRgb(colour, alpha*math.Min(1, coverage)).Clamped()
	}
}

func number(s style.Style, property string, fallback float64) float64 {
	if n, ok := style.Number(s[property]); ok {
		return n
	}
	return fallback
}

// angle reads a rotation in degrees from "45deg", "0.5rad" or a bare number.
func angle(v any) float64 {
	if n, ok := style.Number(v); ok {
		return n
	}
	str, ok := v.(string)
	if !ok {
		return 0
	}
	str = strings.TrimSpace(str)
	scale := 1.0
	switch {
	case strings.HasSuffix(str, "deg"):
		str = strings.TrimSuffix(str, "deg")
	case strings.HasSuffix(str, "rad"):
		str = strings.TrimSuffix(str, "rad")
		scale = 180 / math.Pi
	}
	n, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0
	}
	return n * scale
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
