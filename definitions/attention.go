package definitions

import (
	"github.com/matt-g-everett/animatable/keyframe"
	"github.com/matt-g-everett/animatable/style"
)

func attentionSeekers() map[string]keyframe.Definition {
	return map[string]keyframe.Definition{
		"bounce": frames(map[float64]style.Style{
			0:    {"translateY": 0},
			0.2:  {"translateY": 0},
			0.4:  {"translateY": -30},
			0.43: {"translateY": -30},
			0.53: {"translateY": 0},
			0.7:  {"translateY": -15},
			0.8:  {"translateY": 0},
			0.9:  {"translateY": -4},
			1:    {"translateY": 0},
		}),
		"flash": oscillate("opacity", []float64{0, 0.25, 0.5, 0.75, 1}, []any{1, 0, 1, 0, 1}),
		"jello": skewDecay(),
		"pulse": oscillate("scale", []float64{0, 0.5, 1}, []any{1, 1.05, 1}),
		"rotate": oscillate("rotate",
			[]float64{0, 0.25, 0.5, 0.75, 1},
			[]any{"0deg", "90deg", "180deg", "270deg", "360deg"}),
		"rubberBand": frames(map[float64]style.Style{
			0:    {"scaleX": 1, "scaleY": 1},
			0.3:  {"scaleX": 1.25, "scaleY": 0.75},
			0.4:  {"scaleX": 0.75, "scaleY": 1.25},
			0.5:  {"scaleX": 1.15, "scaleY": 0.85},
			0.65: {"scaleX": 0.95, "scaleY": 1.05},
			0.75: {"scaleX": 1.05, "scaleY": 0.95},
			1:    {"scaleX": 1, "scaleY": 1},
		}),
		"shake": shake(),
		"swing": oscillate("rotate",
			[]float64{0, 0.2, 0.4, 0.6, 0.8, 1},
			[]any{"0deg", "15deg", "-10deg", "5deg", "-5deg", "0deg"}),
		"tada": frames(map[float64]style.Style{
			0:   {"scale": 1, "rotate": "0deg"},
			0.1: {"scale": 0.9, "rotate": "-3deg"},
			0.2: {"scale": 0.9, "rotate": "-3deg"},
			0.3: {"scale": 1.1, "rotate": "-3deg"},
			0.4: {"rotate": "3deg"},
			0.5: {"rotate": "-3deg"},
			0.6: {"rotate": "3deg"},
			0.7: {"rotate": "-3deg"},
			0.8: {"rotate": "3deg"},
			0.9: {"scale": 1.1, "rotate": "3deg"},
			1:   {"scale": 1, "rotate": "0deg"},
		}),
		"wobble": frames(map[float64]style.Style{
			0:    {"translateX": 0, "rotate": "0deg"},
			0.15: {"translateX": -25, "rotate": "-5deg"},
			0.3:  {"translateX": 20, "rotate": "3deg"},
			0.45: {"translateX": -15, "rotate": "-3deg"},
			0.6:  {"translateX": 10, "rotate": "2deg"},
			0.75: {"translateX": -5, "rotate": "-1deg"},
			1:    {"translateX": 0, "rotate": "0deg"},
		}),
	}
}

// shake alternates translateX between -10 and 10 every tenth.
func shake() keyframe.Definition {
	positions := make([]float64, 0, 11)
	values := make([]any, 0, 11)
	for i := 0; i <= 10; i++ {
		positions = append(positions, float64(i)/10)
		switch {
		case i == 0 || i == 10:
			values = append(values, 0)
		case i%2 == 1:
			values = append(values, -10)
		default:
			values = append(values, 10)
		}
	}
	return oscillate("translateX", positions, values)
}

// skewDecay halves a skew amplitude on every ninth of the timeline.
func skewDecay() keyframe.Definition {
	kf := map[float64]style.Style{
		0:     {"skewX": "0deg", "skewY": "0deg"},
		0.111: {"skewX": "0deg", "skewY": "0deg"},
		1:     {"skewX": "0deg", "skewY": "0deg"},
	}
	amplitude := -12.5
	for i, p := range []float64{0.222, 0.333, 0.444, 0.555, 0.666, 0.777, 0.888} {
		if i > 0 {
			amplitude /= -2
		}
		deg := keyframe.Pos(amplitude) + "deg"
		kf[p] = style.Style{"skewX": deg, "skewY": deg}
	}
	return frames(kf)
}
