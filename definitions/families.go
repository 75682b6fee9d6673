package definitions

import (
	"github.com/matt-g-everett/animatable/keyframe"
	"github.com/matt-g-everett/animatable/style"
)

const (
	fadeDistance    = 100
	fadeBigDistance = 500
	slideDistance   = 100
	zoomEasing      = "cubic-bezier(0.175, 0.885, 0.32, 1)"
)

// direction describes one member of a directional family: its catalogue
// suffix, its axis and the sign of travel towards the far side.
type direction struct {
	suffix string
	axis   Axis
	sign   float64
}

var (
	down  = direction{"Down", Vertical, 1}
	up    = direction{"Up", Vertical, -1}
	left  = direction{"Left", Horizontal, -1}
	right = direction{"Right", Horizontal, 1}
)

func bouncingEntrances() map[string]keyframe.Definition {
	return map[string]keyframe.Definition{
		"bounceIn": frames(map[float64]style.Style{
			0:   {"opacity": 0, "scale": 0.3},
			0.2: {"scale": 1.1},
			0.4: {"scale": 0.9},
			0.6: {"opacity": 1, "scale": 1.03},
			0.8: {"scale": 0.97},
			1:   {"opacity": 1, "scale": 1},
		}),
		"bounceInDown":  bounceIn(Vertical, -800, 25, 10, 5),
		"bounceInUp":    bounceIn(Vertical, 800, 25, 10, 5),
		"bounceInLeft":  bounceIn(Horizontal, -600, 20, 8, 4),
		"bounceInRight": bounceIn(Horizontal, 600, 20, 8, 4),
	}
}

// bounceIn enters from distance, overshooting by first, then second and
// third in alternating directions before settling.
func bounceIn(axis Axis, distance, first, second, third float64) keyframe.Definition {
	s := sign(distance)
	p := string(axis)
	return frames(map[float64]style.Style{
		0:    {"opacity": 0, p: distance},
		0.6:  {"opacity": 1, p: -s * first},
		0.75: {p: s * second},
		0.9:  {p: -s * third},
		1:    {p: 0},
	})
}

func bouncingExits() map[string]keyframe.Definition {
	return map[string]keyframe.Definition{
		"bounceOut": frames(map[float64]style.Style{
			0:    {"opacity": 1, "scale": 1},
			0.2:  {"scale": 0.9},
			0.5:  {"opacity": 1, "scale": 1.11},
			0.55: {"scale": 1.11},
			1:    {"opacity": 0, "scale": 0.3},
		}),
		"bounceOutDown":  bounceOut(Vertical, 800),
		"bounceOutUp":    bounceOut(Vertical, -800),
		"bounceOutLeft":  bounceOut(Horizontal, -600),
		"bounceOutRight": bounceOut(Horizontal, 600),
	}
}

// bounceOut nudges towards distance, recoils, then leaves to distance.
func bounceOut(axis Axis, distance float64) keyframe.Definition {
	s := sign(distance)
	p := string(axis)
	return frames(map[float64]style.Style{
		0:    {"opacity": 1, p: 0},
		0.2:  {"opacity": 1, p: s * 10},
		0.4:  {p: -s * 20},
		0.45: {p: -s * 20},
		0.55: {"opacity": 1},
		1:    {"opacity": 0, p: distance},
	})
}

func fadingEntrances() map[string]keyframe.Definition {
	defs := map[string]keyframe.Definition{
		"fadeIn": fade(1, "", 0),
	}
	for _, d := range []direction{down, up, left, right} {
		// Entrances arrive from the side opposite their name.
		defs["fadeIn"+d.suffix] = fade(1, d.axis, -d.sign*fadeDistance)
		defs["fadeIn"+d.suffix+"Big"] = fade(1, d.axis, -d.sign*fadeBigDistance)
	}
	return defs
}

func fadingExits() map[string]keyframe.Definition {
	defs := map[string]keyframe.Definition{
		"fadeOut": fade(0, "", 0),
	}
	for _, d := range []direction{down, up, left, right} {
		defs["fadeOut"+d.suffix] = fade(0, d.axis, d.sign*fadeDistance)
		defs["fadeOut"+d.suffix+"Big"] = fade(0, d.axis, d.sign*fadeBigDistance)
	}
	return defs
}

// fade moves opacity to target. When axis is set the element travels
// between offset and its resting place: from offset for entrances, towards
// offset for exits.
func fade(target float64, axis Axis, offset float64) keyframe.Definition {
	from := style.Style{"opacity": 1 - target}
	to := style.Style{"opacity": target}
	if axis != "" {
		p := string(axis)
		if target == 1 {
			from[p], to[p] = offset, 0.0
		} else {
			from[p], to[p] = 0.0, offset
		}
	}
	return keyframe.Definition{Keyframes: map[string]style.Style{keyframe.From: from, keyframe.To: to}}
}

func slidingEntrances() map[string]keyframe.Definition {
	defs := make(map[string]keyframe.Definition)
	for _, d := range []direction{down, up, left, right} {
		defs["slideIn"+d.suffix] = slide(d.axis, -d.sign*slideDistance, 0)
	}
	return defs
}

func slidingExits() map[string]keyframe.Definition {
	defs := make(map[string]keyframe.Definition)
	for _, d := range []direction{down, up, left, right} {
		defs["slideOut"+d.suffix] = slide(d.axis, 0, d.sign*slideDistance)
	}
	return defs
}

func slide(axis Axis, from, to float64) keyframe.Definition {
	p := string(axis)
	return keyframe.Definition{Keyframes: map[string]style.Style{
		keyframe.From: {p: from},
		keyframe.To:   {p: to},
	}}
}

var flipStyle = style.Style{"backfaceVisibility": "visible", "perspective": 400}

func flippers() map[string]keyframe.Definition {
	return map[string]keyframe.Definition{
		"flipInX":  flipIn("rotateX"),
		"flipInY":  flipIn("rotateY"),
		"flipOutX": flipOut("rotateX"),
		"flipOutY": flipOut("rotateY"),
	}
}

func flipIn(rotation string) keyframe.Definition {
	def := frames(map[float64]style.Style{
		0:   {"opacity": 0, rotation: "90deg"},
		0.4: {rotation: "-20deg"},
		0.6: {"opacity": 1, rotation: "10deg"},
		0.8: {rotation: "-5deg"},
		1:   {"opacity": 1, rotation: "0deg"},
	})
	def.Easing = "ease-in"
	def.Style = flipStyle
	return def
}

func flipOut(rotation string) keyframe.Definition {
	def := frames(map[float64]style.Style{
		0:   {"opacity": 1, rotation: "0deg"},
		0.3: {"opacity": 1, rotation: "-20deg"},
		1:   {"opacity": 0, rotation: "90deg"},
	})
	def.Style = flipStyle
	return def
}

func lightspeed() map[string]keyframe.Definition {
	in := frames(map[float64]style.Style{
		0:   {"opacity": 0, "translateX": 200, "skewX": "-30deg"},
		0.6: {"opacity": 1, "translateX": 0, "skewX": "20deg"},
		0.8: {"skewX": "-5deg"},
		1:   {"opacity": 1, "translateX": 0, "skewX": "0deg"},
	})
	in.Easing = "ease-out"

	out := frames(map[float64]style.Style{
		0: {"opacity": 1, "translateX": 0, "skewX": "0deg"},
		1: {"opacity": 0, "translateX": 200, "skewX": "30deg"},
	})
	out.Easing = "ease-in"

	return map[string]keyframe.Definition{"lightSpeedIn": in, "lightSpeedOut": out}
}

func zoomingEntrances() map[string]keyframe.Definition {
	return map[string]keyframe.Definition{
		"zoomIn": {Keyframes: map[string]style.Style{
			keyframe.From: {"opacity": 0, "scale": 0.3},
			"0.5":         {"opacity": 1},
			keyframe.To:   {"opacity": 1, "scale": 1},
		}},
		"zoomInDown":  zoomIn(Vertical, 60),
		"zoomInUp":    zoomIn(Vertical, -60),
		"zoomInLeft":  zoomIn(Horizontal, 10),
		"zoomInRight": zoomIn(Horizontal, -10),
	}
}

func zoomingExits() map[string]keyframe.Definition {
	return map[string]keyframe.Definition{
		"zoomOut": {Keyframes: map[string]style.Style{
			keyframe.From: {"opacity": 1, "scale": 1},
			"0.5":         {"opacity": 1, "scale": 0.3},
			keyframe.To:   {"opacity": 0, "scale": 0},
		}},
		"zoomOutDown":  zoomOut(Vertical, 60),
		"zoomOutUp":    zoomOut(Vertical, -60),
		"zoomOutLeft":  zoomOut(Horizontal, 10),
		"zoomOutRight": zoomOut(Horizontal, -10),
	}
}

// zoomIn grows from far away on the side opposite pivot, passing through
// pivot on the way in.
func zoomIn(axis Axis, pivot float64) keyframe.Definition {
	p := string(axis)
	def := frames(map[float64]style.Style{
		0:   {"opacity": 0, "scale": 0.1, p: clampUnit(pivot) * -1000},
		0.6: {"opacity": 1, "scale": 0.457, p: pivot},
		1:   {"scale": 1, p: 0},
	})
	def.Easing = zoomEasing
	return def
}

func zoomOut(axis Axis, pivot float64) keyframe.Definition {
	p := string(axis)
	def := frames(map[float64]style.Style{
		0:   {"opacity": 1, "scale": 1, p: 0},
		0.4: {"opacity": 1, "scale": 0.457, p: pivot},
		1:   {"opacity": 0, "scale": 0.1, p: clampUnit(pivot) * -1000},
	})
	def.Easing = zoomEasing
	return def
}
