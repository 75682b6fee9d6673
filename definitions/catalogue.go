// Package definitions holds the builtin animation catalogue. Directional
// families are produced by one generator each so every direction shares the
// same keyframe positions and slope conventions.
package definitions

import (
	"strings"

	"github.com/matt-g-everett/animatable/keyframe"
	"github.com/matt-g-everett/animatable/style"
)

// Group is a titled set of catalogue names.
type Group struct {
	Title string   `json:"title"`
	Names []string `json:"names"`
}

var groups = []Group{
	{"Attention Seekers", []string{"bounce", "flash", "jello", "pulse", "rotate", "rubberBand", "shake", "swing", "tada", "wobble"}},
	{"Bouncing Entrances", []string{"bounceIn", "bounceInDown", "bounceInUp", "bounceInLeft", "bounceInRight"}},
	{"Bouncing Exits", []string{"bounceOut", "bounceOutDown", "bounceOutUp", "bounceOutLeft", "bounceOutRight"}},
	{"Fading Entrances", []string{"fadeIn", "fadeInDown", "fadeInDownBig", "fadeInUp", "fadeInUpBig", "fadeInLeft", "fadeInLeftBig", "fadeInRight", "fadeInRightBig"}},
	{"Fading Exits", []string{"fadeOut", "fadeOutDown", "fadeOutDownBig", "fadeOutUp", "fadeOutUpBig", "fadeOutLeft", "fadeOutLeftBig", "fadeOutRight", "fadeOutRightBig"}},
	{"Flippers", []string{"flipInX", "flipInY", "flipOutX", "flipOutY"}},
	{"Lightspeed", []string{"lightSpeedIn", "lightSpeedOut"}},
	{"Sliding Entrances", []string{"slideInDown", "slideInUp", "slideInLeft", "slideInRight"}},
	{"Sliding Exits", []string{"slideOutDown", "slideOutUp", "slideOutLeft", "slideOutRight"}},
	{"Zooming Entrances", []string{"zoomIn", "zoomInDown", "zoomInUp", "zoomInLeft", "zoomInRight"}},
	{"Zooming Exits", []string{"zoomOut", "zoomOutDown", "zoomOutUp", "zoomOutLeft", "zoomOutRight"}},
}

// Groups returns the catalogue names grouped by category.
func Groups() []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{Title: g.Title, Names: append([]string(nil), g.Names...)}
	}
	return out
}

// Catalogue builds every builtin definition keyed by name.
func Catalogue() map[string]keyframe.Definition {
	all := make(map[string]keyframe.Definition)
	for _, family := range []map[string]keyframe.Definition{
		attentionSeekers(),
		bouncingEntrances(),
		bouncingExits(),
		fadingEntrances(),
		fadingExits(),
		flippers(),
		lightspeed(),
		slidingEntrances(),
		slidingExits(),
		zoomingEntrances(),
		zoomingExits(),
	} {
		for name, def := range family {
			all[name] = def
		}
	}
	return all
}

// Effects whose keyframes are expressed relative to the element's extent.
var layoutDependentPrefixes = []string{"slide", "fade", "wobble", "lightSpeed"}

// LayoutDependent reports whether the named animation must wait for the
// element to be measured before it starts.
func LayoutDependent(name string) bool {
	for _, prefix := range layoutDependentPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Axis is the transform property a directional effect moves along.
type Axis string

const (
	Horizontal Axis = "translateX"
	Vertical   Axis = "translateY"
)

func frames(kf map[float64]style.Style) keyframe.Definition {
	def := keyframe.Definition{Keyframes: make(map[string]style.Style, len(kf))}
	for p, s := range kf {
		def.Keyframes[keyframe.Pos(p)] = s
	}
	return def
}

func oscillate(property string, positions []float64, values []any) keyframe.Definition {
	kf := make(map[float64]style.Style, len(positions))
	for i, p := range positions {
		kf[p] = style.Style{property: values[i]}
	}
	return frames(kf)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func clampUnit(v float64) float64 {
	return max(-1, min(1, v))
}
