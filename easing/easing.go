// Package easing maps easing names to curves over [0,1].
package easing

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fogleman/ease"
)

// Func maps linear progress in [0,1] to eased progress.
type Func func(t float64) float64

// Default is the curve used when nothing else is configured.
const Default = "ease"

// ErrUnknownEasing is returned for names that are not registered curves.
var ErrUnknownEasing = errors.New("unknown easing")

var named = map[string]Func{
	"linear":      ease.Linear,
	"ease":        Bezier(0.25, 0.1, 0.25, 1),
	"ease-in":     Bezier(0.42, 0, 1, 1),
	"ease-out":    Bezier(0, 0, 0.58, 1),
	"ease-in-out": Bezier(0.42, 0, 0.58, 1),

	"ease-in-quad":     ease.InQuad,
	"ease-out-quad":    ease.OutQuad,
	"ease-in-out-quad": ease.InOutQuad,

	"ease-in-cubic":     ease.InCubic,
	"ease-out-cubic":    ease.OutCubic,
	"ease-in-out-cubic": ease.InOutCubic,

	"ease-in-quart":     ease.InQuart,
	"ease-out-quart":    ease.OutQuart,
	"ease-in-out-quart": ease.InOutQuart,

	"ease-in-quint":     ease.InQuint,
	"ease-out-quint":    ease.OutQuint,
	"ease-in-out-quint": ease.InOutQuint,

	"ease-in-sine":     ease.InSine,
	"ease-out-sine":    ease.OutSine,
	"ease-in-out-sine": ease.InOutSine,

	"ease-in-expo":     ease.InExpo,
	"ease-out-expo":    ease.OutExpo,
	"ease-in-out-expo": ease.InOutExpo,

	"ease-in-circ":     ease.InCirc,
	"ease-out-circ":    ease.OutCirc,
	"ease-in-out-circ": ease.InOutCirc,

	"ease-in-back":     ease.InBack,
	"ease-out-back":    ease.OutBack,
	"ease-in-out-back": ease.InOutBack,
}

// Lookup resolves a curve by name. Besides the named curves it accepts the
// CSS form cubic-bezier(x1, y1, x2, y2).
func Lookup(name string) (Func, error) {
	name = strings.TrimSpace(name)
	if fn, ok := named[name]; ok {
		return fn, nil
	}
	if strings.HasPrefix(name, "cubic-bezier(") && strings.HasSuffix(name, ")") {
		return parseBezier(name[len("cubic-bezier(") : len(name)-1])
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
}

// Valid reports whether Lookup would accept name.
func Valid(name string) bool {
	_, err := Lookup(name)
	return err == nil
}

// Names lists the named curves in sorted order.
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reverse plays f backwards in time, so the acceleration profile of the
// outgoing leg becomes the profile of the incoming one.
func Reverse(f Func) Func {
	return func(t float64) float64 {
		return 1 - f(1-t)
	}
}

func parseBezier(args string) (Func, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: cubic-bezier needs 4 arguments, got %d", ErrUnknownEasing, len(parts))
	}
	var p [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: cubic-bezier argument %q: %v", ErrUnknownEasing, part, err)
		}
		p[i] = v
	}
	if p[0] < 0 || p[0] > 1 || p[2] < 0 || p[2] > 1 {
		return nil, fmt.Errorf("%w: cubic-bezier x values must be in [0,1]", ErrUnknownEasing)
	}
	return Bezier(p[0], p[1], p[2], p[3]), nil
}
