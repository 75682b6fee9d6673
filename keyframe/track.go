package keyframe

import (
	"math"
	"regexp"
	"strconv"

	"github.com/matt-g-everett/animatable/style"
)

// Track maps sorted input positions to output values for one property.
type Track struct {
	Input  []float64 `json:"inputRange"`
	Output []any     `json:"outputRange"`
}

// Between builds a two-point track from a to b over [0,1].
func Between(a, b any) *Track {
	return &Track{Input: []float64{0, 1}, Output: []any{a, b}}
}

// At evaluates the track at progress. Values between two positions are
// blended linearly; outside the track's range the nearest segment is
// extended.
func (t *Track) At(progress float64) any {
	n := len(t.Input)
	switch n {
	case 0:
		return nil
	case 1:
		return t.Output[0]
	}

	i := 0
	for i < n-2 && progress > t.Input[i+1] {
		i++
	}

	in0, in1 := t.Input[i], t.Input[i+1]
	if in0 == in1 {
		if progress <= in0 {
			return t.Output[i]
		}
		return t.Output[i+1]
	}
	return Blend(t.Output[i], t.Output[i+1], (progress-in0)/(in1-in0))
}

// Blend mixes two style values. Numbers blend numerically, offsets per
// component, colours in RGBA space and other strings by blending every
// number embedded in them.
func Blend(a, b any, ratio float64) any {
	na, aNum := style.Number(a)
	nb, bNum := style.Number(b)
	if aNum && bNum {
		return na + (nb-na)*ratio
	}

	if oa, ok := a.(style.Offset); ok {
		if ob, ok := b.(style.Offset); ok {
			return style.Offset{
				Width:  oa.Width + (ob.Width-oa.Width)*ratio,
				Height: oa.Height + (ob.Height-oa.Height)*ratio,
			}
		}
	}

	sa, aStr := asString(a)
	sb, bStr := asString(b)
	if !aStr || !bStr {
		return step(a, b, ratio)
	}
	if c, ok := style.BlendColors(sa, sb, clamp01(ratio)); ok {
		return c
	}
	template := sa
	if aNum {
		template = sb
	}
	if s, ok := blendPattern(template, sa, sb, ratio); ok {
		return s
	}
	return step(a, b, ratio)
}

var numberPattern = regexp.MustCompile(`[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// blendPattern blends the numbers of from and to and writes them into
// template, so "0deg" and "90deg" give "45deg" at the midpoint.
func blendPattern(template, from, to string, ratio float64) (string, bool) {
	fromNums := numberPattern.FindAllString(from, -1)
	toNums := numberPattern.FindAllString(to, -1)
	if len(fromNums) == 0 || len(fromNums) != len(toNums) {
		return "", false
	}

	i := 0
	var failed bool
	out := numberPattern.ReplaceAllStringFunc(template, func(string) string {
		if i >= len(fromNums) {
			failed = true
			return ""
		}
		x, err1 := strconv.ParseFloat(fromNums[i], 64)
		y, err2 := strconv.ParseFloat(toNums[i], 64)
		i++
		if err1 != nil || err2 != nil {
			failed = true
			return ""
		}
		v := math.Round((x+(y-x)*ratio)*1e6) / 1e6
		return strconv.FormatFloat(v, 'f', -1, 64)
	})
	if failed {
		return "", false
	}
	return out, true
}

func asString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if n, ok := style.Number(v); ok {
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}

func step(a, b any, ratio float64) any {
	if ratio >= 1 {
		return b
	}
	return a
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
