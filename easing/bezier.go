package easing

import "math"

const (
	newtonIterations  = 4
	newtonMinSlope    = 0.001
	subdivisionEps    = 1e-7
	subdivisionRounds = 10
	sampleCount       = 11
	sampleStep        = 1.0 / (sampleCount - 1)
)

// Bezier returns the CSS cubic-bezier curve through (0,0), (x1,y1), (x2,y2)
// and (1,1). x1 and x2 must lie in [0,1].
func Bezier(x1, y1, x2, y2 float64) Func {
	if x1 == y1 && x2 == y2 {
		return func(t float64) float64 { return t }
	}

	var samples [sampleCount]float64
	for i := range samples {
		samples[i] = bezierAt(float64(i)*sampleStep, x1, x2)
	}

	tForX := func(x float64) float64 {
		start := 0.0
		i := 1
		for ; i < sampleCount-1 && samples[i] <= x; i++ {
			start += sampleStep
		}
		i--

		dist := (x - samples[i]) / (samples[i+1] - samples[i])
		guess := start + dist*sampleStep

		slope := bezierSlope(guess, x1, x2)
		switch {
		case slope >= newtonMinSlope:
			return newton(x, guess, x1, x2)
		case slope == 0:
			return guess
		default:
			return subdivide(x, start, start+sampleStep, x1, x2)
		}
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return bezierAt(tForX(t), y1, y2)
	}
}

func coefficients(p1, p2 float64) (a, b, c float64) {
	return 1 - 3*p2 + 3*p1, 3*p2 - 6*p1, 3 * p1
}

func bezierAt(t, p1, p2 float64) float64 {
	a, b, c := coefficients(p1, p2)
	return ((a*t+b)*t + c) * t
}

func bezierSlope(t, p1, p2 float64) float64 {
	a, b, c := coefficients(p1, p2)
	return 3*a*t*t + 2*b*t + c
}

func newton(x, guess, x1, x2 float64) float64 {
	for i := 0; i < newtonIterations; i++ {
		slope := bezierSlope(guess, x1, x2)
		if slope == 0 {
			return guess
		}
		guess -= (bezierAt(guess, x1, x2) - x) / slope
	}
	return guess
}

func subdivide(x, a, b, x1, x2 float64) float64 {
	var t float64
	for i := 0; i < subdivisionRounds; i++ {
		t = a + (b-a)/2
		diff := bezierAt(t, x1, x2) - x
		if math.Abs(diff) <= subdivisionEps {
			break
		}
		if diff > 0 {
			b = t
		} else {
			a = t
		}
	}
	return t
}
