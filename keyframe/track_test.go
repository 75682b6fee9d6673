package keyframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/animatable/style"
)

func TestTrackInterpolatesNumbers(t *testing.T) {
	t.Parallel()

	track := &Track{Input: []float64{0, 0.5, 1}, Output: []any{0.0, 10.0, 0.0}}

	assert.InDelta(t, 0, track.At(0), 1e-9)
	assert.InDelta(t, 5, track.At(0.25), 1e-9)
	assert.InDelta(t, 10, track.At(0.5), 1e-9)
	assert.InDelta(t, 4, track.At(0.8), 1e-9)
}

func TestTrackExtendsOutsideRange(t *testing.T) {
	t.Parallel()

	track := &Track{Input: []float64{0, 0.8}, Output: []any{0.0, 1.0}}

	assert.InDelta(t, 1.25, track.At(1), 1e-9)
	assert.InDelta(t, -0.125, track.At(-0.1), 1e-9)
}

func TestTrackInterpolatesAngles(t *testing.T) {
	t.Parallel()

	track := Between("0deg", "90deg")

	require.Equal(t, "45deg", track.At(0.5))
	require.Equal(t, "-9deg", Between("-12deg", "0deg").At(0.25))
}

func TestTrackInterpolatesColours(t *testing.T) {
	t.Parallel()

	track := Between("rgba(0, 0, 0, 1)", "#ff0000")

	require.Equal(t, "rgba(128, 0, 0, 1)", track.At(0.5))
	require.Equal(t, "rgba(255, 0, 0, 1)", track.At(1.5))
}

func TestTrackInterpolatesOffsets(t *testing.T) {
	t.Parallel()

	track := Between(style.Offset{Width: 0, Height: 2}, style.Offset{Width: 4, Height: 6})

	require.Equal(t, style.Offset{Width: 2, Height: 4}, track.At(0.5))
}

func TestBlendMixedNumberAndUnit(t *testing.T) {
	t.Parallel()

	require.Equal(t, "30deg", Blend(0.0, "60deg", 0.5))
}

func TestBlendIncompatibleValuesStep(t *testing.T) {
	t.Parallel()

	require.Equal(t, "auto", Blend("auto", "10%", 0.5))
	require.Equal(t, "10%", Blend("auto", "10%", 1))
}

func TestAnimationSampleMergesStaticStyle(t *testing.T) {
	t.Parallel()

	anim := &Animation{
		Style:  style.Style{"perspective": 400.0},
		Tracks: map[string]*Track{"opacity": Between(0.0, 1.0)},
	}

	require.Equal(t, style.Style{"perspective": 400.0, "opacity": 0.5}, anim.Sample(0.5))
}
