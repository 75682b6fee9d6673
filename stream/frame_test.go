package stream

import (
	"encoding/binary"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameMarshalBinary(t *testing.T) {
	t.Parallel()

	f := NewFrame(3)
	f.pixels[0] = colorful.Color{R: 1}
	f.pixels[1] = colorful.Color{G: 1}
	f.pixels[2] = colorful.Color{R: 2, B: -1}

	data, err := f.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, 2+3*3)
	assert.Equal(t, uint16(3), binary.LittleEndian.Uint16(data))
	assert.Equal(t, []byte{255, 0, 0, 0, 255, 0, 255, 0, 0}, data[2:])
}

func TestInterpolateFrame(t *testing.T) {
	t.Parallel()

	a := NewFrame(2)
	b := NewFrame(2)
	b.pixels[0] = colorful.Color{R: 1, G: 1, B: 1}
	b.pixels[1] = colorful.Color{R: 1, G: 1, B: 1}

	start := a.InterpolateFrame(b, 0)
	r, g, bl := start.Pixel(1).RGB255()
	assert.Equal(t, []uint8{0, 0, 0}, []uint8{r, g, bl})

	end := a.InterpolateFrame(b, 1)
	r, g, bl = end.Pixel(0).RGB255()
	assert.Equal(t, []uint8{255, 255, 255}, []uint8{r, g, bl})
}

func TestFrameClone(t *testing.T) {
	t.Parallel()

	f := NewFrame(1)
	c := f.Clone()
	c.pixels[0] = colorful.Color{R: 1}
	assert.Equal(t, colorful.Color{}, f.Pixel(0))
}

func TestBackgroundPaint(t *testing.T) {
	t.Parallel()

	bg := Background{
		Stops:     GradientTable{{Hue: 0, Pos: 0}, {Hue: 120, Pos: 1}},
		Chroma:    0.2,
		Luminance: 0.5,
	}
	f := NewFrame(3)
	bg.Paint(f)

	h0, _, _ := f.Pixel(0).Hcl()
	h2, _, _ := f.Pixel(2).Hcl()
	assert.InDelta(t, 0, h0, 2)
	assert.InDelta(t, 120, h2, 2)
	assert.NotEqual(t, f.Pixel(0), f.Pixel(1))
}

func TestGradientGetColorOutsideStops(t *testing.T) {
	t.Parallel()

	g := GradientTable{{Hue: 30, Pos: 0.2}, {Hue: 60, Pos: 0.8}}
	assert.Equal(t, colorful.Hcl(30, 0.3, 0.4), g.GetColor(0, 0.3, 0.4))
	assert.Equal(t, colorful.Hcl(60, 0.3, 0.4), g.GetColor(1, 0.3, 0.4))
	assert.Equal(t, colorful.Color{}, GradientTable{}.GetColor(0.5, 1, 1))
}
