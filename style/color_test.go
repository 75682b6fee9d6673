package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorForms(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		r, g, b uint8
		a       float64
	}{
		"#f00":               {255, 0, 0, 1},
		"#00ff00":            {0, 255, 0, 1},
		"#0000ff80":          {0, 0, 255, 128.0 / 255},
		"rgb(10, 20, 30)":    {10, 20, 30, 1},
		"rgba(10,20,30,0.5)": {10, 20, 30, 0.5},
		"transparent":        {0, 0, 0, 0},
		"White":              {255, 255, 255, 1},
	}
	for input, want := range cases {
		c, a, ok := ParseColor(input)
		require.True(t, ok, input)
		r, g, b := c.RGB255()
		assert.Equal(t, [3]uint8{want.r, want.g, want.b}, [3]uint8{r, g, b}, input)
		assert.InDelta(t, want.a, a, 1e-9, input)
	}
}

func TestParseColorRejectsOtherStrings(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"10deg", "#zzzzzz", "rgb(1,2)", ""} {
		_, _, ok := ParseColor(input)
		assert.False(t, ok, input)
	}
}

func TestBlendColors(t *testing.T) {
	t.Parallel()

	mid, ok := BlendColors("rgba(0, 0, 0, 0)", "rgba(200, 100, 50, 1)", 0.5)
	require.True(t, ok)
	require.Equal(t, "rgba(100, 50, 25, 0.5)", mid)

	_, ok = BlendColors("red", "90deg", 0.5)
	require.False(t, ok)
}
