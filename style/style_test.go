package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenMergesListsInOrder(t *testing.T) {
	t.Parallel()

	flat := Flatten([]any{
		Style{"opacity": 0.5, "margin": 4},
		[]Style{{"opacity": 1}, nil},
		map[string]any{"color": "red"},
	})

	require.Equal(t, Style{"opacity": 1.0, "margin": 4.0, "color": "red"}, flat)
}

func TestFlattenHoistsTransforms(t *testing.T) {
	t.Parallel()

	flat := Flatten(Style{
		"opacity":   1,
		"transform": []Style{{"translateX": 10}, {"rotate": "45deg"}},
	})

	require.Equal(t, Style{"opacity": 1.0, "translateX": 10.0, "rotate": "45deg"}, flat)
	require.NotContains(t, flat, "transform")
}

func TestFlattenDecodesYAMLMaps(t *testing.T) {
	t.Parallel()

	flat := Flatten(map[any]any{
		"shadowOffset": map[any]any{"width": 2, "height": 3},
		"transform":    []any{map[any]any{"scale": 2}},
	})

	require.Equal(t, Offset{Width: 2, Height: 3}, flat["shadowOffset"])
	require.Equal(t, 2.0, flat["scale"])
}

func TestWrapUsesCanonicalOrder(t *testing.T) {
	t.Parallel()

	wrapped := Wrap(Style{"translateY": 3.0, "opacity": 0.2, "rotate": "10deg", "scale": 2.0})

	require.Equal(t, 0.2, wrapped["opacity"])
	require.Equal(t, []Style{
		{"rotate": "10deg"},
		{"scale": 2.0},
		{"translateY": 3.0},
	}, wrapped["transform"])
}

func TestWrapWithoutTransformsOmitsKey(t *testing.T) {
	t.Parallel()

	require.NotContains(t, Wrap(Style{"opacity": 1.0}), "transform")
}

func TestFlattenWrapRoundTrip(t *testing.T) {
	t.Parallel()

	styles := []any{
		Style{"transform": []Style{{"skewX": "5deg"}, {"translateX": 4}}, "width": 10},
		[]any{Style{"rotate": "1deg"}, Style{"transform": []Style{{"scaleY": 0.5}}}},
		Style{"opacity": 0},
	}
	for _, s := range styles {
		once := Flatten(s)
		assert.Equal(t, once, Flatten(Wrap(once)))
	}
}

func TestPickFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	values := Pick([]string{"opacity", "rotate", "marginTop"}, Style{"opacity": 0.3, "margin": 8})

	require.Equal(t, Style{"opacity": 0.3, "rotate": "0deg", "marginTop": 8.0}, values)
}

func TestNeedsInterpolation(t *testing.T) {
	t.Parallel()

	assert.True(t, NeedsInterpolation("rotate", 0.0))
	assert.True(t, NeedsInterpolation("backgroundColor", "red"))
	assert.True(t, NeedsInterpolation("width", "50%"))
	assert.True(t, NeedsInterpolation("shadowOffset", Offset{}))
	assert.False(t, NeedsInterpolation("opacity", 0.5))
	assert.False(t, NeedsInterpolation("translateX", 10))
}
