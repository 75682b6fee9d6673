package definitions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/animatable/keyframe"
)

func TestCatalogueMatchesGroups(t *testing.T) {
	t.Parallel()

	catalogue := Catalogue()
	var grouped int
	for _, g := range Groups() {
		for _, name := range g.Names {
			_, ok := catalogue[name]
			assert.True(t, ok, "%s listed in %s but not defined", name, g.Title)
			grouped++
		}
	}
	require.Len(t, Groups(), 11)
	require.Len(t, catalogue, 62)
	require.Equal(t, len(catalogue), grouped)
}

func TestCatalogueCompiles(t *testing.T) {
	t.Parallel()

	c := keyframe.NewCompiler()
	for name, def := range Catalogue() {
		_, err := c.Compile(def)
		require.NoError(t, err, name)
	}
}

func TestFadeFamilySharesSlope(t *testing.T) {
	t.Parallel()

	c := keyframe.NewCompiler()
	catalogue := Catalogue()

	compile := func(name string) *keyframe.Animation {
		anim, err := c.Compile(catalogue[name])
		require.NoError(t, err, name)
		return anim
	}

	out := compile("fadeOutDown")
	require.Equal(t, []any{1.0, 0.0}, out.Tracks["opacity"].Output)
	require.Equal(t, []any{0.0, 100.0}, out.Tracks["translateY"].Output)

	up := compile("fadeOutUp")
	require.Equal(t, []any{0.0, -100.0}, up.Tracks["translateY"].Output)

	in := compile("fadeInLeftBig")
	require.Equal(t, []any{0.0, 1.0}, in.Tracks["opacity"].Output)
	require.Equal(t, []any{500.0, 0.0}, in.Tracks["translateX"].Output)
}

func TestBounceGeneratorsMirrorDirections(t *testing.T) {
	t.Parallel()

	c := keyframe.NewCompiler()
	catalogue := Catalogue()

	down, err := c.Compile(catalogue["bounceInDown"])
	require.NoError(t, err)
	up, err := c.Compile(catalogue["bounceInUp"])
	require.NoError(t, err)

	require.Equal(t, []float64{0, 0.6, 0.75, 0.9, 1}, down.Tracks["translateY"].Input)
	require.Equal(t, []any{-800.0, 25.0, -10.0, 5.0, 0.0}, down.Tracks["translateY"].Output)
	for i, v := range down.Tracks["translateY"].Output {
		assert.InDelta(t, -v.(float64), up.Tracks["translateY"].Output[i].(float64), 1e-9)
	}
}

func TestZoomEntrancesUseOvershootEasing(t *testing.T) {
	t.Parallel()

	anim, err := keyframe.NewCompiler().Compile(Catalogue()["zoomInLeft"])
	require.NoError(t, err)
	require.Equal(t, zoomEasing, anim.Easing)
	require.Equal(t, []any{-1000.0, 10.0, 0.0}, anim.Tracks["translateX"].Output)
}

func TestJelloHalvesAmplitude(t *testing.T) {
	t.Parallel()

	anim, err := keyframe.NewCompiler().Compile(Catalogue()["jello"])
	require.NoError(t, err)
	out := anim.Tracks["skewX"].Output
	require.Equal(t, "-12.5deg", out[2])
	require.Equal(t, "6.25deg", out[3])
	require.Equal(t, "-3.125deg", out[4])
}

func TestLayoutDependent(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"slideInDown", "fadeIn", "fadeOutLeftBig", "wobble", "lightSpeedIn"} {
		assert.True(t, LayoutDependent(name), name)
	}
	for _, name := range []string{"bounce", "zoomIn", "flipInX", "pulse"} {
		assert.False(t, LayoutDependent(name), name)
	}
}

func TestGroupsReturnsCopies(t *testing.T) {
	t.Parallel()

	g := Groups()
	g[0].Names[0] = "changed"
	require.Equal(t, "bounce", Groups()[0].Names[0])
}
