package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/animatable/animatable"
	"github.com/matt-g-everett/animatable/keyframe"
	"github.com/matt-g-everett/animatable/logger"
	"github.com/matt-g-everett/animatable/registry"
	"github.com/matt-g-everett/animatable/style"
	"github.com/matt-g-everett/animatable/tween"
)

var epoch = time.Date(2024, 12, 24, 18, 0, 0, 0, time.UTC)

func testConfig() Config {
	var cfg Config
	cfg.Mqtt.URL = "tcp://localhost:1883"
	cfg.Mqtt.Topics.Stream = "home/strip/stream"
	cfg.Strip.Pixels = 20
	cfg.Strip.FrameRate = 10
	cfg.AnimationTime = 5 * time.Second
	cfg.Elements = []ElementConfig{{
		Name:   "a",
		Length: 10,
		Color:  "#ff0000",
		Playlist: []animatable.Config{
			{Animation: animatable.Named("fadeIn"), Duration: time.Second},
			{Animation: animatable.Named("pulse"), Duration: time.Second, IterationCount: animatable.Infinite},
		},
	}}
	return cfg
}

type controllerFixture struct {
	c      *Controller
	driver *tween.Driver
	reg    *registry.Registry
}

func newController(t *testing.T, cfg Config) *controllerFixture {
	t.Helper()
	reg, err := registry.NewWithCatalogue(nil)
	require.NoError(t, err)
	driver := tween.NewDriver(epoch)
	c, err := NewController(cfg, reg, driver, logger.Nop())
	require.NoError(t, err)
	return &controllerFixture{c: c, driver: driver, reg: reg}
}

func (f *controllerFixture) frameAt(ms int) *Frame {
	now := epoch.Add(time.Duration(ms) * time.Millisecond)
	f.driver.Advance(now)
	return f.c.CalculateFrame(now)
}

func TestControllerPlaysFirstEntry(t *testing.T) {
	t.Parallel()

	f := newController(t, testConfig())
	require.NoError(t, f.c.Start())

	assert.Equal(t, 0.0, f.frameAt(0).Pixel(0).R)

	mid := f.frameAt(500).Pixel(0).R
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 1.0)
	assert.Equal(t, animatable.Running, f.c.Elements()[0].anim.State())
}

func TestControllerAdvancesWhenAnimationEnds(t *testing.T) {
	t.Parallel()

	f := newController(t, testConfig())
	require.NoError(t, f.c.Start())
	e := f.c.Elements()[0]

	f.frameAt(1000)
	assert.Equal(t, 1, e.index)
	assert.Equal(t, animatable.Running, e.anim.State())

	// pulse is infinite, so it runs until the playlist cycles.
	f.frameAt(4000)
	assert.Equal(t, 1, e.index)

	f.frameAt(5000)
	assert.Equal(t, 0, e.index)
	assert.Equal(t, 0.0, f.frameAt(5000).Pixel(0).R)
}

func TestControllerReplaysSingleEntry(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Elements[0].Playlist = cfg.Elements[0].Playlist[:1]
	f := newController(t, cfg)
	require.NoError(t, f.c.Start())
	e := f.c.Elements()[0]

	f.frameAt(1000)
	assert.Equal(t, 0, e.index)
	assert.Equal(t, animatable.Running, e.anim.State())
	assert.Equal(t, 0.0, f.frameAt(1000).Pixel(0).R)

	f.frameAt(2000)
	f.frameAt(2000)
	assert.Equal(t, animatable.Running, e.anim.State())
}

func TestControllerCrossFades(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.TransitionTime = time.Second
	f := newController(t, cfg)
	require.NoError(t, f.c.Start())

	f.frameAt(4900)
	before := f.c.last.Pixel(0).R
	require.Greater(t, before, 0.0)

	// The cycle restarts fadeIn at opacity 0; the first frame still shows
	// most of the old one.
	blended := f.frameAt(5000).Pixel(0).R
	assert.NotNil(t, f.c.fadeFrom)
	assert.Greater(t, blended, 0.0)

	for ms := 5100; ms <= 6500; ms += 100 {
		f.frameAt(ms)
	}
	assert.Nil(t, f.c.fadeFrom)
}

func TestControllerTransitionEntry(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Elements[0].Playlist = []animatable.Config{
		{Transition: []string{"opacity"}, Style: style.Style{"opacity": 1.0}, Duration: time.Second, Easing: "linear"},
		{Transition: []string{"opacity"}, Style: style.Style{"opacity": 0.0}, Duration: time.Second, Easing: "linear"},
	}
	f := newController(t, cfg)
	require.NoError(t, f.c.Start())

	assert.InDelta(t, 1, f.frameAt(0).Pixel(0).R, 1e-9)
	f.frameAt(5000)
	assert.InDelta(t, 0.5, f.frameAt(5500).Pixel(0).R, 1e-9)
	assert.InDelta(t, 0, f.frameAt(6000).Pixel(0).R, 1e-9)
}

func TestControllerRegistersCustomAnimations(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Animations = map[string]keyframe.Definition{
		"glow": {Keyframes: map[string]style.Style{
			"from": {"opacity": 0.2},
			"to":   {"opacity": 1.0},
		}},
	}
	cfg.Elements[0].Playlist[0].Animation = animatable.Named("glow")
	f := newController(t, cfg)
	_, ok := f.reg.Lookup("glow")
	assert.True(t, ok)

	require.NoError(t, f.c.Start())
	assert.InDelta(t, 0.2, f.frameAt(0).Pixel(0).R, 1e-9)
}

func TestControllerRejectsInvalidCustomAnimation(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Animations = map[string]keyframe.Definition{
		"broken": {Keyframes: map[string]style.Style{"from": {"opacity": 0.2}}},
	}
	reg := registry.New(nil)
	_, err := NewController(cfg, reg, tween.NewDriver(epoch), logger.Nop())
	require.ErrorIs(t, err, keyframe.ErrInvalidDefinition)
}

func TestControllerStartFailsOnUnknownAnimation(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Elements[0].Playlist[0].Animation = animatable.Named("moonwalk")
	f := newController(t, cfg)
	require.ErrorIs(t, f.c.Start(), registry.ErrUnknownAnimation)
}

func TestControllerRun(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Strip.FrameRate = 200
	f := newController(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	frames := 0
	err := f.c.Run(ctx, func(fr *Frame) error {
		assert.Equal(t, 20, fr.Len())
		frames++
		if frames == 3 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, frames, 3)
	assert.Equal(t, animatable.Idle, f.c.Elements()[0].anim.State())
}
