package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/animatable/definitions"
	"github.com/matt-g-everett/animatable/keyframe"
	"github.com/matt-g-everett/animatable/style"
)

func fadeDef(to float64) keyframe.Definition {
	return keyframe.Definition{Keyframes: map[string]style.Style{
		keyframe.From: {"opacity": 0},
		keyframe.To:   {"opacity": to},
	}}
}

func TestRegisterAndLookup(t *testing.T) {
	t.Parallel()

	r := New(keyframe.NewCompiler())
	require.NoError(t, r.Register("fade", fadeDef(1)))

	anim, ok := r.Lookup("fade")
	require.True(t, ok)
	require.Equal(t, []any{0.0, 1.0}, anim.Tracks["opacity"].Output)

	require.NoError(t, r.Register("fade", fadeDef(0.5)))
	anim, err := r.Get("fade")
	require.NoError(t, err)
	require.Equal(t, []any{0.0, 0.5}, anim.Tracks["opacity"].Output)
}

func TestGetUnknownAnimation(t *testing.T) {
	t.Parallel()

	_, err := New(nil).Get("nope")
	require.True(t, errors.Is(err, ErrUnknownAnimation))
	require.Contains(t, err.Error(), "nope")
}

func TestRegisterInvalidDefinition(t *testing.T) {
	t.Parallel()

	r := New(keyframe.NewCompiler())
	err := r.Register("broken", keyframe.Definition{Keyframes: map[string]style.Style{keyframe.To: {"opacity": 1}}})
	require.True(t, errors.Is(err, keyframe.ErrInvalidDefinition))
	require.Zero(t, r.Len())
}

func TestInitializeIsAllOrNothing(t *testing.T) {
	t.Parallel()

	r := New(keyframe.NewCompiler())
	err := r.Initialize(map[string]keyframe.Definition{
		"good":   fadeDef(1),
		"broken": {Keyframes: map[string]style.Style{"2": {"opacity": 1}, keyframe.To: {"opacity": 0}}},
	})
	require.True(t, errors.Is(err, keyframe.ErrInvalidDefinition))
	require.Empty(t, r.Names())
}

func TestInitializeIsIdempotent(t *testing.T) {
	t.Parallel()

	r, err := NewWithCatalogue(keyframe.NewCompiler())
	require.NoError(t, err)
	first, _ := r.Lookup("bounce")
	names := r.Names()

	require.NoError(t, r.Initialize(definitions.Catalogue()))

	second, _ := r.Lookup("bounce")
	require.Same(t, first, second)
	require.Equal(t, names, r.Names())
	require.Len(t, names, 62)
}

func TestConcurrentLookups(t *testing.T) {
	t.Parallel()

	r, err := NewWithCatalogue(nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, name := range r.Names() {
				_, ok := r.Lookup(name)
				assert.True(t, ok, name)
			}
		}()
	}
	wg.Wait()
}
