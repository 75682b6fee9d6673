// Package keyframe compiles sparse keyframe definitions into per-property
// interpolation tracks.
package keyframe

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"

	"github.com/matt-g-everett/animatable/style"
)

// Animation is a compiled definition: one interpolation track per animated
// property, plus the definition's easing and static style.
type Animation struct {
	Easing string            `json:"easing,omitempty"`
	Style  style.Style       `json:"style,omitempty"`
	Tracks map[string]*Track `json:"tracks"`
}

// Properties returns the animated property names in sorted order.
func (a *Animation) Properties() []string {
	names := make([]string, 0, len(a.Tracks))
	for name := range a.Tracks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sample evaluates every track at progress and merges the static style
// underneath the result.
func (a *Animation) Sample(progress float64) style.Style {
	out := make(style.Style, len(a.Tracks)+len(a.Style))
	for key, value := range a.Style {
		out[key] = value
	}
	for name, track := range a.Tracks {
		out[name] = track.At(progress)
	}
	return out
}

// Compiler compiles definitions and memoizes the results by content, so
// equal definitions yield the same *Animation.
type Compiler struct {
	mu    sync.Mutex
	cache map[[sha256.Size]byte]*Animation
}

// NewCompiler creates a compiler with an empty cache.
func NewCompiler() *Compiler {
	return &Compiler{cache: make(map[[sha256.Size]byte]*Animation)}
}

var defaultCompiler = NewCompiler()

// Default returns the process-wide compiler used by Compile.
func Default() *Compiler {
	return defaultCompiler
}

// Compile compiles def with the process-wide compiler.
func Compile(def Definition) (*Animation, error) {
	return defaultCompiler.Compile(def)
}

// Compile turns def into an Animation. Failed compilations are not cached.
func (c *Compiler) Compile(def Definition) (*Animation, error) {
	key := fingerprint(def)

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.cache[key]; ok {
		return cached, nil
	}

	compiled, err := compile(def)
	if err != nil {
		return nil, err
	}
	c.cache[key] = compiled
	return compiled, nil
}

// Len reports the number of cached animations.
func (c *Compiler) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

func compile(def Definition) (*Animation, error) {
	keys := make([]string, 0, len(def.Keyframes))
	for key := range def.Keyframes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	explicit := make(map[float64]string)
	aliases := make(map[float64]string)
	for _, key := range keys {
		p, ok := parsePosition(key)
		if !ok {
			return nil, newDefinitionError(key, "position must be from, to or a number in [0,1]", ErrInvalidDefinition)
		}
		if key == From || key == To {
			aliases[p] = key
			continue
		}
		if _, seen := explicit[p]; !seen {
			explicit[p] = key
		}
	}

	positions := make([]float64, 0, len(explicit)+len(aliases))
	for p := range explicit {
		positions = append(positions, p)
	}
	for p := range aliases {
		if _, ok := explicit[p]; !ok {
			positions = append(positions, p)
		}
	}
	sort.Float64s(positions)

	if len(positions) < 2 {
		return nil, newDefinitionError("", "definitions must have at least two keyframes", ErrInvalidDefinition)
	}

	compiled := &Animation{
		Easing: def.Easing,
		Tracks: make(map[string]*Track),
	}
	if def.Style != nil {
		compiled.Style = style.Flatten(def.Style)
	}

	for _, p := range positions {
		key, ok := explicit[p]
		if !ok {
			key = aliases[p]
		}
		frame := def.Keyframes[key]
		if frame == nil {
			if alias, ok := aliases[p]; ok {
				key, frame = alias, def.Keyframes[alias]
			}
		}
		if frame == nil {
			return nil, newDefinitionError(key, "keyframe has no values", ErrMissingKeyframe)
		}

		flat := style.Flatten(frame)
		for _, name := range flat.Keys() {
			track, ok := compiled.Tracks[name]
			if !ok {
				track = &Track{}
				compiled.Tracks[name] = track
			}
			track.Input = append(track.Input, p)
			track.Output = append(track.Output, flat[name])
		}
	}

	for _, name := range compiled.Properties() {
		if track := compiled.Tracks[name]; len(track.Input) < 2 {
			return nil, newDefinitionError(name, fmt.Sprintf("property is only defined at position %s", Pos(track.Input[0])), ErrInvalidDefinition)
		}
	}
	return compiled, nil
}
