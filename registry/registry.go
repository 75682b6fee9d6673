// Package registry stores compiled animations by name.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/matt-g-everett/animatable/definitions"
	"github.com/matt-g-everett/animatable/keyframe"
)

// ErrUnknownAnimation is returned when a name has no registered animation.
var ErrUnknownAnimation = errors.New("unknown animation")

// Registry maps animation names to compiled animations. Lookups may run
// concurrently with each other; registration takes an exclusive lock.
type Registry struct {
	mu         sync.RWMutex
	compiler   *keyframe.Compiler
	animations map[string]*keyframe.Animation
}

// New creates an empty registry compiling with compiler. A nil compiler
// selects keyframe.Default().
func New(compiler *keyframe.Compiler) *Registry {
	if compiler == nil {
		compiler = keyframe.Default()
	}
	return &Registry{
		compiler:   compiler,
		animations: make(map[string]*keyframe.Animation),
	}
}

// NewWithCatalogue creates a registry seeded with the builtin catalogue.
func NewWithCatalogue(compiler *keyframe.Compiler) (*Registry, error) {
	r := New(compiler)
	if err := r.Initialize(definitions.Catalogue()); err != nil {
		return nil, err
	}
	return r, nil
}

// Compiler returns the compiler used for raw definitions.
func (r *Registry) Compiler() *keyframe.Compiler {
	return r.compiler
}

// Register compiles def and stores it under name, replacing any previous
// entry.
func (r *Registry) Register(name string, def keyframe.Definition) error {
	anim, err := r.compiler.Compile(def)
	if err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	r.RegisterCompiled(name, anim)
	return nil
}

// RegisterCompiled stores an already compiled animation under name.
func (r *Registry) RegisterCompiled(name string, anim *keyframe.Animation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.animations[name] = anim
}

// Lookup returns the animation registered under name.
func (r *Registry) Lookup(name string) (*keyframe.Animation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	anim, ok := r.animations[name]
	return anim, ok
}

// Get is Lookup with a wrapped ErrUnknownAnimation for missing names.
func (r *Registry) Get(name string) (*keyframe.Animation, error) {
	anim, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
	}
	return anim, nil
}

// Initialize compiles every definition and registers them together. If any
// definition fails nothing is registered. Calling it again with the same
// definitions leaves the registry unchanged.
func (r *Registry) Initialize(defs map[string]keyframe.Definition) error {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	compiled := make(map[string]*keyframe.Animation, len(defs))
	for _, name := range names {
		anim, err := r.compiler.Compile(defs[name])
		if err != nil {
			return fmt.Errorf("initialize %s: %w", name, err)
		}
		compiled[name] = anim
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, anim := range compiled {
		r.animations[name] = anim
	}
	return nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.animations))
	for name := range r.animations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of registered animations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.animations)
}
