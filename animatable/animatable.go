// Package animatable decorates host components with keyframe animations and
// property transitions. An Animatable is driven from a single goroutine: its
// methods and every scheduler callback must run on the same one.
package animatable

import (
	"fmt"
	"time"

	"github.com/matt-g-everett/animatable/definitions"
	"github.com/matt-g-everett/animatable/easing"
	"github.com/matt-g-everett/animatable/keyframe"
	"github.com/matt-g-everett/animatable/logger"
	"github.com/matt-g-everett/animatable/registry"
	"github.com/matt-g-everett/animatable/style"
	"github.com/matt-g-everett/animatable/tween"
)

// Component is the decorated host component.
type Component interface {
	Apply(s style.Style)
}

// NativePropsSetter is implemented by components that accept direct property
// updates outside the render cycle.
type NativePropsSetter interface {
	SetNativeProps(props style.Style)
}

// Scheduler runs tweens and timers. *tween.Driver implements it.
type Scheduler interface {
	Timing(v *tween.Value, cfg tween.Timing, done tween.Callback) tween.Handle
	Spring(v *tween.Value, cfg tween.Spring, done tween.Callback) tween.Handle
	AfterFunc(delay time.Duration, fn func()) tween.Handle
}

// State is the lifecycle state of an instance's keyframe animation.
type State int

const (
	Idle State = iota
	PendingDelay
	PendingLayout
	Running
	Completed
)

func (s State) String() string {
	switch s {
	case PendingDelay:
		return "pending(delay)"
	case PendingLayout:
		return "pending(layout)"
	case Running:
		return "running"
	case Completed:
		return "completed"
	}
	return "idle"
}

// Option customises an Animatable.
type Option func(*Animatable)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *logger.Logger) Option {
	return func(a *Animatable) {
		a.log = l
	}
}

// WithCompiler sets the compiler for inline definitions.
func WithCompiler(c *keyframe.Compiler) Option {
	return func(a *Animatable) {
		a.compiler = c
	}
}

// run is one animate request, from its (possibly deferred) start until it
// completes, is stopped or is superseded.
type run struct {
	name           string
	anim           *keyframe.Animation
	ease           easing.Func
	duration       time.Duration
	iterationDelay time.Duration
	onBegin        func()
	done           func(tween.Result)
	settled        bool
}

func (r *run) settle(res tween.Result) {
	if r.settled {
		return
	}
	r.settled = true
	if r.done != nil {
		r.done(res)
	}
}

// Animatable wraps one host component.
type Animatable struct {
	base     Component
	reg      *registry.Registry
	sched    Scheduler
	compiler *keyframe.Compiler
	log      *logger.Logger

	cfg       Config
	mounted   bool
	unmounted bool

	progress  *tween.Value
	active    *keyframe.Animation
	current   *run
	state     State
	iteration int
	pending   tween.Handle

	measured      bool
	width, height float64

	cells     map[string]*cell
	baselines style.Style
	begins    map[string]tween.Handle
}

// New decorates base. Named animations resolve through reg; a nil reg is an
// empty registry.
func New(base Component, reg *registry.Registry, sched Scheduler, opts ...Option) *Animatable {
	a := &Animatable{
		base:      base,
		reg:       reg,
		sched:     sched,
		progress:  tween.NewValue(0),
		cells:     make(map[string]*cell),
		baselines: style.Style{},
		begins:    make(map[string]tween.Handle),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.reg == nil {
		a.reg = registry.New(a.compiler)
	}
	if a.compiler == nil {
		a.compiler = a.reg.Compiler()
	}
	if a.log == nil {
		a.log = logger.Nop()
	}
	return a
}

// Mount applies the initial config. A configured animation starts now, after
// Delay, or once the component has been measured.
func (a *Animatable) Mount(cfg Config) error {
	if a.mounted {
		return fmt.Errorf("%w: already mounted", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	var r *run
	if !cfg.Animation.IsZero() {
		var err error
		if r, err = a.prepare(cfg, cfg.Animation, 0, cfg.IterationDelay); err != nil {
			return err
		}
		r.onBegin = cfg.OnAnimationBegin
		r.done = cfg.OnAnimationEnd
	}

	a.cfg = cfg
	a.mounted = true
	a.progress.Set(cfg.direction().Origin(0))
	if len(cfg.Transition) > 0 {
		a.initTransitions(cfg.Transition)
	}
	if r != nil {
		a.schedule(r, cfg.Delay)
	}
	return nil
}

// Update applies a changed config. With Transition set the listed properties
// transition to their values in the new Style; otherwise a changed Animation
// starts the new one, or stops the running one when it was removed.
func (a *Animatable) Update(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(cfg.Transition) > 0 {
		a.cfg = cfg
		values := style.Pick(cfg.Transition, cfg.Style)
		return a.TransitionTo(values, cfg.Duration, cfg.Easing, cfg.Delay)
	}

	if a.sameSource(cfg.Animation, a.cfg.Animation) {
		a.cfg = cfg
		return nil
	}
	if cfg.Animation.IsZero() {
		a.cfg = cfg
		a.StopAnimation()
		return nil
	}

	r, err := a.prepare(cfg, cfg.Animation, cfg.Duration, cfg.IterationDelay)
	if err != nil {
		return err
	}
	r.onBegin = cfg.OnAnimationBegin
	r.done = cfg.OnAnimationEnd
	a.cfg = cfg

	if a.state == PendingDelay && a.current != nil {
		// Keep the armed delay, only swap what it will start.
		prev := a.current
		a.current = r
		a.preview(r)
		prev.settle(tween.Result{Finished: false})
		a.log.With("animation", r.name).Debug("pending animation replaced")
		return nil
	}
	a.supersede()
	a.schedule(r, 0)
	return nil
}

// Unmount stops every tween and cancels pending work. Callbacks scheduled
// earlier become no-ops.
func (a *Animatable) Unmount() {
	if a.unmounted {
		return
	}
	a.supersede()
	a.unmounted = true
	for property, t := range a.begins {
		t.Stop()
		delete(a.begins, property)
	}
	for _, c := range a.cells {
		c.value.Stop()
	}
	a.setState(Idle)
	a.log.Debug("unmounted")
}

// HandleLayout records the component's measured size and starts an
// animation that was waiting for it.
func (a *Animatable) HandleLayout(width, height float64) {
	a.width, a.height = width, height
	a.measured = true
	if a.state == PendingLayout && a.current != nil {
		a.begin(a.current)
	}
}

// Size returns the last measured size.
func (a *Animatable) Size() (width, height float64, ok bool) {
	return a.width, a.height, a.measured
}

// Animate starts src, superseding any running or pending animation. A zero
// duration falls back to the config's Duration and then DefaultDuration. The
// returned channel receives one result when the animation ends.
func (a *Animatable) Animate(src Source, duration, iterationDelay time.Duration) (<-chan tween.Result, error) {
	r, err := a.prepare(a.cfg, src, duration, iterationDelay)
	if err != nil {
		return nil, err
	}
	result := make(chan tween.Result, 1)
	r.done = func(res tween.Result) {
		result <- res
		close(result)
	}

	a.supersede()
	if a.unmounted {
		r.settle(tween.Result{Finished: false})
		return result, nil
	}
	a.schedule(r, 0)
	return result, nil
}

// StopAnimation halts the animation where it is, cancels a pending start and
// clears the animated style.
func (a *Animatable) StopAnimation() {
	a.supersede()
	a.active = nil
	a.setState(Idle)
}

// SetNativeProps forwards props to the component when it supports direct
// updates.
func (a *Animatable) SetNativeProps(props style.Style) {
	if setter, ok := a.base.(NativePropsSetter); ok {
		setter.SetNativeProps(props)
	}
}

// State returns the animation state.
func (a *Animatable) State() State {
	return a.state
}

// Iteration returns the index of the current or last iteration.
func (a *Animatable) Iteration() int {
	return a.iteration
}

// Progress returns the value of the progress cell.
func (a *Animatable) Progress() float64 {
	return a.progress.Get()
}

// Style composes the configured style, the animated style and the
// transitioned properties, in that order of precedence, with transform
// properties wrapped.
func (a *Animatable) Style() style.Style {
	out := style.Flatten(a.cfg.Style)
	if a.active != nil {
		for key, value := range a.active.Sample(a.progress.Get()) {
			out[key] = value
		}
	}
	for property, c := range a.cells {
		out[property] = c.current()
	}
	return style.Wrap(out)
}

// Render hands the composed style to the component.
func (a *Animatable) Render() {
	a.base.Apply(a.Style())
}

// prepare resolves everything a start needs so that failures leave the
// instance untouched.
func (a *Animatable) prepare(cfg Config, src Source, duration, iterationDelay time.Duration) (*run, error) {
	anim, err := a.resolve(src)
	if err != nil {
		return nil, err
	}

	ease := cfg.EasingFunc
	if ease == nil {
		name := cfg.Easing
		if name == "" {
			name = anim.Easing
		}
		if name == "" {
			name = easing.Default
		}
		if ease, err = easing.Lookup(name); err != nil {
			return nil, err
		}
	}

	if duration <= 0 {
		duration = cfg.Duration
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &run{
		name:           src.String(),
		anim:           anim,
		ease:           ease,
		duration:       duration,
		iterationDelay: iterationDelay,
	}, nil
}

func (a *Animatable) resolve(src Source) (*keyframe.Animation, error) {
	switch {
	case src.Definition != nil:
		return a.compiler.Compile(*src.Definition)
	case src.Name != "":
		return a.reg.Get(src.Name)
	}
	return nil, fmt.Errorf("%w: no animation given", ErrInvalidConfig)
}

func (a *Animatable) sameSource(x, y Source) bool {
	if x.Name != y.Name || (x.Definition == nil) != (y.Definition == nil) {
		return false
	}
	if x.Definition == nil {
		return true
	}
	ax, errX := a.compiler.Compile(*x.Definition)
	ay, errY := a.compiler.Compile(*y.Definition)
	return errX == nil && errY == nil && ax == ay
}

// schedule arms r: after delay, and after measurement when r is layout
// dependent, the first iteration starts.
func (a *Animatable) schedule(r *run, delay time.Duration) {
	a.current = r
	if delay > 0 {
		a.preview(r)
		a.setState(PendingDelay)
		a.pending = a.sched.AfterFunc(delay, a.delayElapsed)
		return
	}
	a.begin(r)
}

func (a *Animatable) delayElapsed() {
	a.pending = nil
	if a.current != nil && a.state == PendingDelay {
		a.begin(a.current)
	}
}

// preview shows the origin frame of r while its start is delayed. Layout
// dependent animations stay hidden until the component is measured.
func (a *Animatable) preview(r *run) {
	if definitions.LayoutDependent(r.name) && !a.measured {
		return
	}
	a.progress.Set(a.cfg.direction().Origin(0))
	a.active = r.anim
}

func (a *Animatable) begin(r *run) {
	if definitions.LayoutDependent(r.name) && !a.measured {
		a.setState(PendingLayout)
		return
	}
	a.active = r.anim
	a.setState(Running)
	if r.onBegin != nil {
		r.onBegin()
		if a.current != r {
			return
		}
	}
	a.runIteration(r, 0)
}

func (a *Animatable) runIteration(r *run, i int) {
	dir := a.cfg.direction()
	from, to := dir.Origin(i), dir.Target(i)
	a.iteration = i
	a.progress.Set(from)

	ease := r.ease
	if to == 0 {
		ease = easing.Reverse(ease)
	}
	var delay time.Duration
	if i > 0 {
		delay = r.iterationDelay
	}

	a.sched.Timing(a.progress, tween.Timing{To: to, Duration: r.duration, Easing: ease, Delay: delay}, func(res tween.Result) {
		if a.current != r {
			r.settle(tween.Result{Finished: false})
			return
		}
		next := i + 1
		if res.Finished && !a.cfg.Animation.IsZero() && a.cfg.IterationCount.allows(next) {
			a.runIteration(r, next)
			return
		}
		a.current = nil
		if res.Finished {
			a.setState(Completed)
		} else {
			a.setState(Idle)
		}
		r.settle(res)
	})
}

// supersede cancels the pending or running animation. Its caller sees an
// unfinished result.
func (a *Animatable) supersede() {
	r := a.current
	a.current = nil
	if a.pending != nil {
		a.pending.Stop()
		a.pending = nil
	}
	a.progress.Stop()
	if r != nil {
		r.settle(tween.Result{Finished: false})
	}
}

func (a *Animatable) setState(s State) {
	if a.state == s {
		return
	}
	a.log.WithFields(map[string]any{
		"from":      a.state.String(),
		"to":        s.String(),
		"iteration": a.iteration,
	}).Debug("animation state changed")
	a.state = s
}
