// Package tween advances scalar values over time. A Driver owns a clock that
// only moves when Advance is called, so every step and every completion
// callback runs on the goroutine calling Advance.
package tween

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/matt-g-everett/animatable/easing"
)

// Result is passed to completion callbacks. Finished is false when the tween
// was stopped or replaced before reaching its target.
type Result struct {
	Finished bool
}

// Callback receives the outcome of a tween.
type Callback func(Result)

// Handle cancels a scheduled tween or timer.
type Handle interface {
	Stop()
}

// Value is a scalar cell that at most one tween drives at a time.
type Value struct {
	v      float64
	active *tween
}

// NewValue creates a cell holding v.
func NewValue(v float64) *Value {
	return &Value{v: v}
}

// Get returns the current value.
func (v *Value) Get() float64 {
	return v.v
}

// Set stops any running tween and jumps to x.
func (v *Value) Set(x float64) {
	v.Stop()
	v.v = x
}

// Stop halts the running tween, leaving the value where it is.
func (v *Value) Stop() {
	if v.active != nil {
		v.active.finish(false)
	}
}

// Animating reports whether a tween currently drives the cell.
func (v *Value) Animating() bool {
	return v.active != nil
}

// Timing tweens towards To over Duration along Easing after Delay.
type Timing struct {
	To       float64
	Duration time.Duration
	Easing   easing.Func
	Delay    time.Duration
}

// Spring settles towards To with a damped harmonic oscillator.
type Spring struct {
	To        float64
	Frequency float64
	Damping   float64
}

// Spring defaults: an underdamped settle with a small overshoot.
const (
	DefaultFrequency = 6.3
	DefaultDamping   = 0.55
	restThreshold    = 0.001
)

type stepper interface {
	step(t *tween, now time.Time) bool
}

type tween struct {
	value  *Value
	start  time.Time
	motion stepper
	done   bool
	cb     Callback
}

func (t *tween) Stop() {
	t.finish(false)
}

func (t *tween) finish(finished bool) {
	if t.done {
		return
	}
	t.done = true
	if t.value.active == t {
		t.value.active = nil
	}
	if t.cb != nil {
		t.cb(Result{Finished: finished})
	}
}

type timing struct {
	cfg     Timing
	from    float64
	started bool
}

func (m *timing) step(t *tween, now time.Time) bool {
	elapsed := now.Sub(t.start)
	if elapsed < 0 {
		return false
	}
	if !m.started {
		m.started = true
		m.from = t.value.v
	}
	if m.cfg.Duration <= 0 || elapsed >= m.cfg.Duration {
		t.value.v = m.cfg.To
		return true
	}
	p := float64(elapsed) / float64(m.cfg.Duration)
	ease := m.cfg.Easing
	if ease == nil {
		ease = func(x float64) float64 { return x }
	}
	t.value.v = m.from + (m.cfg.To-m.from)*ease(p)
	return false
}

type spring struct {
	cfg      Spring
	velocity float64
	last     time.Time
}

func (m *spring) step(t *tween, now time.Time) bool {
	dt := now.Sub(m.last).Seconds()
	if dt <= 0 {
		return false
	}
	m.last = now

	// Integrate in frame-sized slices so large gaps between Advance calls
	// stay stable.
	frame := harmonica.FPS(60)
	for dt > 0 {
		slice := math.Min(dt, frame)
		s := harmonica.NewSpring(slice, m.cfg.Frequency, m.cfg.Damping)
		t.value.v, m.velocity = s.Update(t.value.v, m.velocity, m.cfg.To)
		dt -= slice
	}

	if math.Abs(t.value.v-m.cfg.To) < restThreshold && math.Abs(m.velocity) < restThreshold {
		t.value.v = m.cfg.To
		return true
	}
	return false
}

type timer struct {
	at      time.Time
	seq     uint64
	fn      func()
	stopped bool
}

func (t *timer) Stop() {
	t.stopped = true
}

// Driver steps tweens and fires timers against a clock moved by Advance.
// It is not safe for concurrent use.
type Driver struct {
	now    time.Time
	seq    uint64
	tweens []*tween
	timers []*timer
}

// NewDriver creates a driver whose clock reads now.
func NewDriver(now time.Time) *Driver {
	return &Driver{now: now}
}

// Now returns the driver's clock.
func (d *Driver) Now() time.Time {
	return d.now
}

// Timing starts a timed tween of v. Any tween already driving v is stopped
// first and reports an unfinished result.
func (d *Driver) Timing(v *Value, cfg Timing, done Callback) Handle {
	return d.start(v, d.now.Add(cfg.Delay), &timing{cfg: cfg}, done)
}

// Spring starts a spring tween of v. Zero Frequency or Damping use the
// package defaults.
func (d *Driver) Spring(v *Value, cfg Spring, done Callback) Handle {
	if cfg.Frequency == 0 {
		cfg.Frequency = DefaultFrequency
	}
	if cfg.Damping == 0 {
		cfg.Damping = DefaultDamping
	}
	return d.start(v, d.now, &spring{cfg: cfg, last: d.now}, done)
}

func (d *Driver) start(v *Value, at time.Time, motion stepper, done Callback) Handle {
	v.Stop()
	t := &tween{value: v, start: at, motion: motion, cb: done}
	v.active = t
	d.tweens = append(d.tweens, t)
	return t
}

// AfterFunc calls fn once the clock has moved delay past now.
func (d *Driver) AfterFunc(delay time.Duration, fn func()) Handle {
	d.seq++
	t := &timer{at: d.now.Add(delay), seq: d.seq, fn: fn}
	d.timers = append(d.timers, t)
	return t
}

// Pending reports the number of live tweens and timers.
func (d *Driver) Pending() int {
	n := 0
	for _, t := range d.tweens {
		if !t.done {
			n++
		}
	}
	for _, t := range d.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock to now, fires due timers in order and steps every
// running tween. The clock never moves backwards.
func (d *Driver) Advance(now time.Time) {
	if now.Before(d.now) {
		now = d.now
	}
	d.now = now

	var due, waiting []*timer
	for _, t := range d.timers {
		switch {
		case t.stopped:
		case !t.at.After(now):
			due = append(due, t)
		default:
			waiting = append(waiting, t)
		}
	}
	d.timers = waiting
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	for _, t := range due {
		if !t.stopped {
			t.stopped = true
			t.fn()
		}
	}

	running := d.tweens
	d.tweens = nil
	for _, t := range running {
		if t.done {
			continue
		}
		if t.motion.step(t, now) {
			t.finish(true)
		}
	}

	// Tweens started by callbacks were appended to d.tweens.
	live := make([]*tween, 0, len(running)+len(d.tweens))
	for _, group := range [][]*tween{running, d.tweens} {
		for _, t := range group {
			if !t.done {
				live = append(live, t)
			}
		}
	}
	d.tweens = live
}

// Run advances the driver from the wall clock every interval until ctx is
// done, calling onFrame after each step.
func (d *Driver) Run(ctx context.Context, interval time.Duration, onFrame func(time.Time)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			d.Advance(now)
			if onFrame != nil {
				onFrame(now)
			}
		}
	}
}
