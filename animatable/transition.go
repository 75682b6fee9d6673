package animatable

import (
	"math"
	"sort"
	"time"

	"github.com/matt-g-everett/animatable/easing"
	"github.com/matt-g-everett/animatable/keyframe"
	"github.com/matt-g-everett/animatable/style"
	"github.com/matt-g-everett/animatable/tween"
)

// cell drives one transitioned property. A direct cell's value is the
// property value; otherwise the value is a 0..1 progress between from and to.
type cell struct {
	value  *tween.Value
	direct bool
	clamp  bool
	from   any
	to     any
}

func (c *cell) current() any {
	if c.direct {
		v := c.value.Get()
		if c.clamp {
			v = math.Max(0, v)
		}
		return v
	}
	return keyframe.Between(c.from, c.to).At(c.value.Get())
}

// leg is one property's pending tween within a transition call.
type leg struct {
	property string
	cell     *cell
	target   float64
}

// initTransitions creates cells for properties declared as transitioned,
// seeded from the configured style.
func (a *Animatable) initTransitions(properties []string) {
	values := style.Pick(properties, a.cfg.Style)
	for _, property := range values.Keys() {
		if _, ok := a.cells[property]; ok {
			continue
		}
		value := values[property]
		a.baselines[property] = value
		if n, ok := style.Number(value); ok && !style.NeedsInterpolation(property, value) {
			a.cells[property] = &cell{value: tween.NewValue(n), direct: true}
			continue
		}
		a.cells[property] = &cell{value: tween.NewValue(0), from: value, to: value}
	}
}

// TransitionTo moves each property of to from its current value. Plain
// numeric properties whose cell already holds the value are tweened in
// place; everything else interpolates from the current value to the target.
// Without duration, easing or delay the properties settle with a spring.
func (a *Animatable) TransitionTo(to any, duration time.Duration, easingName string, delay time.Duration) error {
	ease, err := a.transitionEasing(duration, easingName, delay)
	if err != nil {
		return err
	}
	if a.unmounted {
		return nil
	}

	targets := style.Flatten(to)
	from := style.Style{}
	var legs []leg
	for _, property := range targets.Keys() {
		target := targets[property]
		c := a.cells[property]
		if n, ok := style.Number(target); ok && c != nil && c.direct && !c.clamp && !style.NeedsInterpolation(property, target) {
			legs = append(legs, leg{property: property, cell: c, target: n})
			continue
		}
		from[property] = a.currentValue(property)
	}

	if len(from) > 0 {
		rest := make(style.Style, len(from))
		for property := range from {
			rest[property] = targets[property]
		}
		legs = append(legs, a.prepareLegs(from, rest)...)
	}
	a.startLegs(legs, duration, ease, delay)
	return nil
}

// Transition moves the properties of to from the values in from, whatever
// they currently are.
func (a *Animatable) Transition(from, to any, duration time.Duration, easingName string) error {
	if duration <= 0 {
		duration = a.cfg.Duration
	}
	ease, err := a.transitionEasing(duration, easingName, a.cfg.Delay)
	if err != nil {
		return err
	}
	if a.unmounted {
		return nil
	}

	targets := style.Flatten(to)
	origins := style.Flatten(from)
	for _, property := range targets.Keys() {
		if _, ok := origins[property]; !ok {
			origins[property] = a.currentValue(property)
		}
	}
	a.startLegs(a.prepareLegs(origins, targets), duration, ease, a.cfg.Delay)
	return nil
}

// currentValue is the value a property would render now: its live cell,
// else the last target it was sent to, else the configured style or its
// default.
func (a *Animatable) currentValue(property string) any {
	if c, ok := a.cells[property]; ok {
		return c.current()
	}
	if v, ok := a.baselines[property]; ok {
		return v
	}
	return style.Pick([]string{property}, a.cfg.Style)[property]
}

// prepareLegs resets the cells of every property in targets to its origin
// before any tween starts, so all of them render consistently from the first
// frame.
func (a *Animatable) prepareLegs(origins, targets style.Style) []leg {
	legs := make([]leg, 0, len(targets))
	for _, property := range targets.Keys() {
		target := targets[property]
		origin := origins[property]

		c := a.cells[property]
		if c == nil {
			c = &cell{value: tween.NewValue(0)}
			a.cells[property] = c
		}
		a.baselines[property] = target

		fromN, fromNum := style.Number(origin)
		toN, toNum := style.Number(target)
		if fromNum && toNum && !style.NeedsInterpolation(property, target) {
			c.direct = true
			c.clamp = style.ZeroClamped(property)
			c.from, c.to = nil, nil
			c.value.Set(fromN)
			legs = append(legs, leg{property: property, cell: c, target: toN})
			continue
		}
		c.direct = false
		c.clamp = false
		c.from, c.to = origin, target
		c.value.Set(0)
		legs = append(legs, leg{property: property, cell: c, target: 1})
	}
	return legs
}

func (a *Animatable) startLegs(legs []leg, duration time.Duration, ease easing.Func, delay time.Duration) {
	sort.SliceStable(legs, func(i, j int) bool { return legs[i].property < legs[j].property })
	for _, l := range legs {
		a.startLeg(l, duration, ease, delay)
	}
}

func (a *Animatable) startLeg(l leg, duration time.Duration, ease easing.Func, delay time.Duration) {
	property := l.property
	a.transitionBegin(property, delay)

	done := func(tween.Result) {
		if a.unmounted {
			return
		}
		if a.cfg.OnTransitionEnd != nil {
			a.cfg.OnTransitionEnd(property)
		}
	}
	if ease == nil {
		a.sched.Spring(l.cell.value, tween.Spring{To: l.target}, done)
		return
	}
	if duration <= 0 {
		duration = a.cfg.Duration
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	a.sched.Timing(l.cell.value, tween.Timing{To: l.target, Duration: duration, Easing: ease, Delay: delay}, done)
}

func (a *Animatable) transitionBegin(property string, delay time.Duration) {
	if prev, ok := a.begins[property]; ok {
		prev.Stop()
		delete(a.begins, property)
	}
	if a.cfg.OnTransitionBegin == nil {
		return
	}
	if delay <= 0 {
		a.cfg.OnTransitionBegin(property)
		return
	}
	begin := a.cfg.OnTransitionBegin
	var h tween.Handle
	h = a.sched.AfterFunc(delay, func() {
		if a.begins[property] == h {
			delete(a.begins, property)
		}
		if !a.unmounted {
			begin(property)
		}
	})
	a.begins[property] = h
}

// transitionEasing returns nil when the transition should use a spring.
func (a *Animatable) transitionEasing(duration time.Duration, name string, delay time.Duration) (easing.Func, error) {
	if duration <= 0 && name == "" && delay <= 0 {
		return nil, nil
	}
	if name == "" {
		name = easing.Default
	}
	return easing.Lookup(name)
}
