package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matt-g-everett/animatable/animatable"
	"github.com/matt-g-everett/animatable/logger"
	"github.com/matt-g-everett/animatable/registry"
	"github.com/matt-g-everett/animatable/tween"
)

// Controller that manages the elements on the strip and cycles their
// playlists.
type Controller struct {
	cfg    Config
	log    *logger.Logger
	reg    *registry.Registry
	driver *tween.Driver

	elements  []*Element
	results   map[*Element]<-chan tween.Result
	lastCycle time.Time
	started   bool

	last                *Frame
	fadeFrom            *Frame
	transition          float64
	transitionIncrement float64
}

// NewController registers the config's custom animations and creates one
// element per configured element.
func NewController(cfg Config, reg *registry.Registry, driver *tween.Driver, log *logger.Logger) (*Controller, error) {
	if reg == nil {
		return nil, errors.New("registry is required")
	}
	if err := reg.Initialize(cfg.Animations); err != nil {
		return nil, fmt.Errorf("register custom animations: %w", err)
	}

	c := &Controller{
		cfg:     cfg,
		log:     log,
		reg:     reg,
		driver:  driver,
		results: make(map[*Element]<-chan tween.Result),
		last:    NewFrame(cfg.Strip.Pixels),
	}
	if cfg.TransitionTime > 0 {
		c.transitionIncrement = 1.0 / (cfg.Strip.FrameRate * cfg.TransitionTime.Seconds())
	}

	for _, ec := range cfg.Elements {
		e := NewElement(ec)
		e.anim = animatable.New(e, reg, driver, animatable.WithLogger(log.With("element", ec.Name)))
		c.elements = append(c.elements, e)
	}
	return c, nil
}

// Elements returns the elements in paint order.
func (c *Controller) Elements() []*Element {
	return c.elements
}

// Start mounts every element with the first entry of its playlist and
// reports the element's size as its layout.
func (c *Controller) Start() error {
	if c.started {
		return nil
	}
	for _, e := range c.elements {
		entry := c.entry(e, 0)
		if err := e.anim.Mount(entry); err != nil {
			return fmt.Errorf("mount %s: %w", e.name, err)
		}
	}
	c.Measure(1)
	c.started = true
	c.lastCycle = c.driver.Now()
	c.log.WithFields(map[string]any{"elements": len(c.elements), "pixels": c.cfg.Strip.Pixels}).Info("controller started")
	return nil
}

// Measure reports every element's size as laid out on a surface drawing
// scale cells per pixel.
func (c *Controller) Measure(scale float64) {
	for _, e := range c.elements {
		e.anim.HandleLayout(float64(e.length)*scale, 1)
	}
}

// Pixels returns the strip length.
func (c *Controller) Pixels() int {
	return c.cfg.Strip.Pixels
}

// Stop unmounts every element.
func (c *Controller) Stop() {
	for _, e := range c.elements {
		e.anim.Unmount()
	}
	c.started = false
}

// Cycle moves every element to the next entry of its playlist and
// cross-fades from the last frame.
func (c *Controller) Cycle() error {
	for _, e := range c.elements {
		if err := c.advance(e); err != nil {
			return err
		}
	}
	c.lastCycle = c.driver.Now()
	if c.transitionIncrement > 0 {
		c.fadeFrom = c.last.Clone()
		c.transition = 0
	}
	return nil
}

func (c *Controller) entry(e *Element, i int) animatable.Config {
	entry := e.playlist[i]
	entry.OnAnimationEnd = func(res tween.Result) {
		if res.Finished {
			e.ended = true
		}
	}
	return entry
}

func (c *Controller) advance(e *Element) error {
	prev := e.playlist[e.index]
	e.index = (e.index + 1) % len(e.playlist)
	e.ended = false
	delete(c.results, e)
	entry := c.entry(e, e.index)

	if len(entry.Transition) > 0 && !prev.Animation.IsZero() {
		e.anim.StopAnimation()
	}
	if err := e.anim.Update(entry); err != nil {
		return fmt.Errorf("update %s: %w", e.name, err)
	}
	// An unchanged animation that already completed has to be replayed.
	if !entry.Animation.IsZero() && e.anim.State() == animatable.Completed {
		result, err := e.anim.Animate(entry.Animation, entry.Duration, entry.IterationDelay)
		if err != nil {
			return fmt.Errorf("replay %s: %w", e.name, err)
		}
		c.results[e] = result
	}

	c.log.WithFields(map[string]any{
		"element":   e.name,
		"entry":     e.index,
		"animation": entry.Animation.String(),
	}).Debug("playlist advanced")
	return nil
}

// CalculateFrame renders the strip at now. The driver must already have
// been advanced to now. Elements whose animation finished move on to their
// next entry, and all playlists cycle once AnimationTime has passed.
func (c *Controller) CalculateFrame(now time.Time) *Frame {
	if c.started && now.Sub(c.lastCycle) >= c.cfg.AnimationTime {
		if err := c.Cycle(); err != nil {
			c.log.Error(err, "cycle failed")
		}
	} else if c.started {
		for _, e := range c.elements {
			if !c.finished(e) {
				continue
			}
			if err := c.advance(e); err != nil {
				c.log.Error(err, "advance failed")
			}
		}
	}

	f := NewFrame(c.cfg.Strip.Pixels)
	c.cfg.Background.Paint(f)
	for _, e := range c.elements {
		e.anim.Render()
		e.Rasterise(f)
	}

	if c.fadeFrom != nil {
		c.transition += c.transitionIncrement
		if c.transition >= 1.0 {
			c.fadeFrom = nil
			c.transition = 0.0
		} else {
			f = c.fadeFrom.InterpolateFrame(f, c.transition)
		}
	}

	c.last = f
	return f
}

func (c *Controller) finished(e *Element) bool {
	if e.ended {
		return true
	}
	result, ok := c.results[e]
	if !ok {
		return false
	}
	select {
	case res := <-result:
		delete(c.results, e)
		return res.Finished
	default:
		return false
	}
}

// Run starts the elements and renders a frame every frame interval, handing
// each to publish, until ctx is done.
func (c *Controller) Run(ctx context.Context, publish func(*Frame) error) error {
	if err := c.Start(); err != nil {
		return err
	}
	defer c.Stop()

	err := c.driver.Run(ctx, c.cfg.FrameInterval(), func(now time.Time) {
		f := c.CalculateFrame(now)
		if publish == nil {
			return
		}
		if err := publish(f); err != nil {
			c.log.Error(err, "publish frame failed")
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
