package animatable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/matt-g-everett/animatable/easing"
	"github.com/matt-g-everett/animatable/keyframe"
	"github.com/matt-g-everett/animatable/style"
	"github.com/matt-g-everett/animatable/tween"
)

var (
	// ErrInvalidConfig wraps configuration validation failures.
	ErrInvalidConfig = errors.New("invalid animation config")
	// ErrConflictingModes is returned when a config asks for both an
	// animation and a transition.
	ErrConflictingModes = errors.New("cannot combine animation and transition")
)

// DefaultDuration applies when neither the call nor the config sets one.
const DefaultDuration = time.Second

// Source names a registered animation or carries an inline definition.
type Source struct {
	Name       string
	Definition *keyframe.Definition
}

// Named refers to a registered animation.
func Named(name string) Source {
	return Source{Name: name}
}

// Inline wraps a definition compiled on first use.
func Inline(def keyframe.Definition) Source {
	return Source{Definition: &def}
}

// IsZero reports whether s selects no animation.
func (s Source) IsZero() bool {
	return s.Name == "" && s.Definition == nil
}

func (s Source) String() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Definition != nil:
		return "inline"
	}
	return ""
}

// UnmarshalYAML accepts either an animation name or an inline definition.
func (s *Source) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		*s = Named(name)
		return nil
	}
	var def keyframe.Definition
	if err := unmarshal(&def); err != nil {
		return err
	}
	*s = Inline(def)
	return nil
}

// Infinite makes an animation loop until it is stopped.
const Infinite IterationCount = -1

// IterationCount is the number of times an animation plays. Zero means once.
type IterationCount int

// ParseIterationCount parses a positive integer or "infinite".
func ParseIterationCount(s string) (IterationCount, error) {
	s = strings.TrimSpace(s)
	if s == "infinite" {
		return Infinite, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: iteration count must be a positive number or \"infinite\", got %q", ErrInvalidConfig, s)
	}
	return IterationCount(n), nil
}

// UnmarshalYAML accepts an integer or "infinite".
func (c *IterationCount) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var n int
	if err := unmarshal(&n); err == nil {
		if n < 1 {
			return fmt.Errorf("%w: iteration count must be a positive number or \"infinite\", got %d", ErrInvalidConfig, n)
		}
		*c = IterationCount(n)
		return nil
	}
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseIterationCount(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c IterationCount) String() string {
	if c == Infinite {
		return "infinite"
	}
	return strconv.Itoa(int(c))
}

func (c IterationCount) allows(next int) bool {
	if c == Infinite {
		return true
	}
	limit := int(c)
	if limit == 0 {
		limit = 1
	}
	return next < limit
}

// Direction selects which way each iteration drives progress.
type Direction string

const (
	Normal           Direction = "normal"
	Reverse          Direction = "reverse"
	Alternate        Direction = "alternate"
	AlternateReverse Direction = "alternate-reverse"
)

// Target is the progress value iteration i tweens towards.
func (d Direction) Target(i int) float64 {
	switch d {
	case Reverse:
		return 0
	case Alternate:
		if i%2 == 1 {
			return 0
		}
		return 1
	case AlternateReverse:
		if i%2 == 1 {
			return 1
		}
		return 0
	}
	return 1
}

// Origin is the progress value iteration i starts from.
func (d Direction) Origin(i int) float64 {
	return 1 - d.Target(i)
}

// Config is the animation and transition configuration of an instance.
type Config struct {
	Animation       Source         `yaml:"animation"`
	Duration        time.Duration  `yaml:"duration" validate:"gte=0"`
	Delay           time.Duration  `yaml:"delay" validate:"gte=0"`
	Direction       Direction      `yaml:"direction" validate:"omitempty,oneof=normal reverse alternate alternate-reverse"`
	Easing          string         `yaml:"easing" validate:"omitempty,easing"`
	EasingFunc      easing.Func    `yaml:"-"`
	IterationCount  IterationCount `yaml:"iterationCount" validate:"iteration_count"`
	IterationDelay  time.Duration  `yaml:"iterationDelay" validate:"gte=0"`
	Transition      []string       `yaml:"transition" validate:"dive,required"`
	UseNativeDriver bool           `yaml:"useNativeDriver"`
	Style           style.Style    `yaml:"style"`

	OnAnimationBegin  func()                `yaml:"-"`
	OnAnimationEnd    func(tween.Result)    `yaml:"-"`
	OnTransitionBegin func(property string) `yaml:"-"`
	OnTransitionEnd   func(property string) `yaml:"-"`
}

// millis is a duration read as milliseconds from a bare YAML number, or
// parsed from a duration string such as "800ms".
type millis time.Duration

func (m *millis) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var n float64
	if err := unmarshal(&n); err == nil {
		*m = millis(n * float64(time.Millisecond))
		return nil
	}
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%w: invalid duration %q", ErrInvalidConfig, s)
	}
	*m = millis(d)
	return nil
}

// UnmarshalYAML reads duration, delay and iterationDelay as milliseconds
// when they are plain numbers.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var timings struct {
		Duration       *millis `yaml:"duration"`
		Delay          *millis `yaml:"delay"`
		IterationDelay *millis `yaml:"iterationDelay"`
	}
	if err := unmarshal(&timings); err != nil {
		return err
	}

	type plain Config
	p := plain(*c)
	if err := unmarshal(&p); err != nil {
		return err
	}
	*c = Config(p)

	if timings.Duration != nil {
		c.Duration = time.Duration(*timings.Duration)
	}
	if timings.Delay != nil {
		c.Delay = time.Duration(*timings.Delay)
	}
	if timings.IterationDelay != nil {
		c.IterationDelay = time.Duration(*timings.IterationDelay)
	}
	return nil
}

// Validate checks field constraints and mode exclusivity.
func (c Config) Validate() error {
	if !c.Animation.IsZero() && len(c.Transition) > 0 {
		return ErrConflictingModes
	}
	if err := validatorInstance().Struct(c); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) {
			fe := ves[0]
			return fmt.Errorf("%w: %s failed validation for tag '%s'", ErrInvalidConfig, strings.ToLower(fe.Field()), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) direction() Direction {
	if c.Direction == "" {
		return Normal
	}
	return c.Direction
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("easing", func(fl validator.FieldLevel) bool {
			return easing.Valid(fl.Field().String())
		})

		_ = v.RegisterValidation("iteration_count", func(fl validator.FieldLevel) bool {
			n := fl.Field().Int()
			return n >= 0 || n == int64(Infinite)
		})

		validateInst = v
	})

	return validateInst
}
