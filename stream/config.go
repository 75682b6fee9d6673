package stream

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/matt-g-everett/animatable/animatable"
	"github.com/matt-g-everett/animatable/keyframe"
	"github.com/matt-g-everett/animatable/style"
)

// ErrInvalidConfig wraps host configuration failures.
var ErrInvalidConfig = errors.New("invalid stream config")

// Config is the YAML configuration of the strip host.
type Config struct {
	Mqtt struct {
		URL       string        `yaml:"url" validate:"required"`
		ClientID  string        `yaml:"clientId"`
		Username  string        `yaml:"username"`
		Password  string        `yaml:"password"`
		KeepAlive time.Duration `yaml:"keepAlive" validate:"gte=0"`
		QoS       byte          `yaml:"qos" validate:"lte=2"`
		Topics    struct {
			Stream string `yaml:"stream" validate:"required"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`

	Strip struct {
		Pixels    int     `yaml:"pixels" validate:"gt=0,lte=65535"`
		FrameRate float64 `yaml:"frameRate" validate:"gt=0"`
	} `yaml:"strip"`

	Log struct {
		Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
		Human bool   `yaml:"human"`
	} `yaml:"log"`

	AnimationTime  time.Duration `yaml:"animationTime" validate:"gt=0"`
	TransitionTime time.Duration `yaml:"transitionTime" validate:"gte=0"`

	Background Background                     `yaml:"background"`
	Animations map[string]keyframe.Definition `yaml:"animations"`
	Elements   []ElementConfig                `yaml:"elements" validate:"required,min=1,dive"`
}

// Background paints the strip behind every element. Without stops the
// strip is black.
type Background struct {
	Stops     GradientTable `yaml:"stops"`
	Chroma    float64       `yaml:"chroma" validate:"gte=0"`
	Luminance float64       `yaml:"luminance" validate:"gte=0,lte=1"`
}

// ElementConfig places one animated element on the strip.
type ElementConfig struct {
	Name     string              `yaml:"name" validate:"required"`
	Offset   int                 `yaml:"offset" validate:"gte=0"`
	Length   int                 `yaml:"length" validate:"gt=0"`
	Color    string              `yaml:"color" validate:"required,colour"`
	Playlist []animatable.Config `yaml:"playlist" validate:"required,min=1"`
}

// FrameInterval is the time between two frames.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.Strip.FrameRate)
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "animatable"
	}
	if c.Mqtt.KeepAlive == 0 {
		c.Mqtt.KeepAlive = 30 * time.Second
	}
	if c.Strip.FrameRate == 0 {
		c.Strip.FrameRate = 30
	}
	if c.AnimationTime == 0 {
		c.AnimationTime = 30 * time.Second
	}
	if c.Background.Luminance == 0 {
		c.Background.Luminance = 0.05
	}
}

// Validate checks field constraints, element bounds and every playlist entry.
func (c Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) {
			fe := ves[0]
			return fmt.Errorf("%w: %s failed validation for tag '%s'", ErrInvalidConfig, strings.ToLower(fe.Namespace()), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Background.Stops.validate(); err != nil {
		return err
	}

	names := make(map[string]bool, len(c.Elements))
	for _, e := range c.Elements {
		if names[e.Name] {
			return fmt.Errorf("%w: duplicate element %q", ErrInvalidConfig, e.Name)
		}
		names[e.Name] = true
		if e.Offset+e.Length > c.Strip.Pixels {
			return fmt.Errorf("%w: element %q runs past pixel %d", ErrInvalidConfig, e.Name, c.Strip.Pixels)
		}
		for i, entry := range e.Playlist {
			if err := entry.Validate(); err != nil {
				return fmt.Errorf("element %q playlist entry %d: %w", e.Name, i, err)
			}
		}
	}
	return nil
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("colour", func(fl validator.FieldLevel) bool {
			_, _, ok := style.ParseColor(fl.Field().String())
			return ok
		})

		validateInst = v
	})

	return validateInst
}
