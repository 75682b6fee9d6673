package stream

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/matt-g-everett/animatable/logger"
)

// Publisher is the part of an MQTT client the streamer needs. mqtt.Client
// satisfies it.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Streamer that streams RGB data frames to an ledrx device.
type Streamer struct {
	client  Publisher
	topic   string
	qos     byte
	timeout time.Duration
	log     *logger.Logger
	sent    uint64
}

// NewStreamer creates a Streamer publishing to the configured stream topic.
func NewStreamer(cfg Config, client Publisher, log *logger.Logger) *Streamer {
	return &Streamer{
		client:  client,
		topic:   cfg.Mqtt.Topics.Stream,
		qos:     cfg.Mqtt.QoS,
		timeout: 2 * frameInterval(cfg),
		log:     log.With("topic", cfg.Mqtt.Topics.Stream),
	}
}

// SendFrame sends a frame as binary over MQTT to an ledrx device.
func (s *Streamer) SendFrame(f *Frame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	token := s.client.Publish(s.topic, s.qos, false, b)
	if s.timeout <= 0 {
		token.Wait()
	} else if !token.WaitTimeout(s.timeout) {
		return fmt.Errorf("publish frame to %s: timed out after %s", s.topic, s.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish frame to %s: %w", s.topic, err)
	}
	s.sent++
	return nil
}

func frameInterval(cfg Config) time.Duration {
	if cfg.Strip.FrameRate <= 0 {
		return 0
	}
	return cfg.FrameInterval()
}

// Sent returns the number of frames delivered.
func (s *Streamer) Sent() uint64 {
	return s.sent
}

// Run causes the Streamer to send the controller's frames until ctx is done.
func (s *Streamer) Run(ctx context.Context, c *Controller) error {
	s.log.Info("streaming")
	err := c.Run(ctx, s.SendFrame)
	s.log.With("frames", s.sent).Info("streaming stopped")
	return err
}
