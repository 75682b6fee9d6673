package stream

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/animatable/logger"
)

type fakeToken struct {
	delivered bool
	err       error
}

func (t *fakeToken) Wait() bool                     { return t.delivered }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.delivered }
func (t *fakeToken) Error() error                   { return t.err }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type publication struct {
	topic   string
	qos     byte
	payload []byte
}

type fakePublisher struct {
	mu    sync.Mutex
	token *fakeToken
	sent  []publication
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, publication{topic: topic, qos: qos, payload: payload.([]byte)})
	return p.token
}

func TestStreamerSendFrame(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Mqtt.QoS = 2
	pub := &fakePublisher{token: &fakeToken{delivered: true}}
	s := NewStreamer(cfg, pub, logger.Nop())

	require.NoError(t, s.SendFrame(NewFrame(4)))
	require.Len(t, pub.sent, 1)
	assert.Equal(t, "home/strip/stream", pub.sent[0].topic)
	assert.Equal(t, byte(2), pub.sent[0].qos)
	assert.Equal(t, uint16(4), binary.LittleEndian.Uint16(pub.sent[0].payload))
	assert.Equal(t, uint64(1), s.Sent())
}

func TestStreamerReportsFailures(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	refused := errors.New("not authorised")

	s := NewStreamer(cfg, &fakePublisher{token: &fakeToken{delivered: true, err: refused}}, logger.Nop())
	require.ErrorIs(t, s.SendFrame(NewFrame(1)), refused)

	s = NewStreamer(cfg, &fakePublisher{token: &fakeToken{}}, logger.Nop())
	require.ErrorContains(t, s.SendFrame(NewFrame(1)), "timed out")
	assert.Zero(t, s.Sent())
}

func TestStreamerRun(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Strip.FrameRate = 200
	f := newController(t, cfg)
	pub := &fakePublisher{token: &fakeToken{delivered: true}}
	s := NewStreamer(cfg, pub, logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := s.Run(ctx, f.c)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.NotEmpty(t, pub.sent)
	assert.Equal(t, uint64(len(pub.sent)), s.Sent())
}
