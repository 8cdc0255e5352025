package service

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/Wyydra/huddle/internal/core/domain"
	"github.com/stretchr/testify/require"
)

// recordingConn is a port.Connection that keeps every frame it is sent.
type recordingConn struct {
	id string

	mu      sync.Mutex
	frames  [][]byte
	closed  bool
	sendErr error
}

func newConn(id string) *recordingConn {
	return &recordingConn{id: id}
}

func (c *recordingConn) ID() string { return c.id }

func (c *recordingConn) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrConnectionClosed
	}
	if c.sendErr != nil {
		return c.sendErr
	}
	c.frames = append(c.frames, append([]byte(nil), frame...))
	return nil
}

func (c *recordingConn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

func (c *recordingConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *recordingConn) Frames() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.frames...)
}

// Envelopes decodes every received frame as an outbound envelope.
func (c *recordingConn) Envelopes(t *testing.T) []domain.Envelope {
	t.Helper()
	var out []domain.Envelope
	for _, f := range c.Frames() {
		var env domain.Envelope
		require.NoError(t, json.Unmarshal(f, &env))
		out = append(out, env)
	}
	return out
}
