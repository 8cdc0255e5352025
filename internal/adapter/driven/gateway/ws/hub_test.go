package ws

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHub_RegisterUnregister(t *testing.T) {
	req := require.New(t)
	h := NewHub()
	a, _ := pair(t, DefaultOptions())
	b, _ := pair(t, DefaultOptions())

	req.True(h.Register(a))
	req.True(h.Register(b))
	req.Equal(2, h.Count())

	h.Unregister(a)
	h.Unregister(a)
	req.Equal(1, h.Count())
}

func TestHub_StopClosesClients(t *testing.T) {
	req := require.New(t)
	h := NewHub()
	a, _ := pair(t, DefaultOptions())
	b, _ := pair(t, DefaultOptions())
	h.Register(a)
	h.Register(b)

	h.Stop()

	req.False(a.IsOpen())
	req.False(b.IsOpen())
	req.Zero(h.Count())

	late, _ := pair(t, DefaultOptions())
	req.False(h.Register(late))
}
