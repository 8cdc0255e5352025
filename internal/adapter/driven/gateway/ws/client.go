package ws

import (
	"sync"
	"time"

	"github.com/Wyydra/huddle/internal/core/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	MaxMessageBytes int64
	SendBuffer      int
	WriteTimeout    time.Duration
	PongTimeout     time.Duration
	PingInterval    time.Duration
}

func DefaultOptions() Options {
	return Options{
		MaxMessageBytes: 64 * 1024,
		SendBuffer:      64,
		WriteTimeout:    10 * time.Second,
		PongTimeout:     60 * time.Second,
		PingInterval:    50 * time.Second,
	}
}

// Client implements port.Connection on a gorilla websocket. Frames are queued
// on a bounded buffer and written by a single writer goroutine, so per
// recipient delivery order matches Send order.
type Client struct {
	id   string
	conn *websocket.Conn
	opts Options
	log  zerolog.Logger

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	written   chan struct{}
}

// NewClient starts the writer goroutine for conn.
func NewClient(conn *websocket.Conn, opts Options) *Client {
	id := uuid.New().String()
	c := &Client{
		id:      id,
		conn:    conn,
		opts:    opts,
		log:     log.With().Str("client_id", id).Logger(),
		send:    make(chan []byte, opts.SendBuffer),
		done:    make(chan struct{}),
		written: make(chan struct{}),
	}
	go c.writePump()
	return c
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) Send(frame []byte) error {
	select {
	case <-c.done:
		return domain.ErrConnectionClosed
	default:
	}

	select {
	case c.send <- frame:
		return nil
	case <-c.done:
		return domain.ErrConnectionClosed
	default:
		return domain.ErrSendBufferFull
	}
}

func (c *Client) IsOpen() bool {
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// Close stops accepting frames. Frames already queued are still flushed
// before the socket closes. Safe to call more than once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	return nil
}

// Wait blocks until the writer has flushed and closed the socket.
func (c *Client) Wait() {
	<-c.written
}

// ReadLoop feeds every inbound text frame to handle, one at a time, until the
// socket fails or the client is closed.
func (c *Client) ReadLoop(handle func(frame []byte)) {
	c.conn.SetReadLimit(c.opts.MaxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.opts.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.opts.PongTimeout))
	})

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.log.Error().Err(err).Msg("Unexpected close error")
			}
			return
		}
		if kind != websocket.TextMessage {
			c.log.Debug().Int("kind", kind).Msg("Ignoring non-text frame")
			continue
		}
		handle(data)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.opts.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
		close(c.written)
	}()

	for {
		select {
		case frame := <-c.send:
			if err := c.write(websocket.TextMessage, frame); err != nil {
				c.log.Debug().Err(err).Msg("Write failed")
				c.Close()
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.log.Debug().Err(err).Msg("Ping failed")
				c.Close()
				return
			}
		case <-c.done:
			c.flush()
			_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *Client) flush() {
	for {
		select {
		case frame := <-c.send:
			if err := c.write(websocket.TextMessage, frame); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *Client) write(kind int, data []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
	return c.conn.WriteMessage(kind, data)
}
