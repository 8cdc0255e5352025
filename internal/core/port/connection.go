package port

// Connection is one live bidirectional link to a participant.
type Connection interface {
	ID() string
	// Send queues one text frame without blocking. It fails with
	// domain.ErrConnectionClosed or domain.ErrSendBufferFull.
	Send(frame []byte) error
	IsOpen() bool
	Close() error
}
