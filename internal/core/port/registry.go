package port

import "github.com/Wyydra/huddle/internal/core/domain"

// Session pairs a participant with its current connection and the meeting it
// joined.
type Session struct {
	ParticipantID domain.ParticipantID
	MeetingID     domain.MeetingID
	Conn          Connection
}

// SessionRegistry is the single source of truth for who is reachable.
// Implementations must be safe for concurrent use and must never hold a lock
// while a Connection sends.
type SessionRegistry interface {
	// Register inserts or replaces the session for s.ParticipantID. The
	// superseded session, if any, is returned and is not notified.
	Register(s Session) (previous Session, replaced bool)
	Lookup(id domain.ParticipantID) (Session, bool)
	// Remove is idempotent.
	Remove(id domain.ParticipantID)
	// Deregister removes id only while conn is still its current connection.
	Deregister(id domain.ParticipantID, conn Connection) bool
	// Sessions returns a snapshot of every registered session.
	Sessions() []Session
	// Members returns a snapshot of the sessions of one meeting.
	Members(meetingID domain.MeetingID) []Session
	Count() int
}
