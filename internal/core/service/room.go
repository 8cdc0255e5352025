package service

import (
	"fmt"

	"github.com/Wyydra/huddle/internal/core/domain"
	"github.com/Wyydra/huddle/internal/core/port"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type BroadcastScope string

const (
	// ScopeMeeting delivers broadcasts only to sessions of the same meeting.
	ScopeMeeting BroadcastScope = "meeting"
	// ScopeGlobal delivers broadcasts to every open session, whatever meeting
	// it joined. Kept for clients built against the legacy server.
	ScopeGlobal BroadcastScope = "global"
)

func ParseBroadcastScope(s string) (BroadcastScope, error) {
	switch BroadcastScope(s) {
	case ScopeMeeting, ScopeGlobal:
		return BroadcastScope(s), nil
	default:
		return "", fmt.Errorf("unknown broadcast scope %q", s)
	}
}

// PublishResult reports how a broadcast went.
type PublishResult struct {
	Sent    int
	Dropped []domain.ParticipantID
}

// RoomBroadcaster selects the recipients of broadcast-class envelopes and
// delivers them fire-and-forget.
type RoomBroadcaster struct {
	registry port.SessionRegistry
	scope    BroadcastScope
}

func NewRoomBroadcaster(registry port.SessionRegistry, scope BroadcastScope) *RoomBroadcaster {
	if scope == ScopeGlobal {
		log.Warn().Msg("Broadcast scope is global: chat and presence events reach every meeting")
	}
	return &RoomBroadcaster{
		registry: registry,
		scope:    scope,
	}
}

// Recipients returns the open sessions that a broadcast for meetingID reaches,
// without except. Each connection appears once.
func (b *RoomBroadcaster) Recipients(meetingID domain.MeetingID, except domain.ParticipantID) []port.Session {
	var sessions []port.Session
	if b.scope == ScopeGlobal {
		sessions = b.registry.Sessions()
	} else {
		sessions = b.registry.Members(meetingID)
	}

	sessions = lo.Filter(sessions, func(s port.Session, _ int) bool {
		return s.ParticipantID != except && s.Conn.IsOpen()
	})
	return lo.UniqBy(sessions, func(s port.Session) port.Connection {
		return s.Conn
	})
}

// Broadcast sends frame to every recipient. A failed send is logged and does
// not stop delivery to the others.
func (b *RoomBroadcaster) Broadcast(meetingID domain.MeetingID, frame []byte, except domain.ParticipantID) PublishResult {
	var res PublishResult
	for _, s := range b.Recipients(meetingID, except) {
		if err := s.Conn.Send(frame); err != nil {
			log.Warn().Err(err).
				Str("participant_id", s.ParticipantID.String()).
				Str("meeting_id", meetingID.String()).
				Msg("Error broadcasting to participant")
			res.Dropped = append(res.Dropped, s.ParticipantID)
			continue
		}
		res.Sent++
	}
	return res
}

// BroadcastEvent encodes payload as a t envelope and broadcasts it.
func (b *RoomBroadcaster) BroadcastEvent(meetingID domain.MeetingID, t domain.EnvelopeType, payload any, except domain.ParticipantID) (PublishResult, error) {
	frame, err := domain.EncodeEnvelope(t, payload)
	if err != nil {
		return PublishResult{}, err
	}
	return b.Broadcast(meetingID, frame, except), nil
}
