package service

import (
	"context"

	"github.com/Wyydra/huddle/internal/core/domain"
	"github.com/Wyydra/huddle/internal/core/port"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type RelayOptions struct {
	// WrapSignals re-wraps forwarded webrtc_signal payloads in an envelope
	// instead of sending the payload alone.
	WrapSignals bool
}

// Relay routes signaling and chat between connected participants. It owns no
// meeting state: joins arrive already validated.
type Relay struct {
	registry    port.SessionRegistry
	broadcaster *RoomBroadcaster
	opts        RelayOptions
}

func NewRelay(registry port.SessionRegistry, broadcaster *RoomBroadcaster, opts RelayOptions) *Relay {
	return &Relay{
		registry:    registry,
		broadcaster: broadcaster,
		opts:        opts,
	}
}

// Peer is the relay state of one connection. Handle and Close must be called
// from the connection's single reader goroutine.
type Peer struct {
	relay *Relay
	conn  port.Connection
	log   zerolog.Logger
	// admission, when set, is the only identity this peer may join as.
	admission *port.Admission

	joined        bool
	participantID domain.ParticipantID
	meetingID     domain.MeetingID
}

func (r *Relay) Open(conn port.Connection) *Peer {
	return &Peer{
		relay: r,
		conn:  conn,
		log:   log.With().Str("client_id", conn.ID()).Logger(),
	}
}

// OpenAdmitted is Open for a connection that presented an admission token.
// Joins under any other participant or meeting are refused.
func (r *Relay) OpenAdmitted(conn port.Connection, a port.Admission) *Peer {
	p := r.Open(conn)
	p.admission = &a
	p.log = p.log.With().Str("admitted_as", a.ParticipantID.String()).Logger()
	return p
}

func (p *Peer) ParticipantID() (domain.ParticipantID, bool) {
	return p.participantID, p.joined
}

// Handle processes one inbound frame. Malformed or unknown envelopes are
// dropped and every failure stays local to this frame.
func (p *Peer) Handle(ctx context.Context, frame []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			p.log.Error().Interface("panic", rec).Msg("Recovered while handling envelope")
		}
	}()

	if ctx.Err() != nil {
		return
	}

	in, err := domain.DecodeEnvelope(frame)
	if err != nil {
		p.log.Debug().Err(err).Msg("Discarding malformed envelope")
		return
	}

	switch msg := in.(type) {
	case domain.Join:
		p.join(msg)
	case domain.Signal:
		p.signal(msg)
	case domain.Chat:
		p.chat(msg)
	default:
		p.log.Debug().Str("type", string(in.Kind())).Msg("Ignoring unknown envelope type")
	}
}

// Close drops the peer's registration, unless a newer connection has taken
// over its participant id, and tells the meeting it left.
func (p *Peer) Close() {
	if !p.joined {
		return
	}
	p.relay.leave(p.log, p.participantID, p.meetingID, p.conn)
	p.joined = false
}

func (p *Peer) join(msg domain.Join) {
	if a := p.admission; a != nil && (a.ParticipantID != msg.ParticipantID || a.MeetingID != msg.MeetingID) {
		p.log.Warn().
			Str("participant_id", msg.ParticipantID.String()).
			Str("meeting_id", msg.MeetingID.String()).
			Msg("Refusing join outside admission")
		return
	}

	if p.joined && p.participantID != msg.ParticipantID {
		p.relay.leave(p.log, p.participantID, p.meetingID, p.conn)
	}

	p.joined = true
	p.participantID = msg.ParticipantID
	p.meetingID = msg.MeetingID
	p.log = log.With().
		Str("client_id", p.conn.ID()).
		Str("participant_id", msg.ParticipantID.String()).
		Str("meeting_id", msg.MeetingID.String()).
		Logger()

	prev, replaced := p.relay.registry.Register(port.Session{
		ParticipantID: msg.ParticipantID,
		MeetingID:     msg.MeetingID,
		Conn:          p.conn,
	})
	if replaced && prev.Conn != p.conn {
		p.log.Info().Str("previous_client_id", prev.Conn.ID()).Msg("Participant connection superseded")
	}
	p.log.Info().Msg("Participant joined")

	_, err := p.relay.broadcaster.BroadcastEvent(msg.MeetingID, domain.EnvelopeParticipantJoined,
		domain.ParticipantEvent{ParticipantID: msg.ParticipantID}, msg.ParticipantID)
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to announce participant")
	}
}

// signal forwards msg unless the peer was admitted by token and has not
// joined yet.
func (p *Peer) signal(msg domain.Signal) {
	if p.admission != nil && !p.joined {
		p.log.Warn().Str("to", msg.To.String()).Msg("Refusing signal before join")
		return
	}
	p.relay.forwardSignal(p.log, msg)
}

// chat broadcasts msg only into the meeting the peer joined.
func (p *Peer) chat(msg domain.Chat) {
	if !p.joined {
		p.log.Warn().Str("meeting_id", msg.MeetingID.String()).Msg("Refusing chat before join")
		return
	}
	if msg.MeetingID != p.meetingID {
		p.log.Warn().Str("target_meeting_id", msg.MeetingID.String()).Msg("Refusing chat outside joined meeting")
		return
	}
	p.relay.chat(p.log, msg)
}

func (r *Relay) forwardSignal(l zerolog.Logger, msg domain.Signal) {
	target, ok := r.registry.Lookup(msg.To)
	if !ok || !target.Conn.IsOpen() {
		l.Debug().Str("to", msg.To.String()).Msg("Dropping signal for unreachable participant")
		return
	}

	frame := []byte(msg.Raw)
	if r.opts.WrapSignals {
		var err error
		if frame, err = domain.Encode(msg); err != nil {
			l.Error().Err(err).Msg("Failed to wrap signal")
			return
		}
	}

	if err := target.Conn.Send(frame); err != nil {
		l.Warn().Err(err).Str("to", msg.To.String()).Msg("Failed to forward signal")
	}
}

func (r *Relay) chat(l zerolog.Logger, msg domain.Chat) {
	res, err := r.broadcaster.BroadcastEvent(msg.MeetingID, domain.EnvelopeChat, msg.Raw, "")
	if err != nil {
		l.Error().Err(err).Msg("Failed to broadcast chat")
		return
	}
	l.Debug().Int("sent", res.Sent).Int("dropped", len(res.Dropped)).Msg("Chat broadcast")
}

func (r *Relay) leave(l zerolog.Logger, id domain.ParticipantID, meetingID domain.MeetingID, conn port.Connection) {
	if !r.registry.Deregister(id, conn) {
		return
	}
	l.Info().Msg("Participant left")

	_, err := r.broadcaster.BroadcastEvent(meetingID, domain.EnvelopeParticipantLeft,
		domain.ParticipantEvent{ParticipantID: id}, id)
	if err != nil {
		l.Error().Err(err).Msg("Failed to announce departure")
	}
}

// EndMeeting notifies every live session of the meeting, drops their
// registrations and closes their connections. It returns how many sessions
// were evicted.
func (r *Relay) EndMeeting(meetingID domain.MeetingID) int {
	frame, err := domain.EncodeEnvelope(domain.EnvelopeMeetingEnded, domain.MeetingEndedEvent{MeetingID: meetingID})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode meeting end")
		return 0
	}

	evicted := 0
	for _, s := range r.registry.Members(meetingID) {
		if !r.registry.Deregister(s.ParticipantID, s.Conn) {
			continue
		}
		evicted++
		if err := s.Conn.Send(frame); err != nil {
			log.Debug().Err(err).Str("participant_id", s.ParticipantID.String()).Msg("Meeting end not delivered")
		}
		if err := s.Conn.Close(); err != nil {
			log.Debug().Err(err).Str("participant_id", s.ParticipantID.String()).Msg("Error closing evicted connection")
		}
	}
	log.Info().Str("meeting_id", meetingID.String()).Int("evicted", evicted).Msg("Meeting ended")
	return evicted
}

func (r *Relay) SessionCount() int {
	return r.registry.Count()
}
