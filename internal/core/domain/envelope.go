package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type EnvelopeType string

const (
	EnvelopeJoin   EnvelopeType = "join"
	EnvelopeSignal EnvelopeType = "webrtc_signal"
	EnvelopeChat   EnvelopeType = "chat"

	EnvelopeParticipantJoined EnvelopeType = "participant_joined"
	EnvelopeParticipantLeft   EnvelopeType = "participant_left"
	EnvelopeMeetingEnded      EnvelopeType = "meeting_ended"
)

// Envelope is the only structure crossing the wire, in both directions.
type Envelope struct {
	Type    EnvelopeType    `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Inbound is a decoded client envelope. The variants are Join, Signal, Chat
// and Unknown; Unknown carries any type this server does not handle yet.
type Inbound interface {
	Kind() EnvelopeType
	// Payload returns the payload exactly as it was received.
	Payload() json.RawMessage
	isInbound()
}

type Join struct {
	ParticipantID ParticipantID
	MeetingID     MeetingID
	Raw           json.RawMessage
}

// Signal carries an opaque signaling body for a single peer. Only To is read.
type Signal struct {
	To  ParticipantID
	Raw json.RawMessage
}

type Chat struct {
	MeetingID MeetingID
	Raw       json.RawMessage
}

type Unknown struct {
	Type EnvelopeType
	Raw  json.RawMessage
}

func (Join) Kind() EnvelopeType      { return EnvelopeJoin }
func (Signal) Kind() EnvelopeType    { return EnvelopeSignal }
func (Chat) Kind() EnvelopeType      { return EnvelopeChat }
func (u Unknown) Kind() EnvelopeType { return u.Type }

func (j Join) Payload() json.RawMessage    { return j.Raw }
func (s Signal) Payload() json.RawMessage  { return s.Raw }
func (c Chat) Payload() json.RawMessage    { return c.Raw }
func (u Unknown) Payload() json.RawMessage { return u.Raw }

func (Join) isInbound()    {}
func (Signal) isInbound()  {}
func (Chat) isInbound()    {}
func (Unknown) isInbound() {}

// ParticipantEvent is the payload of participant_joined and participant_left.
type ParticipantEvent struct {
	ParticipantID ParticipantID `json:"participantId"`
}

type MeetingEndedEvent struct {
	MeetingID MeetingID `json:"meetingId"`
}

// DecodeEnvelope parses one inbound frame. Every error wraps
// ErrMalformedEnvelope.
func DecodeEnvelope(data []byte) (Inbound, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformedEnvelope)
	}

	switch env.Type {
	case EnvelopeJoin:
		var p struct {
			ParticipantID string `json:"participantId"`
			MeetingID     string `json:"meetingId"`
		}
		if err := decodePayload(env, &p); err != nil {
			return nil, err
		}
		if p.ParticipantID == "" {
			return nil, fmt.Errorf("%w: join without participantId", ErrMalformedEnvelope)
		}
		if p.MeetingID == "" {
			return nil, fmt.Errorf("%w: join without meetingId", ErrMalformedEnvelope)
		}
		return Join{
			ParticipantID: ParticipantID(p.ParticipantID),
			MeetingID:     MeetingID(p.MeetingID),
			Raw:           env.Payload,
		}, nil

	case EnvelopeSignal:
		var p struct {
			To string `json:"to"`
		}
		if err := decodePayload(env, &p); err != nil {
			return nil, err
		}
		if p.To == "" {
			return nil, fmt.Errorf("%w: webrtc_signal without recipient", ErrMalformedEnvelope)
		}
		return Signal{To: ParticipantID(p.To), Raw: env.Payload}, nil

	case EnvelopeChat:
		var p struct {
			MeetingID string `json:"meetingId"`
		}
		if err := decodePayload(env, &p); err != nil {
			return nil, err
		}
		if p.MeetingID == "" {
			return nil, fmt.Errorf("%w: chat without meetingId", ErrMalformedEnvelope)
		}
		return Chat{MeetingID: MeetingID(p.MeetingID), Raw: env.Payload}, nil

	default:
		return Unknown{Type: env.Type, Raw: env.Payload}, nil
	}
}

func decodePayload(env Envelope, v any) error {
	raw := bytes.TrimSpace(env.Payload)
	if len(raw) == 0 || raw[0] != '{' {
		return fmt.Errorf("%w: %s payload is not an object", ErrMalformedEnvelope, env.Type)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s payload: %v", ErrMalformedEnvelope, env.Type, err)
	}
	return nil
}

// EncodeEnvelope wraps payload in a {type, payload} frame. A json.RawMessage
// payload is embedded as-is, so decoding then encoding is a structural echo.
func EncodeEnvelope(t EnvelopeType, payload any) ([]byte, error) {
	raw, ok := payload.(json.RawMessage)
	if !ok {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", t, err)
		}
		raw = b
	}
	return json.Marshal(Envelope{Type: t, Payload: raw})
}

// Encode re-encodes a decoded envelope.
func Encode(in Inbound) ([]byte, error) {
	return EncodeEnvelope(in.Kind(), in.Payload())
}
