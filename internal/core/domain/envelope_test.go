package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Inbound
	}{
		{
			name: "join",
			in:   `{"type":"join","payload":{"participantId":"p1","meetingId":"m1"}}`,
			want: Join{ParticipantID: "p1", MeetingID: "m1", Raw: json.RawMessage(`{"participantId":"p1","meetingId":"m1"}`)},
		},
		{
			name: "signal keeps opaque fields",
			in:   `{"type":"webrtc_signal","payload":{"to":"p2","sdp":{"type":"offer"},"from":"p1"}}`,
			want: Signal{To: "p2", Raw: json.RawMessage(`{"to":"p2","sdp":{"type":"offer"},"from":"p1"}`)},
		},
		{
			name: "chat",
			in:   `{"type":"chat","payload":{"meetingId":"m1","text":"hi"}}`,
			want: Chat{MeetingID: "m1", Raw: json.RawMessage(`{"meetingId":"m1","text":"hi"}`)},
		},
		{
			name: "unknown type",
			in:   `{"type":"raise_hand","payload":[1,2]}`,
			want: Unknown{Type: "raise_hand", Raw: json.RawMessage(`[1,2]`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeEnvelope([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeEnvelope_Malformed(t *testing.T) {
	inputs := map[string]string{
		"not json":             `hello`,
		"truncated":            `{"type":"join"`,
		"missing type":         `{"payload":{}}`,
		"join scalar payload":  `{"type":"join","payload":"p1"}`,
		"join without id":      `{"type":"join","payload":{"meetingId":"m1"}}`,
		"join without meeting": `{"type":"join","payload":{"participantId":"p1"}}`,
		"signal without to":    `{"type":"webrtc_signal","payload":{"sdp":{}}}`,
		"signal wrong to type": `{"type":"webrtc_signal","payload":{"to":42}}`,
		"chat without meeting": `{"type":"chat","payload":{"text":"hi"}}`,
		"chat missing payload": `{"type":"chat"}`,
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeEnvelope([]byte(in))
			require.ErrorIs(t, err, ErrMalformedEnvelope)
		})
	}
}

func TestEncodeEnvelope(t *testing.T) {
	t.Run("struct payload", func(t *testing.T) {
		b, err := EncodeEnvelope(EnvelopeParticipantJoined, ParticipantEvent{ParticipantID: "p1"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"participant_joined","payload":{"participantId":"p1"}}`, string(b))
	})

	t.Run("raw payload embedded as-is", func(t *testing.T) {
		b, err := EncodeEnvelope(EnvelopeChat, json.RawMessage(`{"meetingId":"m","n":1.50}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"chat","payload":{"meetingId":"m","n":1.50}}`, string(b))
	})
}

func TestEncode_RoundTripIsStructuralEcho(t *testing.T) {
	in := `{"type":"webrtc_signal","payload":{"to":"p2","candidate":{"sdpMid":"0"}}}`
	msg, err := DecodeEnvelope([]byte(in))
	require.NoError(t, err)

	out, err := Encode(msg)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}
