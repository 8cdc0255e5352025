package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Wyydra/huddle/internal/adapter/driven/frame"
	"github.com/Wyydra/huddle/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/huddle/internal/adapter/driven/persistence/memory"
	registry "github.com/Wyydra/huddle/internal/adapter/driven/registry/memory"
	"github.com/Wyydra/huddle/internal/adapter/driven/secret"
	"github.com/Wyydra/huddle/internal/adapter/driven/token"
	"github.com/Wyydra/huddle/internal/core/domain"
	"github.com/Wyydra/huddle/internal/core/service"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	hub *ws.Hub
}

func newTestServer(t *testing.T, opts Options) testServer {
	t.Helper()

	sessions := registry.NewRegistry()
	relay := service.NewRelay(sessions, service.NewRoomBroadcaster(sessions, service.ScopeMeeting), service.RelayOptions{})
	issuer, err := token.NewJWTIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	meetings := service.NewMeetingService(memory.NewDirectory(), secret.NewArgon2Hasher(), issuer, relay)
	frames := service.NewFrameService(frame.NewOverlayAnalyzer(nil), false)
	hub := ws.NewHub()

	h := NewHandler(meetings, relay, frames, hub, opts)
	srv := httptest.NewServer(h.NewRouter())
	t.Cleanup(func() {
		hub.Stop()
		srv.Close()
	})
	return testServer{Server: srv, hub: hub}
}

func (s testServer) post(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(s.URL+path, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

type meetingResponse struct {
	Meeting meetingDTO `json:"meeting"`
}

type joinResponse struct {
	Participant participantDTO `json:"participant"`
	Token       string         `json:"token"`
}

func (s testServer) createMeeting(t *testing.T, id, password string) meetingDTO {
	t.Helper()
	res := s.post(t, "/api/meetings", map[string]string{"id": id, "password": password})
	require.Equal(t, http.StatusOK, res.StatusCode)
	return decodeBody[meetingResponse](t, res).Meeting
}

func (s testServer) join(t *testing.T, meetingID, password, name string) joinResponse {
	t.Helper()
	res := s.post(t, "/api/meetings/join", map[string]any{"meetingId": meetingID, "password": password, "name": name})
	require.Equal(t, http.StatusOK, res.StatusCode)
	return decodeBody[joinResponse](t, res)
}

func (s testServer) dial(t *testing.T, tok string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"
	if tok != "" {
		url += "?token=" + tok
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// waitSessions blocks until n participants are registered with the relay.
func (s testServer) waitSessions(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		res, err := http.Get(s.URL + "/healthz")
		if err != nil {
			return false
		}
		defer res.Body.Close()
		var health struct {
			Sessions int `json:"sessions"`
		}
		return json.NewDecoder(res.Body).Decode(&health) == nil && health.Sessions == n
	}, 2*time.Second, 10*time.Millisecond)
}

func sendEnvelope(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	b, err := domain.EncodeEnvelope(domain.EnvelopeType(typ), payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, b))
}

func readEnvelope(t *testing.T, conn *websocket.Conn) domain.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var env domain.Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func readRaw(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(data)
}

func TestMeetingsAPI(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, Options{})

	m := s.createMeeting(t, "standup", "pw")
	req.Equal("standup", m.ID)
	req.NotEmpty(m.HostID)
	req.True(m.Active)

	generated := s.createMeeting(t, "", "pw")
	req.Len(generated.ID, domain.MeetingIDLength)

	res := s.post(t, "/api/meetings", map[string]string{"id": "standup", "password": "pw"})
	req.Equal(http.StatusConflict, res.StatusCode)

	alice := s.join(t, "standup", "pw", "Alice")
	req.NotEmpty(alice.Participant.ID)
	req.Equal("standup", alice.Participant.MeetingID)
	req.NotEmpty(alice.Token)

	res = s.post(t, "/api/meetings/join", map[string]any{"meetingId": "standup", "password": "nope", "name": "Mallory"})
	req.Equal(http.StatusForbidden, res.StatusCode)
	req.Equal("Invalid meeting ID or password", decodeBody[map[string]string](t, res)["error"])

	res = s.post(t, "/api/meetings/join", map[string]any{"meetingId": "ghost", "password": "pw", "name": "Casper"})
	req.Equal(http.StatusForbidden, res.StatusCode)

	res = s.post(t, "/api/meetings/join", map[string]any{"meetingId": "standup", "password": "pw"})
	req.Equal(http.StatusBadRequest, res.StatusCode)

	list, err := http.Get(s.URL + "/api/meetings/standup/participants")
	req.NoError(err)
	defer list.Body.Close()
	participants := decodeBody[map[string][]participantDTO](t, list)["participants"]
	req.Len(participants, 1)
	req.Equal("Alice", participants[0].Name)

	del, err := http.NewRequest(http.MethodDelete, s.URL+"/api/meetings/standup/participants/"+alice.Participant.ID, nil)
	req.NoError(err)
	res, err = http.DefaultClient.Do(del)
	req.NoError(err)
	res.Body.Close()
	req.Equal(http.StatusNoContent, res.StatusCode)

	res = s.post(t, "/api/meetings/standup/end", map[string]string{"hostId": "someone-else"})
	req.Equal(http.StatusForbidden, res.StatusCode)

	res = s.post(t, "/api/meetings/standup/end", map[string]string{"hostId": m.HostID})
	req.Equal(http.StatusNoContent, res.StatusCode)

	res = s.post(t, "/api/meetings/join", map[string]any{"meetingId": "standup", "password": "pw", "name": "Late"})
	req.Equal(http.StatusForbidden, res.StatusCode)
}

func TestRelayEndToEnd(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, Options{})
	s.createMeeting(t, "m1", "pw")
	s.createMeeting(t, "m2", "pw")

	a := s.join(t, "m1", "pw", "Alice")
	b := s.join(t, "m1", "pw", "Bob")
	c := s.join(t, "m2", "pw", "Carol")

	aConn := s.dial(t, a.Token)
	bConn := s.dial(t, b.Token)
	cConn := s.dial(t, c.Token)

	sendEnvelope(t, aConn, "join", map[string]string{"participantId": a.Participant.ID, "meetingId": "m1"})
	sendEnvelope(t, cConn, "join", map[string]string{"participantId": c.Participant.ID, "meetingId": "m2"})
	s.waitSessions(t, 2)
	sendEnvelope(t, bConn, "join", map[string]string{"participantId": b.Participant.ID, "meetingId": "m1"})

	joined := readEnvelope(t, aConn)
	req.Equal(domain.EnvelopeParticipantJoined, joined.Type)
	req.JSONEq(`{"participantId":"`+b.Participant.ID+`"}`, string(joined.Payload))

	offer := `{"to":"` + a.Participant.ID + `","from":"` + b.Participant.ID + `","sdp":{"type":"offer","sdp":"v=0"}}`
	sendEnvelope(t, bConn, "webrtc_signal", json.RawMessage(offer))
	req.JSONEq(offer, readRaw(t, aConn))

	sendEnvelope(t, bConn, "chat", map[string]string{"meetingId": "m1", "text": "hello"})
	for _, conn := range []*websocket.Conn{aConn, bConn} {
		chat := readEnvelope(t, conn)
		req.Equal(domain.EnvelopeChat, chat.Type)
		req.JSONEq(`{"meetingId":"m1","text":"hello"}`, string(chat.Payload))
	}

	req.NoError(bConn.Close())
	left := readEnvelope(t, aConn)
	req.Equal(domain.EnvelopeParticipantLeft, left.Type)

	// Carol sits in another meeting and must have seen none of it.
	sendEnvelope(t, cConn, "chat", map[string]string{"meetingId": "m2", "text": "anyone?"})
	req.Equal(domain.EnvelopeChat, readEnvelope(t, cConn).Type)
}

func TestRelayEndToEnd_MeetingEndEvicts(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, Options{})
	m := s.createMeeting(t, "m1", "pw")
	a := s.join(t, "m1", "pw", "Alice")

	conn := s.dial(t, a.Token)
	sendEnvelope(t, conn, "join", map[string]string{"participantId": a.Participant.ID, "meetingId": "m1"})

	s.waitSessions(t, 1)

	res := s.post(t, "/api/meetings/m1/end", map[string]string{"hostId": m.HostID})
	req.Equal(http.StatusNoContent, res.StatusCode)

	ended := readEnvelope(t, conn)
	req.Equal(domain.EnvelopeMeetingEnded, ended.Type)
	req.JSONEq(`{"meetingId":"m1"}`, string(ended.Payload))

	_, _, err := conn.ReadMessage()
	req.Error(err)
}

func TestServeWS_Admission(t *testing.T) {
	s := newTestServer(t, Options{RequireAdmission: true})
	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"

	for name, query := range map[string]string{
		"missing token": "",
		"forged token":  "?token=abc.def.ghi",
	} {
		t.Run(name, func(t *testing.T) {
			_, res, err := websocket.DefaultDialer.Dial(url+query, nil)
			require.ErrorIs(t, err, websocket.ErrBadHandshake)
			require.Equal(t, http.StatusForbidden, res.StatusCode)
		})
	}

	s.createMeeting(t, "m1", "pw")
	a := s.join(t, "m1", "pw", "Alice")
	s.dial(t, a.Token)
}

func TestServeWS_TokenOfDepartedParticipantIsRefused(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, Options{})
	s.createMeeting(t, "m1", "pw")
	a := s.join(t, "m1", "pw", "Alice")

	del, err := http.NewRequest(http.MethodDelete, s.URL+"/api/meetings/m1/participants/"+a.Participant.ID, nil)
	req.NoError(err)
	res, err := http.DefaultClient.Do(del)
	req.NoError(err)
	res.Body.Close()
	req.Equal(http.StatusNoContent, res.StatusCode)

	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws?token=" + a.Token
	_, res, err = websocket.DefaultDialer.Dial(url, nil)
	req.ErrorIs(err, websocket.ErrBadHandshake)
	req.Equal(http.StatusForbidden, res.StatusCode)
}

func TestICEServers(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, Options{ICEServers: []webrtc.ICEServer{
		{URLs: []string{"stun:stun.example.com:3478"}},
	}})

	res, err := http.Get(s.URL + "/api/ice-servers")
	req.NoError(err)
	defer res.Body.Close()
	req.Equal(http.StatusOK, res.StatusCode)

	body := decodeBody[map[string][]map[string]any](t, res)
	req.Len(body["iceServers"], 1)
	req.Equal([]any{"stun:stun.example.com:3478"}, body["iceServers"][0]["urls"])
}

func TestHealthz(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, Options{})
	s.dial(t, "")
	req.Eventually(func() bool { return s.hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	res, err := http.Get(s.URL + "/healthz")
	req.NoError(err)
	defer res.Body.Close()
	req.JSONEq(`{"status":"ok","connections":1,"sessions":0}`, func() string {
		b, err := io.ReadAll(res.Body)
		req.NoError(err)
		return string(b)
	}())
}
