package http

import (
	"net/http"

	"github.com/Wyydra/huddle/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/huddle/internal/core/port"
	"github.com/Wyydra/huddle/internal/core/service"
	"github.com/rs/zerolog/log"
)

// ServeWS admits the connection, upgrades it and runs its read loop until the
// browser goes away.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	admission, err := h.admit(r)
	if err != nil {
		log.Warn().Err(err).Str("remote_addr", r.RemoteAddr).Msg("Rejected relay connection")
		writeError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	client := ws.NewClient(conn, h.opts.WS)
	if !h.Hub.Register(client) {
		_ = client.Close()
		return
	}

	var peer *service.Peer
	if admission != nil {
		peer = h.Relay.OpenAdmitted(client, *admission)
	} else {
		peer = h.Relay.Open(client)
	}

	l := log.With().Str("client_id", client.ID()).Logger()
	l.Info().Msg("New client connected")

	defer func() {
		if pid, ok := peer.ParticipantID(); ok {
			l = l.With().Str("participant_id", pid.String()).Logger()
		}
		peer.Close()
		_ = client.Close()
		h.Hub.Unregister(client)
		l.Info().Msg("Client disconnected")
	}()

	ctx := r.Context()
	client.ReadLoop(func(frame []byte) {
		peer.Handle(ctx, frame)
	})
}

// admit checks the optional token query parameter. Without a token the
// connection is anonymous unless admission is required.
func (h *Handler) admit(r *http.Request) (*port.Admission, error) {
	token := r.URL.Query().Get("token")
	if token == "" && !h.opts.RequireAdmission {
		return nil, nil
	}
	a, err := h.Meetings.VerifyAdmission(r.Context(), token)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
