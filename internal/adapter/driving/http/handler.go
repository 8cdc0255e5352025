package http

import (
	"net/http"

	"github.com/Wyydra/huddle/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/huddle/internal/core/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
)

type Options struct {
	StaticDir        string
	RequireAdmission bool
	ICEServers       []webrtc.ICEServer
	WS               ws.Options
}

type Handler struct {
	Meetings *service.MeetingService
	Relay    *service.Relay
	Frames   *service.FrameService
	Hub      *ws.Hub

	opts     Options
	upgrader websocket.Upgrader
}

func NewHandler(meetings *service.MeetingService, relay *service.Relay, frames *service.FrameService, hub *ws.Hub, opts Options) *Handler {
	if opts.WS == (ws.Options{}) {
		opts.WS = ws.DefaultOptions()
	}
	return &Handler{
		Meetings: meetings,
		Relay:    relay,
		Frames:   frames,
		Hub:      hub,
		opts:     opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// TODO: restrict to the configured frontend origin once it is deployed separately.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ws", h.ServeWS)
	r.Get("/healthz", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ice-servers", h.iceServers)

		r.Route("/meetings", func(r chi.Router) {
			r.Post("/", h.createMeeting)
			r.Post("/join", h.joinMeeting)
			r.Get("/{id}/participants", h.participants)
			r.Delete("/{id}/participants/{participantId}", h.leaveMeeting)
			r.Post("/{id}/end", h.endMeeting)
		})

		r.Route("/eye-correction", func(r chi.Router) {
			r.Post("/process-frame", h.processFrame)
			r.Post("/toggle", h.toggleFrameOverlay)
		})
	})

	if h.opts.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(h.opts.StaticDir)))
	}

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"connections": h.Hub.Count(),
		"sessions":    h.Relay.SessionCount(),
	})
}

func (h *Handler) iceServers(w http.ResponseWriter, r *http.Request) {
	servers := h.opts.ICEServers
	if servers == nil {
		servers = []webrtc.ICEServer{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"iceServers": servers})
}
