package http

import (
	"net/http"
	"time"

	"github.com/Wyydra/huddle/internal/core/domain"
	"github.com/Wyydra/huddle/internal/core/service"
	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

type createMeetingRequest struct {
	ID       string `json:"id" validate:"omitempty,alphanum,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

type joinMeetingRequest struct {
	MeetingID string `json:"meetingId" validate:"required,max=64"`
	Password  string `json:"password" validate:"required,max=128"`
	Name      string `json:"name" validate:"required,max=64"`
	IsHost    bool   `json:"isHost"`
}

type endMeetingRequest struct {
	HostID string `json:"hostId" validate:"required"`
}

// The password hash never leaves the server.
type meetingDTO struct {
	ID        string    `json:"id"`
	HostID    string    `json:"hostId"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type participantDTO struct {
	ID        string `json:"id"`
	MeetingID string `json:"meetingId"`
	Name      string `json:"name"`
	IsHost    bool   `json:"isHost"`
}

func toMeetingDTO(m domain.Meeting) meetingDTO {
	return meetingDTO{
		ID:        m.ID.String(),
		HostID:    m.HostID.String(),
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}
}

func toParticipantDTO(p domain.Participant) participantDTO {
	return participantDTO{
		ID:        p.ID.String(),
		MeetingID: p.MeetingID.String(),
		Name:      p.Name,
		IsHost:    p.IsHost,
	}
}

func (h *Handler) createMeeting(w http.ResponseWriter, r *http.Request) {
	var req createMeetingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	m, err := h.Meetings.CreateMeeting(r.Context(), domain.MeetingID(req.ID), req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"meeting": toMeetingDTO(m)})
}

func (h *Handler) joinMeeting(w http.ResponseWriter, r *http.Request) {
	var req joinMeetingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.Meetings.JoinMeeting(r.Context(), service.JoinRequest{
		MeetingID: domain.MeetingID(req.MeetingID),
		Password:  req.Password,
		Name:      req.Name,
		IsHost:    req.IsHost,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	body := map[string]any{"participant": toParticipantDTO(res.Participant)}
	if res.Token != "" {
		body["token"] = res.Token
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) participants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.Meetings.Participants(r.Context(), domain.MeetingID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"participants": lo.Map(participants, func(p domain.Participant, _ int) participantDTO {
			return toParticipantDTO(p)
		}),
	})
}

func (h *Handler) leaveMeeting(w http.ResponseWriter, r *http.Request) {
	if err := h.Meetings.LeaveMeeting(r.Context(), domain.ParticipantID(chi.URLParam(r, "participantId"))); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) endMeeting(w http.ResponseWriter, r *http.Request) {
	var req endMeetingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.Meetings.EndMeeting(r.Context(), domain.MeetingID(chi.URLParam(r, "id")), domain.HostID(req.HostID)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
