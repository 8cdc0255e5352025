package memory

import (
	"sync"

	"github.com/Wyydra/huddle/internal/core/domain"
	"github.com/Wyydra/huddle/internal/core/port"
)

type set map[domain.ParticipantID]struct{}

// Registry implements port.SessionRegistry. Reads hand out copies, so callers
// send on connections after the lock is released.
type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.ParticipantID]port.Session
	meetings map[domain.MeetingID]set
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[domain.ParticipantID]port.Session),
		meetings: make(map[domain.MeetingID]set),
	}
}

func (r *Registry) Register(s port.Session) (port.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, replaced := r.sessions[s.ParticipantID]
	if replaced {
		r.unindex(prev)
	}

	r.sessions[s.ParticipantID] = s
	members, ok := r.meetings[s.MeetingID]
	if !ok {
		members = make(set)
		r.meetings[s.MeetingID] = members
	}
	members[s.ParticipantID] = struct{}{}

	return prev, replaced
}

func (r *Registry) Lookup(id domain.ParticipantID) (port.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Remove(id domain.ParticipantID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		delete(r.sessions, id)
		r.unindex(s)
	}
}

func (r *Registry) Deregister(id domain.ParticipantID, conn port.Connection) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || s.Conn != conn {
		return false
	}
	delete(r.sessions, id)
	r.unindex(s)
	return true
}

func (r *Registry) Sessions() []port.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]port.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

func (r *Registry) Members(meetingID domain.MeetingID) []port.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.meetings[meetingID]
	out := make([]port.Session, 0, len(members))
	for id := range members {
		if s, ok := r.sessions[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// unindex drops s from its meeting set and removes empty sets. Callers hold mu.
func (r *Registry) unindex(s port.Session) {
	members, ok := r.meetings[s.MeetingID]
	if !ok {
		return
	}
	delete(members, s.ParticipantID)
	if len(members) == 0 {
		delete(r.meetings, s.MeetingID)
	}
}
