package memory

import (
	"context"
	"sync"

	"github.com/Wyydra/huddle/internal/core/domain"
	"github.com/samber/lo"
)

// Directory is the in-process meeting and participant store.
type Directory struct {
	mu           sync.RWMutex
	meetings     map[domain.MeetingID]domain.Meeting
	participants map[domain.ParticipantID]domain.Participant
}

func NewDirectory() *Directory {
	return &Directory{
		meetings:     make(map[domain.MeetingID]domain.Meeting),
		participants: make(map[domain.ParticipantID]domain.Participant),
	}
}

func (d *Directory) CreateMeeting(ctx context.Context, m domain.Meeting) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.meetings[m.ID]; ok {
		return domain.ErrMeetingExists
	}
	d.meetings[m.ID] = m
	return nil
}

func (d *Directory) GetMeeting(ctx context.Context, id domain.MeetingID) (domain.Meeting, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	m, ok := d.meetings[id]
	if !ok {
		return domain.Meeting{}, domain.ErrMeetingNotFound
	}
	return m, nil
}

func (d *Directory) DeactivateMeeting(ctx context.Context, id domain.MeetingID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.meetings[id]
	if !ok {
		return domain.ErrMeetingNotFound
	}
	m.Active = false
	d.meetings[id] = m
	return nil
}

func (d *Directory) AddParticipant(ctx context.Context, p domain.Participant) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.meetings[p.MeetingID]; !ok {
		return domain.ErrMeetingNotFound
	}
	d.participants[p.ID] = p
	return nil
}

func (d *Directory) GetParticipant(ctx context.Context, id domain.ParticipantID) (domain.Participant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.participants[id]
	if !ok {
		return domain.Participant{}, domain.ErrParticipantNotFound
	}
	return p, nil
}

func (d *Directory) GetParticipants(ctx context.Context, meetingID domain.MeetingID) ([]domain.Participant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return lo.Filter(lo.Values(d.participants), func(p domain.Participant, _ int) bool {
		return p.MeetingID == meetingID
	}), nil
}

func (d *Directory) RemoveParticipant(ctx context.Context, id domain.ParticipantID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.participants, id)
	return nil
}

func (d *Directory) RemoveParticipants(ctx context.Context, meetingID domain.MeetingID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, p := range d.participants {
		if p.MeetingID == meetingID {
			delete(d.participants, id)
		}
	}
	return nil
}
