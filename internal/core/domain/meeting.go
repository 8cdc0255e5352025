package domain

import (
	"errors"
	"time"
)

// Meeting accepts new participants only while Active and the supplied
// password matches PasswordHash.
type Meeting struct {
	ID           MeetingID
	PasswordHash string
	HostID       HostID
	Active       bool
	CreatedAt    time.Time
}

func NewMeeting(id MeetingID, passwordHash string, hostID HostID) (*Meeting, error) {
	if id == "" {
		return nil, errors.New("meeting id cannot be empty")
	}
	if passwordHash == "" {
		return nil, errors.New("meeting password cannot be empty")
	}
	return &Meeting{
		ID:           id,
		PasswordHash: passwordHash,
		HostID:       hostID,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

type Participant struct {
	ID        ParticipantID
	MeetingID MeetingID
	Name      string
	IsHost    bool
}

func NewParticipant(meetingID MeetingID, name string, isHost bool) (*Participant, error) {
	if name == "" {
		return nil, errors.New("participant name cannot be empty")
	}
	return &Participant{
		ID:        NewParticipantID(),
		MeetingID: meetingID,
		Name:      name,
		IsHost:    isHost,
	}, nil
}
