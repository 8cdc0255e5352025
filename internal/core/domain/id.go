package domain

import (
	"strings"

	"github.com/google/uuid"
)

type ParticipantID string
type MeetingID string
type HostID string

func NewParticipantID() ParticipantID {
	return ParticipantID(uuid.New().String())
}

func NewHostID() HostID {
	return HostID(uuid.New().String())
}

// NewMeetingID returns a short, human-typeable meeting code.
func NewMeetingID() MeetingID {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return MeetingID(raw[:MeetingIDLength])
}

const MeetingIDLength = 6

func (id ParticipantID) String() string {
	return string(id)
}

func (id MeetingID) String() string {
	return string(id)
}

func (id HostID) String() string {
	return string(id)
}
