//go:generate go run go.uber.org/mock/mockgen -source=directory.go -destination=../../mocks/mock_directory.go -package=mocks
package port

import (
	"context"

	"github.com/Wyydra/huddle/internal/core/domain"
)

// Directory stores meetings and participants. Lookups of absent records fail
// with domain.ErrMeetingNotFound or domain.ErrParticipantNotFound.
type Directory interface {
	CreateMeeting(ctx context.Context, m domain.Meeting) error
	GetMeeting(ctx context.Context, id domain.MeetingID) (domain.Meeting, error)
	DeactivateMeeting(ctx context.Context, id domain.MeetingID) error

	AddParticipant(ctx context.Context, p domain.Participant) error
	GetParticipant(ctx context.Context, id domain.ParticipantID) (domain.Participant, error)
	GetParticipants(ctx context.Context, meetingID domain.MeetingID) ([]domain.Participant, error)
	RemoveParticipant(ctx context.Context, id domain.ParticipantID) error
	RemoveParticipants(ctx context.Context, meetingID domain.MeetingID) error
}
