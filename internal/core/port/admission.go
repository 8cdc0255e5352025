//go:generate go run go.uber.org/mock/mockgen -source=admission.go -destination=../../mocks/mock_admission.go -package=mocks
package port

import "github.com/Wyydra/huddle/internal/core/domain"

// Admission is the identity a participant proved over HTTP before opening a
// relay connection.
type Admission struct {
	ParticipantID domain.ParticipantID
	MeetingID     domain.MeetingID
}

type AdmissionIssuer interface {
	Issue(a Admission) (string, error)
	Verify(token string) (Admission, error)
}
