package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wyydra/huddle/internal/core/domain"
	"github.com/Wyydra/huddle/internal/core/port"
	"github.com/rs/zerolog/log"
)

const maxMeetingIDAttempts = 5

// MeetingEvictor disconnects the live sessions of a meeting.
type MeetingEvictor interface {
	EndMeeting(meetingID domain.MeetingID) int
}

type MeetingService struct {
	directory  port.Directory
	hasher     port.PasswordHasher
	admissions port.AdmissionIssuer
	evictor    MeetingEvictor
}

// NewMeetingService builds the service. admissions and evictor may be nil.
func NewMeetingService(directory port.Directory, hasher port.PasswordHasher, admissions port.AdmissionIssuer, evictor MeetingEvictor) *MeetingService {
	return &MeetingService{
		directory:  directory,
		hasher:     hasher,
		admissions: admissions,
		evictor:    evictor,
	}
}

type JoinRequest struct {
	MeetingID domain.MeetingID
	Password  string
	Name      string
	IsHost    bool
}

type JoinResult struct {
	Participant domain.Participant
	// Token is empty when no admission issuer is configured.
	Token string
}

// CreateMeeting stores a new active meeting. An empty id is replaced by a
// generated one.
func (s *MeetingService) CreateMeeting(ctx context.Context, id domain.MeetingID, password string) (domain.Meeting, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("hash password: %w", err)
	}

	generated := id == ""
	for attempt := 0; attempt < maxMeetingIDAttempts; attempt++ {
		if generated {
			id = domain.NewMeetingID()
		}
		m, err := domain.NewMeeting(id, hash, domain.NewHostID())
		if err != nil {
			return domain.Meeting{}, err
		}
		if err := s.directory.CreateMeeting(ctx, *m); err != nil {
			if generated && errors.Is(err, domain.ErrMeetingExists) {
				continue
			}
			return domain.Meeting{}, err
		}
		log.Info().Str("meeting_id", m.ID.String()).Msg("Meeting created")
		return *m, nil
	}
	return domain.Meeting{}, fmt.Errorf("allocate meeting id: %w", domain.ErrMeetingExists)
}

// ValidateMeeting reports whether the meeting exists, is active and password
// matches.
func (s *MeetingService) ValidateMeeting(ctx context.Context, id domain.MeetingID, password string) (bool, error) {
	m, err := s.directory.GetMeeting(ctx, id)
	if errors.Is(err, domain.ErrMeetingNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !m.Active {
		return false, nil
	}
	return s.hasher.Compare(password, m.PasswordHash)
}

// JoinMeeting admits a participant. It fails with ErrInvalidCredentials when
// the meeting is unknown, inactive or the password is wrong.
func (s *MeetingService) JoinMeeting(ctx context.Context, req JoinRequest) (JoinResult, error) {
	ok, err := s.ValidateMeeting(ctx, req.MeetingID, req.Password)
	if err != nil {
		return JoinResult{}, err
	}
	if !ok {
		return JoinResult{}, domain.ErrInvalidCredentials
	}

	p, err := domain.NewParticipant(req.MeetingID, req.Name, req.IsHost)
	if err != nil {
		return JoinResult{}, err
	}
	if err := s.directory.AddParticipant(ctx, *p); err != nil {
		return JoinResult{}, fmt.Errorf("add participant: %w", err)
	}

	res := JoinResult{Participant: *p}
	if s.admissions != nil {
		token, err := s.admissions.Issue(port.Admission{ParticipantID: p.ID, MeetingID: p.MeetingID})
		if err != nil {
			return JoinResult{}, fmt.Errorf("issue admission: %w", err)
		}
		res.Token = token
	}

	log.Info().
		Str("meeting_id", p.MeetingID.String()).
		Str("participant_id", p.ID.String()).
		Bool("is_host", p.IsHost).
		Msg("Participant admitted")
	return res, nil
}

// VerifyAdmission checks an admission token and confirms that its participant
// is still listed in the meeting the token names. A participant who left or
// whose meeting ended can no longer connect with an old token.
func (s *MeetingService) VerifyAdmission(ctx context.Context, token string) (port.Admission, error) {
	if s.admissions == nil {
		return port.Admission{}, fmt.Errorf("%w: admission tokens are disabled", domain.ErrInvalidToken)
	}
	a, err := s.admissions.Verify(token)
	if err != nil {
		return port.Admission{}, err
	}

	p, err := s.directory.GetParticipant(ctx, a.ParticipantID)
	if errors.Is(err, domain.ErrParticipantNotFound) {
		return port.Admission{}, fmt.Errorf("%w: participant no longer in meeting", domain.ErrInvalidToken)
	}
	if err != nil {
		return port.Admission{}, err
	}
	if p.MeetingID != a.MeetingID {
		return port.Admission{}, fmt.Errorf("%w: meeting mismatch", domain.ErrInvalidToken)
	}
	return a, nil
}

func (s *MeetingService) Participants(ctx context.Context, meetingID domain.MeetingID) ([]domain.Participant, error) {
	return s.directory.GetParticipants(ctx, meetingID)
}

func (s *MeetingService) LeaveMeeting(ctx context.Context, id domain.ParticipantID) error {
	return s.directory.RemoveParticipant(ctx, id)
}

// EndMeeting deactivates the meeting, removes its participants and evicts
// their live sessions. Only the host may end a meeting.
func (s *MeetingService) EndMeeting(ctx context.Context, meetingID domain.MeetingID, hostID domain.HostID) error {
	m, err := s.directory.GetMeeting(ctx, meetingID)
	if err != nil {
		return err
	}
	if m.HostID != hostID {
		return domain.ErrNotHost
	}

	if err := s.directory.DeactivateMeeting(ctx, meetingID); err != nil {
		return fmt.Errorf("deactivate meeting: %w", err)
	}
	if err := s.directory.RemoveParticipants(ctx, meetingID); err != nil {
		return fmt.Errorf("remove participants: %w", err)
	}
	if s.evictor != nil {
		s.evictor.EndMeeting(meetingID)
	}
	return nil
}
