package domain

import "errors"

var (
	ErrMalformedEnvelope = errors.New("malformed envelope")

	ErrMeetingNotFound     = errors.New("meeting not found")
	ErrMeetingExists       = errors.New("meeting already exists")
	ErrMeetingInactive     = errors.New("meeting is not active")
	ErrInvalidCredentials  = errors.New("invalid meeting id or password")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrNotHost             = errors.New("only the host can end the meeting")

	ErrConnectionClosed = errors.New("connection closed")
	ErrSendBufferFull   = errors.New("send buffer full")

	ErrInvalidToken     = errors.New("invalid admission token")
	ErrUnsupportedImage = errors.New("unsupported image format")
)
