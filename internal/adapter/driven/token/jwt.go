package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/Wyydra/huddle/internal/core/domain"
	"github.com/Wyydra/huddle/internal/core/port"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "huddle"

// AdmissionClaims binds a participant to the meeting it was admitted to.
type AdmissionClaims struct {
	ParticipantID string `json:"participantId"`
	MeetingID     string `json:"meetingId"`
	jwt.RegisteredClaims
}

// JWTIssuer signs admission tokens with HS256.
type JWTIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("admission secret cannot be empty")
	}
	return &JWTIssuer{key: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *JWTIssuer) Issue(a port.Admission) (string, error) {
	now := i.now()
	claims := &AdmissionClaims{
		ParticipantID: a.ParticipantID.String(),
		MeetingID:     a.MeetingID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ParticipantID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign admission: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry and issuer. Every failure wraps
// domain.ErrInvalidToken.
func (i *JWTIssuer) Verify(tokenString string) (port.Admission, error) {
	claims := &AdmissionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return port.Admission{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if claims.ParticipantID == "" || claims.MeetingID == "" {
		return port.Admission{}, fmt.Errorf("%w: missing claims", domain.ErrInvalidToken)
	}
	return port.Admission{
		ParticipantID: domain.ParticipantID(claims.ParticipantID),
		MeetingID:     domain.MeetingID(claims.MeetingID),
	}, nil
}
