package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Wyydra/huddle/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// writeError maps domain errors to status codes. The body is {"error": msg}.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := http.StatusText(status)

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs), errors.Is(err, errBadRequest):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		// Original wording, clients match on it.
		status, msg = http.StatusForbidden, "Invalid meeting ID or password"
	case errors.Is(err, domain.ErrNotHost), errors.Is(err, domain.ErrMeetingInactive), errors.Is(err, domain.ErrInvalidToken):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrMeetingNotFound), errors.Is(err, domain.ErrParticipantNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrMeetingExists):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrUnsupportedImage):
		status, msg = http.StatusUnsupportedMediaType, err.Error()
	default:
		log.Error().Err(err).Msg("Request failed")
	}

	writeJSON(w, status, map[string]string{"error": msg})
}

// decode reads a JSON body into v and validates it.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return validate.Struct(v)
}
