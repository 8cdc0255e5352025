package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxFrameBytes = 8 << 20

// processFrame takes a base64 image, either raw or as a JSON string, and
// answers with the processed image in base64 as text/plain.
func (h *Handler) processFrame(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxFrameBytes))
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	frame, err := decodeFrame(body)
	if err != nil {
		writeError(w, err)
		return
	}

	out := h.Frames.Process(r.Context(), frame)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, base64.StdEncoding.EncodeToString(out))
}

func (h *Handler) toggleFrameOverlay(w http.ResponseWriter, r *http.Request) {
	var enabled bool
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&enabled); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	h.Frames.SetEnabled(enabled)
	w.WriteHeader(http.StatusNoContent)
}

func decodeFrame(body []byte) ([]byte, error) {
	body = bytes.TrimSpace(body)
	encoded := string(body)
	if len(body) > 0 && body[0] == '"' {
		if err := json.Unmarshal(body, &encoded); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	if _, data, ok := strings.Cut(encoded, ";base64,"); ok {
		encoded = data
	}
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty frame", errBadRequest)
	}

	frame, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: frame is not base64: %v", errBadRequest, err)
	}
	return frame, nil
}
