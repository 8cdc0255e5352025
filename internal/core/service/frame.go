package service

import (
	"context"
	"sync/atomic"

	"github.com/Wyydra/huddle/internal/core/port"
	"github.com/rs/zerolog/log"
)

// FrameService runs the optional eye-region overlay on video frames.
type FrameService struct {
	analyzer port.FrameAnalyzer
	enabled  atomic.Bool
}

func NewFrameService(analyzer port.FrameAnalyzer, enabled bool) *FrameService {
	s := &FrameService{analyzer: analyzer}
	s.enabled.Store(enabled)
	return s
}

func (s *FrameService) SetEnabled(enabled bool) {
	s.enabled.Store(enabled)
	log.Info().Bool("enabled", enabled).Msg("Frame overlay toggled")
}

func (s *FrameService) Enabled() bool {
	return s.enabled.Load()
}

// Process returns the frame with the overlay applied, or the original frame
// when the overlay is disabled or analysis fails.
func (s *FrameService) Process(ctx context.Context, frame []byte) []byte {
	if !s.Enabled() {
		return frame
	}
	out, err := s.analyzer.Analyze(ctx, frame)
	if err != nil {
		log.Debug().Err(err).Int("bytes", len(frame)).Msg("Frame analysis failed, returning original")
		return frame
	}
	return out
}
