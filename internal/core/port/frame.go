package port

import "context"

// FrameAnalyzer applies an overlay to one encoded image.
type FrameAnalyzer interface {
	Analyze(ctx context.Context, image []byte) ([]byte, error)
}
