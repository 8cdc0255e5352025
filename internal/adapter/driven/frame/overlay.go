package frame

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"

	"github.com/Wyydra/huddle/internal/core/domain"
	"github.com/gabriel-vasile/mimetype"
)

const (
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"

	jpegQuality = 85
	strokeWidth = 2
)

var markerColor = color.RGBA{R: 0x00, G: 0xe0, B: 0x70, A: 0xff}

// Detector finds eye regions in a decoded frame.
type Detector interface {
	Detect(img image.Image) []image.Rectangle
}

// NopDetector never finds anything. Face detection runs outside this process.
type NopDetector struct{}

func (NopDetector) Detect(image.Image) []image.Rectangle { return nil }

// OverlayAnalyzer outlines detected eye regions on JPEG and PNG frames and
// re-encodes them in their source format.
type OverlayAnalyzer struct {
	detector Detector
}

func NewOverlayAnalyzer(detector Detector) *OverlayAnalyzer {
	if detector == nil {
		detector = NopDetector{}
	}
	return &OverlayAnalyzer{detector: detector}
}

func (a *OverlayAnalyzer) Analyze(ctx context.Context, data []byte) ([]byte, error) {
	mt := mimetype.Detect(data)
	if !mt.Is(mimeJPEG) && !mt.Is(mimePNG) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedImage, mt.String())
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	regions := a.detector.Detect(src)
	if len(regions) == 0 {
		return data, nil
	}

	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	for _, r := range regions {
		outline(dst, r.Intersect(dst.Bounds()))
	}

	var buf bytes.Buffer
	if mt.Is(mimePNG) {
		err = png.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

func outline(dst draw.Image, r image.Rectangle) {
	if r.Empty() {
		return
	}
	fill := image.NewUniform(markerColor)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+strokeWidth),
		image.Rect(r.Min.X, r.Max.Y-strokeWidth, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+strokeWidth, r.Max.Y),
		image.Rect(r.Max.X-strokeWidth, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(r), fill, image.Point{}, draw.Over)
	}
}
