//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"guardian-epi/internal/domain/port"
)

// Webcam stub for builds without the gocv tag.
type Webcam struct{}

// OpenWebcam fails when built without the gocv tag.
func OpenWebcam(device int) (*Webcam, error) {
	_ = device
	return nil, errors.New("gocv build tag is not enabled")
}

// Next fails when built without the gocv tag.
func (w *Webcam) Next(ctx context.Context) ([]byte, error) {
	_ = ctx
	return nil, errors.New("gocv build tag is not enabled")
}

// Close is a no-op.
func (w *Webcam) Close() error {
	return nil
}

var _ port.FrameSource = (*Webcam)(nil)
