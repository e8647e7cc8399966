//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"guardian-epi/internal/domain/port"
)

// Webcam captures frames from a local camera device and hands them out
// JPEG-encoded.
type Webcam struct {
	cap   *gocv.VideoCapture
	frame gocv.Mat
}

// OpenWebcam opens the camera device. Close must be called on every exit
// path to release the handle.
func OpenWebcam(device int) (*Webcam, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("camera %d is not available", device)
	}
	return &Webcam{cap: vc, frame: gocv.NewMat()}, nil
}

// Next blocks on the next frame and returns it JPEG-encoded.
func (w *Webcam) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if ok := w.cap.Read(&w.frame); !ok {
		return nil, errors.New("camera read failed")
	}
	if w.frame.Empty() {
		return nil, errors.New("empty frame")
	}

	buf, err := gocv.IMEncode(".jpg", w.frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, nil
}

// Close releases the frame buffer and the camera handle.
func (w *Webcam) Close() error {
	w.frame.Close()
	return w.cap.Close()
}

var _ port.FrameSource = (*Webcam)(nil)
