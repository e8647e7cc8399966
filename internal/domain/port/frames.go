package port

import "context"

// FrameSource yields encoded frames from a camera or video feed.
type FrameSource interface {
	// Next blocks until the next frame is available and returns it
	// JPEG-encoded.
	Next(ctx context.Context) ([]byte, error)

	// Close releases the capture device. Safe to call on every exit path.
	Close() error
}
