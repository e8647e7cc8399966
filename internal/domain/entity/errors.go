package entity

import "fmt"

// ModelLoadError means the model artifact is missing, corrupt or
// incompatible. Fatal at startup.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("load model %s: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// LabelLoadError means the label file could not be read. Recoverable:
// callers may fall back to a default label set.
type LabelLoadError struct {
	Path string
	Err  error
}

func (e *LabelLoadError) Error() string {
	return fmt.Sprintf("load labels %s: %v", e.Path, e.Err)
}

func (e *LabelLoadError) Unwrap() error { return e.Err }

// InferenceError means preprocessing or the forward pass failed for one
// image. It aborts only that item, never a whole batch or stream.
type InferenceError struct {
	Stage string // "decode", "preprocess" or "forward"
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference %s: %v", e.Stage, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// StorageError means an evidence, log or report write failed. Surfaced to
// the caller; previously written data is never touched.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NotificationError means the alert side channel failed. Always logged
// and swallowed by callers, never propagated past the recording call.
type NotificationError struct {
	Channel string
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notify via %s: %v", e.Channel, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }
