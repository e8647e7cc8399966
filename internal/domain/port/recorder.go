package port

import (
	"context"

	"guardian-epi/internal/domain/entity"
)

// IncidentRecorder persists the evidence trail for non-compliant
// verdicts. Appends only; a production setup sharing one recorder across
// goroutines must serialize log appends.
type IncidentRecorder interface {
	// RecordIncident writes the evidence image and appends one line to
	// the occurrence log. Called exactly once per non-compliant verdict.
	RecordIncident(ctx context.Context, imageData []byte, res *entity.ClassificationResult, reason string, sequence int) (*entity.IncidentRecord, error)

	// WriteReport serializes a counters snapshot to a timestamp-named
	// file and returns its path. Counters are not reset.
	WriteReport(ctx context.Context, report *entity.ShiftReport) (string, error)
}
