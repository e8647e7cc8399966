package port

import (
	"context"

	"guardian-epi/internal/domain/entity"
)

// Notifier delivers an out-of-band alert for a recorded incident.
// Best effort: evidence is persisted before notification, and a notifier
// failure never rolls back or propagates past the recording call.
type Notifier interface {
	Notify(ctx context.Context, incident *entity.IncidentRecord) error
}
