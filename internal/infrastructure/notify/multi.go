package notify

import (
	"context"
	"errors"

	"guardian-epi/internal/domain/entity"
	"guardian-epi/internal/domain/port"
)

// Multi fans an alert out to every configured channel. One channel
// failing does not stop the others.
type Multi []port.Notifier

func (m Multi) Notify(ctx context.Context, incident *entity.IncidentRecord) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, incident); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ port.Notifier = (Multi)(nil)
