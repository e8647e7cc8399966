package notify

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"

	"guardian-epi/internal/domain/entity"
	"guardian-epi/internal/domain/port"
)

// retryNotifier gives the side channel a few chances before the caller
// gives up on it.
type retryNotifier struct {
	inner    port.Notifier
	attempts uint
}

// WithRetry wraps a notifier with bounded retries. The final failure is
// still a NotificationError for the caller to swallow.
func WithRetry(inner port.Notifier, attempts uint) port.Notifier {
	if attempts < 1 {
		attempts = 1
	}
	return &retryNotifier{inner: inner, attempts: attempts}
}

func (r *retryNotifier) Notify(ctx context.Context, incident *entity.IncidentRecord) error {
	return retry.Do(
		func() error {
			return r.inner.Notify(ctx, incident)
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}
