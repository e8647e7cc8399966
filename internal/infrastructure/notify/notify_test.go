package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"guardian-epi/internal/domain/entity"
)

// flakyNotifier fails a fixed number of times before succeeding.
type flakyNotifier struct {
	failures int
	calls    int
}

func (f *flakyNotifier) Notify(ctx context.Context, incident *entity.IncidentRecord) error {
	f.calls++
	if f.calls <= f.failures {
		return &entity.NotificationError{Channel: "email", Err: errors.New("transient")}
	}
	return nil
}

func TestWithRetry_RecoversFromTransientFailures(t *testing.T) {
	inner := &flakyNotifier{failures: 2}
	n := WithRetry(inner, 3)

	err := n.Notify(context.Background(), &entity.IncidentRecord{ID: "i1"})
	require.NoError(t, err)
	require.Equal(t, 3, inner.calls)
}

func TestWithRetry_GivesUpAfterAttempts(t *testing.T) {
	inner := &flakyNotifier{failures: 10}
	n := WithRetry(inner, 2)

	err := n.Notify(context.Background(), &entity.IncidentRecord{ID: "i1"})
	var notifErr *entity.NotificationError
	require.ErrorAs(t, err, &notifErr)
	require.Equal(t, 2, inner.calls)
}

func TestMulti_OneFailureDoesNotStopOthers(t *testing.T) {
	failing := &flakyNotifier{failures: 10}
	ok := &flakyNotifier{}

	err := Multi{failing, ok}.Notify(context.Background(), &entity.IncidentRecord{ID: "i1"})
	require.Error(t, err)
	require.Equal(t, 1, ok.calls)
}

func TestMulti_AllSucceed(t *testing.T) {
	a, b := &flakyNotifier{}, &flakyNotifier{}

	require.NoError(t, Multi{a, b}.Notify(context.Background(), &entity.IncidentRecord{ID: "i1"}))
	require.Equal(t, 1, a.calls)
	require.Equal(t, 1, b.calls)
}
