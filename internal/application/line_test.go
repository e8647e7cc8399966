package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"guardian-epi/internal/domain/entity"
	"guardian-epi/internal/domain/port"
)

func conveyorProfile() entity.InspectionProfile {
	return entity.InspectionProfile{
		Name:        "esteira",
		System:      "Detector de Objetos Estranhos",
		Area:        "Esteira de Embalagem",
		Rule:        entity.ComplianceRule{Keywords: []string{"estranho", "foreign"}, Threshold: 0.80, Inverted: true},
		AlertReason: "Objeto estranho na esteira",
		Conveyor:    true,
	}
}

func newLineService(notifier *fakeNotifier) (*LineService, *fakeRecorder) {
	recorder := &fakeRecorder{}
	var n port.Notifier
	if notifier != nil {
		n = notifier
	}
	compliance := NewComplianceService(conveyorProfile(), &fakeClassifier{}, recorder, n, zerolog.Nop())
	return NewLineService(compliance, zerolog.Nop()), recorder
}

func TestProcessFrame_ForeignObjectStopsLine(t *testing.T) {
	svc, recorder := newLineService(&fakeNotifier{})

	// Confidence exactly at the threshold counts: line must stop.
	out, err := svc.ProcessFrame(context.Background(), []byte("objeto_estranho:0.80"))
	require.NoError(t, err)
	require.False(t, out.Verdict.Compliant)

	require.False(t, svc.Line().Running())
	require.Equal(t, 1, svc.Line().Stoppages())
	require.Len(t, recorder.incidents, 1)
}

func TestProcessFrame_CleanProductKeepsRunning(t *testing.T) {
	svc, recorder := newLineService(nil)

	out, err := svc.ProcessFrame(context.Background(), []byte("produto_limpo:0.98"))
	require.NoError(t, err)
	require.True(t, out.Verdict.Compliant)
	require.True(t, svc.Line().Running())
	require.Empty(t, recorder.incidents)
}

func TestProcessFrame_StoppedLineIgnoresFrames(t *testing.T) {
	svc, recorder := newLineService(nil)

	_, err := svc.ProcessFrame(context.Background(), []byte("objeto_estranho:0.95"))
	require.NoError(t, err)
	require.False(t, svc.Line().Running())

	out, err := svc.ProcessFrame(context.Background(), []byte("objeto_estranho:0.95"))
	require.NoError(t, err)
	require.Nil(t, out)
	require.Len(t, recorder.incidents, 1)
	require.Equal(t, 1, svc.Line().Stoppages())
}

func TestCheckFile_StoppedLineIgnoresFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	require.NoError(t, os.WriteFile(path, []byte("objeto_estranho:0.95"), 0o644))

	svc, recorder := newLineService(nil)

	out, err := svc.CheckFile(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.False(t, svc.Line().Running())

	// Stopped line: the file is not even classified.
	out, err = svc.CheckFile(context.Background(), path)
	require.NoError(t, err)
	require.Nil(t, out)
	require.Len(t, recorder.incidents, 1)
	require.Equal(t, 1, svc.compliance.Counters().Detections)
}

func TestCheckDirectory_ConveyorStopsLine(t *testing.T) {
	dir := t.TempDir()
	// Walked in name order: the violation in b.jpg stops the line and
	// c.jpg is ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("produto_limpo:0.98"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("objeto_estranho:0.95"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.jpg"), []byte("objeto_estranho:0.95"), 0o644))

	svc, recorder := newLineService(nil)

	summary, err := svc.CheckDirectory(context.Background(), dir)
	require.NoError(t, err)

	require.False(t, svc.Line().Running())
	require.Equal(t, 1, svc.Line().Stoppages())
	require.Equal(t, 1, svc.compliance.Counters().Stoppages)
	require.Equal(t, 2, summary.Processed)
	require.Equal(t, 1, summary.Violations)
	require.Equal(t, 0, summary.Skipped)
	require.Len(t, recorder.incidents, 1)
}

func TestRestart_OnlyFromStopped(t *testing.T) {
	svc, _ := newLineService(nil)

	require.False(t, svc.Restart())

	_, err := svc.ProcessFrame(context.Background(), []byte("objeto_estranho:0.95"))
	require.NoError(t, err)
	require.True(t, svc.Restart())
	require.True(t, svc.Line().Running())
}

// fakeFrameSource serves queued frames and cancels the run when drained,
// the way an elapsed monitoring window would.
type fakeFrameSource struct {
	frames [][]byte
	cancel context.CancelFunc
	closed bool
}

func (f *fakeFrameSource) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(f.frames) == 0 {
		f.cancel()
		return nil, context.Canceled
	}
	frame := f.frames[0]
	f.frames = f.frames[1:]
	return frame, nil
}

func (f *fakeFrameSource) Close() error {
	f.closed = true
	return nil
}

func TestMonitor_SamplesAndStops(t *testing.T) {
	svc, recorder := newLineService(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &fakeFrameSource{
		cancel: cancel,
		frames: [][]byte{
			[]byte("produto_limpo:0.98"),
			[]byte("objeto_estranho:0.95"), // sampled
			[]byte("produto_limpo:0.98"),
			[]byte("produto_limpo:0.98"), // sampled, but line is stopped
		},
	}

	summary, err := svc.Monitor(ctx, source, time.Minute, 2)
	require.NoError(t, err)

	require.Equal(t, 4, summary.Frames)
	require.Equal(t, 2, summary.Sampled)
	require.Equal(t, 1, summary.Violations)
	require.Equal(t, 1, summary.Stoppages)
	require.True(t, source.closed)
	require.Len(t, recorder.incidents, 1)
	require.False(t, svc.Line().Running())
}

func TestMonitor_SkipsFailedFrames(t *testing.T) {
	svc, _ := newLineService(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &fakeFrameSource{
		cancel: cancel,
		frames: [][]byte{
			[]byte("fail"),
			[]byte("produto_limpo:0.98"),
		},
	}

	summary, err := svc.Monitor(ctx, source, time.Minute, 1)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Sampled)
	require.Equal(t, 0, summary.Violations)
	require.Equal(t, 1, svc.compliance.Counters().Skipped)
	require.True(t, source.closed)
}
