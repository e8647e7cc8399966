package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"guardian-epi/internal/domain/entity"
	"guardian-epi/internal/domain/port"
)

// LineService drives the conveyor: frames are sampled from a source,
// inspected, and a non-compliant verdict stops the line. Restart is only
// via an explicit operator signal.
type LineService struct {
	compliance *ComplianceService
	line       *entity.ProductionLine
	log        zerolog.Logger
}

// MonitorSummary describes one monitoring run.
type MonitorSummary struct {
	Elapsed    time.Duration
	Frames     int
	Sampled    int
	Violations int
	Stoppages  int
}

// NewLineService wraps a compliance pipeline with line-stop semantics.
func NewLineService(compliance *ComplianceService, log zerolog.Logger) *LineService {
	return &LineService{
		compliance: compliance,
		line:       entity.NewProductionLine(),
		log:        log.With().Str("profile", compliance.Profile().Name).Logger(),
	}
}

// Line exposes the state machine for status queries.
func (s *LineService) Line() *entity.ProductionLine {
	return s.line
}

// ProcessFrame inspects one frame. While the line is stopped frames are
// ignored. A non-compliant verdict stops the line.
func (s *LineService) ProcessFrame(ctx context.Context, frame []byte) (*CheckOutput, error) {
	if !s.line.Running() {
		return nil, nil
	}

	out, err := s.compliance.CheckImage(ctx, frame)
	if err != nil {
		return nil, err
	}

	s.Apply(out)
	return out, nil
}

// CheckFile inspects one image file and feeds the verdict into the
// state machine. While the line is stopped files are ignored and a nil
// output is returned.
func (s *LineService) CheckFile(ctx context.Context, path string) (*CheckOutput, error) {
	if !s.line.Running() {
		return nil, nil
	}

	out, err := s.compliance.CheckFile(ctx, path)
	if err != nil {
		return nil, err
	}

	s.Apply(out)
	return out, nil
}

// CheckDirectory inspects every image file in a directory through the
// line: a non-compliant verdict stops it, and the remaining files are
// ignored until a restart.
func (s *LineService) CheckDirectory(ctx context.Context, dir string) (*BatchSummary, error) {
	return s.compliance.checkDirectory(ctx, dir, s.CheckFile)
}

// Apply feeds a verdict into the state machine: a non-compliant verdict
// stops a running line.
func (s *LineService) Apply(out *CheckOutput) {
	if out == nil || out.Verdict.Compliant {
		return
	}
	if s.line.Stop() {
		s.compliance.RecordStoppage()
		s.log.Warn().
			Int("stoppages", s.line.Stoppages()).
			Str("label", out.Result.Label).
			Msg("linha de producao parada")
	}
}

// Restart resumes a stopped line. Returns false when the line was
// already running.
func (s *LineService) Restart() bool {
	if !s.line.Restart() {
		return false
	}
	s.log.Info().Msg("linha de producao reiniciada")
	return true
}

// Monitor samples frames from the source for the given duration,
// inspecting every sampleEvery-th frame. Per-frame inference failures
// skip the frame; a frame-source failure ends the run. The source is
// closed before returning, on every path.
func (s *LineService) Monitor(ctx context.Context, frames port.FrameSource, duration time.Duration, sampleEvery int) (*MonitorSummary, error) {
	defer frames.Close()

	if sampleEvery < 1 {
		sampleEvery = 1
	}

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	start := time.Now()
	summary := &MonitorSummary{}
	startStoppages := s.line.Stoppages()

	for {
		frame, err := frames.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break // duration elapsed or caller cancelled
			}
			summary.Elapsed = time.Since(start)
			return summary, err
		}

		summary.Frames++
		if summary.Frames%sampleEvery != 0 {
			continue
		}
		summary.Sampled++

		out, err := s.ProcessFrame(ctx, frame)
		if err != nil {
			s.compliance.Skip()
			s.log.Error().Err(err).Msg("frame ignorado")
			continue
		}
		if out != nil && !out.Verdict.Compliant {
			summary.Violations++
		}
	}

	summary.Elapsed = time.Since(start)
	summary.Stoppages = s.line.Stoppages() - startStoppages
	return summary, nil
}
