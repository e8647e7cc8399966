package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"guardian-epi/internal/domain/entity"
	"guardian-epi/internal/domain/port"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
}

// ComplianceService runs the full pipeline for one inspection profile:
// classify, evaluate, record evidence, notify. Counters are owned by the
// service instance for its lifetime.
type ComplianceService struct {
	profile    entity.InspectionProfile
	classifier port.Classifier
	recorder   port.IncidentRecorder
	notifier   port.Notifier // optional
	counters   entity.RunCounters
	log        zerolog.Logger
}

// CheckOutput is the outcome of inspecting one image.
type CheckOutput struct {
	Result   *entity.ClassificationResult
	Verdict  entity.Verdict
	Incident *entity.IncidentRecord // nil when compliant
}

// BatchSummary describes a directory run.
type BatchSummary struct {
	Processed  int
	Violations int
	Skipped    int
}

// NewComplianceService wires the pipeline for a profile. The notifier may
// be nil when no alert channel is configured.
func NewComplianceService(profile entity.InspectionProfile, classifier port.Classifier, recorder port.IncidentRecorder, notifier port.Notifier, log zerolog.Logger) *ComplianceService {
	return &ComplianceService{
		profile:    profile,
		classifier: classifier,
		recorder:   recorder,
		notifier:   notifier,
		log:        log.With().Str("profile", profile.Name).Logger(),
	}
}

// Profile returns the profile this service inspects against.
func (s *ComplianceService) Profile() entity.InspectionProfile {
	return s.profile
}

// Counters returns a snapshot of this instance's counters.
func (s *ComplianceService) Counters() entity.RunCounters {
	return s.counters
}

// CheckImage classifies one image and, on a non-compliant verdict,
// records the incident. Evidence is persisted first; notification comes
// second and its failure is logged and swallowed.
func (s *ComplianceService) CheckImage(ctx context.Context, imageData []byte) (*CheckOutput, error) {
	res, err := s.classifier.Classify(ctx, imageData)
	if err != nil {
		return nil, err
	}
	s.counters.Detections++

	verdict := s.profile.Rule.Evaluate(*res)
	s.log.Info().
		Str("label", res.Label).
		Str("confidence", res.ConfidencePercent()).
		Bool("compliant", verdict.Compliant).
		Msg("imagem classificada")

	out := &CheckOutput{Result: res, Verdict: verdict}
	if verdict.Compliant {
		return out, nil
	}

	reason := s.profile.AlertReason
	if verdict.Reason != "" {
		reason = reason + ": " + verdict.Reason
	}

	// The violation only counts once its evidence is persisted, so the
	// counter never runs ahead of the recorded incidents.
	incident, err := s.recorder.RecordIncident(ctx, imageData, res, reason, s.counters.Violations+1)
	if err != nil {
		return nil, err
	}
	s.counters.Violations++
	out.Incident = incident

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, incident); err != nil {
			s.log.Warn().Err(err).Msg("falha na notificacao, evidencia ja registrada")
		}
	}

	return out, nil
}

// CheckFile reads one image file and inspects it.
func (s *ComplianceService) CheckFile(ctx context.Context, path string) (*CheckOutput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &entity.StorageError{Op: "read image", Path: path, Err: err}
	}
	return s.CheckImage(ctx, data)
}

// CheckDirectory inspects every image file in a directory. A failure on
// one image skips that image and continues with the rest.
func (s *ComplianceService) CheckDirectory(ctx context.Context, dir string) (*BatchSummary, error) {
	return s.checkDirectory(ctx, dir, s.CheckFile)
}

// checkDirectory walks dir with a per-file check. A nil output with a
// nil error means the check declined the file; it counts as neither
// processed nor skipped.
func (s *ComplianceService) checkDirectory(ctx context.Context, dir string, check func(ctx context.Context, path string) (*CheckOutput, error)) (*BatchSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &entity.StorageError{Op: "read directory", Path: dir, Err: err}
	}

	summary := &BatchSummary{}
	for _, e := range entries {
		if e.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		path := filepath.Join(dir, e.Name())
		out, err := check(ctx, path)
		if err != nil {
			s.counters.Skipped++
			summary.Skipped++
			s.log.Error().Err(err).Str("image", path).Msg("imagem ignorada")
			continue
		}
		if out == nil {
			continue
		}

		summary.Processed++
		if !out.Verdict.Compliant {
			summary.Violations++
		}
	}

	if summary.Processed == 0 && summary.Skipped == 0 {
		s.log.Warn().Str("dir", dir).Msg("nenhuma imagem encontrada")
	}
	return summary, nil
}

// Skip counts one image as skipped after a per-item failure outside this
// service, so that watch and camera drivers share the same counters.
func (s *ComplianceService) Skip() {
	s.counters.Skipped++
}

// RecordStoppage counts a line stoppage triggered by a verdict.
func (s *ComplianceService) RecordStoppage() {
	s.counters.Stoppages++
}

// Report writes a shift report from the current counters. Counters are
// not reset.
func (s *ComplianceService) Report(ctx context.Context, lineStatus entity.LineState) (string, error) {
	report := &entity.ShiftReport{
		GeneratedAt: time.Now().Format("2006-01-02_15-04"),
		Detections:  s.counters.Detections,
		Violations:  s.counters.Violations,
		Stoppages:   s.counters.Stoppages,
		Skipped:     s.counters.Skipped,
		System:      s.profile.System,
		Area:        s.profile.Area,
		Threshold:   s.profile.Rule.Threshold,
		LineStatus:  string(lineStatus),
	}
	return s.recorder.WriteReport(ctx, report)
}
