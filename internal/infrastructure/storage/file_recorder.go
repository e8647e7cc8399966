package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"guardian-epi/internal/domain/entity"
	"guardian-epi/internal/domain/port"
)

// FileRecorder keeps the evidence trail on the local filesystem: JPEG
// evidence images, an append-only occurrence log and JSON shift reports,
// all under one logs directory.
type FileRecorder struct {
	dir         string
	logPath     string
	prefix      string
	logSequence bool // conveyor logs carry the stoppage number
	log         zerolog.Logger

	now func() time.Time // test seam
}

// NewFileRecorder creates the logs directory if needed. With logSequence
// set, each log line carries the incident's sequence number, the
// convention of the conveyor deployment.
func NewFileRecorder(dir, logFileName, evidencePrefix string, logSequence bool, log zerolog.Logger) (*FileRecorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &entity.StorageError{Op: "create logs dir", Path: dir, Err: err}
	}
	return &FileRecorder{
		dir:         dir,
		logPath:     filepath.Join(dir, logFileName),
		prefix:      evidencePrefix,
		logSequence: logSequence,
		log:         log,
		now:         time.Now,
	}, nil
}

// RecordIncident writes the evidence image under a second-resolution
// timestamped name, then appends one line to the occurrence log. The log
// is opened in append mode so repeated calls only ever grow it.
func (r *FileRecorder) RecordIncident(ctx context.Context, imageData []byte, res *entity.ClassificationResult, reason string, sequence int) (*entity.IncidentRecord, error) {
	_ = ctx

	ts := r.now()
	stamp := ts.Format("2006-01-02_15-04-05")

	imagePath := filepath.Join(r.dir, fmt.Sprintf("%s_%s.jpg", r.prefix, stamp))
	if err := os.WriteFile(imagePath, imageData, 0o644); err != nil {
		return nil, &entity.StorageError{Op: "write evidence image", Path: imagePath, Err: err}
	}

	line := fmt.Sprintf("[%s] - ALERTA: %s. Classe: %s, Confianca: %s, Imagem: %s",
		stamp, reason, res.Label, res.ConfidencePercent(), imagePath)
	if r.logSequence {
		line += fmt.Sprintf(", Parada #%d", sequence)
	}
	if err := r.appendLog(line + "\n"); err != nil {
		return nil, err
	}

	r.log.Warn().Str("image", imagePath).Str("label", res.Label).
		Str("confidence", res.ConfidencePercent()).Msg("ocorrencia registrada")

	return &entity.IncidentRecord{
		ID:         uuid.NewString(),
		Timestamp:  ts,
		ImagePath:  imagePath,
		Label:      res.Label,
		Confidence: res.Confidence,
		Sequence:   sequence,
		Reason:     reason,
	}, nil
}

func (r *FileRecorder) appendLog(line string) error {
	f, err := os.OpenFile(r.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &entity.StorageError{Op: "open occurrence log", Path: r.logPath, Err: err}
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return &entity.StorageError{Op: "append occurrence log", Path: r.logPath, Err: err}
	}
	return nil
}

// WriteReport serializes the report to relatorio_<timestamp>.json with
// minute resolution. Two reports within the same minute overwrite.
func (r *FileRecorder) WriteReport(ctx context.Context, report *entity.ShiftReport) (string, error) {
	_ = ctx

	path := filepath.Join(r.dir, fmt.Sprintf("relatorio_%s.json", r.now().Format("2006-01-02_15-04")))

	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return "", &entity.StorageError{Op: "encode report", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &entity.StorageError{Op: "write report", Path: path, Err: err}
	}

	r.log.Info().Str("report", path).Msg("relatorio gerado")
	return path, nil
}

var _ port.IncidentRecorder = (*FileRecorder)(nil)
