package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"guardian-epi/internal/domain/entity"
)

func newTestRecorder(t *testing.T) (*FileRecorder, string) {
	t.Helper()
	dir := t.TempDir()
	r, err := NewFileRecorder(dir, "ocorrencias_epi.log", "imagem_ocorrencia", false, zerolog.Nop())
	require.NoError(t, err)
	return r, dir
}

func TestRecordIncident_WritesEvidenceAndLogLine(t *testing.T) {
	r, dir := newTestRecorder(t)
	r.now = func() time.Time {
		return time.Date(2026, 8, 26, 14, 30, 5, 0, time.UTC)
	}

	res := &entity.ClassificationResult{Label: "sem_epi", Confidence: 0.90, ClassIndex: 1}
	rec, err := r.RecordIncident(context.Background(), []byte("jpeg-bytes"), res, "Funcionario sem EPI detectado", 1)
	require.NoError(t, err)

	wantImage := filepath.Join(dir, "imagem_ocorrencia_2026-08-26_14-30-05.jpg")
	require.Equal(t, wantImage, rec.ImagePath)
	require.NotEmpty(t, rec.ID)
	require.Equal(t, 1, rec.Sequence)

	data, err := os.ReadFile(wantImage)
	require.NoError(t, err)
	require.Equal(t, "jpeg-bytes", string(data))

	logData, err := os.ReadFile(filepath.Join(dir, "ocorrencias_epi.log"))
	require.NoError(t, err)
	require.Equal(t,
		"[2026-08-26_14-30-05] - ALERTA: Funcionario sem EPI detectado. "+
			"Classe: sem_epi, Confianca: 90.0%, Imagem: "+wantImage+"\n",
		string(logData))
}

func TestRecordIncident_ConveyorLogCarriesStoppageNumber(t *testing.T) {
	dir := t.TempDir()
	r, err := NewFileRecorder(dir, "deteccoes_objetos.log", "objeto_estranho", true, zerolog.Nop())
	require.NoError(t, err)
	r.now = func() time.Time {
		return time.Date(2026, 8, 26, 14, 30, 5, 0, time.UTC)
	}

	res := &entity.ClassificationResult{Label: "objeto_estranho", Confidence: 0.95}
	_, err = r.RecordIncident(context.Background(), []byte("img"), res, "Objeto estranho na esteira", 2)
	require.NoError(t, err)

	logData, err := os.ReadFile(filepath.Join(dir, "deteccoes_objetos.log"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(logData), ", Parada #2\n"))
}

func TestRecordIncident_AppendsNotOverwrites(t *testing.T) {
	r, dir := newTestRecorder(t)

	base := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	res := &entity.ClassificationResult{Label: "sem_epi", Confidence: 0.80}

	for i := 0; i < 3; i++ {
		ts := base.Add(time.Duration(i) * time.Second)
		r.now = func() time.Time { return ts }
		_, err := r.RecordIncident(context.Background(), []byte("img"), res, "alerta", i+1)
		require.NoError(t, err)
	}

	logData, err := os.ReadFile(filepath.Join(dir, "ocorrencias_epi.log"))
	require.NoError(t, err)
	require.Equal(t, 3, strings.Count(string(logData), "\n"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var images int
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".jpg") {
			images++
		}
	}
	require.Equal(t, 3, images)
}

func TestWriteReport(t *testing.T) {
	r, dir := newTestRecorder(t)
	r.now = func() time.Time {
		return time.Date(2026, 8, 26, 14, 30, 5, 0, time.UTC)
	}

	report := &entity.ShiftReport{
		GeneratedAt: "2026-08-26_14-30",
		Detections:  12,
		Violations:  3,
		Stoppages:   1,
		System:      "Detector de Objetos Estranhos",
		Area:        "Esteira de Embalagem",
		Threshold:   0.80,
		LineStatus:  string(entity.LineStopped),
	}

	path, err := r.WriteReport(context.Background(), report)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "relatorio_2026-08-26_14-30.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, float64(12), decoded["total_deteccoes"])
	require.Equal(t, float64(1), decoded["paradas_linha"])
	require.Equal(t, "Esteira de Embalagem", decoded["area"])
	require.Equal(t, "PARADA", decoded["status_linha"])
	require.Equal(t, 0.80, decoded["threshold_confianca"])
}

func TestWriteReport_SameMinuteOverwrites(t *testing.T) {
	r, _ := newTestRecorder(t)
	r.now = func() time.Time {
		return time.Date(2026, 8, 26, 14, 30, 5, 0, time.UTC)
	}

	first, err := r.WriteReport(context.Background(), &entity.ShiftReport{Detections: 1})
	require.NoError(t, err)
	second, err := r.WriteReport(context.Background(), &entity.ShiftReport{Detections: 2})
	require.NoError(t, err)
	require.Equal(t, first, second)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, float64(2), decoded["total_deteccoes"])
}
