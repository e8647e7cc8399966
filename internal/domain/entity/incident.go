package entity

import "time"

// IncidentRecord is the durable trace of one non-compliant verdict:
// an evidence image on disk plus one line in the occurrence log.
// Created once, never mutated.
type IncidentRecord struct {
	ID         string
	Timestamp  time.Time
	ImagePath  string
	Label      string
	Confidence float64
	Sequence   int // 1-based position among this run's incidents
	Reason     string
}

// RunCounters aggregates one pipeline instance's activity. Owned
// exclusively by the service that produced them; reset only by process
// restart.
type RunCounters struct {
	Detections int // inferences performed
	Violations int // non-compliant verdicts
	Stoppages  int // line stops triggered
	Skipped    int // images skipped after per-item failures
}

// ShiftReport is the periodic JSON summary written alongside the
// occurrence log. Field names follow the plant's reporting convention.
type ShiftReport struct {
	GeneratedAt string  `json:"data_hora"`
	Detections  int     `json:"total_deteccoes"`
	Violations  int     `json:"violacoes"`
	Stoppages   int     `json:"paradas_linha"`
	Skipped     int     `json:"itens_ignorados"`
	System      string  `json:"sistema"`
	Area        string  `json:"area"`
	Threshold   float64 `json:"threshold_confianca"`
	LineStatus  string  `json:"status_linha"`
}
