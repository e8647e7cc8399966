package entity

// LineState is the conveyor's operational state.
type LineState string

const (
	LineRunning LineState = "EM OPERACAO"
	LineStopped LineState = "PARADA"
)

// ProductionLine is the two-state conveyor machine. The transition to
// STOPPED happens automatically on a non-compliant verdict; the way back
// to RUNNING is only an explicit operator restart.
type ProductionLine struct {
	state     LineState
	stoppages int
}

// NewProductionLine starts in the running state.
func NewProductionLine() *ProductionLine {
	return &ProductionLine{state: LineRunning}
}

// Running reports whether the line is operating.
func (l *ProductionLine) Running() bool {
	return l.state == LineRunning
}

// State returns the current operational state.
func (l *ProductionLine) State() LineState {
	return l.state
}

// Stoppages returns how many times the line has been stopped.
func (l *ProductionLine) Stoppages() int {
	return l.stoppages
}

// Stop halts the line and counts the stoppage. Returns false if the line
// was already stopped, in which case nothing changes.
func (l *ProductionLine) Stop() bool {
	if l.state == LineStopped {
		return false
	}
	l.state = LineStopped
	l.stoppages++
	return true
}

// Restart resumes a stopped line. Returns false if the line was already
// running.
func (l *ProductionLine) Restart() bool {
	if l.state == LineRunning {
		return false
	}
	l.state = LineRunning
	return true
}

// AccessDecision is the entry-gate outcome. The gate keeps no state
// between checks; each image is judged on its own.
type AccessDecision string

const (
	AccessGranted AccessDecision = "ACESSO LIBERADO"
	AccessDenied  AccessDecision = "ACESSO NEGADO"
)

// AccessFor maps a verdict to a gate decision.
func AccessFor(v Verdict) AccessDecision {
	if v.Compliant {
		return AccessGranted
	}
	return AccessDenied
}
