package entity

// InspectionProfile bundles a model with the compliance rule applied to
// its predictions. The three plant deployments (uniforme, esteira, epi)
// are the same pipeline under different profiles.
type InspectionProfile struct {
	Name           string
	System         string // report "sistema"
	Area           string // report "area"
	ModelPath      string
	LabelsPath     string
	DefaultLabels  []string // fallback when the labels file is absent
	Rule           ComplianceRule
	AlertReason    string // log line "motivo"
	EvidencePrefix string // evidence image filename prefix
	LogsDir        string
	LogFileName    string
	Conveyor       bool // line-stop semantics instead of entry gate
}
