package entity

import "fmt"

// ClassificationResult is the model's top prediction for one image.
type ClassificationResult struct {
	Label      string  // class name, or LabelUnknown
	Confidence float64 // score of the top class, in [0,1]
	ClassIndex int     // position of the top class in the output vector
}

// ConfidencePercent formats the confidence as a percentage with one
// decimal place, the form used in occurrence logs and alerts.
func (r ClassificationResult) ConfidencePercent() string {
	return fmt.Sprintf("%.1f%%", r.Confidence*100)
}
