package entity

import (
	"fmt"
	"strings"
)

// ComplianceRule decides whether a classification result is acceptable.
// The predicted label is matched case-insensitively against Keywords (any
// match counts), conjoined with an inclusive confidence threshold. With
// Inverted set, a confident keyword match means NON-compliance (the
// keyword names the thing that must not be present).
type ComplianceRule struct {
	Keywords  []string
	Threshold float64
	Inverted  bool
}

// Verdict is the binary outcome of applying a rule to a result.
type Verdict struct {
	Compliant bool
	Reason    string // set when non-compliant
}

// Matches reports whether any keyword occurs in the label text,
// case-insensitively. Matches are bounded by non-alphanumeric characters:
// "correto" matches "uniforme_correto" but not "uniforme_incorreto".
func (r ComplianceRule) Matches(label string) bool {
	lower := strings.ToLower(label)
	for _, kw := range r.Keywords {
		if containsWord(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func containsWord(s, w string) bool {
	if w == "" {
		return false
	}
	for start := 0; ; start++ {
		i := strings.Index(s[start:], w)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(w)
		if (i == 0 || !isWordByte(s[i-1])) && (end == len(s) || !isWordByte(s[end])) {
			return true
		}
		start = i
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// Evaluate applies the rule to a classification result. Pure function;
// confidence exactly equal to the threshold meets the threshold.
func (r ComplianceRule) Evaluate(res ClassificationResult) Verdict {
	hit := r.Matches(res.Label) && res.Confidence >= r.Threshold

	if r.Inverted {
		if hit {
			return Verdict{Compliant: false, Reason: fmt.Sprintf(
				"classe %s detectada com confianca %s", res.Label, res.ConfidencePercent())}
		}
		return Verdict{Compliant: true}
	}

	if hit {
		return Verdict{Compliant: true}
	}
	if !r.Matches(res.Label) {
		return Verdict{Compliant: false, Reason: fmt.Sprintf(
			"classe %s nao corresponde a %s", res.Label, strings.Join(r.Keywords, "/"))}
	}
	return Verdict{Compliant: false, Reason: fmt.Sprintf(
		"confianca %s abaixo do limiar de %.0f%%", res.ConfidencePercent(), r.Threshold*100)}
}
