package entity

import "strings"

// LabelUnknown is reported when the model's top class index has no entry
// in the label set.
const LabelUnknown = "unknown"

// LabelSet maps model output positions to class names. The line order of
// the labels file defines the mapping; loaded once at startup and
// immutable afterwards.
type LabelSet struct {
	names []string
}

// NewLabelSet builds a label set, trimming whitespace around each name.
func NewLabelSet(names []string) LabelSet {
	trimmed := make([]string, len(names))
	for i, n := range names {
		trimmed[i] = strings.TrimSpace(n)
	}
	return LabelSet{names: trimmed}
}

// Len returns the number of labels.
func (s LabelSet) Len() int {
	return len(s.names)
}

// At returns the label at the given model output position, or LabelUnknown
// when the position is out of range or the entry is empty.
func (s LabelSet) At(i int) string {
	if i < 0 || i >= len(s.names) || s.names[i] == "" {
		return LabelUnknown
	}
	return s.names[i]
}

// Names returns a copy of the ordered label list.
func (s LabelSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}
