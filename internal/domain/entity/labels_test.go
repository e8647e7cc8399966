package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabelSet_At(t *testing.T) {
	s := NewLabelSet([]string{" com_epi ", "sem_epi"})

	require.Equal(t, 2, s.Len())
	require.Equal(t, "com_epi", s.At(0))
	require.Equal(t, "sem_epi", s.At(1))
}

func TestLabelSet_OutOfRangeIsUnknown(t *testing.T) {
	s := NewLabelSet([]string{"com_epi", "sem_epi"})

	require.Equal(t, LabelUnknown, s.At(2))
	require.Equal(t, LabelUnknown, s.At(-1))
}

func TestLabelSet_EmptyEntryIsUnknown(t *testing.T) {
	// A blank line keeps its position so the classIndex alignment holds.
	s := NewLabelSet([]string{"com_epi", "", "sem_epi"})

	require.Equal(t, 3, s.Len())
	require.Equal(t, LabelUnknown, s.At(1))
	require.Equal(t, "sem_epi", s.At(2))
}

func TestLabelSet_NamesIsACopy(t *testing.T) {
	s := NewLabelSet([]string{"a", "b"})

	names := s.Names()
	names[0] = "mutated"
	require.Equal(t, "a", s.At(0))
}
