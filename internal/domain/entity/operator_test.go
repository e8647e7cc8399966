package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOperator_DefaultProfile(t *testing.T) {
	o := NewOperator(1, 10, "epi")
	require.Equal(t, int64(1), o.ID)
	require.Equal(t, int64(10), o.ChatID)
	require.Equal(t, "epi", o.Profile)
}

func TestOperator_SelectProfile(t *testing.T) {
	o := NewOperator(1, 10, "epi")
	o.SelectProfile("esteira")
	require.Equal(t, "esteira", o.Profile)
}
