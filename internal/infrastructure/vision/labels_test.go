package vision

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"guardian-epi/internal/domain/entity"
)

func TestLoadLabels_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("com_epi\n  sem_epi  \n"), 0o644))

	labels, err := LoadLabels(path, nil, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 2, labels.Len())
	require.Equal(t, "com_epi", labels.At(0))
	require.Equal(t, "sem_epi", labels.At(1))
}

func TestLoadLabels_BlankLineKeepsAlignment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\n\nc\n"), 0o644))

	labels, err := LoadLabels(path, nil, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 3, labels.Len())
	require.Equal(t, entity.LabelUnknown, labels.At(1))
	require.Equal(t, "c", labels.At(2))
}

func TestLoadLabels_MissingFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")

	labels, err := LoadLabels(path, []string{"produto_limpo", "objeto_estranho"}, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 2, labels.Len())
	require.Equal(t, "objeto_estranho", labels.At(1))
}

func TestLoadLabels_MissingFileWithoutDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")

	_, err := LoadLabels(path, nil, zerolog.Nop())
	var labelErr *entity.LabelLoadError
	require.ErrorAs(t, err, &labelErr)
	require.Equal(t, path, labelErr.Path)
}
