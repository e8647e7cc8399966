package vision

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"guardian-epi/internal/domain/entity"
)

// LoadLabels reads a label file: one label per line, line order defines
// the classIndex mapping, whitespace trimmed per line. A missing file
// falls back to the default set so that demonstration flows keep working;
// a present but unreadable file is still a LabelLoadError.
func LoadLabels(path string, defaults []string, log zerolog.Logger) (entity.LabelSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && len(defaults) > 0 {
			log.Warn().Str("path", path).Strs("defaults", defaults).
				Msg("arquivo de rotulos ausente, usando rotulos padrao")
			return entity.NewLabelSet(defaults), nil
		}
		return entity.LabelSet{}, &entity.LabelLoadError{Path: path, Err: err}
	}

	// Keep blank lines as entries: dropping them would shift the
	// classIndex alignment with the model output.
	lines := strings.Split(strings.TrimRight(string(data), "\r\n"), "\n")
	return entity.NewLabelSet(lines), nil
}
