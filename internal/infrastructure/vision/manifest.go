package vision

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"guardian-epi/internal/domain/entity"
)

// Manifest describes the preprocessing contract of a model artifact: a
// JSON sidecar next to the model file. Models exported by different tool
// versions carry extra keys; decoding is tolerant and ignores keys
// outside the allow-list instead of rejecting the model.
type Manifest struct {
	InputSize int        `json:"input_size"`
	Scale     float64    `json:"scale"`
	SwapRB    bool       `json:"swap_rb"`
	Mean      [3]float64 `json:"mean"`
}

// manifestKeys is the allow-list of recognized manifest keys.
var manifestKeys = map[string]bool{
	"input_size": true,
	"scale":      true,
	"swap_rb":    true,
	"mean":       true,
}

// DefaultManifest matches the exported classification models: 224x224
// RGB input, intensities scaled to [0,1].
func DefaultManifest() Manifest {
	return Manifest{
		InputSize: 224,
		Scale:     1.0 / 255.0,
		SwapRB:    true,
	}
}

// LoadManifest reads the sidecar at path. A missing sidecar yields the
// default manifest; corrupt JSON is a ModelLoadError. Unrecognized keys
// are logged and dropped before decoding.
func LoadManifest(path string, log zerolog.Logger) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultManifest(), nil
		}
		return Manifest{}, &entity.ModelLoadError{Path: path, Err: err}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Manifest{}, &entity.ModelLoadError{Path: path, Err: err}
	}

	var unknown []string
	for key := range raw {
		if !manifestKeys[key] {
			unknown = append(unknown, key)
			delete(raw, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		log.Warn().Str("path", path).Strs("keys", unknown).
			Msg("ignorando chaves desconhecidas no manifesto do modelo")
	}

	m := DefaultManifest()
	filtered, err := json.Marshal(raw)
	if err != nil {
		return Manifest{}, &entity.ModelLoadError{Path: path, Err: err}
	}
	if err := json.Unmarshal(filtered, &m); err != nil {
		return Manifest{}, &entity.ModelLoadError{Path: path, Err: err}
	}
	return m, nil
}

// ManifestPath returns the sidecar path for a model file.
func ManifestPath(modelPath string) string {
	return modelPath + ".json"
}
