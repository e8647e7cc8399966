//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"guardian-epi/internal/domain/entity"
	"guardian-epi/internal/domain/port"
)

// DNNClassifier stub for builds without the gocv tag. Manifest and label
// loading still run so that startup failures surface the same way.
type DNNClassifier struct {
	labels   entity.LabelSet
	manifest Manifest
	log      zerolog.Logger
}

// NewDNNClassifier validates the artifacts without loading the network.
func NewDNNClassifier(modelPath, labelsPath string, defaultLabels []string, log zerolog.Logger) (*DNNClassifier, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, &entity.ModelLoadError{Path: modelPath, Err: err}
	}

	manifest, err := LoadManifest(ManifestPath(modelPath), log)
	if err != nil {
		return nil, err
	}

	labels, err := LoadLabels(labelsPath, defaultLabels, log)
	if err != nil {
		return nil, err
	}

	return &DNNClassifier{labels: labels, manifest: manifest, log: log}, nil
}

// Classify returns an error when built without the gocv tag.
func (c *DNNClassifier) Classify(ctx context.Context, imageData []byte) (*entity.ClassificationResult, error) {
	_ = ctx
	_ = imageData
	return nil, &entity.InferenceError{Stage: "forward", Err: errors.New("gocv build tag is not enabled")}
}

// Labels returns the ordered label set.
func (c *DNNClassifier) Labels() entity.LabelSet {
	return c.labels
}

// Close is a no-op without a loaded network.
func (c *DNNClassifier) Close() error {
	return nil
}

var _ port.Classifier = (*DNNClassifier)(nil)
