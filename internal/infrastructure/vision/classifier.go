//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"image"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"guardian-epi/internal/domain/entity"
	"guardian-epi/internal/domain/port"
)

// DNNClassifier wraps a serialized classification network loaded through
// OpenCV's DNN module.
type DNNClassifier struct {
	mu       sync.Mutex // Net forward passes are not goroutine-safe
	net      gocv.Net
	labels   entity.LabelSet
	manifest Manifest
	log      zerolog.Logger
}

// NewDNNClassifier loads the model, its preprocessing manifest and the
// label list. Model failures are fatal; a missing label file falls back
// to defaultLabels.
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

	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, &entity.ModelLoadError{Path: modelPath, Err: errors.New("unreadable or unsupported model format")}
	}

	log.Info().Str("model", modelPath).Int("labels", labels.Len()).Msg("modelo carregado")

	return &DNNClassifier{
		net:      net,
		labels:   labels,
		manifest: manifest,
		log:      log,
	}, nil
}

// Classify decodes the image, builds a normalized 1xNxNx3 blob and runs
// one forward pass. The top class is the argmax of the output vector.
func (c *DNNClassifier) Classify(ctx context.Context, imageData []byte) (*entity.ClassificationResult, error) {
	_ = ctx

	img, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil {
		return nil, &entity.InferenceError{Stage: "decode", Err: err}
	}
	defer img.Close()

	if img.Empty() {
		return nil, &entity.InferenceError{Stage: "decode", Err: errors.New("empty image")}
	}

	size := c.manifest.InputSize
	mean := c.manifest.Mean
	blob := gocv.BlobFromImage(img, c.manifest.Scale, image.Pt(size, size),
		gocv.NewScalar(mean[0], mean[1], mean[2], 0), c.manifest.SwapRB, false)
	defer blob.Close()

	c.mu.Lock()
	c.net.SetInput(blob, "")
	prob := c.net.Forward("")
	c.mu.Unlock()
	defer prob.Close()

	if prob.Empty() {
		return nil, &entity.InferenceError{Stage: "forward", Err: errors.New("empty network output")}
	}

	_, maxVal, _, maxLoc := gocv.MinMaxLoc(prob)
	idx := maxLoc.X

	return &entity.ClassificationResult{
		Label:      c.labels.At(idx),
		Confidence: float64(maxVal),
		ClassIndex: idx,
	}, nil
}

// Labels returns the ordered label set.
func (c *DNNClassifier) Labels() entity.LabelSet {
	return c.labels
}

// Close releases the network.
func (c *DNNClassifier) Close() error {
	return c.net.Close()
}

var _ port.Classifier = (*DNNClassifier)(nil)
