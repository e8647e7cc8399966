package port

import (
	"context"

	"guardian-epi/internal/domain/entity"
)

// Classifier runs a trained image classification model.
type Classifier interface {
	// Classify preprocesses the image, runs one forward pass and returns
	// the top-scoring class. Deterministic for identical input and
	// weights; no side effects beyond the initial model load.
	Classify(ctx context.Context, imageData []byte) (*entity.ClassificationResult, error)

	// Labels returns the ordered label set the model was loaded with.
	Labels() entity.LabelSet

	// Close releases the loaded model.
	Close() error
}
