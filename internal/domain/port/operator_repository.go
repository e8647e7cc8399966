package port

import (
	"context"

	"guardian-epi/internal/domain/entity"
)

// OperatorRepository stores bot operators and their profile selection.
type OperatorRepository interface {
	// Get returns the operator by ID, creating one bound to the default
	// profile if not found.
	Get(ctx context.Context, operatorID, chatID int64) (*entity.Operator, error)

	// Save persists the operator.
	Save(ctx context.Context, operator *entity.Operator) error

	// UpdateProfile switches the operator's inspection profile.
	UpdateProfile(ctx context.Context, operatorID int64, profile string) error
}
