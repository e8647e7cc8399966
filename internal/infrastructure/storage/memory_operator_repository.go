package storage

import (
	"context"
	"sync"

	"guardian-epi/internal/domain/entity"
	"guardian-epi/internal/domain/port"
)

// MemoryOperatorRepository is an in-memory operator store for the bot
// surface. Profile selections live only for the process lifetime.
type MemoryOperatorRepository struct {
	mu             sync.RWMutex
	operators      map[int64]*entity.Operator
	defaultProfile string
}

// NewMemoryOperatorRepository creates the store; unknown operators start
// on defaultProfile.
func NewMemoryOperatorRepository(defaultProfile string) *MemoryOperatorRepository {
	return &MemoryOperatorRepository{
		operators:      make(map[int64]*entity.Operator),
		defaultProfile: defaultProfile,
	}
}

// Get returns the operator by ID, creating one if not found.
func (r *MemoryOperatorRepository) Get(ctx context.Context, operatorID, chatID int64) (*entity.Operator, error) {
	r.mu.RLock()
	operator, exists := r.operators[operatorID]
	r.mu.RUnlock()

	if exists {
		return operator, nil
	}

	newOperator := entity.NewOperator(operatorID, chatID, r.defaultProfile)

	r.mu.Lock()
	r.operators[operatorID] = newOperator
	r.mu.Unlock()

	return newOperator, nil
}

// Save persists the operator.
func (r *MemoryOperatorRepository) Save(ctx context.Context, operator *entity.Operator) error {
	r.mu.Lock()
	r.operators[operator.ID] = operator
	r.mu.Unlock()

	return nil
}

// UpdateProfile switches the operator's inspection profile.
func (r *MemoryOperatorRepository) UpdateProfile(ctx context.Context, operatorID int64, profile string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if operator, exists := r.operators[operatorID]; exists {
		operator.SelectProfile(profile)
	}

	return nil
}

var _ port.OperatorRepository = (*MemoryOperatorRepository)(nil)
