package app

import (
	"context"

	"guardian-epi/internal/domain/entity"
	"guardian-epi/internal/domain/port"
)

// OperatorService manages which inspection profile each bot operator's
// photos are checked against.
type OperatorService struct {
	repo port.OperatorRepository
}

func NewOperatorService(repo port.OperatorRepository) *OperatorService {
	return &OperatorService{repo: repo}
}

func (s *OperatorService) Get(ctx context.Context, operatorID, chatID int64) (*entity.Operator, error) {
	return s.repo.Get(ctx, operatorID, chatID)
}

// SelectProfile switches the operator to another profile and persists it.
func (s *OperatorService) SelectProfile(ctx context.Context, operatorID, chatID int64, profile string) (*entity.Operator, error) {
	operator, err := s.repo.Get(ctx, operatorID, chatID)
	if err != nil {
		return nil, err
	}

	operator.SelectProfile(profile)
	if err := s.repo.Save(ctx, operator); err != nil {
		return nil, err
	}

	return operator, nil
}
