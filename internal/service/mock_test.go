package service

import (
	"context"

	"construction-stage-api/internal/domain"
	"construction-stage-api/internal/repository"
)

// MockStageRepository is a mock implementation of StageRepository
type MockStageRepository struct {
	FindAllFunc          func(ctx context.Context) ([]*domain.Stage, error)
	FindByIDFunc         func(ctx context.Context, id uint) (*domain.Stage, error)
	CreateFunc           func(ctx context.Context, stage *domain.Stage) error
	UpdateFieldsFunc     func(ctx context.Context, id uint, fields map[string]interface{}) error
	CountByStatusNotFunc func(ctx context.Context, status domain.StageStatus) (int64, error)
	TransactionFunc      func(ctx context.Context, fn func(repo repository.StageRepository) error) error
}

func (m *MockStageRepository) FindAll(ctx context.Context) ([]*domain.Stage, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockStageRepository) FindByID(ctx context.Context, id uint) (*domain.Stage, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStageRepository) Create(ctx context.Context, stage *domain.Stage) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, stage)
	}
	return nil
}

func (m *MockStageRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockStageRepository) CountByStatusNot(ctx context.Context, status domain.StageStatus) (int64, error) {
	if m.CountByStatusNotFunc != nil {
		return m.CountByStatusNotFunc(ctx, status)
	}
	return 0, nil
}

// Transaction runs fn against the mock itself unless overridden; service
// logic under test sees the same repository inside and outside the
// transaction.
func (m *MockStageRepository) Transaction(ctx context.Context, fn func(repo repository.StageRepository) error) error {
	if m.TransactionFunc != nil {
		return m.TransactionFunc(ctx, fn)
	}
	return fn(m)
}
