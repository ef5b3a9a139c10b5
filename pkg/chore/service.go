package chore

import (
	"context"
	"errors"
	"fmt"

	"github.com/choretracker/choretracker/pkg/user"
)

var ErrInvalidFrequency = errors.New("frequency_per_week must be at least 1")

type Service interface {
	Create(ctx context.Context, chore ChoreTemplate) (ChoreTemplate, error)
	GetAll(ctx context.Context) ([]ChoreTemplate, error)
	Get(ctx context.Context, id int) (ChoreTemplate, error)
	// Delete removes the template; assignments generated from it are removed with it.
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, chore ChoreTemplate) (ChoreTemplate, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return ChoreTemplate{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if chore.FrequencyPerWeek < 1 {
		return ChoreTemplate{}, ErrInvalidFrequency
	}
	return s.repo.Create(ctx, userId, chore)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]ChoreTemplate, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (ChoreTemplate, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return ChoreTemplate{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, id)
}
