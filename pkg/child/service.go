package child

import (
	"context"
	"fmt"

	"github.com/choretracker/choretracker/pkg/user"
)

type Service interface {
	Create(ctx context.Context, child Child) (Child, error)
	GetAll(ctx context.Context) ([]Child, error)
	Get(ctx context.Context, id int) (Child, error)
	// Delete removes the child; its assignments are removed with it.
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, child Child) (Child, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Child{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Create(ctx, userId, child)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Child, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Child, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Child{}, fmt.Errorf("failed to get current user: %w", err)
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
