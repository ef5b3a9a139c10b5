package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/choretracker/choretracker/internal/utils"
	"github.com/choretracker/choretracker/pkg/child"
	"github.com/choretracker/choretracker/pkg/chore"
	"github.com/choretracker/choretracker/pkg/user"
	log "github.com/sirupsen/logrus"
)

// ChildReader resolves a child owned by the current user, or child.ErrChildNotFound.
type ChildReader interface {
	Get(ctx context.Context, id int) (child.Child, error)
}

// ChoreReader resolves a chore template owned by the current user, or chore.ErrChoreNotFound.
type ChoreReader interface {
	Get(ctx context.Context, id int) (chore.ChoreTemplate, error)
}

type Service interface {
	// Generate expands each chore into its frequency_per_week occurrences for the
	// given child and week and persists them as one batch. An unknown or unowned
	// child fails the whole call; an unknown or unowned chore id is skipped.
	// Repeated calls for the same week append a further full set of rows.
	Generate(ctx context.Context, childId int, choreIds []int, weekDate time.Time) ([]Assignment, error)
	GetForWeek(ctx context.Context, childId int, weekDate time.Time) ([]Assignment, error)
	Complete(ctx context.Context, assignmentId int) (Assignment, error)
	GetHistory(ctx context.Context, childId int, startDate *time.Time, endDate *time.Time) ([]Assignment, error)
	Delete(ctx context.Context, assignmentId int) error
}

type ServiceImpl struct {
	repo     Repository
	children ChildReader
	chores   ChoreReader
	clock    utils.Clock
}

func NewService(repo Repository, children ChildReader, chores ChoreReader, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		children: children,
		chores:   chores,
		clock:    clock,
	}
}

func (s *ServiceImpl) Generate(ctx context.Context, childId int, choreIds []int, weekDate time.Time) ([]Assignment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	if _, err := s.children.Get(ctx, childId); err != nil {
		if errors.Is(err, child.ErrChildNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to resolve child: %w", err)
	}

	weekStart := WeekStart(weekDate)

	var pending []Assignment
	for _, choreId := range choreIds {
		template, err := s.chores.Get(ctx, choreId)
		if err != nil {
			if errors.Is(err, chore.ErrChoreNotFound) {
				log.Debugf("skipping unknown chore %d while generating assignments for child %d", choreId, childId)
				continue
			}
			return nil, fmt.Errorf("failed to resolve chore: %w", err)
		}
		for occurrence := 1; occurrence <= template.FrequencyPerWeek; occurrence++ {
			pending = append(pending, Assignment{
				ChildId:          childId,
				ChoreId:          template.Id,
				ChoreName:        template.Name,
				WeekStartDate:    weekStart,
				OccurrenceNumber: occurrence,
			})
		}
	}

	if len(pending) == 0 {
		return []Assignment{}, nil
	}

	var created []Assignment
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		var txErr error
		created, txErr = repo.createAssignments(ctx, userId, pending)
		return txErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create assignments: %w", err)
	}

	// The insert does not join the chore table; carry the names over from the
	// emission order, which the batch insert preserves.
	for i := range created {
		created[i].ChoreName = pending[i].ChoreName
	}
	return created, nil
}

func (s *ServiceImpl) GetForWeek(ctx context.Context, childId int, weekDate time.Time) ([]Assignment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := s.children.Get(ctx, childId); err != nil {
		return nil, err
	}

	weekStart := WeekStart(weekDate)
	assignments, err := s.repo.GetForWeek(ctx, userId, childId, weekStart)
	if err != nil {
		log.Errorf("failed to get assignments for week %s: %v", weekStart.Format(time.DateOnly), err)
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	return assignments, nil
}

func (s *ServiceImpl) Complete(ctx context.Context, assignmentId int) (Assignment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Assignment{}, fmt.Errorf("failed to get current user: %w", err)
	}
	completionDate := DateOnly(s.clock.Now())
	return s.repo.SetCompleted(ctx, userId, assignmentId, completionDate)
}

func (s *ServiceImpl) GetHistory(ctx context.Context, childId int, startDate *time.Time, endDate *time.Time) ([]Assignment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := s.children.Get(ctx, childId); err != nil {
		return nil, err
	}
	return s.repo.GetHistory(ctx, userId, childId, startDate, endDate)
}

func (s *ServiceImpl) Delete(ctx context.Context, assignmentId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, assignmentId)
}
