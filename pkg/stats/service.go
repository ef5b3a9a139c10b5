package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/choretracker/choretracker/pkg/assignment"
	"github.com/choretracker/choretracker/pkg/child"
)

// AssignmentReader exposes the assignment queries the statistics are built from.
type AssignmentReader interface {
	GetForWeek(ctx context.Context, childId int, weekDate time.Time) ([]assignment.Assignment, error)
	GetHistory(ctx context.Context, childId int, startDate *time.Time, endDate *time.Time) ([]assignment.Assignment, error)
}

// ChildReader resolves a child owned by the current user, or child.ErrChildNotFound.
type ChildReader interface {
	Get(ctx context.Context, id int) (child.Child, error)
}

type Service interface {
	GetWeeklySummary(ctx context.Context, childId int, weekDate time.Time) (WeeklySummary, error)
	GetHistory(ctx context.Context, childId int, startDate *time.Time, endDate *time.Time) ([]assignment.Assignment, error)
}

type ServiceImpl struct {
	assignments AssignmentReader
	children    ChildReader
}

func NewService(assignments AssignmentReader, children ChildReader) *ServiceImpl {
	return &ServiceImpl{
		assignments: assignments,
		children:    children,
	}
}

func (s *ServiceImpl) GetWeeklySummary(ctx context.Context, childId int, weekDate time.Time) (WeeklySummary, error) {
	kid, err := s.children.Get(ctx, childId)
	if err != nil {
		return WeeklySummary{}, err
	}

	assignments, err := s.assignments.GetForWeek(ctx, childId, weekDate)
	if err != nil {
		return WeeklySummary{}, fmt.Errorf("failed to get assignments: %w", err)
	}

	summary := WeeklySummary{
		ChildId:          kid.Id,
		ChildName:        kid.Name,
		WeekStartDate:    assignment.WeekStart(weekDate),
		TotalAssignments: len(assignments),
		WeeklyAllowance:  kid.WeeklyAllowance,
	}
	for _, a := range assignments {
		if a.IsCompleted {
			summary.CompletedAssignments++
		}
	}
	if summary.TotalAssignments > 0 {
		share := float64(summary.CompletedAssignments) / float64(summary.TotalAssignments)
		summary.EarnedAllowance = math.Round(kid.WeeklyAllowance*share*100) / 100
	}
	return summary, nil
}

func (s *ServiceImpl) GetHistory(ctx context.Context, childId int, startDate *time.Time, endDate *time.Time) ([]assignment.Assignment, error) {
	return s.assignments.GetHistory(ctx, childId, startDate, endDate)
}
