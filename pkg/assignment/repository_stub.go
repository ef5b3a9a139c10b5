package assignment

import (
	"context"
	"sort"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu          sync.RWMutex
	assignments map[int]Assignment
	userIds     map[int]int // assignment id -> owning user id
	nextId      int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		assignments: make(map[int]Assignment),
		userIds:     make(map[int]int),
		nextId:      1,
	}
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments = make(map[int]Assignment)
	r.userIds = make(map[int]int)
	r.nextId = 1
}

// Count reports the total number of stored assignments across all users.
func (r *RepositoryStub) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.assignments)
}

func (r *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	r.mu.Lock()
	originalAssignments := make(map[int]Assignment, len(r.assignments))
	for k, v := range r.assignments {
		originalAssignments[k] = v
	}
	originalUserIds := make(map[int]int, len(r.userIds))
	for k, v := range r.userIds {
		originalUserIds[k] = v
	}
	originalNextId := r.nextId
	r.mu.Unlock()

	if err := fn(r); err != nil {
		// Rollback on error
		r.mu.Lock()
		r.assignments = originalAssignments
		r.userIds = originalUserIds
		r.nextId = originalNextId
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *RepositoryStub) createAssignments(ctx context.Context, userId int, assignments []Assignment) ([]Assignment, error) {
	if len(assignments) == 0 {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	created := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		a.Id = r.nextId
		a.IsCompleted = false
		a.CompletionDate = nil
		r.assignments[a.Id] = a
		r.userIds[a.Id] = userId
		r.nextId++
		created = append(created, a)
	}
	return created, nil
}

func (r *RepositoryStub) GetForWeek(ctx context.Context, userId int, childId int, weekStart time.Time) ([]Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Assignment
	for id, a := range r.assignments {
		if r.userIds[id] == userId && a.ChildId == childId && a.WeekStartDate.Equal(weekStart) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ChoreId != result[j].ChoreId {
			return result[i].ChoreId < result[j].ChoreId
		}
		return result[i].OccurrenceNumber < result[j].OccurrenceNumber
	})
	return result, nil
}

func (r *RepositoryStub) SetCompleted(ctx context.Context, userId int, id int, completionDate time.Time) (Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.assignments[id]
	if !exists || r.userIds[id] != userId {
		return Assignment{}, ErrAssignmentNotFound
	}
	a.IsCompleted = true
	a.CompletionDate = &completionDate
	r.assignments[id] = a
	return a, nil
}

func (r *RepositoryStub) GetHistory(ctx context.Context, userId int, childId int, startDate *time.Time, endDate *time.Time) ([]Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Assignment
	for id, a := range r.assignments {
		if r.userIds[id] != userId || a.ChildId != childId {
			continue
		}
		if startDate != nil && a.WeekStartDate.Before(*startDate) {
			continue
		}
		if endDate != nil && a.WeekStartDate.After(*endDate) {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].WeekStartDate.Equal(result[j].WeekStartDate) {
			return result[i].WeekStartDate.After(result[j].WeekStartDate)
		}
		if result[i].ChoreId != result[j].ChoreId {
			return result[i].ChoreId < result[j].ChoreId
		}
		return result[i].OccurrenceNumber < result[j].OccurrenceNumber
	})
	return result, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, userId int, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.assignments[id]; !exists || r.userIds[id] != userId {
		return ErrAssignmentNotFound
	}
	delete(r.assignments, id)
	delete(r.userIds, id)
	return nil
}
