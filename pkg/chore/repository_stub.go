package chore

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	chores  map[int]ChoreTemplate
	userIds map[int]int // chore id -> owning user id
	nextId  int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		chores:  make(map[int]ChoreTemplate),
		userIds: make(map[int]int),
		nextId:  1,
	}
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chores = make(map[int]ChoreTemplate)
	r.userIds = make(map[int]int)
	r.nextId = 1
}

func (r *RepositoryStub) Create(ctx context.Context, userId int, chore ChoreTemplate) (ChoreTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chore.Id = r.nextId
	r.chores[chore.Id] = chore
	r.userIds[chore.Id] = userId
	r.nextId++
	return chore, nil
}

func (r *RepositoryStub) GetAll(ctx context.Context, userId int) ([]ChoreTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []ChoreTemplate
	for id := 1; id < r.nextId; id++ {
		if chore, exists := r.chores[id]; exists && r.userIds[id] == userId {
			result = append(result, chore)
		}
	}
	return result, nil
}

func (r *RepositoryStub) Get(ctx context.Context, userId int, id int) (ChoreTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	chore, exists := r.chores[id]
	if !exists || r.userIds[id] != userId {
		return ChoreTemplate{}, ErrChoreNotFound
	}
	return chore, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, userId int, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.chores[id]; !exists || r.userIds[id] != userId {
		return ErrChoreNotFound
	}
	delete(r.chores, id)
	delete(r.userIds, id)
	return nil
}
