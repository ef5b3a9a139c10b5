package child

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu       sync.RWMutex
	children map[int]Child
	userIds  map[int]int // child id -> owning user id
	nextId   int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		children: make(map[int]Child),
		userIds:  make(map[int]int),
		nextId:   1,
	}
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.children = make(map[int]Child)
	r.userIds = make(map[int]int)
	r.nextId = 1
}

func (r *RepositoryStub) Create(ctx context.Context, userId int, child Child) (Child, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	child.Id = r.nextId
	r.children[child.Id] = child
	r.userIds[child.Id] = userId
	r.nextId++
	return child, nil
}

func (r *RepositoryStub) GetAll(ctx context.Context, userId int) ([]Child, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []Child
	for id := 1; id < r.nextId; id++ {
		if child, exists := r.children[id]; exists && r.userIds[id] == userId {
			result = append(result, child)
		}
	}
	return result, nil
}

func (r *RepositoryStub) Get(ctx context.Context, userId int, id int) (Child, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	child, exists := r.children[id]
	if !exists || r.userIds[id] != userId {
		return Child{}, ErrChildNotFound
	}
	return child, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, userId int, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.children[id]; !exists || r.userIds[id] != userId {
		return ErrChildNotFound
	}
	delete(r.children, id)
	delete(r.userIds, id)
	return nil
}
