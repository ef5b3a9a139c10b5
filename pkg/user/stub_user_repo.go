package user

import (
	"context"
	"sync"
)

type RepoStub struct {
	mu     sync.RWMutex
	users  map[int]User
	hashes map[int]string
	nextId int
}

func NewRepoStub() *RepoStub {
	return &RepoStub{
		users:  make(map[int]User),
		hashes: make(map[int]string),
		nextId: 1,
	}
}

func (r *RepoStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[int]User)
	r.hashes = make(map[int]string)
	r.nextId = 1
}

func (r *RepoStub) CreateUser(ctx context.Context, user User, passwordHash string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.Id = r.nextId
	r.users[user.Id] = user
	r.hashes[user.Id] = passwordHash
	r.nextId++
	return user.Id, nil
}

func (r *RepoStub) GetUser(ctx context.Context, id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, exists := r.users[id]
	if !exists {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *RepoStub) GetUserByUsername(ctx context.Context, username string) (User, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, user := range r.users {
		if user.Username == username {
			return user, r.hashes[id], nil
		}
	}
	return User{}, "", ErrUserNotFound
}

func (r *RepoStub) GetAllUsers(ctx context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]User, 0, len(r.users))
	for id := 1; id < r.nextId; id++ {
		if user, exists := r.users[id]; exists {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *RepoStub) DeleteUser(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[id]; !exists {
		return ErrUserNotFound
	}
	delete(r.users, id)
	delete(r.hashes, id)
	return nil
}

func (r *RepoStub) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			return false, nil
		}
	}
	return true, nil
}

func (r *RepoStub) CountUsers(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}
