package auth

import (
	"context"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu     sync.RWMutex
	tokens map[string]Token
	nextId int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		tokens: make(map[string]Token),
		nextId: 1,
	}
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = make(map[string]Token)
	r.nextId = 1
}

func (r *RepositoryStub) StoreToken(ctx context.Context, token Token) (Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.Id = r.nextId
	token.CreatedAt = time.Now()
	r.nextId++
	r.tokens[token.Value] = token
	return token, nil
}

func (r *RepositoryStub) GetToken(ctx context.Context, value string) (Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, exists := r.tokens[value]
	if !exists {
		return Token{}, ErrInvalidToken
	}
	return token, nil
}

func (r *RepositoryStub) DeleteToken(ctx context.Context, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tokens[value]; !exists {
		return ErrInvalidToken
	}
	delete(r.tokens, value)
	return nil
}

func (r *RepositoryStub) DeleteExpiredTokens(ctx context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := 0
	for value, token := range r.tokens {
		if token.ExpiresAt.Before(before) {
			delete(r.tokens, value)
			deleted++
		}
	}
	return deleted, nil
}
