package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/choretracker/choretracker/internal/utils"
	"github.com/choretracker/choretracker/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// UserReader is the subset of the user repository the auth service needs.
type UserReader interface {
	GetUserByUsername(ctx context.Context, username string) (user.User, string, error)
	GetUser(ctx context.Context, id int) (user.User, error)
}

type Service interface {
	// Issue verifies the credentials and returns a fresh bearer token.
	Issue(ctx context.Context, username string, password string) (Token, error)
	// Authenticate resolves a bearer token value to the user it was issued for.
	Authenticate(ctx context.Context, value string) (user.User, error)
	Revoke(ctx context.Context, value string) error
}

type ServiceImpl struct {
	repo     Repository
	users    UserReader
	clock    utils.Clock
	tokenTTL time.Duration
}

func NewService(repo Repository, users UserReader, clock utils.Clock, tokenTTL time.Duration) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		users:    users,
		clock:    clock,
		tokenTTL: tokenTTL,
	}
}

func (s *ServiceImpl) Issue(ctx context.Context, username string, password string) (Token, error) {
	u, hash, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return Token{}, ErrInvalidCredentials
		}
		return Token{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		log.Debugf("password verification failed for user %s", username)
		return Token{}, ErrInvalidCredentials
	}

	token := Token{
		Value:     uuid.NewString(),
		UserId:    u.Id,
		ExpiresAt: s.clock.Now().Add(s.tokenTTL),
	}
	stored, err := s.repo.StoreToken(ctx, token)
	if err != nil {
		return Token{}, fmt.Errorf("failed to store token: %w", err)
	}
	return stored, nil
}

func (s *ServiceImpl) Authenticate(ctx context.Context, value string) (user.User, error) {
	token, err := s.repo.GetToken(ctx, value)
	if err != nil {
		return user.User{}, err
	}
	if s.clock.Now().After(token.ExpiresAt) {
		if err := s.repo.DeleteToken(ctx, value); err != nil && !errors.Is(err, ErrInvalidToken) {
			log.Warnf("failed to delete expired token: %v", err)
		}
		return user.User{}, ErrInvalidToken
	}
	u, err := s.users.GetUser(ctx, token.UserId)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, ErrInvalidToken
		}
		return user.User{}, err
	}
	return u, nil
}

func (s *ServiceImpl) Revoke(ctx context.Context, value string) error {
	return s.repo.DeleteToken(ctx, value)
}
