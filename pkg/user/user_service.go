package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var ErrUsernameTaken = errors.New("username is already registered")
var ErrNotAuthorized = errors.New("not authorized")

type Service interface {
	// Register creates a new user with the given plaintext password.
	// The very first registered user becomes an admin; any later registration
	// requires the caller to be an admin.
	Register(ctx context.Context, user User, password string) (User, error)
	GetCurrentUser(ctx context.Context) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int) error
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type UserServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *UserServiceImpl {
	return &UserServiceImpl{repo: repo}
}

func (u *UserServiceImpl) Register(ctx context.Context, user User, password string) (User, error) {
	count, err := u.repo.CountUsers(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to count users: %w", err)
	}
	isFirstUser := count == 0

	if isFirstUser {
		user.IsAdmin = true
	} else {
		caller, err := CurrentUser(ctx)
		if err != nil {
			return User{}, ErrNotAuthorized
		}
		if !caller.IsAdmin {
			log.Debugf("user %s attempted to register a user without admin rights", caller.Username)
			return User{}, ErrNotAuthorized
		}
	}

	available, err := u.repo.IsUsernameAvailable(ctx, user.Username)
	if err != nil {
		return User{}, fmt.Errorf("failed to check username availability: %w", err)
	}
	if !available {
		return User{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user.Uid = uuid.NewString()
	userId, err := u.repo.CreateUser(ctx, user, string(hash))
	if err != nil {
		return User{}, err
	}
	user.Id = userId
	return user, nil
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.GetUser(ctx, userId)
}

func (u *UserServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.repo.GetUser(ctx, id)
}

func (u *UserServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	caller, err := CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin {
		return nil, ErrNotAuthorized
	}
	return u.repo.GetAllUsers(ctx)
}

func (u *UserServiceImpl) DeleteUser(ctx context.Context, id int) error {
	caller, err := CurrentUser(ctx)
	if err != nil {
		return err
	}
	if !caller.IsAdmin {
		return ErrNotAuthorized
	}
	return u.repo.DeleteUser(ctx, id)
}

func (u *UserServiceImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	return u.repo.IsUsernameAvailable(ctx, username)
}
