package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user does not exist")

type Repo interface {
	CreateUser(ctx context.Context, user User, passwordHash string) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	// GetUserByUsername returns the user together with the stored password hash.
	GetUserByUsername(ctx context.Context, username string) (User, string, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int) error
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
	CountUsers(ctx context.Context) (int, error)
}

type UserRepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User, passwordHash string) (int, error) {
	query := `INSERT INTO users (uid, username, display_name, password_hash, is_admin) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := u.db.QueryRow(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		passwordHash,
		user.IsAdmin,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, display_name, is_admin FROM users WHERE id = $1`
	var user User
	err := u.db.QueryRow(ctx, query, id).
		Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.IsAdmin,
		)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Infof("user with id %d not found", id)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (User, string, error) {
	query := `SELECT id, uid, username, display_name, is_admin, password_hash FROM users WHERE username = $1`
	var user User
	var passwordHash string
	err := u.db.QueryRow(ctx, query, username).
		Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.IsAdmin,
			&passwordHash,
		)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Infof("user with username %s not found", username)
		return User{}, "", ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, "", err
	}
	return user, passwordHash, nil
}

func (u *UserRepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, uid, username, display_name, is_admin FROM users ORDER BY id`
	rows, err := u.db.Query(ctx, query)
	if err != nil {
		log.Errorf("failed to get users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.IsAdmin,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (u *UserRepoImpl) DeleteUser(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := u.db.Exec(ctx, query, id)
	if err != nil {
		log.Errorf("failed to delete user: %v", err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (u *UserRepoImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	if err := u.db.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		log.Errorf("failed to check username availability: %v", err)
		return false, err
	}
	return !exists, nil
}

func (u *UserRepoImpl) CountUsers(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM users`
	var count int
	if err := u.db.QueryRow(ctx, query).Scan(&count); err != nil {
		log.Errorf("failed to count users: %v", err)
		return 0, err
	}
	return count, nil
}
