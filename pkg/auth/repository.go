package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreToken(ctx context.Context, token Token) (Token, error)
	GetToken(ctx context.Context, value string) (Token, error)
	DeleteToken(ctx context.Context, value string) error
	// DeleteExpiredTokens removes all tokens that expired before the given time.
	DeleteExpiredTokens(ctx context.Context, before time.Time) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreToken(ctx context.Context, token Token) (Token, error) {
	query := `INSERT INTO auth_tokens (token, user_id, expires_at) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, token.Value, token.UserId, token.ExpiresAt).
		Scan(&token.Id, &token.CreatedAt)
	if err != nil {
		log.Errorf("failed to store token: %v", err)
		return Token{}, err
	}
	return token, nil
}

func (r *RepositoryImpl) GetToken(ctx context.Context, value string) (Token, error) {
	query := `SELECT id, token, user_id, expires_at, created_at FROM auth_tokens WHERE token = $1`
	var token Token
	err := r.db.QueryRow(ctx, query, value).
		Scan(&token.Id, &token.Value, &token.UserId, &token.ExpiresAt, &token.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Token{}, ErrInvalidToken
	} else if err != nil {
		log.Errorf("failed to get token: %v", err)
		return Token{}, err
	}
	return token, nil
}

func (r *RepositoryImpl) DeleteToken(ctx context.Context, value string) error {
	query := `DELETE FROM auth_tokens WHERE token = $1`
	result, err := r.db.Exec(ctx, query, value)
	if err != nil {
		log.Errorf("failed to delete token: %v", err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrInvalidToken
	}
	return nil
}

func (r *RepositoryImpl) DeleteExpiredTokens(ctx context.Context, before time.Time) (int, error) {
	query := `DELETE FROM auth_tokens WHERE expires_at < $1`
	result, err := r.db.Exec(ctx, query, before)
	if err != nil {
		log.Errorf("failed to delete expired tokens: %v", err)
		return 0, err
	}
	return int(result.RowsAffected()), nil
}
