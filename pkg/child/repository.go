package child

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrChildNotFound = errors.New("child not found")

type Repository interface {
	Create(ctx context.Context, userId int, child Child) (Child, error)
	GetAll(ctx context.Context, userId int) ([]Child, error)
	// Get returns the child only when it belongs to the given user.
	// A child owned by another user behaves exactly like an absent one.
	Get(ctx context.Context, userId int, id int) (Child, error)
	Delete(ctx context.Context, userId int, id int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Create(ctx context.Context, userId int, child Child) (Child, error) {
	query := `INSERT INTO children (user_id, name, weekly_allowance) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRow(ctx, query, userId, child.Name, child.WeeklyAllowance).Scan(&child.Id)
	if err != nil {
		log.Errorf("failed to create child: %v", err)
		return Child{}, err
	}
	return child, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int) ([]Child, error) {
	query := `SELECT id, name, weekly_allowance FROM children WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		log.Errorf("failed to get children: %v", err)
		return nil, err
	}
	defer rows.Close()

	var children []Child
	for rows.Next() {
		var child Child
		if err := rows.Scan(&child.Id, &child.Name, &child.WeeklyAllowance); err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int) (Child, error) {
	query := `SELECT id, name, weekly_allowance FROM children WHERE user_id = $1 AND id = $2`
	var child Child
	err := r.db.QueryRow(ctx, query, userId, id).Scan(&child.Id, &child.Name, &child.WeeklyAllowance)
	if errors.Is(err, pgx.ErrNoRows) {
		return Child{}, ErrChildNotFound
	} else if err != nil {
		log.Errorf("failed to get child: %v", err)
		return Child{}, err
	}
	return child, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) error {
	query := `DELETE FROM children WHERE user_id = $1 AND id = $2`
	result, err := r.db.Exec(ctx, query, userId, id)
	if err != nil {
		log.Errorf("failed to delete child: %v", err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrChildNotFound
	}
	return nil
}
