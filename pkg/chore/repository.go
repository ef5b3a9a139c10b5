package chore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrChoreNotFound = errors.New("chore not found")

type Repository interface {
	Create(ctx context.Context, userId int, chore ChoreTemplate) (ChoreTemplate, error)
	GetAll(ctx context.Context, userId int) ([]ChoreTemplate, error)
	// Get returns the chore template only when it belongs to the given user.
	// A template owned by another user behaves exactly like an absent one.
	Get(ctx context.Context, userId int, id int) (ChoreTemplate, error)
	Delete(ctx context.Context, userId int, id int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Create(ctx context.Context, userId int, chore ChoreTemplate) (ChoreTemplate, error) {
	query := `INSERT INTO chores (user_id, name, description, frequency_per_week) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRow(ctx, query, userId, chore.Name, chore.Description, chore.FrequencyPerWeek).Scan(&chore.Id)
	if err != nil {
		log.Errorf("failed to create chore: %v", err)
		return ChoreTemplate{}, err
	}
	return chore, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int) ([]ChoreTemplate, error) {
	query := `SELECT id, name, description, frequency_per_week FROM chores WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		log.Errorf("failed to get chores: %v", err)
		return nil, err
	}
	defer rows.Close()

	var chores []ChoreTemplate
	for rows.Next() {
		var chore ChoreTemplate
		if err := rows.Scan(&chore.Id, &chore.Name, &chore.Description, &chore.FrequencyPerWeek); err != nil {
			return nil, err
		}
		chores = append(chores, chore)
	}
	return chores, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int) (ChoreTemplate, error) {
	query := `SELECT id, name, description, frequency_per_week FROM chores WHERE user_id = $1 AND id = $2`
	var chore ChoreTemplate
	err := r.db.QueryRow(ctx, query, userId, id).Scan(&chore.Id, &chore.Name, &chore.Description, &chore.FrequencyPerWeek)
	if errors.Is(err, pgx.ErrNoRows) {
		return ChoreTemplate{}, ErrChoreNotFound
	} else if err != nil {
		log.Errorf("failed to get chore: %v", err)
		return ChoreTemplate{}, err
	}
	return chore, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) error {
	query := `DELETE FROM chores WHERE user_id = $1 AND id = $2`
	result, err := r.db.Exec(ctx, query, userId, id)
	if err != nil {
		log.Errorf("failed to delete chore: %v", err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrChoreNotFound
	}
	return nil
}
