package assignment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrAssignmentNotFound = errors.New("assignment not found")

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	createAssignments(ctx context.Context, userId int, assignments []Assignment) ([]Assignment, error)
	GetForWeek(ctx context.Context, userId int, childId int, weekStart time.Time) ([]Assignment, error)
	// SetCompleted marks the assignment completed and stamps the completion date.
	// Completing an already completed assignment refreshes the date.
	SetCompleted(ctx context.Context, userId int, id int, completionDate time.Time) (Assignment, error)
	// GetHistory returns the child's assignments sorted by week_start_date descending.
	// Bounds are inclusive and applied only when non-nil.
	GetHistory(ctx context.Context, userId int, childId int, startDate *time.Time, endDate *time.Time) ([]Assignment, error)
	Delete(ctx context.Context, userId int, id int) error
}

type repositoryImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepo(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *repositoryImpl) getQueryer() interface {
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &repositoryImpl{db: r.db, tx: tx}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *repositoryImpl) createAssignments(ctx context.Context, userId int, assignments []Assignment) ([]Assignment, error) {
	if len(assignments) == 0 {
		return nil, nil
	}

	var valuesBuilder strings.Builder
	args := make([]any, 0, len(assignments)*5)
	placeholder := 1
	for idx, a := range assignments {
		if idx > 0 {
			valuesBuilder.WriteByte(',')
		}
		valuesBuilder.WriteString("(")
		for i := 0; i < 5; i++ {
			if i > 0 {
				valuesBuilder.WriteByte(',')
			}
			fmt.Fprintf(&valuesBuilder, "$%d", placeholder)
			placeholder++
		}
		valuesBuilder.WriteString(")")

		args = append(args,
			userId,
			a.ChildId,
			a.ChoreId,
			a.WeekStartDate,
			a.OccurrenceNumber,
		)
	}

	query := fmt.Sprintf(`INSERT INTO chore_assignments (
                            user_id,
                            child_id,
                            chore_id,
                            week_start_date,
                            occurrence_number
                  ) VALUES %s RETURNING
                            id,
                            child_id,
                            chore_id,
                            week_start_date,
                            occurrence_number,
                            is_completed,
                            completion_date`, valuesBuilder.String())

	rows, err := r.getQueryer().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var created []Assignment
	for rows.Next() {
		var a Assignment
		err := rows.Scan(
			&a.Id,
			&a.ChildId,
			&a.ChoreId,
			&a.WeekStartDate,
			&a.OccurrenceNumber,
			&a.IsCompleted,
			&a.CompletionDate,
		)
		if err != nil {
			return nil, err
		}
		created = append(created, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return created, nil
}

func (r *repositoryImpl) GetForWeek(ctx context.Context, userId int, childId int, weekStart time.Time) ([]Assignment, error) {
	query := `SELECT
				a.id,
				a.child_id,
				a.chore_id,
				c.name,
				a.week_start_date,
				a.occurrence_number,
				a.is_completed,
				a.completion_date
			  FROM chore_assignments a
			  JOIN chores c ON c.id = a.chore_id
			  WHERE a.user_id = $1 AND a.child_id = $2 AND a.week_start_date = $3
			  ORDER BY a.chore_id, a.occurrence_number`
	rows, err := r.getQueryer().Query(ctx, query, userId, childId, weekStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

func (r *repositoryImpl) SetCompleted(ctx context.Context, userId int, id int, completionDate time.Time) (Assignment, error) {
	query := `UPDATE chore_assignments a
				SET is_completed = TRUE, completion_date = $1
				FROM chores c
				WHERE c.id = a.chore_id AND a.user_id = $2 AND a.id = $3
				RETURNING
					a.id,
					a.child_id,
					a.chore_id,
					c.name,
					a.week_start_date,
					a.occurrence_number,
					a.is_completed,
					a.completion_date`
	var a Assignment
	err := r.getQueryer().QueryRow(ctx, query, completionDate, userId, id).Scan(
		&a.Id,
		&a.ChildId,
		&a.ChoreId,
		&a.ChoreName,
		&a.WeekStartDate,
		&a.OccurrenceNumber,
		&a.IsCompleted,
		&a.CompletionDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Assignment{}, ErrAssignmentNotFound
		}
		return Assignment{}, fmt.Errorf("could not complete assignment: %w", err)
	}
	return a, nil
}

func (r *repositoryImpl) GetHistory(ctx context.Context, userId int, childId int, startDate *time.Time, endDate *time.Time) ([]Assignment, error) {
	query := `SELECT
				a.id,
				a.child_id,
				a.chore_id,
				c.name,
				a.week_start_date,
				a.occurrence_number,
				a.is_completed,
				a.completion_date
			  FROM chore_assignments a
			  JOIN chores c ON c.id = a.chore_id
			  WHERE a.user_id = $1 AND a.child_id = $2`
	args := []any{userId, childId}
	placeholder := 3
	if startDate != nil {
		query += fmt.Sprintf(" AND a.week_start_date >= $%d", placeholder)
		args = append(args, *startDate)
		placeholder++
	}
	if endDate != nil {
		query += fmt.Sprintf(" AND a.week_start_date <= $%d", placeholder)
		args = append(args, *endDate)
		placeholder++
	}
	query += " ORDER BY a.week_start_date DESC, a.chore_id, a.occurrence_number"

	rows, err := r.getQueryer().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

func (r *repositoryImpl) Delete(ctx context.Context, userId int, id int) error {
	query := `DELETE FROM chore_assignments WHERE user_id = $1 AND id = $2`
	result, err := r.getQueryer().Exec(ctx, query, userId, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func scanAssignments(rows pgx.Rows) ([]Assignment, error) {
	var assignments []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(
			&a.Id,
			&a.ChildId,
			&a.ChoreId,
			&a.ChoreName,
			&a.WeekStartDate,
			&a.OccurrenceNumber,
			&a.IsCompleted,
			&a.CompletionDate,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
