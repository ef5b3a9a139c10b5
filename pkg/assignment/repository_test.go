package assignment

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/choretracker/choretracker/internal/test_utils"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	defer func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			log.Errorf("failed to terminate container: %s", err)
		}
	}()
	code := m.Run()
	os.Exit(code)
}

type repoFixture struct {
	ctx     context.Context
	repo    Repository
	db      *pgxpool.Pool
	userId  int
	childId int
	choreId int
}

func setupTestRepository(t *testing.T) repoFixture {
	ctx := context.Background()
	db := openDb()
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})

	f := repoFixture{ctx: ctx, repo: NewRepo(db), db: db}
	f.userId = f.insertUser(t, "test-uid", "test-user")
	f.childId = f.insertChild(t, f.userId, "Alice")
	f.choreId = f.insertChore(t, f.userId, "Dishes", 2)
	return f
}

func (f *repoFixture) insertUser(t *testing.T, uid string, username string) int {
	var id int
	err := f.db.QueryRow(f.ctx,
		`INSERT INTO users (uid, username, password_hash) VALUES ($1, $2, 'x') RETURNING id`,
		uid, username).Scan(&id)
	require.NoError(t, err)
	return id
}

func (f *repoFixture) insertChild(t *testing.T, userId int, name string) int {
	var id int
	err := f.db.QueryRow(f.ctx,
		`INSERT INTO children (user_id, name, weekly_allowance) VALUES ($1, $2, 10) RETURNING id`,
		userId, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func (f *repoFixture) insertChore(t *testing.T, userId int, name string, frequency int) int {
	var id int
	err := f.db.QueryRow(f.ctx,
		`INSERT INTO chores (user_id, name, frequency_per_week) VALUES ($1, $2, $3) RETURNING id`,
		userId, name, frequency).Scan(&id)
	require.NoError(t, err)
	return id
}

func (f *repoFixture) pendingFor(week time.Time, count int) []Assignment {
	var pending []Assignment
	for occurrence := 1; occurrence <= count; occurrence++ {
		pending = append(pending, Assignment{
			ChildId:          f.childId,
			ChoreId:          f.choreId,
			WeekStartDate:    week,
			OccurrenceNumber: occurrence,
		})
	}
	return pending
}

func TestRepositoryImpl_CreateAssignments(t *testing.T) {
	week := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	t.Run("should create a batch of assignments", func(t *testing.T) {
		// given
		f := setupTestRepository(t)
		pending := f.pendingFor(week, 3)

		// when
		var created []Assignment
		err := f.repo.WithTransaction(f.ctx, func(repo Repository) error {
			var txErr error
			created, txErr = repo.createAssignments(f.ctx, f.userId, pending)
			return txErr
		})

		// then
		require.NoError(t, err)
		require.Len(t, created, 3)
		for i, a := range created {
			assert.NotZero(t, a.Id)
			assert.Equal(t, f.childId, a.ChildId)
			assert.Equal(t, f.choreId, a.ChoreId)
			assert.Equal(t, week, a.WeekStartDate.UTC())
			assert.Equal(t, i+1, a.OccurrenceNumber)
			assert.False(t, a.IsCompleted)
			assert.Nil(t, a.CompletionDate)
		}
	})

	t.Run("should return nil for an empty batch", func(t *testing.T) {
		// given
		f := setupTestRepository(t)

		// when
		var created []Assignment
		err := f.repo.WithTransaction(f.ctx, func(repo Repository) error {
			var txErr error
			created, txErr = repo.createAssignments(f.ctx, f.userId, nil)
			return txErr
		})

		// then
		require.NoError(t, err)
		require.Nil(t, created)
	})

	t.Run("should roll back the whole batch on error", func(t *testing.T) {
		// given
		f := setupTestRepository(t)
		pending := f.pendingFor(week, 2)
		boom := errors.New("boom")

		// when
		err := f.repo.WithTransaction(f.ctx, func(repo Repository) error {
			if _, txErr := repo.createAssignments(f.ctx, f.userId, pending); txErr != nil {
				return txErr
			}
			return boom
		})

		// then
		require.ErrorIs(t, err, boom)
		stored, err := f.repo.GetForWeek(f.ctx, f.userId, f.childId, week)
		require.NoError(t, err)
		require.Empty(t, stored)
	})
}

func TestRepositoryImpl_GetForWeek(t *testing.T) {
	week := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	nextWeek := week.AddDate(0, 0, 7)

	t.Run("should return only the requested week with chore names", func(t *testing.T) {
		// given
		f := setupTestRepository(t)
		err := f.repo.WithTransaction(f.ctx, func(repo Repository) error {
			batch := append(f.pendingFor(week, 2), f.pendingFor(nextWeek, 2)...)
			_, txErr := repo.createAssignments(f.ctx, f.userId, batch)
			return txErr
		})
		require.NoError(t, err)

		// when
		assignments, err := f.repo.GetForWeek(f.ctx, f.userId, f.childId, week)

		// then
		require.NoError(t, err)
		require.Len(t, assignments, 2)
		for i, a := range assignments {
			assert.Equal(t, "Dishes", a.ChoreName)
			assert.Equal(t, week, a.WeekStartDate.UTC())
			assert.Equal(t, i+1, a.OccurrenceNumber)
		}
	})

	t.Run("should not return another user's assignments", func(t *testing.T) {
		// given
		f := setupTestRepository(t)
		err := f.repo.WithTransaction(f.ctx, func(repo Repository) error {
			_, txErr := repo.createAssignments(f.ctx, f.userId, f.pendingFor(week, 2))
			return txErr
		})
		require.NoError(t, err)
		otherUserId := f.insertUser(t, "other-uid", "other-user")

		// when
		assignments, err := f.repo.GetForWeek(f.ctx, otherUserId, f.childId, week)

		// then
		require.NoError(t, err)
		require.Empty(t, assignments)
	})
}

func TestRepositoryImpl_SetCompleted(t *testing.T) {
	week := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	t.Run("should mark an assignment completed", func(t *testing.T) {
		// given
		f := setupTestRepository(t)
		var created []Assignment
		err := f.repo.WithTransaction(f.ctx, func(repo Repository) error {
			var txErr error
			created, txErr = repo.createAssignments(f.ctx, f.userId, f.pendingFor(week, 1))
			return txErr
		})
		require.NoError(t, err)
		completionDate := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

		// when
		completed, err := f.repo.SetCompleted(f.ctx, f.userId, created[0].Id, completionDate)

		// then
		require.NoError(t, err)
		assert.True(t, completed.IsCompleted)
		assert.Equal(t, "Dishes", completed.ChoreName)
		require.NotNil(t, completed.CompletionDate)
		assert.Equal(t, completionDate, completed.CompletionDate.UTC())
	})

	t.Run("should refresh the completion date on repeat", func(t *testing.T) {
		// given
		f := setupTestRepository(t)
		var created []Assignment
		err := f.repo.WithTransaction(f.ctx, func(repo Repository) error {
			var txErr error
			created, txErr = repo.createAssignments(f.ctx, f.userId, f.pendingFor(week, 1))
			return txErr
		})
		require.NoError(t, err)
		firstDate := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
		secondDate := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
		_, err = f.repo.SetCompleted(f.ctx, f.userId, created[0].Id, firstDate)
		require.NoError(t, err)

		// when
		completed, err := f.repo.SetCompleted(f.ctx, f.userId, created[0].Id, secondDate)

		// then
		require.NoError(t, err)
		assert.True(t, completed.IsCompleted)
		require.NotNil(t, completed.CompletionDate)
		assert.Equal(t, secondDate, completed.CompletionDate.UTC())
	})

	t.Run("should not complete another user's assignment", func(t *testing.T) {
		// given
		f := setupTestRepository(t)
		var created []Assignment
		err := f.repo.WithTransaction(f.ctx, func(repo Repository) error {
			var txErr error
			created, txErr = repo.createAssignments(f.ctx, f.userId, f.pendingFor(week, 1))
			return txErr
		})
		require.NoError(t, err)
		otherUserId := f.insertUser(t, "other-uid", "other-user")

		// when
		_, err = f.repo.SetCompleted(f.ctx, otherUserId, created[0].Id, week)

		// then
		require.ErrorIs(t, err, ErrAssignmentNotFound)
	})
}

func TestRepositoryImpl_GetHistory(t *testing.T) {
	week1 := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	week2 := time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC)
	week3 := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	seed := func(t *testing.T, f repoFixture) {
		err := f.repo.WithTransaction(f.ctx, func(repo Repository) error {
			var batch []Assignment
			for _, week := range []time.Time{week1, week2, week3} {
				batch = append(batch, f.pendingFor(week, 1)...)
			}
			_, txErr := repo.createAssignments(f.ctx, f.userId, batch)
			return txErr
		})
		require.NoError(t, err)
	}

	t.Run("should return all weeks newest first", func(t *testing.T) {
		// given
		f := setupTestRepository(t)
		seed(t, f)

		// when
		history, err := f.repo.GetHistory(f.ctx, f.userId, f.childId, nil, nil)

		// then
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, week3, history[0].WeekStartDate.UTC())
		assert.Equal(t, week2, history[1].WeekStartDate.UTC())
		assert.Equal(t, week1, history[2].WeekStartDate.UTC())
	})

	t.Run("should apply inclusive bounds", func(t *testing.T) {
		// given
		f := setupTestRepository(t)
		seed(t, f)

		// when
		history, err := f.repo.GetHistory(f.ctx, f.userId, f.childId, &week2, &week3)

		// then
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, week3, history[0].WeekStartDate.UTC())
		assert.Equal(t, week2, history[1].WeekStartDate.UTC())
	})
}

func TestRepositoryImpl_Delete(t *testing.T) {
	week := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	t.Run("should delete a single assignment", func(t *testing.T) {
		// given
		f := setupTestRepository(t)
		var created []Assignment
		err := f.repo.WithTransaction(f.ctx, func(repo Repository) error {
			var txErr error
			created, txErr = repo.createAssignments(f.ctx, f.userId, f.pendingFor(week, 2))
			return txErr
		})
		require.NoError(t, err)

		// when
		err = f.repo.Delete(f.ctx, f.userId, created[0].Id)

		// then
		require.NoError(t, err)
		remaining, err := f.repo.GetForWeek(f.ctx, f.userId, f.childId, week)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, created[1].Id, remaining[0].Id)
	})

	t.Run("should report a missing assignment", func(t *testing.T) {
		// given
		f := setupTestRepository(t)

		// when
		err := f.repo.Delete(f.ctx, f.userId, 999)

		// then
		require.ErrorIs(t, err, ErrAssignmentNotFound)
	})
}
