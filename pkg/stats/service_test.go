package stats

import (
	"context"
	"testing"
	"time"

	"github.com/choretracker/choretracker/internal/utils"
	"github.com/choretracker/choretracker/pkg/assignment"
	"github.com/choretracker/choretracker/pkg/child"
	"github.com/choretracker/choretracker/pkg/chore"
	"github.com/choretracker/choretracker/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{
	Id:       10,
	Uid:      "test-uid-1",
	Username: "test-user-1",
})

var otherUserCtx = user.WithUser(context.Background(), user.User{
	Id:       20,
	Uid:      "test-uid-2",
	Username: "test-user-2",
})

var assignmentRepoStub = assignment.NewRepositoryStub()
var childRepoStub = child.NewRepositoryStub()
var choreRepoStub = chore.NewRepositoryStub()

type statsFixture struct {
	service     Service
	assignments assignment.Service
	children    child.Service
	chores      chore.Service
	clock       *utils.MockClock
}

func setupStatsService(t *testing.T) (statsFixture, func()) {
	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)}
	childService := child.NewService(childRepoStub)
	choreService := chore.NewService(choreRepoStub)
	assignmentService := assignment.NewService(assignmentRepoStub, childService, choreService, clock)
	fixture := statsFixture{
		service:     NewService(assignmentService, childService),
		assignments: assignmentService,
		children:    childService,
		chores:      choreService,
		clock:       clock,
	}
	return fixture, func() {
		t.Log("Teardown after test")
		assignmentRepoStub.Reset()
		childRepoStub.Reset()
		choreRepoStub.Reset()
	}
}

func (f statsFixture) seedWeek(t *testing.T, week time.Time, frequency int, completed int) child.Child {
	kid, err := f.children.Create(ctx, child.Child{Name: "Alice", WeeklyAllowance: 10})
	require.NoError(t, err)
	dishes, err := f.chores.Create(ctx, chore.ChoreTemplate{Name: "Dishes", FrequencyPerWeek: frequency})
	require.NoError(t, err)
	created, err := f.assignments.Generate(ctx, kid.Id, []int{dishes.Id}, week)
	require.NoError(t, err)
	for i := 0; i < completed; i++ {
		_, err := f.assignments.Complete(ctx, created[i].Id)
		require.NoError(t, err)
	}
	return kid
}

func TestServiceImpl_GetWeeklySummary(t *testing.T) {
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	t.Run("prorates the allowance by completed share", func(t *testing.T) {
		fixture, teardown := setupStatsService(t)
		defer teardown()

		kid := fixture.seedWeek(t, monday, 4, 3)

		summary, err := fixture.service.GetWeeklySummary(ctx, kid.Id, monday)

		require.NoError(t, err)
		assert.Equal(t, kid.Id, summary.ChildId)
		assert.Equal(t, "Alice", summary.ChildName)
		assert.Equal(t, monday, summary.WeekStartDate)
		assert.Equal(t, 4, summary.TotalAssignments)
		assert.Equal(t, 3, summary.CompletedAssignments)
		assert.Equal(t, 10.0, summary.WeeklyAllowance)
		assert.Equal(t, 7.5, summary.EarnedAllowance)
	})

	t.Run("an empty week earns nothing", func(t *testing.T) {
		fixture, teardown := setupStatsService(t)
		defer teardown()

		kid, err := fixture.children.Create(ctx, child.Child{Name: "Alice", WeeklyAllowance: 10})
		require.NoError(t, err)

		summary, err := fixture.service.GetWeeklySummary(ctx, kid.Id, monday)

		require.NoError(t, err)
		assert.Zero(t, summary.TotalAssignments)
		assert.Zero(t, summary.CompletedAssignments)
		assert.Zero(t, summary.EarnedAllowance)
	})

	t.Run("normalizes the date to the week start", func(t *testing.T) {
		fixture, teardown := setupStatsService(t)
		defer teardown()

		kid := fixture.seedWeek(t, monday, 2, 0)

		friday := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
		summary, err := fixture.service.GetWeeklySummary(ctx, kid.Id, friday)

		require.NoError(t, err)
		assert.Equal(t, monday, summary.WeekStartDate)
		assert.Equal(t, 2, summary.TotalAssignments)
	})

	t.Run("another user's child is indistinguishable from an absent one", func(t *testing.T) {
		fixture, teardown := setupStatsService(t)
		defer teardown()

		kid := fixture.seedWeek(t, monday, 2, 0)

		_, err := fixture.service.GetWeeklySummary(otherUserCtx, kid.Id, monday)
		require.ErrorIs(t, err, child.ErrChildNotFound)
	})
}
