package child

import (
	"context"
	"testing"

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

var childRepoStub = NewRepositoryStub()

func setupChildService(t *testing.T) (Service, func()) {
	service := NewService(childRepoStub)
	return service, func() {
		t.Log("Teardown after test")
		childRepoStub.Reset()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("creates a child for the current user", func(t *testing.T) {
		service, teardown := setupChildService(t)
		defer teardown()

		created, err := service.Create(ctx, Child{Name: "Alice", WeeklyAllowance: 12.5})

		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.Equal(t, "Alice", created.Name)
		assert.Equal(t, 12.5, created.WeeklyAllowance)
	})

	t.Run("fails without a user in context", func(t *testing.T) {
		service, teardown := setupChildService(t)
		defer teardown()

		_, err := service.Create(context.Background(), Child{Name: "Alice"})
		require.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestServiceImpl_Get(t *testing.T) {
	t.Run("returns an owned child", func(t *testing.T) {
		service, teardown := setupChildService(t)
		defer teardown()

		created, err := service.Create(ctx, Child{Name: "Alice"})
		require.NoError(t, err)

		found, err := service.Get(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("another user's child is indistinguishable from an absent one", func(t *testing.T) {
		service, teardown := setupChildService(t)
		defer teardown()

		created, err := service.Create(ctx, Child{Name: "Alice"})
		require.NoError(t, err)

		_, err = service.Get(otherUserCtx, created.Id)
		require.ErrorIs(t, err, ErrChildNotFound)

		_, err = service.Get(ctx, 999)
		require.ErrorIs(t, err, ErrChildNotFound)
	})
}

func TestServiceImpl_GetAll(t *testing.T) {
	t.Run("lists only the current user's children", func(t *testing.T) {
		service, teardown := setupChildService(t)
		defer teardown()

		_, err := service.Create(ctx, Child{Name: "Alice"})
		require.NoError(t, err)
		_, err = service.Create(ctx, Child{Name: "Bob"})
		require.NoError(t, err)
		_, err = service.Create(otherUserCtx, Child{Name: "Charlie"})
		require.NoError(t, err)

		children, err := service.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, children, 2)
		assert.Equal(t, "Alice", children[0].Name)
		assert.Equal(t, "Bob", children[1].Name)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("deletes an owned child", func(t *testing.T) {
		service, teardown := setupChildService(t)
		defer teardown()

		created, err := service.Create(ctx, Child{Name: "Alice"})
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, created.Id))

		_, err = service.Get(ctx, created.Id)
		require.ErrorIs(t, err, ErrChildNotFound)
	})

	t.Run("cannot delete another user's child", func(t *testing.T) {
		service, teardown := setupChildService(t)
		defer teardown()

		created, err := service.Create(ctx, Child{Name: "Alice"})
		require.NoError(t, err)

		err = service.Delete(otherUserCtx, created.Id)
		require.ErrorIs(t, err, ErrChildNotFound)
	})
}
