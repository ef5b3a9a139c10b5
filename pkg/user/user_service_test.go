package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userRepoStub = NewRepoStub()

func setupUserService(t *testing.T) (Service, func()) {
	service := NewUserService(userRepoStub)
	return service, func() {
		t.Log("Teardown after test")
		userRepoStub.Reset()
	}
}

func TestUserServiceImpl_Register(t *testing.T) {
	t.Run("first registered user becomes admin without a caller", func(t *testing.T) {
		service, teardown := setupUserService(t)
		defer teardown()

		created, err := service.Register(context.Background(), User{
			Username:    "parent",
			DisplayName: "Parent",
		}, "secret123")

		require.NoError(t, err)
		assert.True(t, created.IsAdmin)
		assert.NotEmpty(t, created.Uid)
		assert.NotZero(t, created.Id)
	})

	t.Run("stores a bcrypt hash instead of the plaintext password", func(t *testing.T) {
		service, teardown := setupUserService(t)
		defer teardown()

		created, err := service.Register(context.Background(), User{Username: "parent"}, "secret123")
		require.NoError(t, err)

		_, hash, err := userRepoStub.GetUserByUsername(context.Background(), created.Username)
		require.NoError(t, err)
		assert.NotEqual(t, "secret123", hash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret123")))
	})

	t.Run("second registration requires an admin caller", func(t *testing.T) {
		service, teardown := setupUserService(t)
		defer teardown()

		_, err := service.Register(context.Background(), User{Username: "parent"}, "secret123")
		require.NoError(t, err)

		_, err = service.Register(context.Background(), User{Username: "other"}, "secret456")
		require.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("admin can register additional non-admin users", func(t *testing.T) {
		service, teardown := setupUserService(t)
		defer teardown()

		admin, err := service.Register(context.Background(), User{Username: "parent"}, "secret123")
		require.NoError(t, err)

		ctx := WithUser(context.Background(), admin)
		second, err := service.Register(ctx, User{Username: "grandma"}, "secret456")

		require.NoError(t, err)
		assert.False(t, second.IsAdmin)
	})

	t.Run("rejects duplicate usernames", func(t *testing.T) {
		service, teardown := setupUserService(t)
		defer teardown()

		admin, err := service.Register(context.Background(), User{Username: "parent"}, "secret123")
		require.NoError(t, err)

		ctx := WithUser(context.Background(), admin)
		_, err = service.Register(ctx, User{Username: "parent"}, "secret456")
		require.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestUserServiceImpl_GetAllUsers(t *testing.T) {
	t.Run("non-admin cannot list users", func(t *testing.T) {
		service, teardown := setupUserService(t)
		defer teardown()

		admin, err := service.Register(context.Background(), User{Username: "parent"}, "secret123")
		require.NoError(t, err)
		member, err := service.Register(WithUser(context.Background(), admin), User{Username: "grandma"}, "secret456")
		require.NoError(t, err)

		_, err = service.GetAllUsers(WithUser(context.Background(), member))
		require.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("admin lists all users", func(t *testing.T) {
		service, teardown := setupUserService(t)
		defer teardown()

		admin, err := service.Register(context.Background(), User{Username: "parent"}, "secret123")
		require.NoError(t, err)
		_, err = service.Register(WithUser(context.Background(), admin), User{Username: "grandma"}, "secret456")
		require.NoError(t, err)

		users, err := service.GetAllUsers(WithUser(context.Background(), admin))
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}
