package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/orderdesk/internal/apperror"
	"github.com/sakif/orderdesk/internal/model"
)

func TestUserRepoListReturnsSeed(t *testing.T) {
	repo := NewUserRepo(0)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SeedUsers(), users)
}

func TestUserRepoListSnapshotIsDetached(t *testing.T) {
	repo := NewUserRepo(0)
	ctx := context.Background()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	users[0].Name = "mangled"

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "User 1", again[0].Name)
}

func TestUserRepoCreateAssignsNextID(t *testing.T) {
	repo := NewUserRepo(0)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.NewUser{Name: "User 4"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, "User 4", created.Name)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)
}

func TestUserRepoCreateOnEmptyStartsAtZero(t *testing.T) {
	repo := NewUserRepo(0)
	ctx := context.Background()

	for _, u := range SeedUsers() {
		_, err := repo.Delete(ctx, u.ID)
		require.NoError(t, err)
	}

	created, err := repo.Create(ctx, model.NewUser{Name: "first"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), created.ID)
}

func TestUserRepoUpdate(t *testing.T) {
	repo := NewUserRepo(0)
	ctx := context.Background()

	updated, err := repo.Update(ctx, model.User{ID: 1, Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, model.User{ID: 1, Name: "Renamed"}, updated)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", users[1].Name)
}

func TestUserRepoUpdateMissingIsNotFound(t *testing.T) {
	repo := NewUserRepo(0)

	_, err := repo.Update(context.Background(), model.User{ID: 99, Name: "ghost"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Equal(t, "user with id 99 not found", err.Error())
}

func TestUserRepoDeleteIsIdempotent(t *testing.T) {
	repo := NewUserRepo(0)
	ctx := context.Background()

	id, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	// Deleting again succeeds without changing anything.
	id, err = repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserRepoDetails(t *testing.T) {
	repo := NewUserRepo(0)
	ctx := context.Background()

	details, err := repo.Details(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Details for user with id 2", details)

	// No existence check: an unknown id still composes an answer.
	details, err = repo.Details(ctx, 404)
	require.NoError(t, err)
	assert.Equal(t, "Details for user with id 404", details)
}

func TestUserRepoHonorsContextDuringLatency(t *testing.T) {
	repo := NewUserRepo(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := repo.List(ctx)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("List did not return after cancellation")
	}
}
