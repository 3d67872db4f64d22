package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/orderdesk/internal/apperror"
	"github.com/sakif/orderdesk/internal/model"
	"github.com/sakif/orderdesk/internal/repository/memory"
)

func seededOrderDB(t *testing.T) *OrderDB {
	t.Helper()
	orders := NewOrderDB(newTestDB(t))
	require.NoError(t, orders.Seed(memory.SeedOrders()))
	return orders
}

func TestOrderDBSeedAndList(t *testing.T) {
	orders := seededOrderDB(t)

	got, err := orders.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, memory.SeedOrders(), got)
}

func TestOrderDBCreateIgnoresCallerID(t *testing.T) {
	orders := seededOrderDB(t)

	created, err := orders.Create(context.Background(), model.Order{ID: 999, UserID: 1, Total: 42})
	require.NoError(t, err)
	assert.Equal(t, model.Order{ID: 6, UserID: 1, Total: 42}, created)
}

func TestOrderDBUpdate(t *testing.T) {
	orders := seededOrderDB(t)
	ctx := context.Background()

	updated, err := orders.Update(ctx, model.Order{ID: 5, UserID: 2, Total: 99})
	require.NoError(t, err)
	assert.Equal(t, float64(99), updated.Total)

	_, err = orders.Update(ctx, model.Order{ID: 77, UserID: 0, Total: 1})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestOrderDBDeleteIsIdempotent(t *testing.T) {
	orders := seededOrderDB(t)
	ctx := context.Background()

	_, err := orders.Delete(ctx, 0)
	require.NoError(t, err)
	_, err = orders.Delete(ctx, 0)
	require.NoError(t, err)

	got, err := orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestOrderDBDeleteByUser(t *testing.T) {
	orders := seededOrderDB(t)
	ctx := context.Background()

	userID, err := orders.DeleteByUser(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), userID)

	got, err := orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, o := range got {
		assert.NotEqual(t, int64(0), o.UserID)
	}

	// No orders left for the user: still succeeds.
	_, err = orders.DeleteByUser(ctx, 0)
	require.NoError(t, err)
}
