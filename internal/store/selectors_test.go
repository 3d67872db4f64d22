package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/orderdesk/internal/action"
	"github.com/sakif/orderdesk/internal/model"
)

// summaryFixture is the canonical selection-summary scenario: two users,
// three orders, 240 total for user 0 and 20 for user 1.
func summaryFixture() State {
	s := InitialState()
	s = Reduce(s, action.LoadUsersSuccess{Users: []model.User{
		{ID: 0, Name: "A"},
		{ID: 1, Name: "B"},
	}})
	s = Reduce(s, action.LoadOrdersSuccess{Orders: []model.Order{
		{ID: 0, UserID: 0, Total: 80},
		{ID: 1, UserID: 0, Total: 160},
		{ID: 2, UserID: 1, Total: 20},
	}})
	return s
}

func TestSummaryForSelectedUser(t *testing.T) {
	s := summaryFixture()

	s0 := Reduce(s, action.SetSelectedUser{ID: ptr(0)})
	sum := s0.Summary()
	require.NotNil(t, sum)
	assert.Equal(t, model.User{ID: 0, Name: "A"}, sum.User)
	assert.Equal(t, 240.0, sum.TotalOrdersAmount)

	s1 := Reduce(s, action.SetSelectedUser{ID: ptr(1)})
	sum = s1.Summary()
	require.NotNil(t, sum)
	assert.Equal(t, model.User{ID: 1, Name: "B"}, sum.User)
	assert.Equal(t, 20.0, sum.TotalOrdersAmount)
}

func TestSummaryNilWithoutValidSelection(t *testing.T) {
	s := summaryFixture()
	assert.Nil(t, s.Summary(), "no selection")

	ghost := Reduce(s, action.SetSelectedUser{ID: ptr(42)})
	assert.Nil(t, ghost.Summary(), "nonexistent id")
	assert.Nil(t, ghost.SelectedUser())
}

func TestSummaryZeroTotalForUserWithoutOrders(t *testing.T) {
	s := summaryFixture()
	s = Reduce(s, action.AddUserSuccess{User: model.User{ID: 2, Name: "C"}})
	s = Reduce(s, action.SetSelectedUser{ID: ptr(2)})

	sum := s.Summary()
	require.NotNil(t, sum)
	assert.Equal(t, 0.0, sum.TotalOrdersAmount)
	assert.Empty(t, s.OrdersForSelectedUser())
}

func TestOrdersForSelectedUser(t *testing.T) {
	s := summaryFixture()
	s = Reduce(s, action.SetSelectedUser{ID: ptr(0)})

	orders := s.OrdersForSelectedUser()
	require.Len(t, orders, 2)
	assert.Equal(t, int64(0), orders[0].ID)
	assert.Equal(t, int64(1), orders[1].ID)
}

func TestCollectionViews(t *testing.T) {
	s := summaryFixture()

	assert.Equal(t, 2, s.UsersTotal())
	assert.Equal(t, 3, s.OrdersTotal())
	assert.False(t, s.UsersLoading())
	assert.False(t, s.OrdersLoading())

	u, ok := s.UserByID(1)
	require.True(t, ok)
	assert.Equal(t, "B", u.Name)

	o, ok := s.OrderByID(2)
	require.True(t, ok)
	assert.Equal(t, 20.0, o.Total)

	_, ok = s.OrderByID(9)
	assert.False(t, ok)
}
