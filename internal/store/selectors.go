package store

import (
	"github.com/sakif/orderdesk/internal/model"
)

// Derived views. Each is a pure function of one State snapshot; because
// snapshots are immutable, a caller can hold the State value and evaluate
// as many of these as it likes without re-reading the store.

// UserSummary is the combined read model for the selected user: the user
// record plus the sum of their order totals.
type UserSummary struct {
	User              model.User `json:"user"`
	TotalOrdersAmount float64    `json:"totalOrdersAmount"`
}

// AllUsers returns every user in name order.
func (s State) AllUsers() []model.User {
	return s.Users.All()
}

// UserByID looks a user up by id.
func (s State) UserByID(id int64) (model.User, bool) {
	u, ok := s.Users.Entities[id]
	return u, ok
}

// UsersTotal returns the user count.
func (s State) UsersTotal() int {
	return s.Users.Len()
}

// UsersLoading reports whether a users request is in flight.
func (s State) UsersLoading() bool {
	return s.Users.Loading
}

// AllOrders returns every order in id order.
func (s State) AllOrders() []model.Order {
	return s.Orders.All()
}

// OrderByID looks an order up by id.
func (s State) OrderByID(id int64) (model.Order, bool) {
	o, ok := s.Orders.Entities[id]
	return o, ok
}

// OrdersTotal returns the order count.
func (s State) OrdersTotal() int {
	return s.Orders.Len()
}

// OrdersLoading reports whether an orders request is in flight.
func (s State) OrdersLoading() bool {
	return s.Orders.Loading
}

// SelectedUser returns the selected user, or nil when nothing is selected
// or the selection points at a user the store doesn't have.
func (s State) SelectedUser() *model.User {
	if s.SelectedUserID == nil {
		return nil
	}
	u, ok := s.Users.Entities[*s.SelectedUserID]
	if !ok {
		return nil
	}
	return &u
}

// OrdersForSelectedUser returns the selected user's orders in id order,
// empty when nothing is selected.
func (s State) OrdersForSelectedUser() []model.Order {
	if s.SelectedUserID == nil {
		return []model.Order{}
	}
	out := []model.Order{}
	for _, id := range s.Orders.IDs {
		if o := s.Orders.Entities[id]; o.UserID == *s.SelectedUserID {
			out = append(out, o)
		}
	}
	return out
}

// Summary combines the selected user with the sum of their order totals.
// Nil when no user is selected or the selected id is unknown.
func (s State) Summary() *UserSummary {
	user := s.SelectedUser()
	if user == nil {
		return nil
	}

	var total float64
	for _, o := range s.OrdersForSelectedUser() {
		total += o.Total
	}
	return &UserSummary{User: *user, TotalOrdersAmount: total}
}
