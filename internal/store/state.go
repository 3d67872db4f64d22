package store

import (
	"strings"

	"github.com/sakif/orderdesk/internal/model"
)

// usersAdapter keeps users sorted by name (lexicographic); ordersAdapter
// keeps orders sorted by ascending id. Matching sort rules are what make
// the derived "all users" / "all orders" views stable for rendering.
var usersAdapter = adapter[model.User]{
	id:   func(u model.User) int64 { return u.ID },
	less: func(a, b model.User) bool { return strings.Compare(a.Name, b.Name) < 0 },
}

var ordersAdapter = adapter[model.Order]{
	id:   func(o model.Order) int64 { return o.ID },
	less: func(a, b model.Order) bool { return a.ID < b.ID },
}

// UsersState is the normalized users collection plus its request flag.
type UsersState struct {
	Collection[model.User]
	Loading bool
}

// OrdersState is the normalized orders collection plus its request flag.
type OrdersState struct {
	Collection[model.Order]
	Loading bool
}

// State is the single source of truth. Snapshots are immutable: the reducer
// copies whatever it changes, so a State handed to a reader never mutates
// under it.
//
// Selection slice invariant: when SelectedUserID is nil,
// SelectedUserDetails is nil too.
type State struct {
	Users  UsersState
	Orders OrdersState

	SelectedUserID             *int64
	SelectedUserDetailsLoading bool
	SelectedUserDetails        *string
}

// InitialState is the state before any intent has been reduced: empty
// collections, flags down, nothing selected.
func InitialState() State {
	return State{
		Users:  UsersState{Collection: usersAdapter.empty()},
		Orders: OrdersState{Collection: ordersAdapter.empty()},
	}
}
