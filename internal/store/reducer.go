package store

import (
	"github.com/sakif/orderdesk/internal/action"
	"github.com/sakif/orderdesk/internal/model"
)

// Reduce advances the state by one intent. It is pure: no clocks, no
// backends, no mutation of the input — every branch returns a copy with the
// minimal changed subtree swapped out. Intents the store has no business
// with reduce to the identity (the default branch), which is also how
// command intents like LoadUsers pass through untouched.
func Reduce(state State, a action.Action) State {
	switch a := a.(type) {

	// --- Users API ---

	case action.UsersRequestStart:
		state.Users.Loading = true
		return state

	case action.UsersRequestEnd:
		state.Users.Loading = false
		return state

	case action.LoadUsersSuccess:
		state.Users.Collection = usersAdapter.setAll(a.Users)
		return state

	case action.AddUserSuccess:
		state.Users.Collection = usersAdapter.addOne(state.Users.Collection, a.User)
		return state

	case action.UpdateUserSuccess:
		state.Users.Collection = usersAdapter.updateOne(state.Users.Collection, a.User)
		return state

	case action.DeleteUserSuccess:
		// Cascade in one transition: the user, every order referencing the
		// user, and (if the user was selected) the selection slice all go
		// together. No observable state ever has the user gone but the
		// orders still present.
		state.Users.Collection = usersAdapter.removeOne(state.Users.Collection, a.ID)
		state.Orders.Collection = ordersAdapter.removeMany(state.Orders.Collection,
			func(o model.Order) bool { return o.UserID == a.ID })
		if state.SelectedUserID != nil && *state.SelectedUserID == a.ID {
			state.SelectedUserID = nil
			state.SelectedUserDetails = nil
		}
		return state

	case action.SetSelectedUser:
		state.SelectedUserID = a.ID
		return state

	case action.SetUserDetails:
		state.SelectedUserDetails = a.Details
		return state

	case action.StartLoadUserDetails:
		state.SelectedUserDetailsLoading = true
		return state

	case action.EndLoadUserDetails:
		state.SelectedUserDetailsLoading = false
		return state

	// --- Orders API ---

	case action.OrdersRequestStart:
		state.Orders.Loading = true
		return state

	case action.OrdersRequestEnd:
		state.Orders.Loading = false
		return state

	case action.LoadOrdersSuccess:
		state.Orders.Collection = ordersAdapter.setAll(a.Orders)
		return state

	case action.AddOrderSuccess:
		state.Orders.Collection = ordersAdapter.addOne(state.Orders.Collection, a.Order)
		return state

	case action.UpdateOrderSuccess:
		state.Orders.Collection = ordersAdapter.updateOne(state.Orders.Collection, a.Order)
		return state

	case action.DeleteOrderSuccess:
		state.Orders.Collection = ordersAdapter.removeOne(state.Orders.Collection, a.ID)
		return state

	default:
		// Command intents (LoadUsers, AddUser, ...) and failure intents
		// carry no state of their own; the effects layer reacts to them.
		return state
	}
}
