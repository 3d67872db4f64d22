package action

import "github.com/sakif/orderdesk/internal/model"

// Users API intents.
//
// Every mutating command (LoadUsers, AddUser, UpdateUser, DeleteUser) is
// bracketed by the orchestration layer: UsersRequestStart before the backend
// call, then either [<op>Success, UsersRequestEnd] or
// [UsersRequestFailure, UsersRequestEnd]. The end intent is unconditional —
// that is what keeps the loading flag from sticking.

// UsersRequestStart marks the beginning of a users backend request.
type UsersRequestStart struct{}

// UsersRequestEnd closes the bracket opened by UsersRequestStart. It fires
// on success and on failure alike.
type UsersRequestEnd struct{}

// LoadUsers asks for a full resync of the users collection.
type LoadUsers struct{}

// LoadUsersSuccess carries the complete authoritative user list; the store
// replaces its collection rather than merging.
type LoadUsersSuccess struct {
	Users []model.User
}

// AddUser asks the backend to create a user from the draft.
type AddUser struct {
	User model.NewUser
}

// AddUserSuccess carries the created user, id assigned by the repository.
type AddUserSuccess struct {
	User model.User
}

// UpdateUser asks the backend to patch the user with a matching id.
type UpdateUser struct {
	User model.User
}

// UpdateUserSuccess carries the user as the repository stored it.
type UpdateUserSuccess struct {
	User model.User
}

// DeleteUser asks the backend to remove the user and, afterwards, that
// user's orders.
type DeleteUser struct {
	ID int64
}

// DeleteUserSuccess confirms the user record is gone from the repository.
// The reducer cascades: the user's orders leave the store in the same
// transition, and the selection is cleared if it pointed at the user.
type DeleteUserSuccess struct {
	ID int64
}

// SetSelectedUser changes the current selection. A nil ID clears it.
// No existence check happens here; the detail-fetch watcher copes with
// selections that point at nothing.
type SetSelectedUser struct {
	ID *int64
}

// SetUserDetails stores the fetched detail text for the selected user,
// or nil to clear it.
type SetUserDetails struct {
	Details *string
}

// StartLoadUserDetails and EndLoadUserDetails bracket the detail fetch the
// same way the request start/end pair brackets collection requests.
type StartLoadUserDetails struct{}

type EndLoadUserDetails struct{}

// UsersRequestFailure reports a failed users backend call. Always paired
// with UsersRequestEnd by the orchestration layer.
type UsersRequestFailure struct {
	ErrorMsg string
}

func (UsersRequestStart) isAction()    {}
func (UsersRequestEnd) isAction()      {}
func (LoadUsers) isAction()            {}
func (LoadUsersSuccess) isAction()     {}
func (AddUser) isAction()              {}
func (AddUserSuccess) isAction()       {}
func (UpdateUser) isAction()           {}
func (UpdateUserSuccess) isAction()    {}
func (DeleteUser) isAction()           {}
func (DeleteUserSuccess) isAction()    {}
func (SetSelectedUser) isAction()      {}
func (SetUserDetails) isAction()       {}
func (StartLoadUserDetails) isAction() {}
func (EndLoadUserDetails) isAction()   {}
func (UsersRequestFailure) isAction()  {}
