// Package model defines the data structures used throughout the application.
package model

// User represents a customer account as the backend reports it.
//
// WHY ID int64?
// Backend ids are small sequential integers (max existing id + 1), but int64
// matches what database drivers hand back and leaves no room for overflow
// surprises if the numbering scheme ever changes.
type User struct {
	ID   int64  `json:"id"   db:"id"`
	Name string `json:"name" db:"name"`
}

// NewUser is the pre-creation projection of a User: everything the caller
// provides, nothing the repository assigns. Keeping it a separate type means
// a half-built User with a zero ID can never leak into the store.
type NewUser struct {
	Name string `json:"name"`
}
