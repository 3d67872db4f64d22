package model

// Order is a purchase belonging to exactly one user. UserID is a foreign key
// into the users collection; the store's reducer is responsible for keeping
// that reference valid when users are removed.
type Order struct {
	ID     int64   `json:"id"     db:"id"`
	UserID int64   `json:"userId" db:"user_id"`
	Total  float64 `json:"total"  db:"total"` // never negative
}
