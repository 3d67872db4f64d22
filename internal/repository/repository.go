// Package repository declares the backend contracts the orchestration layer
// talks to. Two implementations exist: repository/memory (seeded, simulated
// latency) and repository/sqlite (embedded database). The orchestration
// layer only ever sees these interfaces.
package repository

import (
	"context"

	"github.com/sakif/orderdesk/internal/model"
)

// UserRepository is the async request interface for the users data set.
//
// Contract:
//   - Create assigns a fresh id: max existing id + 1, or 0 for an empty set.
//   - Update fails with apperror.ErrNotFound if the id is absent. The id
//     itself is immutable; only the remaining fields are merged.
//   - Delete is idempotent: removing an absent id succeeds and returns it.
//   - Details returns a human-readable detail blurb for the user.
//
// No call is atomic with respect to the OrderRepository; cross-repository
// consistency (the delete cascade) is the effects layer's job.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, draft model.NewUser) (model.User, error)
	Update(ctx context.Context, user model.User) (model.User, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Details(ctx context.Context, id int64) (string, error)
}

// OrderRepository is the async request interface for the orders data set.
// Same id-assignment, NotFound and idempotent-delete rules as users.
// DeleteByUser removes every order owned by the given user and returns the
// owning user id once all of them are gone.
type OrderRepository interface {
	List(ctx context.Context) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)
	Update(ctx context.Context, order model.Order) (model.Order, error)
	Delete(ctx context.Context, id int64) (int64, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
