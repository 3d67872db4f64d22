package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sakif/orderdesk/internal/apperror"
	"github.com/sakif/orderdesk/internal/model"
	"github.com/sakif/orderdesk/internal/repository"
)

// compile-time check that *UserRepo implements repository.UserRepository
var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo is the simulated users backend.
//
// The mutex guards the slice, not the whole call: the latency sleep happens
// outside the critical section so concurrent requests overlap the way real
// network calls would.
type UserRepo struct {
	mu      sync.RWMutex
	users   []model.User
	latency time.Duration
}

// SeedUsers returns the canonical starter accounts. Both backends begin
// from this data set so swapping them is invisible to the core.
func SeedUsers() []model.User {
	return []model.User{
		{ID: 0, Name: "User 1"},
		{ID: 1, Name: "User 2"},
		{ID: 2, Name: "User 3"},
	}
}

// NewUserRepo returns a users backend pre-seeded with three accounts.
func NewUserRepo(latency time.Duration) *UserRepo {
	return &UserRepo{
		users:   SeedUsers(),
		latency: latency,
	}
}

// List returns a snapshot of every user.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	if err := wait(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Return a copy so the caller can't reach into our backing slice.
	out := make([]model.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// Create assigns the next id (max existing + 1, or 0 if empty) and stores
// the new user.
func (r *UserRepo) Create(ctx context.Context, draft model.NewUser) (model.User, error) {
	if err := wait(ctx, r.latency); err != nil {
		return model.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var next int64
	for _, u := range r.users {
		if u.ID >= next {
			next = u.ID + 1
		}
	}
	user := model.User{ID: next, Name: draft.Name}
	r.users = append(r.users, user)
	return user, nil
}

// Update merges the given fields into the stored user. The id is immutable
// and must exist; otherwise the call fails with ErrNotFound.
func (r *UserRepo) Update(ctx context.Context, user model.User) (model.User, error) {
	if err := wait(ctx, r.latency); err != nil {
		return model.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == user.ID {
			u.Name = user.Name
			r.users[i] = u
			return u, nil
		}
	}
	return model.User{}, apperror.NotFound("user", user.ID)
}

// Delete removes the user if present. Absent ids succeed unchanged.
func (r *UserRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if err := wait(ctx, r.latency); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.users[:0]
	for _, u := range r.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	r.users = kept
	return id, nil
}

// Details returns the detail blurb for a user. The simulated backend does
// not check existence, mirroring a detail endpoint that composes its answer
// from the id alone.
func (r *UserRepo) Details(ctx context.Context, id int64) (string, error) {
	if err := wait(ctx, r.latency); err != nil {
		return "", err
	}
	return fmt.Sprintf("Details for user with id %d", id), nil
}
