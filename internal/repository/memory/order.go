package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sakif/orderdesk/internal/apperror"
	"github.com/sakif/orderdesk/internal/model"
	"github.com/sakif/orderdesk/internal/repository"
)

// compile-time check that *OrderRepo implements repository.OrderRepository
var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo is the simulated orders backend.
type OrderRepo struct {
	mu      sync.RWMutex
	orders  []model.Order
	latency time.Duration
}

// SeedOrders returns the canonical starter purchases for the seeded users.
func SeedOrders() []model.Order {
	return []model.Order{
		{ID: 0, UserID: 0, Total: 80},
		{ID: 1, UserID: 0, Total: 160},
		{ID: 2, UserID: 0, Total: 20},
		{ID: 3, UserID: 1, Total: 100},
		{ID: 4, UserID: 1, Total: 50},
		{ID: 5, UserID: 2, Total: 75},
	}
}

// NewOrderRepo returns an orders backend seeded with purchases for the
// three seeded users.
func NewOrderRepo(latency time.Duration) *OrderRepo {
	return &OrderRepo{
		orders:  SeedOrders(),
		latency: latency,
	}
}

// List returns a snapshot of every order.
func (r *OrderRepo) List(ctx context.Context) ([]model.Order, error) {
	if err := wait(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

// Create assigns the next id (max existing + 1, or 0 if empty) and stores
// the order. The caller-provided id is ignored.
func (r *OrderRepo) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if err := wait(ctx, r.latency); err != nil {
		return model.Order{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var next int64
	for _, o := range r.orders {
		if o.ID >= next {
			next = o.ID + 1
		}
	}
	order.ID = next
	r.orders = append(r.orders, order)
	return order, nil
}

// Update merges fields into the stored order; fails with ErrNotFound for an
// absent id.
func (r *OrderRepo) Update(ctx context.Context, order model.Order) (model.Order, error) {
	if err := wait(ctx, r.latency); err != nil {
		return model.Order{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID == order.ID {
			o.UserID = order.UserID
			o.Total = order.Total
			r.orders[i] = o
			return o, nil
		}
	}
	return model.Order{}, apperror.NotFound("order", order.ID)
}

// Delete removes the order if present. Absent ids succeed unchanged.
func (r *OrderRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if err := wait(ctx, r.latency); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.orders[:0]
	for _, o := range r.orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	r.orders = kept
	return id, nil
}

// DeleteByUser removes every order owned by userID and returns the user id
// once they are all gone. Owning no orders is not an error.
func (r *OrderRepo) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	if err := wait(ctx, r.latency); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.orders[:0]
	for _, o := range r.orders {
		if o.UserID != userID {
			kept = append(kept, o)
		}
	}
	r.orders = kept
	return userID, nil
}
