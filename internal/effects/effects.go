// Package effects is the orchestration layer: it subscribes to intents,
// calls the repositories, and feeds the lifecycle intents (start, success,
// failure, end) back into the store.
//
// One persistent goroutine runs per intent family. Each family enforces its
// own concurrency policy:
//
//   - exhaust (all CRUD families): while a request is in flight, further
//     triggers of the same family are dropped, not queued. A flag per
//     family, nothing more.
//   - switch (the detail fetch): a newer selection abandons interest in the
//     older fetch. The stale response is discarded when it lands; the
//     repository call itself is only told via context cancellation.
//
// Bracket discipline: every repository call is wrapped in exactly one
// requestStart/requestEnd pair for its family, with either the success or
// the failure intent in between. The end intent is dispatched on every
// path, which is what keeps the loading flags honest.
package effects

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"

	"github.com/sakif/orderdesk/internal/action"
	"github.com/sakif/orderdesk/internal/repository"
	"github.com/sakif/orderdesk/internal/store"
)

// Effects wires the repositories to the store. Create with New, launch with
// Run, and drain with Wait during shutdown.
type Effects struct {
	store    *store.Store
	users    repository.UserRepository
	orders   repository.OrderRepository
	notifier Notifier
	logger   *slog.Logger

	detailGen atomic.Uint64 // current detail-fetch generation (switch policy)

	wg      sync.WaitGroup // persistent family goroutines
	workers sync.WaitGroup // in-flight request workers
}

// New creates the orchestration layer. Dependencies are injected; nothing
// here is ambient.
func New(st *store.Store, users repository.UserRepository, orders repository.OrderRepository, notifier Notifier, logger *slog.Logger) *Effects {
	return &Effects{
		store:    st,
		users:    users,
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// work performs one backend request and dispatches its lifecycle intents.
type work func(ctx context.Context, log *slog.Logger)

// matcher inspects an intent and, when it triggers this family, returns the
// work to run.
type matcher func(a action.Action) (work, bool)

// Run subscribes every family and starts its goroutine. Subscriptions are
// taken synchronously, so an intent dispatched right after Run returns is
// seen by every family. The families stop when ctx is canceled.
func (e *Effects) Run(ctx context.Context) {
	families := []struct {
		name  string
		match matcher
	}{
		{"loadUsers", func(a action.Action) (work, bool) {
			if _, ok := a.(action.LoadUsers); !ok {
				return nil, false
			}
			return e.loadUsersWork, true
		}},
		{"addUser", func(a action.Action) (work, bool) {
			t, ok := a.(action.AddUser)
			if !ok {
				return nil, false
			}
			return e.addUserWork(t), true
		}},
		{"updateUser", func(a action.Action) (work, bool) {
			t, ok := a.(action.UpdateUser)
			if !ok {
				return nil, false
			}
			return e.updateUserWork(t), true
		}},
		{"deleteUser", func(a action.Action) (work, bool) {
			t, ok := a.(action.DeleteUser)
			if !ok {
				return nil, false
			}
			return e.deleteUserWork(t), true
		}},
		{"loadOrders", func(a action.Action) (work, bool) {
			if _, ok := a.(action.LoadOrders); !ok {
				return nil, false
			}
			return e.loadOrdersWork, true
		}},
		{"addOrder", func(a action.Action) (work, bool) {
			t, ok := a.(action.AddOrder)
			if !ok {
				return nil, false
			}
			return e.addOrderWork(t), true
		}},
		{"updateOrder", func(a action.Action) (work, bool) {
			t, ok := a.(action.UpdateOrder)
			if !ok {
				return nil, false
			}
			return e.updateOrderWork(t), true
		}},
		{"deleteOrder", func(a action.Action) (work, bool) {
			t, ok := a.(action.DeleteOrder)
			if !ok {
				return nil, false
			}
			return e.deleteOrderWork(t), true
		}},
	}

	for _, f := range families {
		sub := e.store.SubscribeActions()
		e.wg.Add(1)
		go e.runExhaust(ctx, f.name, sub, f.match)
	}

	failureSub := e.store.SubscribeActions()
	e.wg.Add(1)
	go e.runFailureAlerts(ctx, failureSub)

	changeSub := e.store.SubscribeChanges()
	e.wg.Add(1)
	go e.runDetailsWatcher(ctx, changeSub)
}

// Wait blocks until every family goroutine and every in-flight worker has
// finished. Call after canceling the Run context.
func (e *Effects) Wait() {
	e.wg.Wait()
	e.workers.Wait()
}

// runExhaust is the shared family loop for the exhaust policy. A trigger
// that arrives while this family's request is still in flight is dropped.
func (e *Effects) runExhaust(ctx context.Context, name string, sub <-chan action.Action, match matcher) {
	defer e.wg.Done()

	var inFlight atomic.Bool
	for {
		select {
		case <-ctx.Done():
			return
		case a := <-sub:
			w, ok := match(a)
			if !ok {
				continue
			}
			if !inFlight.CompareAndSwap(false, true) {
				e.logger.Debug("request in flight, dropping intent",
					slog.String("family", name),
					slog.String("intent", store.Name(a)),
				)
				continue
			}

			log := e.logger.With(
				slog.String("family", name),
				slog.String("requestId", xid.New().String()),
			)
			e.workers.Add(1)
			go func() {
				defer e.workers.Done()
				defer inFlight.Store(false)
				w(ctx, log)
			}()
		}
	}
}

// runFailureAlerts forwards every failure intent to the notifier. This
// family only observes; it never dispatches.
func (e *Effects) runFailureAlerts(ctx context.Context, sub <-chan action.Action) {
	defer e.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case a := <-sub:
			switch f := a.(type) {
			case action.UsersRequestFailure:
				e.notifier.Alert(f.ErrorMsg)
			case action.OrdersRequestFailure:
				e.notifier.Alert(f.ErrorMsg)
			}
		}
	}
}

// --- users families ---

// usersRequest runs one users backend call inside the users bracket.
func (e *Effects) usersRequest(ctx context.Context, log *slog.Logger, call func(context.Context) (action.Action, error)) {
	e.store.Dispatch(action.UsersRequestStart{})

	success, err := call(ctx)
	if err != nil {
		log.Error("users request failed", slog.String("error", err.Error()))
		e.store.Dispatch(action.UsersRequestFailure{ErrorMsg: err.Error()})
		e.store.Dispatch(action.UsersRequestEnd{})
		return
	}

	e.store.Dispatch(success)
	e.store.Dispatch(action.UsersRequestEnd{})
}

func (e *Effects) loadUsersWork(ctx context.Context, log *slog.Logger) {
	e.usersRequest(ctx, log, func(ctx context.Context) (action.Action, error) {
		users, err := e.users.List(ctx)
		if err != nil {
			return nil, err
		}
		log.Info("users loaded", slog.Int("count", len(users)))
		return action.LoadUsersSuccess{Users: users}, nil
	})
}

func (e *Effects) addUserWork(a action.AddUser) work {
	return func(ctx context.Context, log *slog.Logger) {
		e.usersRequest(ctx, log, func(ctx context.Context) (action.Action, error) {
			user, err := e.users.Create(ctx, a.User)
			if err != nil {
				return nil, err
			}
			log.Info("user created", slog.Int64("id", user.ID))
			return action.AddUserSuccess{User: user}, nil
		})
	}
}

func (e *Effects) updateUserWork(a action.UpdateUser) work {
	return func(ctx context.Context, log *slog.Logger) {
		e.usersRequest(ctx, log, func(ctx context.Context) (action.Action, error) {
			user, err := e.users.Update(ctx, a.User)
			if err != nil {
				return nil, err
			}
			log.Info("user updated", slog.Int64("id", user.ID))
			return action.UpdateUserSuccess{User: user}, nil
		})
	}
}

// deleteUserWork removes the user and then their orders. The success intent
// goes out as soon as the user record is gone; the order cleanup runs after
// it, inside its own orders bracket, without holding the success back. The
// exhaust flag for this family stays up until both calls settle, so a
// second delete can never overlap the cleanup.
func (e *Effects) deleteUserWork(a action.DeleteUser) work {
	return func(ctx context.Context, log *slog.Logger) {
		e.store.Dispatch(action.UsersRequestStart{})
		id, err := e.users.Delete(ctx, a.ID)
		if err != nil {
			log.Error("users request failed", slog.String("error", err.Error()))
			e.store.Dispatch(action.UsersRequestFailure{ErrorMsg: err.Error()})
			e.store.Dispatch(action.UsersRequestEnd{})
			return
		}
		log.Info("user deleted", slog.Int64("id", id))
		e.store.Dispatch(action.DeleteUserSuccess{ID: id})
		e.store.Dispatch(action.UsersRequestEnd{})

		// Secondary cleanup. Strictly after the user delete settled; the
		// orders must not be deleted ahead of a user whose existence is
		// still uncertain. The reducer already cascaded the store on
		// DeleteUserSuccess, so on success there is nothing to tell it
		// beyond closing the bracket.
		e.store.Dispatch(action.OrdersRequestStart{})
		userID, err := e.orders.DeleteByUser(ctx, a.ID)
		if err != nil {
			log.Error("order cleanup failed", slog.Int64("userId", a.ID), slog.String("error", err.Error()))
			e.store.Dispatch(action.OrdersRequestFailure{ErrorMsg: err.Error()})
			e.store.Dispatch(action.OrdersRequestEnd{})
			return
		}
		log.Info("orders cleaned up for deleted user", slog.Int64("userId", userID))
		e.store.Dispatch(action.OrdersRequestEnd{})
	}
}

// --- orders families ---

// ordersRequest runs one orders backend call inside the orders bracket.
func (e *Effects) ordersRequest(ctx context.Context, log *slog.Logger, call func(context.Context) (action.Action, error)) {
	e.store.Dispatch(action.OrdersRequestStart{})

	success, err := call(ctx)
	if err != nil {
		log.Error("orders request failed", slog.String("error", err.Error()))
		e.store.Dispatch(action.OrdersRequestFailure{ErrorMsg: err.Error()})
		e.store.Dispatch(action.OrdersRequestEnd{})
		return
	}

	e.store.Dispatch(success)
	e.store.Dispatch(action.OrdersRequestEnd{})
}

func (e *Effects) loadOrdersWork(ctx context.Context, log *slog.Logger) {
	e.ordersRequest(ctx, log, func(ctx context.Context) (action.Action, error) {
		orders, err := e.orders.List(ctx)
		if err != nil {
			return nil, err
		}
		log.Info("orders loaded", slog.Int("count", len(orders)))
		return action.LoadOrdersSuccess{Orders: orders}, nil
	})
}

func (e *Effects) addOrderWork(a action.AddOrder) work {
	return func(ctx context.Context, log *slog.Logger) {
		e.ordersRequest(ctx, log, func(ctx context.Context) (action.Action, error) {
			order, err := e.orders.Create(ctx, a.Order)
			if err != nil {
				return nil, err
			}
			log.Info("order created", slog.Int64("id", order.ID))
			return action.AddOrderSuccess{Order: order}, nil
		})
	}
}

func (e *Effects) updateOrderWork(a action.UpdateOrder) work {
	return func(ctx context.Context, log *slog.Logger) {
		e.ordersRequest(ctx, log, func(ctx context.Context) (action.Action, error) {
			order, err := e.orders.Update(ctx, a.Order)
			if err != nil {
				return nil, err
			}
			log.Info("order updated", slog.Int64("id", order.ID))
			return action.UpdateOrderSuccess{Order: order}, nil
		})
	}
}

func (e *Effects) deleteOrderWork(a action.DeleteOrder) work {
	return func(ctx context.Context, log *slog.Logger) {
		e.ordersRequest(ctx, log, func(ctx context.Context) (action.Action, error) {
			id, err := e.orders.Delete(ctx, a.ID)
			if err != nil {
				return nil, err
			}
			log.Info("order deleted", slog.Int64("id", id))
			return action.DeleteOrderSuccess{ID: id}, nil
		})
	}
}
