package effects

import (
	"context"
	"log/slog"

	"github.com/rs/xid"

	"github.com/sakif/orderdesk/internal/action"
)

// runDetailsWatcher reacts to selection changes in the store (switch
// policy). Consecutive identical selections are deduplicated. A nil
// selection clears the details immediately; a non-nil one starts a detail
// fetch under a cancelable context tagged with a generation number.
//
// Supersession discards the stale fetch wholesale: no details, no failure,
// not even the end intent — the newer selection's own start/end bracket
// takes over the loading flag. Only the latest generation's result is ever
// applied to state.
func (e *Effects) runDetailsWatcher(ctx context.Context, changes <-chan struct{}) {
	defer e.wg.Done()

	var cancelPrev context.CancelFunc
	defer func() {
		if cancelPrev != nil {
			cancelPrev()
		}
	}()

	// The selection starts out empty; announce the empty details once so
	// a collaborator that missed nothing still sees a defined value. The
	// dispatch also raises a change signal, so the loop below always gets
	// at least one turn — including for a selection that was reduced
	// between Run returning and this goroutine getting scheduled.
	e.store.Dispatch(action.SetUserDetails{Details: nil})

	// last is only meaningful once seen is set. Seeding it from a state
	// snapshot instead would mark a selection that raced in before the
	// first loop turn as already handled, and its fetch would be lost.
	var (
		last *int64
		seen bool
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			cur := e.store.State().SelectedUserID
			if seen && equalID(last, cur) {
				continue
			}
			last, seen = cur, true

			// A new selection supersedes whatever is in flight.
			if cancelPrev != nil {
				cancelPrev()
				cancelPrev = nil
			}
			gen := e.detailGen.Add(1)

			if cur == nil {
				e.store.Dispatch(action.SetUserDetails{Details: nil})
				continue
			}

			id := *cur
			fetchCtx, cancel := context.WithCancel(ctx)
			cancelPrev = cancel
			log := e.logger.With(
				slog.String("family", "userDetails"),
				slog.String("requestId", xid.New().String()),
				slog.Int64("userId", id),
			)

			e.store.Dispatch(action.StartLoadUserDetails{})
			e.workers.Add(1)
			go e.fetchDetails(fetchCtx, log, id, gen)
		}
	}
}

// fetchDetails performs one detail lookup and applies its outcome unless a
// newer selection arrived while it was running.
func (e *Effects) fetchDetails(ctx context.Context, log *slog.Logger, id int64, gen uint64) {
	defer e.workers.Done()

	details, err := e.users.Details(ctx, id)

	// Supersession can still land between this check and the dispatches
	// below; that window cannot be closed from outside the store. A stale
	// result slipping through is transient: the superseding fetch's own
	// dispatches reduce after it, so the settled state always belongs to
	// the newest selection.
	if ctx.Err() != nil || e.detailGen.Load() != gen {
		log.Debug("detail fetch superseded, discarding result")
		return
	}

	if err != nil {
		log.Error("detail fetch failed", slog.String("error", err.Error()))
		e.store.Dispatch(action.SetUserDetails{Details: nil})
		e.store.Dispatch(action.UsersRequestFailure{ErrorMsg: err.Error()})
	} else {
		log.Info("user details loaded")
		e.store.Dispatch(action.SetUserDetails{Details: &details})
	}

	e.store.Dispatch(action.EndLoadUserDetails{})
}

func equalID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
