package store

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/sakif/orderdesk/internal/action"
)

// dispatchQueueSize bounds the intent queue. Dispatch is fire-and-forget;
// if the queue ever fills (the run loop has stalled, which is a defect)
// further intents are dropped with an error log instead of blocking the
// caller.
const dispatchQueueSize = 1024

// Store owns the state and is the only writer to it. A single run loop
// consumes the dispatch queue and applies Reduce to one intent at a time,
// so two intents are never reduced concurrently. Readers take snapshots via
// State() as often as they like.
//
// Two kinds of observers hang off the store:
//   - action subscribers (the effects layer) receive every intent after it
//     has been reduced, in reduction order;
//   - change subscribers receive a coalesced "state changed" signal and
//     read the snapshot themselves.
type Store struct {
	logger *slog.Logger

	mu    sync.RWMutex
	state State

	dispatch chan action.Action
	done     chan struct{}
	wg       sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once

	subMu      sync.Mutex
	actionSubs []chan action.Action
	changeSubs []chan struct{}
}

// New creates a store holding InitialState. Call Start before dispatching.
func New(logger *slog.Logger) *Store {
	return &Store{
		logger:   logger,
		state:    InitialState(),
		dispatch: make(chan action.Action, dispatchQueueSize),
		done:     make(chan struct{}),
	}
}

// Start launches the reduction loop in the background.
func (s *Store) Start() {
	s.startOnce.Do(func() {
		s.wg.Add(1)
		go s.run()
	})
}

// Stop shuts the reduction loop down and waits for it to drain out.
// Intents still queued at stop time are discarded.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

// Dispatch queues an intent. Fire-and-forget: it never blocks and returns
// nothing; outcomes are observed through the derived views.
func (s *Store) Dispatch(a action.Action) {
	select {
	case s.dispatch <- a:
	case <-s.done:
		s.logger.Debug("store stopped, discarding intent", slog.String("intent", Name(a)))
	default:
		s.logger.Error("dispatch queue full, dropping intent", slog.String("intent", Name(a)))
	}
}

// State returns the current snapshot. Snapshots are immutable; callers can
// keep them as long as they want.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SubscribeActions registers an intent observer. The channel receives every
// intent after reduction, in order. Subscribers must keep draining their
// channel; the run loop blocks on them rather than drop intents.
func (s *Store) SubscribeActions() <-chan action.Action {
	ch := make(chan action.Action, 64)
	s.subMu.Lock()
	s.actionSubs = append(s.actionSubs, ch)
	s.subMu.Unlock()
	return ch
}

// SubscribeChanges registers a state observer. The channel carries a
// coalesced signal: consecutive changes between reads collapse into one.
func (s *Store) SubscribeChanges() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.subMu.Lock()
	s.changeSubs = append(s.changeSubs, ch)
	s.subMu.Unlock()
	return ch
}

func (s *Store) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			return
		case a := <-s.dispatch:
			s.mu.Lock()
			s.state = Reduce(s.state, a)
			s.mu.Unlock()

			s.logger.Debug("intent reduced", slog.String("intent", Name(a)))

			if !s.publish(a) {
				return
			}
		}
	}
}

// publish fans the reduced intent out to observers. Returns false when the
// store is stopped mid-send.
func (s *Store) publish(a action.Action) bool {
	s.subMu.Lock()
	actionSubs := s.actionSubs
	changeSubs := s.changeSubs
	s.subMu.Unlock()

	for _, sub := range actionSubs {
		select {
		case sub <- a:
		case <-s.done:
			return false
		}
	}
	for _, sub := range changeSubs {
		select {
		case sub <- struct{}{}:
		default: // a signal is already pending, nothing new to say
		}
	}
	return true
}

// Name returns a short human-readable name for an intent, for logs.
func Name(a action.Action) string {
	return fmt.Sprintf("%T", a)
}
