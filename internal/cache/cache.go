// Package cache implements the polling resource cache that keeps one remote
// collection's snapshot available to a subscriber with minimal staleness.
//
// A Subscription polls its collection key on a fixed interval and on
// reconnect/refocus events, exposes the latest decoded payload plus an error
// slot (stale-while-revalidate: a failed refresh keeps the previous payload),
// and offers a manual Revalidate trigger. At most one fetch is in flight per
// subscription; triggers that fire during a fetch are dropped, not queued —
// the next tick tries again.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultPollInterval matches the refresh interval every screen of the
// original panel used.
const DefaultPollInterval = 5 * time.Second

// Fetcher retrieves the raw payload for a collection key. A key must resolve
// to a deterministic GET request with no side effects.
type Fetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, key string) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, key string) ([]byte, error) {
	return f(ctx, key)
}

// Events groups the external refresh triggers a subscription listens to
// beyond its own timer. Nil channels are valid and simply never fire.
// Injectable so tests can drive synthetic reconnect/refocus events.
type Events struct {
	Reconnect <-chan struct{}
	Focus     <-chan struct{}
}

// Store creates subscriptions and shares in-flight fetches between
// subscriptions holding the same key, so two screens watching one endpoint
// cost a single request per cycle.
type Store struct {
	fetcher  Fetcher
	interval time.Duration
	logger   *slog.Logger
	group    singleflight.Group

	// newTicker is the timer factory. Tests replace it with a fake to drive
	// polls deterministically.
	newTicker func(d time.Duration) Ticker
}

// NewStore creates a Store polling at the given interval.
// A non-positive interval falls back to DefaultPollInterval.
func NewStore(fetcher Fetcher, interval time.Duration, logger *slog.Logger) *Store {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		fetcher:   fetcher,
		interval:  interval,
		logger:    logger,
		newTicker: newRealTicker,
	}
}

// Subscribe creates a cache entry for key and starts its refresh loop with
// an immediate initial fetch. The entry lives until Stop is called; a screen
// changing its key (page navigation) tears the old subscription down and
// subscribes anew.
func (s *Store) Subscribe(key string, events Events) *Subscription {
	ctx, cancel := context.WithCancel(context.Background())

	sub := &Subscription{
		key:     key,
		store:   s,
		logger:  s.logger.With(slog.String("key", key)),
		updates: make(chan struct{}, 1),
		cancel:  cancel,
		ctx:     ctx,
		done:    make(chan struct{}),
	}

	sub.logger.Debug("subscribed")
	sub.kick(ctx)

	go sub.run(ctx, events, s.newTicker(s.interval))

	return sub
}

// fetch runs one fetch for key, deduplicated across subscriptions via
// singleflight: concurrent callers for the same key share one request.
func (s *Store) fetch(ctx context.Context, key string) ([]byte, error) {
	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.fetcher.Fetch(ctx, key)
	})

	if shared {
		s.logger.Debug("fetch shared across subscribers", slog.String("key", key))
	}

	if err != nil {
		return nil, err
	}

	payload, _ := v.([]byte)

	return payload, nil
}

// Subscription is the handle a screen holds on one collection key. Payload
// and Err let the subscriber distinguish "never loaded" (nil payload) from
// "loaded but last refresh failed" (payload present, error set).
type Subscription struct {
	key    string
	store  *Store
	logger *slog.Logger

	mu            sync.Mutex
	payload       json.RawMessage
	err           error
	lastFetchedAt time.Time

	inFlight atomic.Bool
	updates  chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup
}

// Key returns the collection key this subscription polls.
func (sub *Subscription) Key() string {
	return sub.key
}

// Payload returns the latest successfully fetched payload, or nil if no
// fetch has succeeded yet. The returned bytes are owned by the cache and
// must not be modified.
func (sub *Subscription) Payload() json.RawMessage {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	return sub.payload
}

// Err returns the error from the most recent refresh, or nil if it
// succeeded. A non-nil error with a non-nil Payload means the cache is
// serving a stale snapshot.
func (sub *Subscription) Err() error {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	return sub.err
}

// LastFetchedAt returns the completion time of the last successful fetch.
func (sub *Subscription) LastFetchedAt() time.Time {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	return sub.lastFetchedAt
}

// Updates returns a channel that receives a (coalesced) signal after every
// applied refresh, success or failure. Consumers re-read Payload/Err on each
// signal.
func (sub *Subscription) Updates() <-chan struct{} {
	return sub.updates
}

// Revalidate requests an immediate refresh. Dropped if a fetch is already in
// flight or the subscription is stopped.
func (sub *Subscription) Revalidate() {
	sub.kick(sub.ctx)
}

// Stop tears the subscription down: the timer stops, in-flight fetch results
// are discarded, and no state mutation occurs after Stop returns.
func (sub *Subscription) Stop() {
	sub.cancel()
	<-sub.done
	sub.wg.Wait()
	sub.logger.Debug("unsubscribed")
}

// run is the refresh loop: fixed timer plus reconnect/refocus events.
func (sub *Subscription) run(ctx context.Context, events Events, tick Ticker) {
	defer close(sub.done)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C():
			sub.kick(ctx)
		case <-events.Reconnect:
			sub.logger.Debug("refresh on reconnect")
			sub.kick(ctx)
		case <-events.Focus:
			sub.logger.Debug("refresh on focus")
			sub.kick(ctx)
		}
	}
}

// kick starts a fetch unless one is already in flight (trigger coalescing)
// or the subscription is stopped.
func (sub *Subscription) kick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	if !sub.inFlight.CompareAndSwap(false, true) {
		sub.logger.Debug("refresh coalesced, fetch already in flight")

		return
	}

	sub.wg.Add(1)

	go func() {
		defer sub.wg.Done()
		defer sub.inFlight.Store(false)

		payload, err := sub.store.fetch(ctx, sub.key)

		// Teardown guard: results arriving after cancellation are dropped so
		// a stopped subscription is never mutated.
		if ctx.Err() != nil {
			return
		}

		// A shared flight runs on the first caller's context. If that caller
		// stopped mid-flight the shared result is context.Canceled even though
		// this subscription is still live; that is not a poll failure, so drop
		// it and let the next trigger retry.
		if errors.Is(err, context.Canceled) {
			sub.logger.Debug("shared fetch canceled by another subscriber, retrying on next trigger")

			return
		}

		sub.apply(payload, err)
	}()
}

// apply records a completed fetch. On failure the previous payload is
// retained (stale-while-revalidate); on success the error slot is cleared.
func (sub *Subscription) apply(payload []byte, err error) {
	sub.mu.Lock()

	if err != nil {
		sub.err = err
		sub.logger.Warn("refresh failed, serving stale payload",
			slog.Bool("has_payload", sub.payload != nil),
			slog.String("error", err.Error()),
		)
	} else {
		sub.payload = payload
		sub.err = nil
		sub.lastFetchedAt = time.Now()
	}

	sub.mu.Unlock()
	sub.notify()
}

// notify signals Updates without blocking; back-to-back refreshes coalesce
// into one pending signal.
func (sub *Subscription) notify() {
	select {
	case sub.updates <- struct{}{}:
	default:
	}
}
