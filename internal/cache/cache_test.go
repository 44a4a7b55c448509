package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTicker is a hand-fed Ticker for deterministic poll tests.
type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{ch: make(chan time.Time)}
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() { f.stopped.Store(true) }

// tick feeds one tick and waits until the loop has picked it up.
func (f *fakeTicker) tick(t *testing.T) {
	t.Helper()

	select {
	case f.ch <- time.Now():
	case <-time.After(2 * time.Second):
		t.Fatal("refresh loop did not consume tick")
	}
}

// scriptedFetcher serves configurable responses and counts calls.
type scriptedFetcher struct {
	mu      sync.Mutex
	payload []byte
	err     error
	calls   atomic.Int32

	// gate, when non-nil, blocks Fetch until closed or ctx is canceled.
	gate chan struct{}
	// entered signals each Fetch entry when non-nil.
	entered chan struct{}
}

func (f *scriptedFetcher) Fetch(ctx context.Context, _ string) ([]byte, error) {
	f.calls.Add(1)

	f.mu.Lock()
	gate := f.gate
	entered := f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	return f.payload, nil
}

func (f *scriptedFetcher) set(payload []byte, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.payload = payload
	f.err = err
}

func newTestStore(fetcher Fetcher, tick *fakeTicker) *Store {
	s := NewStore(fetcher, DefaultPollInterval, nil)
	s.newTicker = func(time.Duration) Ticker { return tick }

	return s
}

func waitUpdate(t *testing.T, sub *Subscription) {
	t.Helper()

	select {
	case <-sub.Updates():
	case <-time.After(2 * time.Second):
		t.Fatal("no update signal")
	}
}

func TestSubscribe_InitialFetch(t *testing.T) {
	fetcher := &scriptedFetcher{}
	fetcher.set([]byte(`{"bid":[]}`), nil)

	store := newTestStore(fetcher, newFakeTicker())
	sub := store.Subscribe("/bids", Events{})
	defer sub.Stop()

	waitUpdate(t, sub)

	assert.Equal(t, `{"bid":[]}`, string(sub.Payload()))
	assert.NoError(t, sub.Err())
	assert.False(t, sub.LastFetchedAt().IsZero())
}

func TestTimerTick_Refreshes(t *testing.T) {
	fetcher := &scriptedFetcher{}
	fetcher.set([]byte(`v1`), nil)

	tick := newFakeTicker()
	store := newTestStore(fetcher, tick)
	sub := store.Subscribe("/bids", Events{})
	defer sub.Stop()

	waitUpdate(t, sub)
	require.Equal(t, "v1", string(sub.Payload()))

	fetcher.set([]byte(`v2`), nil)
	tick.tick(t)
	waitUpdate(t, sub)

	assert.Equal(t, "v2", string(sub.Payload()))
}

func TestRefreshFailure_KeepsStalePayload(t *testing.T) {
	fetcher := &scriptedFetcher{}
	fetcher.set([]byte(`good`), nil)

	tick := newFakeTicker()
	store := newTestStore(fetcher, tick)
	sub := store.Subscribe("/bids", Events{})
	defer sub.Stop()

	waitUpdate(t, sub)
	fetchedAt := sub.LastFetchedAt()

	fetcher.set(nil, errors.New("boom"))
	tick.tick(t)
	waitUpdate(t, sub)

	// Stale-while-revalidate: payload survives, error slot is set.
	assert.Equal(t, "good", string(sub.Payload()))
	assert.Error(t, sub.Err())
	assert.Equal(t, fetchedAt, sub.LastFetchedAt())

	// A later success clears the error.
	fetcher.set([]byte(`fresh`), nil)
	tick.tick(t)
	waitUpdate(t, sub)

	assert.Equal(t, "fresh", string(sub.Payload()))
	assert.NoError(t, sub.Err())
}

func TestNeverLoaded_VsLoadedWithError(t *testing.T) {
	fetcher := &scriptedFetcher{}
	fetcher.set(nil, errors.New("down"))

	store := newTestStore(fetcher, newFakeTicker())
	sub := store.Subscribe("/bids", Events{})
	defer sub.Stop()

	waitUpdate(t, sub)

	// Never loaded: nil payload plus error.
	assert.Nil(t, sub.Payload())
	assert.Error(t, sub.Err())
}

func TestRevalidate_TriggersImmediateFetch(t *testing.T) {
	fetcher := &scriptedFetcher{}
	fetcher.set([]byte(`v1`), nil)

	store := newTestStore(fetcher, newFakeTicker())
	sub := store.Subscribe("/bids", Events{})
	defer sub.Stop()

	waitUpdate(t, sub)

	fetcher.set([]byte(`v2`), nil)
	sub.Revalidate()
	waitUpdate(t, sub)

	assert.Equal(t, "v2", string(sub.Payload()))
}

func TestReconnectAndFocus_TriggerRefresh(t *testing.T) {
	fetcher := &scriptedFetcher{}
	fetcher.set([]byte(`v1`), nil)

	reconnect := make(chan struct{})
	focus := make(chan struct{})

	store := newTestStore(fetcher, newFakeTicker())
	sub := store.Subscribe("/bids", Events{Reconnect: reconnect, Focus: focus})
	defer sub.Stop()

	waitUpdate(t, sub)

	fetcher.set([]byte(`after-reconnect`), nil)
	reconnect <- struct{}{}
	waitUpdate(t, sub)
	assert.Equal(t, "after-reconnect", string(sub.Payload()))

	fetcher.set([]byte(`after-focus`), nil)
	focus <- struct{}{}
	waitUpdate(t, sub)
	assert.Equal(t, "after-focus", string(sub.Payload()))
}

func TestTriggersDuringFlight_AreDropped(t *testing.T) {
	fetcher := &scriptedFetcher{
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	fetcher.set([]byte(`v1`), nil)

	store := newTestStore(fetcher, newFakeTicker())
	sub := store.Subscribe("/bids", Events{})
	defer sub.Stop()

	// Initial fetch is now blocked inside the fetcher.
	<-fetcher.entered

	// These fire while the fetch is in flight and must be dropped.
	sub.Revalidate()
	sub.Revalidate()
	sub.Revalidate()

	close(fetcher.gate)
	waitUpdate(t, sub)

	assert.Equal(t, int32(1), fetcher.calls.Load(), "coalesced triggers must not queue extra fetches")
	assert.Equal(t, "v1", string(sub.Payload()))
}

func TestStop_NoMutationAfterTeardown(t *testing.T) {
	fetcher := &scriptedFetcher{gate: make(chan struct{}), entered: make(chan struct{}, 1)}
	fetcher.set([]byte(`late`), nil)

	store := newTestStore(fetcher, newFakeTicker())
	sub := store.Subscribe("/bids", Events{})

	// The initial fetch is in flight; Stop cancels it and waits.
	<-fetcher.entered
	sub.Stop()

	// The canceled fetch's result must have been discarded.
	assert.Nil(t, sub.Payload())

	select {
	case <-sub.Updates():
		t.Fatal("update signaled after Stop")
	default:
	}
}

func TestSharedKey_SingleFetchAcrossSubscribers(t *testing.T) {
	fetcher := &scriptedFetcher{
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	fetcher.set([]byte(`shared`), nil)

	store := newTestStore(fetcher, newFakeTicker())

	subA := store.Subscribe("/bids", Events{})
	defer subA.Stop()

	// A's fetch is in flight; B's initial fetch joins it via singleflight.
	<-fetcher.entered

	tickB := newFakeTicker()
	store.newTicker = func(time.Duration) Ticker { return tickB }
	subB := store.Subscribe("/bids", Events{})
	defer subB.Stop()

	// Give B's kick a moment to join the in-flight call, then release.
	time.Sleep(50 * time.Millisecond)
	close(fetcher.gate)

	waitUpdate(t, subA)
	waitUpdate(t, subB)

	assert.Equal(t, "shared", string(subA.Payload()))
	assert.Equal(t, "shared", string(subB.Payload()))
	assert.Equal(t, int32(1), fetcher.calls.Load(), "same-key fetches must be shared")
}

func TestSharedFetchCanceled_NotRecordedAsPollFailure(t *testing.T) {
	fetcher := &scriptedFetcher{}
	fetcher.set([]byte(`good`), nil)

	store := newTestStore(fetcher, newFakeTicker())
	sub := store.Subscribe("/bids", Events{})
	defer sub.Stop()

	waitUpdate(t, sub)
	require.Equal(t, "good", string(sub.Payload()))

	// A shared flight canceled by another subscriber's Stop surfaces as
	// context.Canceled on a live subscription. That result must be dropped,
	// not recorded as a refresh failure.
	fetcher.set(nil, context.Canceled)
	sub.Revalidate()

	require.Eventually(t, func() bool { return !sub.inFlight.Load() },
		2*time.Second, 10*time.Millisecond)

	assert.NoError(t, sub.Err())
	assert.Equal(t, "good", string(sub.Payload()))

	select {
	case <-sub.Updates():
		t.Fatal("dropped result must not signal an update")
	default:
	}

	// The next trigger retries normally.
	fetcher.set([]byte(`fresh`), nil)
	sub.Revalidate()
	waitUpdate(t, sub)

	assert.Equal(t, "fresh", string(sub.Payload()))
	assert.NoError(t, sub.Err())
}

func TestStop_StopsTicker(t *testing.T) {
	fetcher := &scriptedFetcher{}
	fetcher.set([]byte(`v1`), nil)

	tick := newFakeTicker()
	store := newTestStore(fetcher, tick)
	sub := store.Subscribe("/bids", Events{})

	waitUpdate(t, sub)
	sub.Stop()

	assert.True(t, tick.stopped.Load())
}
