package panel

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nsbbezerra/santa-maria-panel/internal/cache"
	"github.com/nsbbezerra/santa-maria-panel/internal/mirror"
	"github.com/nsbbezerra/santa-maria-panel/internal/view"
)

// ScreenConfig wires one collection's key scheme, payload decoding, and
// field accessors into a Screen. TitleOf and DateOf may be nil for
// collections without a searchable title or date.
type ScreenConfig[T any] struct {
	// KeyFor builds the collection key for a page. Unpaginated endpoints
	// ignore the argument and return a fixed key.
	KeyFor func(page int) string

	// Decode extracts the items and the server-reported total count from a
	// raw payload. A negative count means the endpoint reports no count and
	// the item slice length is the whole collection.
	Decode func(payload json.RawMessage) ([]T, int, error)

	IDOf    func(T) string
	TitleOf func(T) string
	DateOf  func(T) time.Time

	PageSize int
	Events   cache.Events
	Logger   *slog.Logger
}

// Screen drives one admin screen: a cache subscription for the current
// page's collection key, the locally mutable mirror of that payload, and
// the derived pagination and filter state.
//
// A Screen is not safe for concurrent use. All methods are meant to run on
// the caller's single event loop, interleaved with reads from Updates();
// that serialization is what makes the mirror lock-free.
type Screen[T any] struct {
	store  *cache.Store
	cfg    ScreenConfig[T]
	logger *slog.Logger

	sub    *cache.Subscription
	list   *mirror.List[T]
	pager  *view.Pager
	synced time.Time

	// visible is the filtered projection the UI renders; it resets to the
	// full mirror on every new payload and after every mutation.
	visible []T
	query   string
	day     *time.Time
}

// NewScreen subscribes to the collection's first page and returns the
// screen. Call Stop when the screen is no longer rendered.
func NewScreen[T any](store *cache.Store, cfg ScreenConfig[T]) *Screen[T] {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = view.DefaultPageSize
	}

	s := &Screen[T]{
		store:  store,
		cfg:    cfg,
		logger: logger,
		list:   mirror.NewList(cfg.IDOf, logger),
		pager:  view.NewPager(cfg.PageSize),
	}
	s.sub = store.Subscribe(cfg.KeyFor(s.pager.Page()), cfg.Events)

	return s
}

// Updates signals that the subscription holds a fresh payload or error;
// the event loop should call Sync and re-render.
func (s *Screen[T]) Updates() <-chan struct{} {
	return s.sub.Updates()
}

// Sync consumes the subscription's current payload into the mirror. The
// server's ordering replaces any local state and clears active filters.
// Returns a decode error when the payload does not match the collection's
// shape; a poll failure is not an error here — the stale mirror stays and
// Err reports the failure.
func (s *Screen[T]) Sync() error {
	payload := s.sub.Payload()
	if payload == nil {
		return nil
	}

	fetchedAt := s.sub.LastFetchedAt()
	if !fetchedAt.After(s.synced) {
		return nil
	}

	items, count, err := s.cfg.Decode(payload)
	if err != nil {
		return err
	}

	if count < 0 {
		count = len(items)
	}

	s.list.Reset(items)
	s.pager.SetCount(count)
	s.resetVisible()
	s.synced = fetchedAt

	s.logger.Debug("screen synced",
		slog.String("key", s.sub.Key()),
		slog.Int("items", len(items)),
		slog.Int("count", count))

	return nil
}

// Err returns the last poll failure, or nil. A non-nil error with a
// non-empty Visible list means the screen is serving stale data.
func (s *Screen[T]) Err() error {
	return s.sub.Err()
}

// LastFetchedAt reports when the current payload was fetched.
func (s *Screen[T]) LastFetchedAt() time.Time {
	return s.sub.LastFetchedAt()
}

// Revalidate asks the cache for an immediate refresh of the current page.
func (s *Screen[T]) Revalidate() {
	s.sub.Revalidate()
}

// Stop tears down the subscription. No callback will touch the screen
// after Stop returns.
func (s *Screen[T]) Stop() {
	s.sub.Stop()
}

// Visible returns the items the UI should render: the mirror filtered by
// the active title or date search, or the whole mirror when no filter is
// set. The slice is shared; treat it as read-only.
func (s *Screen[T]) Visible() []T {
	return s.visible
}

// Page returns the current 1-based page.
func (s *Screen[T]) Page() int { return s.pager.Page() }

// TotalPages returns the page count derived from the last payload.
func (s *Screen[T]) TotalPages() int { return s.pager.TotalPages() }

// CanPrev reports whether a previous page exists.
func (s *Screen[T]) CanPrev() bool { return s.pager.CanPrev() }

// CanNext reports whether a next page exists.
func (s *Screen[T]) CanNext() bool { return s.pager.CanNext() }

// Next moves to the next page and swaps the subscription to its key.
// Returns false without side effects when already on the last page.
func (s *Screen[T]) Next() bool {
	if !s.pager.Next() {
		return false
	}

	s.resubscribe()

	return true
}

// Prev moves to the previous page and swaps the subscription to its key.
// Returns false without side effects when already on the first page.
func (s *Screen[T]) Prev() bool {
	if !s.pager.Prev() {
		return false
	}

	s.resubscribe()

	return true
}

func (s *Screen[T]) resubscribe() {
	s.sub.Stop()
	s.sub = s.store.Subscribe(s.cfg.KeyFor(s.pager.Page()), s.cfg.Events)
	s.synced = time.Time{}
}

// SearchTitle filters the visible list live: every whitespace token must
// appear in the item's title. An empty query restores the full mirror.
// Only the current page's items are searched.
func (s *Screen[T]) SearchTitle(query string) {
	if s.cfg.TitleOf == nil {
		return
	}

	s.query = query
	s.day = nil
	s.visible = view.FilterByTitle(s.list.Items(), s.cfg.TitleOf, query)
}

// SearchDate filters the visible list to items dated on the given calendar
// day. Unlike the title search this only runs on explicit trigger.
func (s *Screen[T]) SearchDate(day time.Time) {
	if s.cfg.DateOf == nil {
		return
	}

	s.query = ""
	s.day = &day
	s.visible = view.FilterByDay(s.list.Items(), s.cfg.DateOf, day)
}

// ClearFilter restores the unfiltered mirror.
func (s *Screen[T]) ClearFilter() {
	s.resetVisible()
}

func (s *Screen[T]) resetVisible() {
	s.query = ""
	s.day = nil
	s.visible = s.list.Items()
}

// ApplyCreate appends an item to the mirror after its remote create
// succeeded. A duplicate id means the mirror and server desynced; the
// error is logged and returned, and the mirror stays untouched.
func (s *Screen[T]) ApplyCreate(item T) error {
	if err := s.list.Create(item); err != nil {
		s.logger.Warn("optimistic create rejected",
			slog.String("key", s.sub.Key()),
			slog.String("error", err.Error()))

		return err
	}

	s.resetVisible()

	return nil
}

// ApplyDelete removes an item from the mirror after its remote delete
// succeeded. An absent id is a no-op; a concurrent poll may already have
// dropped it.
func (s *Screen[T]) ApplyDelete(id string) {
	s.list.Delete(id)
	s.resetVisible()
}

// ApplyUpdate patches an item in the mirror after its remote update
// succeeded. An unknown id means the item was deleted or never synced;
// the error is logged and returned so the caller treats the operation as
// failed instead of hiding the lost update.
func (s *Screen[T]) ApplyUpdate(id string, patch func(*T)) error {
	if err := s.list.Update(id, patch); err != nil {
		s.logger.Warn("optimistic update rejected",
			slog.String("key", s.sub.Key()),
			slog.String("id", id),
			slog.String("error", err.Error()))

		return err
	}

	s.resetVisible()

	return nil
}
