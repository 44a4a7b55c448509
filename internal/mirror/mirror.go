// Package mirror implements the locally-mutable copy of a remote collection.
// Each screen owns one List: it is rebuilt wholesale from every fresh cache
// payload and patched in place after successful create/update/delete calls so
// the UI reflects a mutation before the next poll confirms it.
package mirror

import (
	"errors"
	"fmt"
	"log/slog"
)

// Sentinel errors for reconciliation failures. Both indicate a mirror/server
// desync — the server is the sole id authority, so neither is expected during
// correct operation. Use errors.Is to check.
var (
	ErrDuplicateID = errors.New("mirror: duplicate id")
	ErrNotFound    = errors.New("mirror: id not found")
)

// List is an ordered collection of items with unique ids. It is a value copy
// independent of the cache entry it was read from; mutations never write back
// into the cache. All methods are synchronous and perform no I/O — the remote
// call and its success/failure handling are the caller's responsibility.
type List[T any] struct {
	idOf   func(T) string
	logger *slog.Logger
	items  []T
}

// NewList creates an empty List. idOf extracts the stable unique identifier
// from an item and must not return different values for the same item.
func NewList[T any](idOf func(T) string, logger *slog.Logger) *List[T] {
	if logger == nil {
		logger = slog.Default()
	}

	return &List[T]{idOf: idOf, logger: logger}
}

// Reset unconditionally replaces the list with the server's ordering.
// Called for every fresh cache payload. Duplicate ids in the payload are
// dropped (first occurrence wins) with a warning — the server owns id
// uniqueness, so a duplicate here signals a backend bug worth logging.
func (l *List[T]) Reset(items []T) {
	next := make([]T, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		id := l.idOf(item)
		if _, dup := seen[id]; dup {
			l.logger.Warn("dropping duplicate id in payload",
				slog.String("id", id),
			)

			continue
		}

		seen[id] = struct{}{}
		next = append(next, item)
	}

	l.items = next
}

// Len returns the number of items in the list.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Items returns a copy of the list in its current order. Callers may filter
// or re-slice the result freely without affecting the mirror.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)

	return out
}

// Get returns the item with the given id, or false if absent.
func (l *List[T]) Get(id string) (T, bool) {
	if i := l.index(id); i >= 0 {
		return l.items[i], true
	}

	var zero T

	return zero, false
}

// Create appends item to the end of the list. New items are not re-sorted
// client-side; the next poll imposes server ordering. Returns ErrDuplicateID
// if the id already exists.
func (l *List[T]) Create(item T) error {
	id := l.idOf(item)
	if l.index(id) >= 0 {
		l.logger.Warn("create with existing id, mirror out of sync",
			slog.String("id", id),
		)

		return fmt.Errorf("mirror: create %q: %w", id, ErrDuplicateID)
	}

	l.items = append(l.items, item)

	return nil
}

// Delete removes the item with the given id, preserving the relative order of
// the rest. A missing id is a no-op, not an error — a concurrent poll may have
// already removed the item.
func (l *List[T]) Delete(id string) {
	i := l.index(id)
	if i < 0 {
		return
	}

	l.items = append(l.items[:i], l.items[i+1:]...)
}

// Update applies patch to the item with the given id in place. Returns
// ErrNotFound if the id is absent: the item was deleted or never synced, and
// silently dropping the update would hide data loss from the operator.
func (l *List[T]) Update(id string, patch func(*T)) error {
	i := l.index(id)
	if i < 0 {
		l.logger.Warn("update for unknown id, mirror out of sync",
			slog.String("id", id),
		)

		return fmt.Errorf("mirror: update %q: %w", id, ErrNotFound)
	}

	patch(&l.items[i])

	return nil
}

// index returns the position of id in the list, or -1 if absent.
func (l *List[T]) index(id string) int {
	for i := range l.items {
		if l.idOf(l.items[i]) == id {
			return i
		}
	}

	return -1
}
