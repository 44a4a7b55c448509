package view

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// MatchTitle reports whether title contains every whitespace-separated token
// of query as a substring. Matching is case-sensitive. Both sides are NFC
// normalized first so composed and decomposed accents compare equal — titles
// here are Portuguese and arrive from browsers in either form.
func MatchTitle(title, query string) bool {
	title = norm.NFC.String(title)

	for _, token := range strings.Fields(norm.NFC.String(query)) {
		if !strings.Contains(title, token) {
			return false
		}
	}

	return true
}

// FilterByTitle projects the items whose title matches every token of query.
// An empty (or all-whitespace) query means "no filter": the full input is
// returned as a fresh slice. The input is never mutated.
func FilterByTitle[T any](items []T, titleOf func(T) string, query string) []T {
	if strings.TrimSpace(query) == "" {
		out := make([]T, len(items))
		copy(out, items)

		return out
	}

	out := make([]T, 0, len(items))

	for _, item := range items {
		if MatchTitle(titleOf(item), query) {
			out = append(out, item)
		}
	}

	return out
}

// SameDay reports whether a and b fall on the same calendar day in the
// local time zone.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()

	return ay == by && am == bm && ad == bd
}

// FilterByDay projects the items dated on the same local calendar day as day.
// The input is never mutated.
func FilterByDay[T any](items []T, dateOf func(T) time.Time, day time.Time) []T {
	out := make([]T, 0, len(items))

	for _, item := range items {
		if SameDay(dateOf(item), day) {
			out = append(out, item)
		}
	}

	return out
}
