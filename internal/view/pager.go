// Package view computes derived view state — pagination indices and filter
// projections — from a screen's mirror. Nothing here mutates the mirror;
// filters return new slices and the pager only tracks indices.
package view

// DefaultPageSize is the page size used by every paginated list in the
// panel API (news and videos report a total count sliced into pages of 12).
const DefaultPageSize = 12

// TotalPages returns ceil(count/pageSize). A count of zero yields zero pages:
// an empty collection has no pages, not one. An exact multiple must not add a
// spurious extra page. pageSize must be positive.
func TotalPages(count, pageSize int) int {
	if count <= 0 {
		return 0
	}

	pages := count / pageSize
	if count%pageSize != 0 {
		pages++
	}

	return pages
}

// Pager tracks the current page within a paginated collection. The page
// number is always in [1, max(totalPages, 1)]. Navigation outside that range
// is rejected as a no-op, never clamped silently.
type Pager struct {
	page       int
	totalPages int
	pageSize   int
}

// NewPager creates a Pager on page 1 with no known count yet.
// pageSize must be positive; zero or negative falls back to DefaultPageSize.
func NewPager(pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Pager{page: 1, pageSize: pageSize}
}

// SetCount recomputes totalPages from a server-reported count. When the
// collection shrank below the current page, the page is pulled back to the
// last valid one so the range invariant holds.
func (p *Pager) SetCount(count int) {
	p.totalPages = TotalPages(count, p.pageSize)

	if max := p.maxPage(); p.page > max {
		p.page = max
	}
}

// Page returns the current page number (1-based).
func (p *Pager) Page() int {
	return p.page
}

// TotalPages returns the page count derived from the last SetCount.
func (p *Pager) TotalPages() int {
	return p.totalPages
}

// PageSize returns the fixed page size.
func (p *Pager) PageSize() int {
	return p.pageSize
}

// CanPrev reports whether a previous page exists.
func (p *Pager) CanPrev() bool {
	return p.page > 1
}

// CanNext reports whether a next page exists.
func (p *Pager) CanNext() bool {
	return p.page < p.totalPages
}

// Prev moves to the previous page. Returns false (no state change) when
// already on the first page.
func (p *Pager) Prev() bool {
	if !p.CanPrev() {
		return false
	}

	p.page--

	return true
}

// Next moves to the next page. Returns false (no state change) when already
// on the last page.
func (p *Pager) Next() bool {
	if !p.CanNext() {
		return false
	}

	p.page++

	return true
}

// maxPage is the upper bound of the valid page range. An empty collection
// still sits on page 1.
func (p *Pager) maxPage() int {
	if p.totalPages < 1 {
		return 1
	}

	return p.totalPages
}
