package panel

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nsbbezerra/santa-maria-panel/internal/cache"
)

// ScreenOptions carries the knobs shared by every screen constructor.
type ScreenOptions struct {
	PageSize int
	Events   cache.Events
	Logger   *slog.Logger
}

// fixedKey adapts an unpaginated collection key to the pager-driven
// key scheme.
func fixedKey(key string) func(int) string {
	return func(int) string { return key }
}

// NewNewsScreen builds the screen for the paginated news collection.
func NewNewsScreen(store *cache.Store, opts ScreenOptions) *Screen[News] {
	return NewScreen(store, ScreenConfig[News]{
		KeyFor: NewsKey,
		Decode: func(payload json.RawMessage) ([]News, int, error) {
			page, err := DecodeNewsPage(payload)
			return page.Items, page.Count, err
		},
		IDOf:     func(n News) string { return n.ID },
		TitleOf:  func(n News) string { return n.Title },
		DateOf:   func(n News) time.Time { return n.Date },
		PageSize: opts.PageSize,
		Events:   opts.Events,
		Logger:   opts.Logger,
	})
}

// NewVideosScreen builds the screen for the paginated videos collection.
// Videos have no title or date, so the screen carries no filters.
func NewVideosScreen(store *cache.Store, opts ScreenOptions) *Screen[Video] {
	return NewScreen(store, ScreenConfig[Video]{
		KeyFor: VideosKey,
		Decode: func(payload json.RawMessage) ([]Video, int, error) {
			page, err := DecodeVideosPage(payload)
			return page.Items, page.Count, err
		},
		IDOf:     func(v Video) string { return v.ID },
		PageSize: opts.PageSize,
		Events:   opts.Events,
		Logger:   opts.Logger,
	})
}

// NewBidsScreen builds the screen for the procurement notices collection.
func NewBidsScreen(store *cache.Store, opts ScreenOptions) *Screen[Bid] {
	return NewScreen(store, ScreenConfig[Bid]{
		KeyFor: fixedKey(BidsKey),
		Decode: func(payload json.RawMessage) ([]Bid, int, error) {
			items, err := DecodeBids(payload)
			return items, -1, err
		},
		IDOf:     func(b Bid) string { return b.ID },
		TitleOf:  func(b Bid) string { return b.Title },
		DateOf:   func(b Bid) time.Time { return b.Date },
		PageSize: opts.PageSize,
		Events:   opts.Events,
		Logger:   opts.Logger,
	})
}

// NewPublicationsScreen builds the screen for official publications.
func NewPublicationsScreen(store *cache.Store, opts ScreenOptions) *Screen[Publication] {
	return NewScreen(store, ScreenConfig[Publication]{
		KeyFor: fixedKey(PublicationsKey),
		Decode: func(payload json.RawMessage) ([]Publication, int, error) {
			items, err := DecodePublications(payload)
			return items, -1, err
		},
		IDOf:     func(p Publication) string { return p.ID },
		TitleOf:  func(p Publication) string { return p.Title },
		DateOf:   func(p Publication) time.Time { return p.Date },
		PageSize: opts.PageSize,
		Events:   opts.Events,
		Logger:   opts.Logger,
	})
}

// NewInformativesScreen builds the screen for informational images.
func NewInformativesScreen(store *cache.Store, opts ScreenOptions) *Screen[Informative] {
	return NewScreen(store, ScreenConfig[Informative]{
		KeyFor: fixedKey(InformativesKey),
		Decode: func(payload json.RawMessage) ([]Informative, int, error) {
			items, err := DecodeInformatives(payload)
			return items, -1, err
		},
		IDOf:     func(i Informative) string { return i.ID },
		PageSize: opts.PageSize,
		Events:   opts.Events,
		Logger:   opts.Logger,
	})
}

// NewOrdinancesScreen builds the screen for one secretariat's paginated
// ordinances. An empty secretaryID follows every secretariat.
func NewOrdinancesScreen(store *cache.Store, secretaryID string, opts ScreenOptions) *Screen[Ordinance] {
	return NewScreen(store, ScreenConfig[Ordinance]{
		KeyFor: func(page int) string { return OrdinancesKey(secretaryID, page) },
		Decode: func(payload json.RawMessage) ([]Ordinance, int, error) {
			page, err := DecodeOrdinancesPage(payload)
			return page.Items, page.Count, err
		},
		IDOf:     func(o Ordinance) string { return o.ID },
		TitleOf:  func(o Ordinance) string { return o.Title },
		PageSize: opts.PageSize,
		Events:   opts.Events,
		Logger:   opts.Logger,
	})
}

// NewSecretariesScreen builds the screen for the secretariats list.
func NewSecretariesScreen(store *cache.Store, opts ScreenOptions) *Screen[Secretary] {
	return NewScreen(store, ScreenConfig[Secretary]{
		KeyFor: fixedKey(SecretariesKey),
		Decode: func(payload json.RawMessage) ([]Secretary, int, error) {
			items, err := DecodeSecretaries(payload)
			return items, -1, err
		},
		IDOf:     func(s Secretary) string { return s.ID },
		TitleOf:  func(s Secretary) string { return s.Title },
		PageSize: opts.PageSize,
		Events:   opts.Events,
		Logger:   opts.Logger,
	})
}

// NewDesksScreen builds the screen for the directing board.
func NewDesksScreen(store *cache.Store, opts ScreenOptions) *Screen[Desk] {
	return NewScreen(store, ScreenConfig[Desk]{
		KeyFor: fixedKey(DesksKey),
		Decode: func(payload json.RawMessage) ([]Desk, int, error) {
			items, err := DecodeDesks(payload)
			return items, -1, err
		},
		IDOf:     func(d Desk) string { return d.ID },
		TitleOf:  func(d Desk) string { return d.Name },
		PageSize: opts.PageSize,
		Events:   opts.Events,
		Logger:   opts.Logger,
	})
}

// NewScheduleScreen builds the screen for one month of the mayor's agenda.
func NewScheduleScreen(store *cache.Store, month string, year int, opts ScreenOptions) *Screen[ScheduleDay] {
	return NewScreen(store, ScreenConfig[ScheduleDay]{
		KeyFor: fixedKey(ScheduleKey(month, year)),
		Decode: func(payload json.RawMessage) ([]ScheduleDay, int, error) {
			items, err := DecodeSchedule(payload)
			return items, -1, err
		},
		IDOf:     func(d ScheduleDay) string { return d.ID },
		DateOf:   func(d ScheduleDay) time.Time { return d.Date },
		PageSize: opts.PageSize,
		Events:   opts.Events,
		Logger:   opts.Logger,
	})
}

// NewBannersScreen builds the screen for homepage banners.
func NewBannersScreen(store *cache.Store, opts ScreenOptions) *Screen[Banner] {
	return NewScreen(store, ScreenConfig[Banner]{
		KeyFor: fixedKey(BannersKey),
		Decode: func(payload json.RawMessage) ([]Banner, int, error) {
			items, err := DecodeBanners(payload)
			return items, -1, err
		},
		IDOf:     func(b Banner) string { return b.ID },
		PageSize: opts.PageSize,
		Events:   opts.Events,
		Logger:   opts.Logger,
	})
}
