package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/readupapp/readup-go/internal/domain"
	"github.com/readupapp/readup-go/internal/readup"
)

// ScopeGlobal is the staleness scope covering events across all authors.
const ScopeGlobal = "global"

// StalenessWindow is how long externally-sourced event data stays fresh.
const StalenessWindow = 5 * time.Minute

// RateLimitedMessage is shown when the backend refuses a refresh because
// of upstream rate limiting.
const RateLimitedMessage = "Please wait before checking again"

// EventAPI is the slice of the backend client the event store uses.
type EventAPI interface {
	FetchEvents(ctx context.Context, query readup.EventQuery) (readup.EventPage, error)
	RefreshEvents(ctx context.Context, authorID int64) (readup.RefreshResult, error)
	FetchVenues(ctx context.Context) ([]domain.Venue, error)
}

// EventStore caches author events and tracks per-scope staleness of the
// externally-sourced data behind them. Pagination is independent of
// staleness: the page cursor tracks the last successful fetch only.
type EventStore struct {
	api EventAPI
	log zerolog.Logger

	// limiters guard the manual refresh action locally, in front of the
	// backend's authoritative limiting. One bucket per scope, matching
	// the staleness granularity.
	limiters     map[string]*rate.Limiter
	refreshLimit rate.Limit
	refreshBurst int

	mu            sync.Mutex
	events        []domain.Event
	lastRefreshed map[string]time.Time
	authorID      int64 // current listing scope, zero for global
	page          int
	totalPages    int
	loading       bool
	loadingMore   bool
	lastErr       error
	now           func() time.Time
}

// NewEventStore creates an empty event store.
func NewEventStore(api EventAPI, log zerolog.Logger) *EventStore {
	return &EventStore{
		api:           api,
		log:           log,
		limiters:      make(map[string]*rate.Limiter),
		refreshLimit:  rate.Every(30 * time.Second),
		refreshBurst:  1,
		lastRefreshed: make(map[string]time.Time),
		now:           time.Now,
	}
}

// limiterFor returns the scope's refresh bucket, minting it on first use.
func (s *EventStore) limiterFor(scope string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[scope]
	if !ok {
		l = rate.NewLimiter(s.refreshLimit, s.refreshBurst)
		s.limiters[scope] = l
	}
	return l
}

// scopeKey maps an author id to its staleness scope. Zero is the global
// scope.
func scopeKey(authorID int64) string {
	if authorID <= 0 {
		return ScopeGlobal
	}
	return strconv.FormatInt(authorID, 10)
}

// ShouldRefresh reports whether the scope has never been refreshed or its
// data is older than the staleness window.
func (s *EventStore) ShouldRefresh(authorID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.lastRefreshed[scopeKey(authorID)]
	if !ok {
		return true
	}
	return s.now().Sub(at) > StalenessWindow
}

// TimeSinceRefresh produces the coarse human string for the scope's age:
// "Just now", "N minute(s) ago", "N hour(s) ago" or "N day(s) ago".
// Scopes never refreshed report "Never".
func (s *EventStore) TimeSinceRefresh(authorID int64) string {
	s.mu.Lock()
	at, ok := s.lastRefreshed[scopeKey(authorID)]
	now := s.now()
	s.mu.Unlock()

	if !ok {
		return "Never"
	}
	return humanizeSince(now.Sub(at))
}

// humanizeSince renders elapsed time at minute/hour/day granularity with
// exact singular/plural agreement.
func humanizeSince(elapsed time.Duration) string {
	switch {
	case elapsed < time.Minute:
		return "Just now"
	case elapsed < time.Hour:
		return pluralize(int(elapsed.Minutes()), "minute")
	case elapsed < 24*time.Hour:
		return pluralize(int(elapsed.Hours()), "hour")
	default:
		return pluralize(int(elapsed.Hours()/24), "day")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// Events returns a copy of the cached event list.
func (s *EventStore) Events() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

// HasMore reports whether pages remain beyond the last successful fetch.
func (s *EventStore) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page < s.totalPages
}

// Err returns the error recorded by the last failed call.
func (s *EventStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Load fetches the first page for a scope, replacing the cached list.
func (s *EventStore) Load(ctx context.Context, authorID int64) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	page, err := s.api.FetchEvents(ctx, readup.EventQuery{AuthorID: authorID, Page: 1})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return err
	}
	s.events = page.Events
	s.authorID = authorID
	s.page = pageOr(page.Page, 1)
	s.totalPages = page.TotalPages
	s.lastErr = nil
	return nil
}

// LoadMore appends the next page for the current scope. It is a no-op when
// a load is already in flight or no pages remain.
func (s *EventStore) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.loadingMore || s.loading || s.page >= s.totalPages {
		s.mu.Unlock()
		return nil
	}
	s.loadingMore = true
	authorID, next := s.authorID, s.page+1
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loadingMore = false
		s.mu.Unlock()
	}()

	page, err := s.api.FetchEvents(ctx, readup.EventQuery{AuthorID: authorID, Page: next})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return err
	}
	s.events = append(s.events, page.Events...)
	s.page = pageOr(page.Page, next)
	s.totalPages = page.TotalPages
	s.lastErr = nil
	return nil
}

// Refresh asks the backend to re-fetch events from third-party sources for
// the scope and returns how many new events it found. Rate limiting is
// reported with a distinct message, whether surfaced as a 429 status or as
// a rate-limit keyword in the error body. The scope timestamp advances
// only on success.
func (s *EventStore) Refresh(ctx context.Context, authorID int64) (int, error) {
	if !s.limiterFor(scopeKey(authorID)).Allow() {
		return 0, fmt.Errorf("%s", RateLimitedMessage)
	}

	result, err := s.api.RefreshEvents(ctx, authorID)
	if err != nil {
		s.setErr(err)
		if readup.IsRateLimited(err) {
			return 0, fmt.Errorf("%s", RateLimitedMessage)
		}
		return 0, fmt.Errorf("refresh events: %w", err)
	}

	s.mu.Lock()
	s.lastRefreshed[scopeKey(authorID)] = s.now()
	s.lastErr = nil
	s.mu.Unlock()

	s.log.Info().Int64("author_id", authorID).Int("new_events", result.NewEvents).Msg("events refreshed")
	return result.NewEvents, nil
}

// Venues fetches the venue list. Venues change rarely; no staleness is
// tracked for them.
func (s *EventStore) Venues(ctx context.Context) ([]domain.Venue, error) {
	venues, err := s.api.FetchVenues(ctx)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	return venues, nil
}

func (s *EventStore) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

func pageOr(page, fallback int) int {
	if page > 0 {
		return page
	}
	return fallback
}
