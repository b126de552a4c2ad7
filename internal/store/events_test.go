package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/readupapp/readup-go/internal/domain"
	"github.com/readupapp/readup-go/internal/readup"
)

type fakeEventAPI struct {
	pages      map[int]readup.EventPage
	fetchErr   error
	refreshErr error
	refreshed  []int64
	newEvents  int
}

func (f *fakeEventAPI) FetchEvents(_ context.Context, q readup.EventQuery) (readup.EventPage, error) {
	if f.fetchErr != nil {
		return readup.EventPage{}, f.fetchErr
	}
	page := q.Page
	if page == 0 {
		page = 1
	}
	return f.pages[page], nil
}

func (f *fakeEventAPI) RefreshEvents(_ context.Context, authorID int64) (readup.RefreshResult, error) {
	if f.refreshErr != nil {
		return readup.RefreshResult{}, f.refreshErr
	}
	f.refreshed = append(f.refreshed, authorID)
	return readup.RefreshResult{NewEvents: f.newEvents}, nil
}

func (f *fakeEventAPI) FetchVenues(context.Context) ([]domain.Venue, error) {
	return []domain.Venue{{ID: 1, Name: "City Library"}}, nil
}

// newEventFixture builds a store with a frozen clock and no local rate
// limiting, so tests exercise the backend paths directly.
func newEventFixture(api *fakeEventAPI, now time.Time) *EventStore {
	s := NewEventStore(api, zerolog.Nop())
	s.refreshLimit = rate.Inf
	s.now = func() time.Time { return now }
	return s
}

func TestHumanizeSince_Boundaries(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "Just now"},
		{59 * time.Second, "Just now"},
		{60 * time.Second, "1 minute ago"},
		{2 * time.Minute, "2 minutes ago"},
		{3599 * time.Second, "59 minutes ago"},
		{3600 * time.Second, "1 hour ago"},
		{5 * time.Hour, "5 hours ago"},
		{23*time.Hour + 59*time.Minute, "23 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}
	for _, tt := range tests {
		if got := humanizeSince(tt.elapsed); got != tt.want {
			t.Errorf("humanizeSince(%v) = %q, want %q", tt.elapsed, got, tt.want)
		}
	}
}

func TestEventStore_TimeSinceRefresh(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	api := &fakeEventAPI{}
	s := newEventFixture(api, now)

	if got := s.TimeSinceRefresh(0); got != "Never" {
		t.Fatalf("unrefreshed scope = %q, want Never", got)
	}

	s.lastRefreshed[ScopeGlobal] = now.Add(-61 * time.Second)
	if got := s.TimeSinceRefresh(0); got != "1 minute ago" {
		t.Fatalf("TimeSinceRefresh = %q, want 1 minute ago", got)
	}

	// A different author scope is tracked independently of the global one.
	if got := s.TimeSinceRefresh(7); got != "Never" {
		t.Fatalf("author scope = %q, want Never", got)
	}
}

func TestEventStore_ShouldRefreshWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newEventFixture(&fakeEventAPI{}, now)

	if !s.ShouldRefresh(0) {
		t.Fatal("never-refreshed scope should be stale")
	}

	s.lastRefreshed[ScopeGlobal] = now.Add(-StalenessWindow)
	if s.ShouldRefresh(0) {
		t.Fatal("exactly at the window should still count as fresh")
	}

	s.lastRefreshed[ScopeGlobal] = now.Add(-StalenessWindow - time.Second)
	if !s.ShouldRefresh(0) {
		t.Fatal("past the window should be stale")
	}

	// Scopes are independent: refreshing global says nothing about authors.
	if !s.ShouldRefresh(7) {
		t.Fatal("author scope should be stale when never refreshed")
	}
}

func TestEventStore_RefreshAdvancesTimestampOnlyOnSuccess(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	api := &fakeEventAPI{newEvents: 3}
	s := newEventFixture(api, now)

	count, err := s.Refresh(context.Background(), 7)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if count != 3 {
		t.Fatalf("new events = %d, want 3", count)
	}
	if s.ShouldRefresh(7) {
		t.Fatal("scope still stale after successful refresh")
	}

	api.refreshErr = errors.New("scrape source down")
	if _, err := s.Refresh(context.Background(), 8); err == nil {
		t.Fatal("expected refresh failure")
	}
	if !s.ShouldRefresh(8) {
		t.Fatal("failed refresh advanced the timestamp")
	}
}

func TestEventStore_RefreshRateLimitedMessage(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		err  error
	}{
		{"429 status", &readup.APIError{Status: 429, Message: "slow down"}},
		{"keyword in a 500", &readup.APIError{Status: 500, Message: "upstream rate limit exceeded"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeEventAPI{refreshErr: tt.err}
			s := newEventFixture(api, now)

			_, err := s.Refresh(context.Background(), 0)
			if err == nil || err.Error() != RateLimitedMessage {
				t.Fatalf("error = %v, want %q", err, RateLimitedMessage)
			}
		})
	}
}

func TestEventStore_LocalLimiterGuardsRefresh(t *testing.T) {
	api := &fakeEventAPI{}
	s := NewEventStore(api, zerolog.Nop())

	if _, err := s.Refresh(context.Background(), 0); err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}
	_, err := s.Refresh(context.Background(), 0)
	if err == nil || err.Error() != RateLimitedMessage {
		t.Fatalf("second immediate refresh = %v, want %q", err, RateLimitedMessage)
	}
	if len(api.refreshed) != 1 {
		t.Fatalf("backend saw %d refreshes, want 1", len(api.refreshed))
	}
}

func TestEventStore_LocalLimiterIsPerScope(t *testing.T) {
	api := &fakeEventAPI{}
	s := NewEventStore(api, zerolog.Nop())

	// The guard matches the staleness granularity: exhausting one
	// author's bucket must not block another author or the global scope.
	if _, err := s.Refresh(context.Background(), 1); err != nil {
		t.Fatalf("author 1 refresh failed: %v", err)
	}
	if _, err := s.Refresh(context.Background(), 2); err != nil {
		t.Fatalf("author 2 refresh blocked by author 1's bucket: %v", err)
	}
	if _, err := s.Refresh(context.Background(), 0); err != nil {
		t.Fatalf("global refresh blocked by an author bucket: %v", err)
	}
	if len(api.refreshed) != 3 {
		t.Fatalf("backend saw %d refreshes, want 3", len(api.refreshed))
	}

	_, err := s.Refresh(context.Background(), 1)
	if err == nil || err.Error() != RateLimitedMessage {
		t.Fatalf("repeat author 1 refresh = %v, want %q", err, RateLimitedMessage)
	}
}

func TestEventStore_LoadAndLoadMore(t *testing.T) {
	api := &fakeEventAPI{pages: map[int]readup.EventPage{
		1: {Events: []domain.Event{{ID: 1}, {ID: 2}}, Page: 1, TotalPages: 2},
		2: {Events: []domain.Event{{ID: 3}}, Page: 2, TotalPages: 2},
	}}
	s := newEventFixture(api, time.Now())

	if err := s.Load(context.Background(), 0); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(s.Events()) != 2 || !s.HasMore() {
		t.Fatalf("after load: %d events, HasMore=%v", len(s.Events()), s.HasMore())
	}

	if err := s.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore returned error: %v", err)
	}
	events := s.Events()
	if len(events) != 3 || events[2].ID != 3 {
		t.Fatalf("after load more: %#v", events)
	}
	if s.HasMore() {
		t.Fatal("HasMore true after final page")
	}

	// No pages left: LoadMore is a silent no-op.
	if err := s.LoadMore(context.Background()); err != nil {
		t.Fatalf("no-op LoadMore returned error: %v", err)
	}
	if len(s.Events()) != 3 {
		t.Fatalf("no-op LoadMore changed the cache: %d events", len(s.Events()))
	}
}

func TestEventStore_LoadErrorKeepsEvents(t *testing.T) {
	api := &fakeEventAPI{pages: map[int]readup.EventPage{
		1: {Events: []domain.Event{{ID: 1}}, Page: 1, TotalPages: 1},
	}}
	s := newEventFixture(api, time.Now())

	if err := s.Load(context.Background(), 0); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	api.fetchErr = errors.New("backend down")
	if err := s.Load(context.Background(), 0); err == nil {
		t.Fatal("expected load failure")
	}
	if len(s.Events()) != 1 {
		t.Fatalf("failed load changed the cache: %d events", len(s.Events()))
	}
	if s.Err() == nil {
		t.Fatal("store did not record the error")
	}
}
