package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/readupapp/readup-go/internal/domain"
)

// FeedAPI is the slice of the backend client the feed store uses.
type FeedAPI interface {
	FetchFeed(ctx context.Context) ([]domain.FeedItem, error)
}

// FeedStore caches the follower timeline. Private items are filtered out
// at this read boundary regardless of what the backend sent; visibility is
// an absolute filter, not just a write-side rule.
type FeedStore struct {
	api FeedAPI
	log zerolog.Logger

	mu      sync.Mutex
	items   []domain.FeedItem
	loading bool
	lastErr error
}

// NewFeedStore creates an empty feed store.
func NewFeedStore(api FeedAPI, log zerolog.Logger) *FeedStore {
	return &FeedStore{api: api, log: log}
}

// Load fetches the feed and caches the visible items, order preserved.
func (s *FeedStore) Load(ctx context.Context) error {
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

	items, err := s.api.FetchFeed(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return err
	}
	s.items = FilterVisible(items)
	s.lastErr = nil
	return nil
}

// Items returns a copy of the cached, already-filtered feed.
func (s *FeedStore) Items() []domain.FeedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.FeedItem, len(s.items))
	copy(out, s.items)
	return out
}

// Err returns the error recorded by the last failed load.
func (s *FeedStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// FilterVisible drops private items, keeping everything else in order.
func FilterVisible(items []domain.FeedItem) []domain.FeedItem {
	out := make([]domain.FeedItem, 0, len(items))
	for _, item := range items {
		if item.Visible() {
			out = append(out, item)
		}
	}
	return out
}
