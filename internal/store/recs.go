package store

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/readupapp/readup-go/internal/bus"
	"github.com/readupapp/readup-go/internal/domain"
)

// RecommendationAPI is the slice of the backend client the recommendation
// store uses.
type RecommendationAPI interface {
	FetchRecommendedBooks(ctx context.Context) ([]domain.Book, error)
	FetchRecommendedAuthors(ctx context.Context) ([]domain.Author, error)
	FetchRecommendedEvents(ctx context.Context) ([]domain.Event, error)
}

// RecommendationStore caches the three recommendation lists and refreshes
// them when shelf or follow mutations change recommendation relevance.
// Bus-triggered refreshes are best-effort: they run off the mutating
// caller's path and failures are logged, never surfaced.
type RecommendationStore struct {
	api RecommendationAPI
	log zerolog.Logger

	mu      sync.Mutex
	books   []domain.Book
	authors []domain.Author
	events  []domain.Event
	lastErr error
}

// NewRecommendationStore creates the store and wires its bus
// subscriptions.
func NewRecommendationStore(api RecommendationAPI, b *bus.Bus, log zerolog.Logger) *RecommendationStore {
	s := &RecommendationStore{api: api, log: log}

	invalidate := func(msg bus.Message) {
		go func() {
			if err := s.RefreshAll(context.Background()); err != nil {
				s.log.Warn().Err(err).Str("topic", string(msg.Topic)).
					Msg("recommendation refresh failed")
			}
		}()
	}
	b.Subscribe(bus.TopicShelfChanged, invalidate)
	b.Subscribe(bus.TopicFollowChanged, invalidate)
	return s
}

// RefreshAll refetches all three recommendation lists. Each list that
// fetches successfully replaces its cache even when another list fails.
func (s *RecommendationStore) RefreshAll(ctx context.Context) error {
	books, errBooks := s.api.FetchRecommendedBooks(ctx)
	authors, errAuthors := s.api.FetchRecommendedAuthors(ctx)
	events, errEvents := s.api.FetchRecommendedEvents(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if errBooks == nil {
		s.books = books
	}
	if errAuthors == nil {
		s.authors = authors
	}
	if errEvents == nil {
		s.events = events
	}
	err := errors.Join(errBooks, errAuthors, errEvents)
	s.lastErr = err
	return err
}

// Books returns a copy of the cached book recommendations.
func (s *RecommendationStore) Books() []domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Authors returns a copy of the cached author recommendations.
func (s *RecommendationStore) Authors() []domain.Author {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Author, len(s.authors))
	copy(out, s.authors)
	return out
}

// Events returns a copy of the cached event recommendations.
func (s *RecommendationStore) Events() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Err returns the error recorded by the last refresh, nil on success.
func (s *RecommendationStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
