package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/readupapp/readup-go/internal/bus"
	"github.com/readupapp/readup-go/internal/domain"
	"github.com/readupapp/readup-go/internal/readup"
)

// ShelfAPI is the slice of the backend client the shelf store uses.
type ShelfAPI interface {
	FetchUserBooks(ctx context.Context) ([]domain.UserBook, error)
	FetchUserBookByBook(ctx context.Context, bookID int64) (*domain.UserBook, error)
	CreateUserBook(ctx context.Context, req readup.UserBookRequest) (*domain.UserBook, error)
	UpdateUserBook(ctx context.Context, id int64, req readup.UserBookRequest) (*domain.UserBook, error)
	SubmitReview(ctx context.Context, id int64, req readup.ReviewRequest) (*domain.UserBook, error)
}

// BookResolver redirects transient book ids and promotes unimported books.
// Implemented by *reconcile.Reconciler.
type BookResolver interface {
	Resolve(id int64) int64
	PromoteBookByID(ctx context.Context, id int64) (int64, error)
}

// ShelfStore mirrors the current user's shelf. Cache writes come only from
// backend responses; while a mutation is in flight the store exposes a
// loading flag and nothing else.
type ShelfStore struct {
	api      ShelfAPI
	resolver BookResolver
	bus      *bus.Bus
	log      zerolog.Logger

	entries *Cache[domain.UserBook]

	mu      sync.Mutex
	byBook  map[int64]int64 // book id -> user book id
	loading bool
	lastErr error
}

// NewShelfStore creates an empty shelf store.
func NewShelfStore(api ShelfAPI, resolver BookResolver, b *bus.Bus, log zerolog.Logger) *ShelfStore {
	return &ShelfStore{
		api:      api,
		resolver: resolver,
		bus:      b,
		log:      log,
		entries:  NewCache[domain.UserBook](),
		byBook:   make(map[int64]int64),
	}
}

// Entries exposes the underlying cache for subscribers.
func (s *ShelfStore) Entries() *Cache[domain.UserBook] { return s.entries }

// Loading reports whether a shelf call is in flight.
func (s *ShelfStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error recorded by the last failed call, nil after a
// success.
func (s *ShelfStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Load replaces the cache with the user's full shelf.
func (s *ShelfStore) Load(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	books, err := s.api.FetchUserBooks(ctx)
	if err != nil {
		s.setErr(err)
		return err
	}
	for _, ub := range books {
		s.put(&ub)
	}
	s.setErr(nil)
	return nil
}

// UserBookByBookID returns the shelf entry for a book, consulting the
// cache first and falling back to the backend. Shelf entries exist only
// for persisted books: any id <= 0 answers nil without a network call,
// even when a promotion mapping for it exists. After promotion the entry
// is addressed by the persisted id alone, and the old transient id stops
// resolving here. A backend 404 is the normal "not yet shelved" answer,
// also nil.
func (s *ShelfStore) UserBookByBookID(ctx context.Context, bookID int64) (*domain.UserBook, error) {
	if bookID <= 0 {
		return nil, nil
	}

	s.mu.Lock()
	id, ok := s.byBook[bookID]
	s.mu.Unlock()
	if ok {
		if ub, hit := s.entries.Get(id); hit {
			return &ub, nil
		}
	}

	ub, err := s.api.FetchUserBookByBook(ctx, bookID)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	if ub == nil {
		return nil, nil
	}
	s.put(ub)
	s.setErr(nil)
	return ub, nil
}

// UpdateShelf creates or updates a shelf entry from the request. When the
// underlying book has not been imported the store promotes it first and
// aims the shelf call at the persisted id. When no entry exists yet the
// backend call is split: create with status and visibility, then apply
// progress fields in a second call. The cache takes the response state
// only; perceived latency equals round-trip time by design.
func (s *ShelfStore) UpdateShelf(ctx context.Context, req domain.ShelfRequest) (*domain.UserBook, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shelf request: %w", err)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	bookID := s.resolver.Resolve(req.BookID)
	if bookID <= 0 && req.UserBookID == 0 {
		promoted, err := s.resolver.PromoteBookByID(ctx, req.BookID)
		if err != nil {
			s.setErr(err)
			return nil, err
		}
		bookID = promoted
	}

	userBookID := req.UserBookID
	if userBookID == 0 {
		s.mu.Lock()
		userBookID = s.byBook[bookID]
		s.mu.Unlock()
	}

	var (
		result *domain.UserBook
		err    error
	)
	if userBookID == 0 {
		result, err = s.api.CreateUserBook(ctx, readup.UserBookRequest{
			BookID:     bookID,
			Status:     req.Status,
			Visibility: req.Visibility,
		})
		if err == nil && req.HasProgress() {
			result, err = s.api.UpdateUserBook(ctx, result.ID, progressRequest(req))
		}
	} else {
		patch := progressRequest(req)
		patch.Status = req.Status
		patch.Visibility = req.Visibility
		result, err = s.api.UpdateUserBook(ctx, userBookID, patch)
	}
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.put(result)
	s.setErr(nil)
	s.bus.Publish(bus.Message{Topic: bus.TopicShelfChanged, EntityID: result.BookID})
	return result, nil
}

// Review attaches a rating and review to an existing entry.
func (s *ShelfStore) Review(ctx context.Context, userBookID int64, rating int, review string) (*domain.UserBook, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	result, err := s.api.SubmitReview(ctx, userBookID, readup.ReviewRequest{Rating: rating, Review: review})
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.put(result)
	s.setErr(nil)
	s.bus.Publish(bus.Message{Topic: bus.TopicShelfChanged, EntityID: result.BookID})
	return result, nil
}

// put normalizes and caches a server response, keeping the book index in
// step. Normalize keeps pages_read/total_pages and completion_percentage
// from diverging inside one cache write.
func (s *ShelfStore) put(ub *domain.UserBook) {
	ub.Normalize()
	s.mu.Lock()
	s.byBook[ub.BookID] = ub.ID
	s.mu.Unlock()
	s.entries.Put(ub.ID, *ub)
}

func progressRequest(req domain.ShelfRequest) readup.UserBookRequest {
	return readup.UserBookRequest{
		PagesRead:  req.PagesRead,
		TotalPages: req.TotalPages,
		Rating:     req.Rating,
		Review:     req.Review,
		DNFPage:    req.DNFPage,
		DNFReason:  req.DNFReason,
	}
}

func (s *ShelfStore) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *ShelfStore) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}
