package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/readupapp/readup-go/internal/bus"
	"github.com/readupapp/readup-go/internal/domain"
)

// FollowAPI is the slice of the backend client the follow store uses.
type FollowAPI interface {
	FetchFollows(ctx context.Context) ([]domain.Follow, error)
	CreateFollow(ctx context.Context, t domain.FollowableType, id int64) (*domain.Follow, error)
	DeleteFollow(ctx context.Context, id int64) error
}

// FollowResolver redirects transient ids and promotes unimported authors
// and books before they can be followed. Implemented by
// *reconcile.Reconciler.
type FollowResolver interface {
	Resolve(id int64) int64
	PromoteAuthorByID(ctx context.Context, id int64) (int64, error)
	PromoteBookByID(ctx context.Context, id int64) (int64, error)
}

// FollowStore mirrors the current user's follow list. The list is kept by
// plain append/filter after each mutation; it is not re-reconciled against
// the server afterwards, so concurrent sessions can drift until Load runs
// again.
type FollowStore struct {
	api      FollowAPI
	resolver FollowResolver
	bus      *bus.Bus
	log      zerolog.Logger

	mu       sync.Mutex
	follows  []domain.Follow
	inFlight map[string]bool
	loading  bool
	lastErr  error
}

// NewFollowStore creates an empty follow store.
func NewFollowStore(api FollowAPI, resolver FollowResolver, b *bus.Bus, log zerolog.Logger) *FollowStore {
	return &FollowStore{
		api:      api,
		resolver: resolver,
		bus:      b,
		log:      log,
		inFlight: make(map[string]bool),
	}
}

// Load replaces the follow list from the backend.
func (s *FollowStore) Load(ctx context.Context) error {
	follows, err := s.api.FetchFollows(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return err
	}
	s.follows = follows
	s.lastErr = nil
	return nil
}

// Follows returns a copy of the cached follow list.
func (s *FollowStore) Follows() []domain.Follow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Follow, len(s.follows))
	copy(out, s.follows)
	return out
}

// IsFollowing reports whether a (type, id) pair is in the cached list.
// Transient ids are resolved through the promotion map first.
func (s *FollowStore) IsFollowing(t domain.FollowableType, id int64) bool {
	id = s.resolver.Resolve(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(t, id) != nil
}

// Err returns the error recorded by the last failed call.
func (s *FollowStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ToggleFollow follows the entity if unfollowed and unfollows it
// otherwise. An id of zero is rejected synchronously: an unimported
// sentinel entity must never reach the follow cache. Negative ids are
// promoted first when the reconciler holds the candidate. A second toggle
// for the same pair while the first is still in flight is dropped, keeping
// exactly one Follow per pair server-side.
func (s *FollowStore) ToggleFollow(ctx context.Context, t domain.FollowableType, id int64) error {
	if !t.Valid() {
		return fmt.Errorf("unknown followable type %q", t)
	}
	if id == 0 {
		return fmt.Errorf("follow %s: %w", t, domain.ErrNotImported)
	}

	// The in-flight key uses the id the caller passed, before promotion:
	// two overlapping presses of the same control must collapse to one
	// promotion and one backend mutation.
	key := fmt.Sprintf("%s:%d", t, id)
	s.mu.Lock()
	if s.inFlight[key] {
		s.mu.Unlock()
		s.log.Debug().Str("key", key).Msg("toggle already in flight, dropped")
		return nil
	}
	s.inFlight[key] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}()

	if id < 0 {
		promoted, err := s.promote(ctx, t, id)
		if err != nil {
			s.setErr(err)
			return err
		}
		id = promoted
	} else {
		id = s.resolver.Resolve(id)
	}

	s.mu.Lock()
	var existingID int64
	if existing := s.findLocked(t, id); existing != nil {
		existingID = existing.ID
	}
	s.mu.Unlock()

	if existingID == 0 {
		follow, err := s.api.CreateFollow(ctx, t, id)
		if err != nil {
			s.setErr(err)
			return err
		}
		s.mu.Lock()
		s.follows = append(s.follows, *follow)
		s.lastErr = nil
		s.mu.Unlock()
	} else {
		if err := s.api.DeleteFollow(ctx, existingID); err != nil {
			s.setErr(err)
			return err
		}
		s.mu.Lock()
		kept := s.follows[:0]
		for _, f := range s.follows {
			if f.ID != existingID {
				kept = append(kept, f)
			}
		}
		s.follows = kept
		s.lastErr = nil
		s.mu.Unlock()
	}

	s.bus.Publish(bus.Message{Topic: bus.TopicFollowChanged, EntityID: id})
	return nil
}

func (s *FollowStore) promote(ctx context.Context, t domain.FollowableType, id int64) (int64, error) {
	switch t {
	case domain.FollowAuthor:
		return s.resolver.PromoteAuthorByID(ctx, id)
	case domain.FollowBook:
		return s.resolver.PromoteBookByID(ctx, id)
	default:
		return 0, fmt.Errorf("cannot promote followable type %q", t)
	}
}

// findLocked returns the cached follow for a pair. Caller holds s.mu.
func (s *FollowStore) findLocked(t domain.FollowableType, id int64) *domain.Follow {
	for i := range s.follows {
		if s.follows[i].FollowableType == t && s.follows[i].FollowableID == id {
			return &s.follows[i]
		}
	}
	return nil
}

func (s *FollowStore) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}
