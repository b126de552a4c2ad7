package reconcile

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/readupapp/readup-go/internal/domain"
	"github.com/readupapp/readup-go/internal/readup"
)

// API is the slice of the backend client promotion needs.
type API interface {
	CreateAuthor(ctx context.Context, draft domain.AuthorDraft) (*domain.Author, error)
	CreateBook(ctx context.Context, draft domain.BookDraft) (*domain.Book, error)
}

// Compile-time check that the real client satisfies API.
var _ API = (*readup.Client)(nil)

// Reconciler tracks external candidates for the current search session and
// promotes them to persisted rows. Safe for concurrent use.
type Reconciler struct {
	api API
	log zerolog.Logger

	mu sync.RWMutex
	// candidates index external entities by their transient negative id so
	// promotion can recover the displayable fields later.
	bookCandidates   map[int64]domain.Book
	authorCandidates map[int64]domain.Author
	// idMap redirects old transient ids to the persisted ids promotion
	// produced, so views opened before import completes keep working.
	idMap map[int64]int64
	// transientSeq mints negative ids for authors registered with the
	// zero sentinel.
	transientSeq int64
}

// New creates a Reconciler on top of the backend client.
func New(api API, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		api:              api,
		log:              log,
		bookCandidates:   make(map[int64]domain.Book),
		authorCandidates: make(map[int64]domain.Author),
		idMap:            make(map[int64]int64),
	}
}

// RegisterBook records an external book candidate under its transient id
// so a later shelf or follow action can promote it by id alone.
func (r *Reconciler) RegisterBook(b domain.Book) {
	if b.ID >= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookCandidates[b.ID] = b
}

// RegisterAuthor records an external author candidate. Authors surface
// from discovery with the zero sentinel id; registration assigns them a
// session-scoped negative id and returns the addressable copy.
func (r *Reconciler) RegisterAuthor(a domain.Author) domain.Author {
	if a.ID > 0 {
		return a
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == 0 {
		r.transientSeq++
		a.ID = -r.transientSeq
	}
	r.authorCandidates[a.ID] = a
	return a
}

// Resolve maps a transient id to the persisted id promotion produced, or
// returns the id unchanged when no mapping exists.
func (r *Reconciler) Resolve(id int64) int64 {
	if id > 0 {
		return id
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if mapped, ok := r.idMap[id]; ok {
		return mapped
	}
	return id
}

// PromoteBook turns an external book into a persisted row and returns the
// authoritative record. Books already promoted this session return the
// mapped row id without another create. A create failure (duplicate name
// conflict included) aborts with no mapping recorded: partial promotion
// must not happen silently.
func (r *Reconciler) PromoteBook(ctx context.Context, b domain.Book) (int64, error) {
	if b.ID > 0 {
		return b.ID, nil
	}
	if mapped := r.Resolve(b.ID); mapped > 0 {
		return mapped, nil
	}

	created, err := r.api.CreateBook(ctx, b.Draft())
	if err != nil {
		return 0, fmt.Errorf("promote book %q: %w", b.Title, err)
	}

	r.mu.Lock()
	if b.ID < 0 {
		r.idMap[b.ID] = created.ID
		delete(r.bookCandidates, b.ID)
	}
	r.mu.Unlock()

	r.log.Info().Int64("transient_id", b.ID).Int64("book_id", created.ID).
		Str("title", created.Title).Msg("promoted external book")
	return created.ID, nil
}

// PromoteBookByID promotes a registered candidate by transient id.
func (r *Reconciler) PromoteBookByID(ctx context.Context, id int64) (int64, error) {
	if id > 0 {
		return id, nil
	}
	if mapped := r.Resolve(id); mapped > 0 {
		return mapped, nil
	}
	r.mu.RLock()
	candidate, ok := r.bookCandidates[id]
	r.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("book %d: %w", id, domain.ErrNotImported)
	}
	return r.PromoteBook(ctx, candidate)
}

// PromoteAuthor turns an external author into a persisted row.
func (r *Reconciler) PromoteAuthor(ctx context.Context, a domain.Author) (int64, error) {
	if a.ID > 0 {
		return a.ID, nil
	}
	if a.ID < 0 {
		if mapped := r.Resolve(a.ID); mapped > 0 {
			return mapped, nil
		}
	}

	created, err := r.api.CreateAuthor(ctx, a.Draft())
	if err != nil {
		return 0, fmt.Errorf("promote author %q: %w", a.Name, err)
	}

	r.mu.Lock()
	if a.ID < 0 {
		r.idMap[a.ID] = created.ID
		delete(r.authorCandidates, a.ID)
	}
	r.mu.Unlock()

	r.log.Info().Int64("transient_id", a.ID).Int64("author_id", created.ID).
		Str("name", created.Name).Msg("promoted external author")
	return created.ID, nil
}

// PromoteAuthorByID promotes a registered candidate by transient id.
func (r *Reconciler) PromoteAuthorByID(ctx context.Context, id int64) (int64, error) {
	if id > 0 {
		return id, nil
	}
	if mapped := r.Resolve(id); mapped > 0 {
		return mapped, nil
	}
	r.mu.RLock()
	candidate, ok := r.authorCandidates[id]
	r.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("author %d: %w", id, domain.ErrNotImported)
	}
	return r.PromoteAuthor(ctx, candidate)
}
