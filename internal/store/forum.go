package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/readupapp/readup-go/internal/domain"
)

// ForumAPI is the slice of the backend client the forum store uses.
type ForumAPI interface {
	FetchPostComments(ctx context.Context, postID int64) ([]domain.ForumComment, error)
	FetchCommentReplies(ctx context.Context, commentID int64) ([]domain.ForumComment, error)
	CreateComment(ctx context.Context, postID int64, body string) (*domain.ForumComment, error)
	CreateReply(ctx context.Context, commentID int64, body string) (*domain.ForumComment, error)
	UpdateComment(ctx context.Context, id int64, body string) (*domain.ForumComment, error)
	DeleteComment(ctx context.Context, id int64) error
	ToggleHeart(ctx context.Context, commentID int64) (*domain.ForumComment, error)
}

// ForumStore is a two-level comment cache: comments maps a post to its
// top-level comments, threads maps a parent comment to its flat reply
// list. The two maps are never cross-populated; a reply id never appears
// in comments and a top-level id never appears in threads. Each level is
// fetched and refreshed independently.
type ForumStore struct {
	api ForumAPI
	log zerolog.Logger

	mu       sync.Mutex
	comments map[int64][]domain.ForumComment
	threads  map[int64][]domain.ForumComment
	lastErr  error
}

// NewForumStore creates an empty forum store.
func NewForumStore(api ForumAPI, log zerolog.Logger) *ForumStore {
	return &ForumStore{
		api:      api,
		log:      log,
		comments: make(map[int64][]domain.ForumComment),
		threads:  make(map[int64][]domain.ForumComment),
	}
}

// Err returns the error recorded by the last failed call.
func (s *ForumStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// LoadComments fetches and caches the top-level comments of a post.
func (s *ForumStore) LoadComments(ctx context.Context, postID int64) ([]domain.ForumComment, error) {
	list, err := s.api.FetchPostComments(ctx, postID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return nil, err
	}
	s.comments[postID] = list
	s.lastErr = nil
	return cloneComments(list), nil
}

// LoadReplies fetches and caches the replies under one parent comment.
func (s *ForumStore) LoadReplies(ctx context.Context, parentID int64) ([]domain.ForumComment, error) {
	list, err := s.api.FetchCommentReplies(ctx, parentID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return nil, err
	}
	s.threads[parentID] = list
	s.lastErr = nil
	return cloneComments(list), nil
}

// Comments returns the cached top-level comments for a post.
func (s *ForumStore) Comments(postID int64) []domain.ForumComment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneComments(s.comments[postID])
}

// Replies returns the cached replies under a parent comment.
func (s *ForumStore) Replies(parentID int64) []domain.ForumComment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneComments(s.threads[parentID])
}

// AddComment posts a top-level comment and appends the server's record to
// the post's slot only.
func (s *ForumStore) AddComment(ctx context.Context, postID int64, body string) (*domain.ForumComment, error) {
	created, err := s.api.CreateComment(ctx, postID, body)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return nil, err
	}
	s.comments[postID] = append(s.comments[postID], *created)
	s.lastErr = nil
	return created, nil
}

// AddReply posts a reply and appends the server's record to the parent's
// thread slot only; the top-level list is untouched.
func (s *ForumStore) AddReply(ctx context.Context, parentID int64, body string) (*domain.ForumComment, error) {
	created, err := s.api.CreateReply(ctx, parentID, body)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return nil, err
	}
	s.threads[parentID] = append(s.threads[parentID], *created)
	s.lastErr = nil
	return created, nil
}

// EditComment updates a comment body and patches every cache slot where
// the id appears. The id lives in exactly one of the two maps, but it may
// be cached under more than one key of that map, so all keys are scanned.
func (s *ForumStore) EditComment(ctx context.Context, id int64, body string) (*domain.ForumComment, error) {
	updated, err := s.api.UpdateComment(ctx, id, body)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return nil, err
	}
	s.replaceLocked(*updated)
	s.lastErr = nil
	return updated, nil
}

// RemoveComment deletes a comment or reply and drops it from every cache
// slot it appears in.
func (s *ForumStore) RemoveComment(ctx context.Context, id int64) error {
	err := s.api.DeleteComment(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return err
	}
	removeEverywhere(s.comments, id)
	removeEverywhere(s.threads, id)
	s.lastErr = nil
	return nil
}

// ToggleHeart flips the user's heart on a comment. The cached object is
// replaced with the server's canonical record; the count is never adjusted
// locally ahead of the response.
func (s *ForumStore) ToggleHeart(ctx context.Context, id int64) (*domain.ForumComment, error) {
	updated, err := s.api.ToggleHeart(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return nil, err
	}
	s.replaceLocked(*updated)
	s.lastErr = nil
	return updated, nil
}

// replaceLocked swaps the canonical record into every slot holding its id.
// Caller holds s.mu.
func (s *ForumStore) replaceLocked(c domain.ForumComment) {
	replaceEverywhere(s.comments, c)
	replaceEverywhere(s.threads, c)
}

func replaceEverywhere(m map[int64][]domain.ForumComment, c domain.ForumComment) {
	for key, list := range m {
		for i := range list {
			if list[i].ID == c.ID {
				m[key][i] = c
			}
		}
	}
}

func removeEverywhere(m map[int64][]domain.ForumComment, id int64) {
	for key, list := range m {
		kept := list[:0]
		for _, c := range list {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		m[key] = kept
	}
}

func cloneComments(list []domain.ForumComment) []domain.ForumComment {
	if len(list) == 0 {
		return nil
	}
	dup := make([]domain.ForumComment, len(list))
	copy(dup, list)
	return dup
}
