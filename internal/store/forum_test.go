package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/readupapp/readup-go/internal/domain"
)

type fakeForumAPI struct {
	comments map[int64][]domain.ForumComment
	replies  map[int64][]domain.ForumComment
	nextID   int64
	err      error

	// heartReturns, when set, is handed back verbatim from ToggleHeart.
	heartReturns *domain.ForumComment
}

func newFakeForumAPI() *fakeForumAPI {
	return &fakeForumAPI{
		comments: make(map[int64][]domain.ForumComment),
		replies:  make(map[int64][]domain.ForumComment),
		nextID:   500,
	}
}

func (f *fakeForumAPI) FetchPostComments(_ context.Context, postID int64) ([]domain.ForumComment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.comments[postID], nil
}

func (f *fakeForumAPI) FetchCommentReplies(_ context.Context, commentID int64) ([]domain.ForumComment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.replies[commentID], nil
}

func (f *fakeForumAPI) CreateComment(_ context.Context, postID int64, body string) (*domain.ForumComment, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	c := domain.ForumComment{ID: f.nextID, PostID: postID, Body: body}
	return &c, nil
}

func (f *fakeForumAPI) CreateReply(_ context.Context, commentID int64, body string) (*domain.ForumComment, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	parent := commentID
	c := domain.ForumComment{ID: f.nextID, ParentID: &parent, Body: body}
	return &c, nil
}

func (f *fakeForumAPI) UpdateComment(_ context.Context, id int64, body string) (*domain.ForumComment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ForumComment{ID: id, Body: body}, nil
}

func (f *fakeForumAPI) DeleteComment(context.Context, int64) error {
	return f.err
}

func (f *fakeForumAPI) ToggleHeart(context.Context, int64) (*domain.ForumComment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.heartReturns, nil
}

func newForumFixture(api *fakeForumAPI) *ForumStore {
	return NewForumStore(api, zerolog.Nop())
}

func TestForumStore_TwoLevelsStayIsolated(t *testing.T) {
	api := newFakeForumAPI()
	parentID := int64(10)
	api.comments[1] = []domain.ForumComment{{ID: 10, PostID: 1, Body: "top"}}
	api.replies[10] = []domain.ForumComment{{ID: 11, ParentID: &parentID, Body: "reply"}}
	s := newForumFixture(api)

	if _, err := s.LoadComments(context.Background(), 1); err != nil {
		t.Fatalf("LoadComments returned error: %v", err)
	}
	if _, err := s.LoadReplies(context.Background(), 10); err != nil {
		t.Fatalf("LoadReplies returned error: %v", err)
	}

	top := s.Comments(1)
	if len(top) != 1 || top[0].ID != 10 {
		t.Fatalf("top-level cache = %#v", top)
	}
	for _, c := range top {
		if c.IsReply() {
			t.Fatalf("reply %d leaked into the top-level cache", c.ID)
		}
	}

	replies := s.Replies(10)
	if len(replies) != 1 || replies[0].ID != 11 {
		t.Fatalf("thread cache = %#v", replies)
	}

	// The reply id must not be addressable as a post's comment list, nor
	// the top-level id as a thread.
	if got := s.Comments(11); len(got) != 0 {
		t.Fatalf("reply id answered as a post: %#v", got)
	}
	if got := s.Replies(1); len(got) != 0 {
		t.Fatalf("post id answered as a thread: %#v", got)
	}
}

func TestForumStore_AddCommentTouchesOnlyTopLevel(t *testing.T) {
	api := newFakeForumAPI()
	s := newForumFixture(api)

	created, err := s.AddComment(context.Background(), 1, "hello")
	if err != nil {
		t.Fatalf("AddComment returned error: %v", err)
	}
	if len(s.Comments(1)) != 1 {
		t.Fatalf("comment not cached: %#v", s.Comments(1))
	}
	if got := s.Replies(created.ID); len(got) != 0 {
		t.Fatalf("top-level comment appeared as thread: %#v", got)
	}
}

func TestForumStore_AddReplyTouchesOnlyThread(t *testing.T) {
	api := newFakeForumAPI()
	api.comments[1] = []domain.ForumComment{{ID: 10, PostID: 1, Body: "top"}}
	s := newForumFixture(api)
	if _, err := s.LoadComments(context.Background(), 1); err != nil {
		t.Fatalf("LoadComments returned error: %v", err)
	}

	if _, err := s.AddReply(context.Background(), 10, "me too"); err != nil {
		t.Fatalf("AddReply returned error: %v", err)
	}
	if len(s.Replies(10)) != 1 {
		t.Fatalf("reply not cached: %#v", s.Replies(10))
	}
	if len(s.Comments(1)) != 1 {
		t.Fatalf("reply leaked into top-level list: %#v", s.Comments(1))
	}
}

func TestForumStore_EditPatchesEverySlot(t *testing.T) {
	api := newFakeForumAPI()
	// The same top-level comment cached under two posts simulates the same
	// id appearing under more than one key.
	api.comments[1] = []domain.ForumComment{{ID: 10, Body: "old"}}
	api.comments[2] = []domain.ForumComment{{ID: 10, Body: "old"}}
	s := newForumFixture(api)
	if _, err := s.LoadComments(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadComments(context.Background(), 2); err != nil {
		t.Fatal(err)
	}

	if _, err := s.EditComment(context.Background(), 10, "new"); err != nil {
		t.Fatalf("EditComment returned error: %v", err)
	}
	if got := s.Comments(1); got[0].Body != "new" {
		t.Fatalf("post 1 slot not patched: %#v", got)
	}
	if got := s.Comments(2); got[0].Body != "new" {
		t.Fatalf("post 2 slot not patched: %#v", got)
	}
}

func TestForumStore_ToggleHeartUsesCanonicalRecord(t *testing.T) {
	api := newFakeForumAPI()
	api.comments[1] = []domain.ForumComment{{ID: 10, Body: "top", HeartsCount: 2, Hearted: false}}
	// The server says 7 hearts, not the local count plus one. The cache
	// must take the canonical value.
	api.heartReturns = &domain.ForumComment{ID: 10, Body: "top", HeartsCount: 7, Hearted: true}
	s := newForumFixture(api)
	if _, err := s.LoadComments(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	updated, err := s.ToggleHeart(context.Background(), 10)
	if err != nil {
		t.Fatalf("ToggleHeart returned error: %v", err)
	}
	if updated.HeartsCount != 7 || !updated.Hearted {
		t.Fatalf("returned record = %#v", updated)
	}
	if got := s.Comments(1); got[0].HeartsCount != 7 {
		t.Fatalf("cache kept local count: %#v", got[0])
	}
}

func TestForumStore_RemoveDropsFromEverySlot(t *testing.T) {
	api := newFakeForumAPI()
	parentID := int64(10)
	api.comments[1] = []domain.ForumComment{{ID: 10}, {ID: 12}}
	api.replies[10] = []domain.ForumComment{{ID: 11, ParentID: &parentID}}
	s := newForumFixture(api)
	if _, err := s.LoadComments(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadReplies(context.Background(), 10); err != nil {
		t.Fatal(err)
	}

	if err := s.RemoveComment(context.Background(), 11); err != nil {
		t.Fatalf("RemoveComment returned error: %v", err)
	}
	if len(s.Replies(10)) != 0 {
		t.Fatalf("reply still cached: %#v", s.Replies(10))
	}
	if len(s.Comments(1)) != 2 {
		t.Fatalf("removing a reply disturbed the top-level list: %#v", s.Comments(1))
	}
}

func TestForumStore_ErrorKeepsCache(t *testing.T) {
	api := newFakeForumAPI()
	api.comments[1] = []domain.ForumComment{{ID: 10, Body: "top"}}
	s := newForumFixture(api)
	if _, err := s.LoadComments(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	api.err = errors.New("backend down")
	if _, err := s.AddComment(context.Background(), 1, "lost"); err == nil {
		t.Fatal("expected add to fail")
	}
	if got := s.Comments(1); len(got) != 1 {
		t.Fatalf("failed add changed the cache: %#v", got)
	}
	if s.Err() == nil {
		t.Fatal("store did not record the error")
	}
}
