package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// FeedItemKind tags the payload variant of a feed item. The set is closed:
// decoding an unknown kind is an error rather than a silently dropped item.
type FeedItemKind string

const (
	FeedKindUserBook FeedItemKind = "user_book"
	FeedKindReview   FeedItemKind = "review"
	FeedKindFollow   FeedItemKind = "follow"
	FeedKindEvent    FeedItemKind = "event"
)

// Valid checks if the kind is a known feed variant.
func (k FeedItemKind) Valid() bool {
	switch k {
	case FeedKindUserBook, FeedKindReview, FeedKindFollow, FeedKindEvent:
		return true
	default:
		return false
	}
}

// FeedItem is one entry in the follower timeline. Exactly one payload field
// matching Kind is non-nil.
type FeedItem struct {
	ID        int64        `json:"id"`
	Kind      FeedItemKind `json:"kind"`
	ActorID   int64        `json:"actor_id"`
	ActorName string       `json:"actor_name,omitempty"`
	CreatedAt time.Time    `json:"created_at,omitzero"`

	UserBook *FeedUserBook `json:"user_book,omitempty"`
	Review   *FeedReview   `json:"review,omitempty"`
	Follow   *FeedFollow   `json:"follow,omitempty"`
	Event    *FeedEvent    `json:"event,omitempty"`
}

// FeedUserBook is a shelf change surfaced in the feed.
type FeedUserBook struct {
	BookID     int64         `json:"book_id"`
	BookTitle  string        `json:"book_title"`
	Status     ReadingStatus `json:"status"`
	Visibility Visibility    `json:"visibility"`
}

// FeedReview is a posted review surfaced in the feed.
type FeedReview struct {
	BookID     int64      `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	Rating     int        `json:"rating,omitempty"`
	Excerpt    string     `json:"excerpt,omitempty"`
	Visibility Visibility `json:"visibility"`
}

// FeedFollow is a new follow surfaced in the feed.
type FeedFollow struct {
	FollowableType FollowableType `json:"followable_type"`
	FollowableID   int64          `json:"followable_id"`
	FollowableName string         `json:"followable_name,omitempty"`
}

// FeedEvent is an upcoming author event surfaced in the feed.
type FeedEvent struct {
	EventID    int64     `json:"event_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Title      string    `json:"title"`
	StartsAt   time.Time `json:"starts_at,omitzero"`
}

// UnmarshalJSON decodes a feed item and rejects unknown kinds.
func (f *FeedItem) UnmarshalJSON(data []byte) error {
	type alias FeedItem
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !FeedItemKind(raw.Kind).Valid() {
		return fmt.Errorf("unknown feed item kind %q", raw.Kind)
	}
	*f = FeedItem(raw)
	return nil
}

// Visible reports whether the item may be shown in a rendered feed.
// Private shelf entries and reviews are filtered at the read boundary,
// regardless of what the backend returned.
func (f FeedItem) Visible() bool {
	switch f.Kind {
	case FeedKindUserBook:
		return f.UserBook == nil || f.UserBook.Visibility != VisibilityPrivate
	case FeedKindReview:
		return f.Review == nil || f.Review.Visibility != VisibilityPrivate
	default:
		return true
	}
}
