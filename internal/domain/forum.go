package domain

import "time"

// Forum is a discussion board.
type Forum struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	PostsCount  int    `json:"posts_count,omitempty"`
}

// ForumPost is a thread inside a forum.
type ForumPost struct {
	ID            int64     `json:"id"`
	ForumID       int64     `json:"forum_id"`
	AuthorUserID  int64     `json:"author_user_id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	CommentsCount int       `json:"comments_count,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
}

// ForumComment is a comment on a post, or a reply to another comment when
// ParentID is set. Replies nest exactly one level deep.
type ForumComment struct {
	ID           int64     `json:"id"`
	PostID       int64     `json:"post_id"`
	ParentID     *int64    `json:"parent_id,omitempty"`
	AuthorUserID int64     `json:"author_user_id"`
	AuthorName   string    `json:"author_name,omitempty"`
	Body         string    `json:"body"`
	HeartsCount  int       `json:"hearts_count"`
	Hearted      bool      `json:"hearted"`
	RepliesCount int       `json:"replies_count,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}

// IsReply reports whether the comment is a reply to another comment.
func (c ForumComment) IsReply() bool {
	return c.ParentID != nil
}
