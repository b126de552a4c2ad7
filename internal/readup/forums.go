package readup

import (
	"context"
	"fmt"

	"github.com/readupapp/readup-go/internal/domain"
)

// FetchForums lists discussion boards.
func (c *Client) FetchForums(ctx context.Context) ([]domain.Forum, error) {
	var payload []domain.Forum
	if err := c.get(ctx, "/forums", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchForum retrieves one board with its posts.
func (c *Client) FetchForum(ctx context.Context, id int64) (*domain.Forum, []domain.ForumPost, error) {
	var payload struct {
		Forum domain.Forum       `json:"forum"`
		Posts []domain.ForumPost `json:"posts"`
	}
	if err := c.get(ctx, fmt.Sprintf("/forums/%d", id), &payload); err != nil {
		return nil, nil, err
	}
	return &payload.Forum, payload.Posts, nil
}

// CreatePost opens a new thread in a forum.
func (c *Client) CreatePost(ctx context.Context, forumID int64, title, body string) (*domain.ForumPost, error) {
	req := struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}{title, body}

	var payload domain.ForumPost
	if err := c.post(ctx, fmt.Sprintf("/forums/%d/posts", forumID), req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchPostComments lists the top-level comments of a post. Replies are
// fetched separately per parent comment.
func (c *Client) FetchPostComments(ctx context.Context, postID int64) ([]domain.ForumComment, error) {
	var payload []domain.ForumComment
	if err := c.get(ctx, fmt.Sprintf("/posts/%d/comments", postID), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchCommentReplies lists the replies to one comment. Replies nest one
// level only.
func (c *Client) FetchCommentReplies(ctx context.Context, commentID int64) ([]domain.ForumComment, error) {
	var payload []domain.ForumComment
	if err := c.get(ctx, fmt.Sprintf("/comments/%d/replies", commentID), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateComment posts a top-level comment on a post.
func (c *Client) CreateComment(ctx context.Context, postID int64, body string) (*domain.ForumComment, error) {
	req := struct {
		Body string `json:"body"`
	}{body}

	var payload domain.ForumComment
	if err := c.post(ctx, fmt.Sprintf("/posts/%d/comments", postID), req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateReply posts a reply under a parent comment.
func (c *Client) CreateReply(ctx context.Context, commentID int64, body string) (*domain.ForumComment, error) {
	req := struct {
		Body string `json:"body"`
	}{body}

	var payload domain.ForumComment
	if err := c.post(ctx, fmt.Sprintf("/comments/%d/replies", commentID), req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateComment edits a comment or reply body.
func (c *Client) UpdateComment(ctx context.Context, id int64, body string) (*domain.ForumComment, error) {
	req := struct {
		Body string `json:"body"`
	}{body}

	var payload domain.ForumComment
	if err := c.patch(ctx, fmt.Sprintf("/comments/%d", id), req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteComment removes a comment or reply.
func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/comments/%d", id))
}

// ToggleHeart flips the current user's heart on a comment and returns the
// canonical comment with the server-side count. The caller replaces its
// cached copy rather than adjusting any count locally.
func (c *Client) ToggleHeart(ctx context.Context, commentID int64) (*domain.ForumComment, error) {
	var payload domain.ForumComment
	if err := c.post(ctx, fmt.Sprintf("/comments/%d/heart", commentID), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ReportComment flags a comment for moderation.
func (c *Client) ReportComment(ctx context.Context, commentID int64, reason string) error {
	req := struct {
		Reason string `json:"reason"`
	}{reason}
	return c.post(ctx, fmt.Sprintf("/comments/%d/report", commentID), req, nil)
}
