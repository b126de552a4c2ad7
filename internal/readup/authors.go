package readup

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/readupapp/readup-go/internal/domain"
)

// FetchAuthors lists authors, optionally filtered by a search query.
func (c *Client) FetchAuthors(ctx context.Context, query string) ([]domain.Author, error) {
	values := url.Values{}
	if q := strings.TrimSpace(query); q != "" {
		values.Set("query", q)
	}
	var payload []domain.Author
	if err := c.getQuery(ctx, "/authors", values, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchAuthor retrieves a single author by persisted id.
func (c *Client) FetchAuthor(ctx context.Context, id int64) (*domain.Author, error) {
	var payload domain.Author
	if err := c.get(ctx, fmt.Sprintf("/authors/%d", id), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchAuthorBooks lists the books attributed to an author.
func (c *Client) FetchAuthorBooks(ctx context.Context, id int64) ([]domain.Book, error) {
	var payload []domain.Book
	if err := c.get(ctx, fmt.Sprintf("/authors/%d/books", id), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchAuthorEvents lists the events attributed to an author.
func (c *Client) FetchAuthorEvents(ctx context.Context, id int64) ([]domain.Event, error) {
	var payload []domain.Event
	if err := c.get(ctx, fmt.Sprintf("/authors/%d/events", id), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateAuthor persists an external author. The returned id is
// authoritative; callers must redirect any pending action to it.
func (c *Client) CreateAuthor(ctx context.Context, draft domain.AuthorDraft) (*domain.Author, error) {
	var payload domain.Author
	if err := c.post(ctx, "/authors", draft, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
