package readup

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/readupapp/readup-go/internal/domain"
)

// FetchBooks lists books, optionally filtered by a search query.
func (c *Client) FetchBooks(ctx context.Context, query string) ([]domain.Book, error) {
	values := url.Values{}
	if q := strings.TrimSpace(query); q != "" {
		values.Set("query", q)
	}
	var payload []domain.Book
	if err := c.getQuery(ctx, "/books", values, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchBook retrieves a single book by persisted id.
func (c *Client) FetchBook(ctx context.Context, id int64) (*domain.Book, error) {
	var payload domain.Book
	if err := c.get(ctx, fmt.Sprintf("/books/%d", id), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchBookFriends lists followed users' shelf entries for a book.
// Private entries never appear here; the backend filters them.
func (c *Client) FetchBookFriends(ctx context.Context, id int64) ([]domain.FriendShelf, error) {
	var payload []domain.FriendShelf
	if err := c.get(ctx, fmt.Sprintf("/books/%d/friends", id), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateBook persists an external book. The returned id is authoritative;
// callers must redirect any pending action to it.
func (c *Client) CreateBook(ctx context.Context, draft domain.BookDraft) (*domain.Book, error) {
	var payload domain.Book
	if err := c.post(ctx, "/books", draft, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
