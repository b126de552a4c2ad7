package readup

import (
	"context"
	"fmt"

	"github.com/readupapp/readup-go/internal/domain"
)

// UserBookRequest is the wire payload for creating or patching a shelf
// entry. Nil pointer fields are omitted so a patch only touches what the
// caller set.
type UserBookRequest struct {
	BookID     int64                `json:"book_id,omitempty"`
	Status     domain.ReadingStatus `json:"status,omitempty"`
	Visibility domain.Visibility    `json:"visibility,omitempty"`
	PagesRead  *int                 `json:"pages_read,omitempty"`
	TotalPages *int                 `json:"total_pages,omitempty"`
	Rating     *int                 `json:"rating,omitempty"`
	Review     *string              `json:"review,omitempty"`
	DNFPage    *int                 `json:"dnf_page,omitempty"`
	DNFReason  *string              `json:"dnf_reason,omitempty"`
}

// ReviewRequest is the wire payload for POST /user/books/:id/review.
type ReviewRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// FetchUserBooks lists the current user's shelf.
func (c *Client) FetchUserBooks(ctx context.Context) ([]domain.UserBook, error) {
	var payload []domain.UserBook
	if err := c.get(ctx, "/user/books", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchUserBookByBook looks up the current user's shelf entry for a book.
// A 404 means the book has simply not been shelved yet and is returned as
// (nil, nil), not as an error.
func (c *Client) FetchUserBookByBook(ctx context.Context, bookID int64) (*domain.UserBook, error) {
	var payload domain.UserBook
	err := c.get(ctx, fmt.Sprintf("/user/books/by_book/%d", bookID), &payload)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &payload, nil
}

// CreateUserBook creates a shelf entry.
func (c *Client) CreateUserBook(ctx context.Context, req UserBookRequest) (*domain.UserBook, error) {
	var payload domain.UserBook
	if err := c.post(ctx, "/user/books", req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateUserBook patches an existing shelf entry.
func (c *Client) UpdateUserBook(ctx context.Context, id int64, req UserBookRequest) (*domain.UserBook, error) {
	var payload domain.UserBook
	if err := c.patch(ctx, fmt.Sprintf("/user/books/%d", id), req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SubmitReview attaches a rating and review text to a shelf entry.
func (c *Client) SubmitReview(ctx context.Context, id int64, req ReviewRequest) (*domain.UserBook, error) {
	var payload domain.UserBook
	if err := c.post(ctx, fmt.Sprintf("/user/books/%d/review", id), req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
