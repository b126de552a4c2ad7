package readup

import (
	"context"

	"github.com/readupapp/readup-go/internal/domain"
)

// FetchRecommendedBooks lists book recommendations for the current user.
func (c *Client) FetchRecommendedBooks(ctx context.Context) ([]domain.Book, error) {
	var payload []domain.Book
	if err := c.get(ctx, "/recommendations/books", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchRecommendedAuthors lists author recommendations for the current user.
func (c *Client) FetchRecommendedAuthors(ctx context.Context) ([]domain.Author, error) {
	var payload []domain.Author
	if err := c.get(ctx, "/recommendations/authors", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchRecommendedEvents lists event recommendations for the current user.
func (c *Client) FetchRecommendedEvents(ctx context.Context) ([]domain.Event, error) {
	var payload []domain.Event
	if err := c.get(ctx, "/recommendations/events", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchFeed retrieves the follower timeline. Unknown item kinds fail the
// decode; the feed variant set is closed.
func (c *Client) FetchFeed(ctx context.Context) ([]domain.FeedItem, error) {
	var payload []domain.FeedItem
	if err := c.get(ctx, "/feed", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
