package readup

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/readupapp/readup-go/internal/domain"
)

// EventQuery configures GET /events requests.
type EventQuery struct {
	AuthorID int64 // zero lists events across all authors
	Page     int   // zero means first page
}

// EventPage is one page of the event listing.
type EventPage struct {
	Events     []domain.Event `json:"events"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
}

// RefreshResult reports the outcome of a server-side event refresh.
type RefreshResult struct {
	NewEvents   int    `json:"new_events"`
	RefreshedAt string `json:"refreshed_at,omitempty"`
}

// FetchEvents retrieves one page of events.
func (c *Client) FetchEvents(ctx context.Context, query EventQuery) (EventPage, error) {
	values := url.Values{}
	if query.AuthorID > 0 {
		values.Set("author_id", strconv.FormatInt(query.AuthorID, 10))
	}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	var payload EventPage
	if err := c.getQuery(ctx, "/events", values, &payload); err != nil {
		return EventPage{}, err
	}
	return payload, nil
}

// FetchEvent retrieves a single event.
func (c *Client) FetchEvent(ctx context.Context, id int64) (*domain.Event, error) {
	var payload domain.Event
	if err := c.get(ctx, fmt.Sprintf("/events/%d", id), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// RefreshEvents asks the backend to enqueue asynchronous fetching from
// third-party sources. The client never scrapes; it only reports how many
// new events the backend found. authorID zero refreshes the global scope.
func (c *Client) RefreshEvents(ctx context.Context, authorID int64) (RefreshResult, error) {
	values := url.Values{}
	if authorID > 0 {
		values.Set("author_id", strconv.FormatInt(authorID, 10))
	}
	rel := &url.URL{Path: "/events/refresh", RawQuery: values.Encode()}
	var payload RefreshResult
	if err := c.doURL(ctx, http.MethodPost, rel, nil, &payload); err != nil {
		return RefreshResult{}, err
	}
	return payload, nil
}

// FetchVenues lists known event venues.
func (c *Client) FetchVenues(ctx context.Context) ([]domain.Venue, error) {
	var payload []domain.Venue
	if err := c.get(ctx, "/venues", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
