package domain

import "time"

// Event is an author appearance scraped server-side from third-party
// sources. Events are globally shared, not per-user.
type Event struct {
	ID              int64     `json:"id"`
	AuthorID        int64     `json:"author_id,omitempty"`
	AuthorName      string    `json:"author_name,omitempty"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	VenueID         int64     `json:"venue_id,omitempty"`
	URL             string    `json:"url,omitempty"`
	StartsAt        time.Time `json:"starts_at,omitzero"`
	LastRefreshedAt time.Time `json:"last_refreshed_at,omitzero"`
}

// Venue is a location events are held at.
type Venue struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	URL     string `json:"url,omitempty"`
}
