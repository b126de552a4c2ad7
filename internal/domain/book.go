package domain

import "time"

// Book is a title on the platform, either persisted or a transient external
// catalog result carrying a negative session-scoped id.
type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	AuthorID      int64     `json:"author_id,omitempty"`
	AuthorName    string    `json:"author_name,omitempty"`
	Description   string    `json:"description,omitempty"`
	ISBN          string    `json:"isbn,omitempty"`
	CoverURL      string    `json:"cover_url,omitempty"`
	PageCount     int       `json:"page_count,omitempty"`
	PublishedDate string    `json:"published_date,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
}

// IsPersisted reports whether the book exists as a backend row.
func (b Book) IsPersisted() bool {
	return b.ID > 0
}

// IsExternal reports whether the book is an unimported catalog candidate.
func (b Book) IsExternal() bool {
	return b.ID <= 0
}

// BookDraft carries the displayable fields sent when promoting an external
// book into a persisted row.
type BookDraft struct {
	Title         string `json:"title"`
	AuthorName    string `json:"author_name,omitempty"`
	Description   string `json:"description,omitempty"`
	ISBN          string `json:"isbn,omitempty"`
	CoverURL      string `json:"cover_url,omitempty"`
	PageCount     int    `json:"page_count,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
}

// Draft extracts the promotable fields from an external book.
func (b Book) Draft() BookDraft {
	return BookDraft{
		Title:         b.Title,
		AuthorName:    b.AuthorName,
		Description:   b.Description,
		ISBN:          b.ISBN,
		CoverURL:      b.CoverURL,
		PageCount:     b.PageCount,
		PublishedDate: b.PublishedDate,
	}
}

// FriendShelf is another user's shelf entry for a book, as returned by
// GET /books/:id/friends.
type FriendShelf struct {
	UserID      int64         `json:"user_id"`
	DisplayName string        `json:"display_name"`
	AvatarURL   string        `json:"avatar_url,omitempty"`
	Status      ReadingStatus `json:"status"`
	Rating      int           `json:"rating,omitempty"`
}
