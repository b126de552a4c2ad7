package domain

import "time"

// Author is a book author, either persisted by the backend or surfaced from
// the external catalog during discovery.
type Author struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Bio        string    `json:"bio,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	BooksCount int       `json:"books_count,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
}

// IsPersisted reports whether the author exists as a backend row.
func (a Author) IsPersisted() bool {
	return a.ID > 0
}

// IsExternal reports whether the author is an unimported catalog candidate.
func (a Author) IsExternal() bool {
	return a.ID <= 0
}

// AuthorDraft carries the displayable fields sent when promoting an external
// author into a persisted row.
type AuthorDraft struct {
	Name      string `json:"name"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Draft extracts the promotable fields from an external author.
func (a Author) Draft() AuthorDraft {
	return AuthorDraft{Name: a.Name, Bio: a.Bio, AvatarURL: a.AvatarURL}
}
