package domain

import (
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ReadingStatus is a shelf bucket for a user's book.
type ReadingStatus string

const (
	StatusToRead  ReadingStatus = "to_read"
	StatusReading ReadingStatus = "reading"
	StatusRead    ReadingStatus = "read"
	StatusDNF     ReadingStatus = "dnf"
)

// Valid checks if the status is a known shelf bucket.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusToRead, StatusReading, StatusRead, StatusDNF:
		return true
	default:
		return false
	}
}

// Visibility controls whether a shelf entry appears in feeds and
// cross-user listings.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Valid checks if the visibility is a known value.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate:
		return true
	default:
		return false
	}
}

// UserBook is a shelf entry: one user's reading state for one book.
type UserBook struct {
	ID                   int64         `json:"id"`
	BookID               int64         `json:"book_id"`
	Status               ReadingStatus `json:"status"`
	Visibility           Visibility    `json:"visibility"`
	PagesRead            int           `json:"pages_read,omitempty"`
	TotalPages           int           `json:"total_pages,omitempty"`
	CompletionPercentage float64       `json:"completion_percentage,omitempty"`
	Rating               int           `json:"rating,omitempty"`
	Review               string        `json:"review,omitempty"`
	DNFPage              int           `json:"dnf_page,omitempty"`
	DNFReason            string        `json:"dnf_reason,omitempty"`
}

// Normalize recomputes CompletionPercentage from the page counters so the
// two representations cannot diverge after an update. A zero TotalPages
// leaves the stored percentage untouched.
func (ub *UserBook) Normalize() {
	if ub.TotalPages <= 0 {
		return
	}
	pct := float64(ub.PagesRead) / float64(ub.TotalPages) * 100
	ub.CompletionPercentage = math.Round(pct*10) / 10
}

// IsPrivate reports whether the entry must be hidden from feeds and
// cross-user listings.
func (ub UserBook) IsPrivate() bool {
	return ub.Visibility == VisibilityPrivate
}

// ShelfRequest is the input for creating or updating a shelf entry.
// UserBookID zero means "no entry yet": the store creates one first.
// When the book has not been imported (BookID <= 0) the store promotes it
// through the reconciler before any shelf call.
type ShelfRequest struct {
	UserBookID int64         `json:"user_book_id,omitempty"`
	BookID     int64         `json:"book_id"`
	Status     ReadingStatus `json:"status"`
	Visibility Visibility    `json:"visibility,omitempty"`
	PagesRead  *int          `json:"pages_read,omitempty"`
	TotalPages *int          `json:"total_pages,omitempty"`
	Rating     *int          `json:"rating,omitempty"`
	Review     *string       `json:"review,omitempty"`
	DNFPage    *int          `json:"dnf_page,omitempty"`
	DNFReason  *string       `json:"dnf_reason,omitempty"`
}

// Validate enforces the shelf entry invariants. DNF detail fields are never
// required, but they are only accepted alongside a dnf status.
func (r ShelfRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			validation.By(validStatus),
		),
		validation.Field(&r.Visibility,
			validation.When(r.Visibility != "", validation.By(validVisibility)),
		),
		validation.Field(&r.Rating,
			validation.When(r.Rating != nil, validation.By(ratingInRange(r.Rating))),
		),
		validation.Field(&r.PagesRead,
			validation.When(r.PagesRead != nil, validation.By(nonNegative(r.PagesRead, "pages_read"))),
		),
		validation.Field(&r.TotalPages,
			validation.When(r.TotalPages != nil, validation.By(nonNegative(r.TotalPages, "total_pages"))),
		),
		validation.Field(&r.DNFPage,
			validation.When(r.Status != StatusDNF && r.DNFPage != nil,
				validation.By(alwaysInvalid("dnf_page only applies to dnf status")),
			),
		),
		validation.Field(&r.DNFReason,
			validation.When(r.Status != StatusDNF && r.DNFReason != nil,
				validation.By(alwaysInvalid("dnf_reason only applies to dnf status")),
			),
		),
	)
}

// HasProgress reports whether the request carries progress or review fields
// that need a second call after the entry is first created.
func (r ShelfRequest) HasProgress() bool {
	return r.PagesRead != nil || r.TotalPages != nil || r.Rating != nil ||
		r.Review != nil || r.DNFPage != nil || r.DNFReason != nil
}

func validStatus(value any) error {
	s, _ := value.(ReadingStatus)
	if !s.Valid() {
		return validation.NewError("validation_status", "status must be one of to_read, reading, read, dnf")
	}
	return nil
}

func validVisibility(value any) error {
	v, _ := value.(Visibility)
	if !v.Valid() {
		return validation.NewError("validation_visibility", "visibility must be public or private")
	}
	return nil
}

func ratingInRange(rating *int) validation.RuleFunc {
	return func(any) error {
		if rating != nil && (*rating < 1 || *rating > 5) {
			return validation.NewError("validation_rating", "rating must be between 1 and 5")
		}
		return nil
	}
}

func nonNegative(n *int, name string) validation.RuleFunc {
	return func(any) error {
		if n != nil && *n < 0 {
			return validation.NewError("validation_"+name, name+" must not be negative")
		}
		return nil
	}
}

func alwaysInvalid(msg string) validation.RuleFunc {
	return func(any) error {
		return validation.NewError("validation_dnf", msg)
	}
}
