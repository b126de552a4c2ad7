package domain

import "errors"

// ErrNotImported is returned when an operation that needs a persisted id is
// attempted on an external entity that has not been promoted yet.
var ErrNotImported = errors.New("entity has not been imported yet")

// FollowableType names the kinds of entities a user can follow.
type FollowableType string

const (
	FollowUser   FollowableType = "User"
	FollowAuthor FollowableType = "Author"
	FollowBook   FollowableType = "Book"
)

// Valid checks if the followable type is known.
func (t FollowableType) Valid() bool {
	switch t {
	case FollowUser, FollowAuthor, FollowBook:
		return true
	default:
		return false
	}
}

// Follow links the current user to a followable entity. At most one Follow
// exists per (type, id) pair; the client checks before mutating and the
// backend enforces it authoritatively.
type Follow struct {
	ID             int64          `json:"id"`
	FollowableType FollowableType `json:"followable_type"`
	FollowableID   int64          `json:"followable_id"`
}
