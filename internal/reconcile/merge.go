// Package reconcile merges platform-native entities with external catalog
// candidates and promotes candidates into persisted rows on demand.
//
// # Merge
//
// Merging keys entities on their case-insensitive, whitespace-trimmed name.
// The first occurrence wins for conflicting fields, with one exception: a
// platform entity missing bio or books_count may be backfilled from the
// external match. A platform id is never overwritten.
//
// # Promotion
//
// Promotion happens when the user acts (follow, shelve) on an entity whose
// id is zero or negative: the displayable fields go to the backend's create
// endpoint, the returned persisted id becomes authoritative, and a mapping
// from the old transient id is recorded so any view still holding it can
// redirect. The create and the follow-up action are not transactional:
// when the action fails after the create succeeded, the row exists
// unreferenced and the mapping is kept so a retry reuses it instead of
// creating a duplicate.
package reconcile

import (
	"strings"

	"github.com/readupapp/readup-go/internal/domain"
)

// mergeKey normalizes a name for deduplication.
func mergeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MergeAuthors combines platform search results with external candidates
// into one deduplicated list. Locals keep their position; externals that
// matched nothing are appended in order. When an external matches a local
// by name, the local entry wins, backfilling only a missing bio or
// books_count. The local id is never touched.
func MergeAuthors(local, external []domain.Author) []domain.Author {
	merged := make([]domain.Author, len(local))
	copy(merged, local)

	index := make(map[string]int, len(merged))
	for i, a := range merged {
		index[mergeKey(a.Name)] = i
	}

	for _, ext := range external {
		key := mergeKey(ext.Name)
		i, ok := index[key]
		if !ok {
			index[key] = len(merged)
			merged = append(merged, ext)
			continue
		}
		if merged[i].Bio == "" {
			merged[i].Bio = ext.Bio
		}
		if merged[i].BooksCount == 0 {
			merged[i].BooksCount = ext.BooksCount
		}
	}
	return merged
}

// MergeBooks combines platform search results with external candidates,
// deduplicated by normalized title. First seen wins; a local entry only
// backfills a missing description or page count from its external match.
func MergeBooks(local, external []domain.Book) []domain.Book {
	merged := make([]domain.Book, len(local))
	copy(merged, local)

	index := make(map[string]int, len(merged))
	for i, b := range merged {
		index[mergeKey(b.Title)] = i
	}

	for _, ext := range external {
		key := mergeKey(ext.Title)
		i, ok := index[key]
		if !ok {
			index[key] = len(merged)
			merged = append(merged, ext)
			continue
		}
		if merged[i].Description == "" {
			merged[i].Description = ext.Description
		}
		if merged[i].PageCount == 0 {
			merged[i].PageCount = ext.PageCount
		}
	}
	return merged
}
