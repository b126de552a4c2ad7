// Package domain defines the entity types shared by the Readup client stores.
//
// # Identity space
//
// Every Author and Book carries a single int64 id with three disjoint
// meanings:
//
//   - id > 0: a row persisted by the Readup backend; stable and followable.
//   - id < 0: a transient id assigned client-side to an external catalog
//     result, unique only within the current search session.
//   - id == 0: a sentinel meaning "external entity not yet imported"; only
//     Author records surface with it, before the user acts on them.
//
// Entities with id <= 0 must never reach a store that expects persisted ids
// (the follow cache, the shelf cache) without first being promoted through
// the reconcile package.
//
// # Lifecycle
//
// Persisted entities are created and updated only from backend responses;
// the client never fabricates a persisted id. Transient entities are minted
// from catalog search results and die when the search session is cleared or
// when promotion replaces them with a persisted row.
package domain
