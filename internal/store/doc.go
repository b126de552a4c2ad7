// Package store holds the client-side mirrors of Readup server state.
//
// # Overview
//
// Each store owns one slice of entity state (shelf entries, follows,
// events, forum comments, recommendations, the feed) and is the single
// writer for it. Stores update their caches only from backend responses:
// between issuing a request and its resolution the only UI-visible effect
// is a loading flag, never a provisional value. Because no pre-response
// mutation happens, no rollback machinery exists either; a failed call
// leaves the previous cache value standing and records the error.
//
// # Concurrency
//
// Every store is safe for concurrent use behind a mutex. There is no
// conflict detection between writers (for example two tabs of the same
// session): the last response to arrive wins. A slow response resolving
// after the caller moved on still writes into the shared cache; that race
// is accepted and documented rather than fenced.
//
// # Cross-store invalidation
//
// Shelf and follow mutations publish on the bus; the recommendation store
// subscribes and refreshes itself best-effort, logging failures and never
// surfacing them to the mutating caller.
package store
