// Package app provides the composition root for the Readup client.
//
// # Overview
//
// The app package wires configuration, the backend and catalog clients,
// the reconciler, the bus, and every store into a dependency-injection
// container, then executes one CLI verb against that graph. Stores are
// container singletons, never package globals: two containers never share
// state, which keeps tests honest about what they touched.
//
// # Initialization order
//
//  1. config.Load reads TOML + environment
//  2. zerolog logger built from the configured level
//  3. bus created; the API client's 401 hook publishes auth.logged_out
//  4. reconciler and stores resolved lazily as verbs ask for them
//
// The recommendation store subscribes to shelf.changed and follow.changed
// at construction, so cross-store invalidation exists as soon as both ends
// are resolved.
package app
