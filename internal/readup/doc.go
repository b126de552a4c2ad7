// Package readup provides an HTTP client for the Readup backend API.
//
// # Overview
//
// The client speaks JSON over HTTP with bearer-token auth. It is the only
// path by which the store layer reaches the backend; no store fabricates
// entity state on its own.
//
// # Request handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept/Content-Type: application/json and a User-Agent header
//   - Carry an Authorization: Bearer header when a token is configured
//   - Carry a fresh X-Request-ID (uuid) for server-side correlation
//
// # Error handling
//
// Responses with status >= 400 produce an *APIError carrying the status
// code and the server's error message. Helpers classify the cases the
// stores care about:
//
//   - IsNotFound: 404, treated by shelf lookups as "not yet shelved"
//   - IsUnauthorized: 401, which also clears the token and fires the
//     client's OnUnauthorized hook (global logout)
//   - IsRateLimited: 429 or a rate-limit keyword in the message
//
// Transport failures are wrapped with fmt.Errorf context and are not
// APIErrors.
package readup
