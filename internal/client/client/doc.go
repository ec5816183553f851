// Package client contains the client-side transport to the studio backend.
//
// # Overview
//
// The package provides:
//  1. A typed API contract (see the Client interface) covering the auth
//     endpoints (login, register, email OTP send/verify, Google sign-in,
//     logout, me, check-email) and the booking endpoints.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that attaches the
//     persisted bearer token, decodes failure bodies into *APIError, and
//     drops the persisted token when the backend reports it invalid.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// A reply with a non-2xx status is returned as *APIError, whose Message is
// the backend's "message" (or "error") field. A request that never got an
// HTTP reply wraps ErrUnavailable. A 401 reply matches ErrUnauthorized.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every call takes a context.Context
// and honors its cancellation.
package client
