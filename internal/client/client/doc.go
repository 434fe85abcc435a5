// Package client contains the client-side building blocks for talking to the
// globalstats service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the API interface) covering
//     statistic create/update/fetch, ranked sections, leaderboards and link
//     requests.
//  2. A concrete REST implementation (see HTTPClient) that performs the
//     client-credentials grant, attaches the bearer token to every call and
//     maps transport outcomes to sentinel errors.
//  3. A TokenManager that keeps the current access token, treats it as
//     expired 120 seconds early and coalesces concurrent refreshes into one
//     request.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database with embedded goose migrations.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors matched with errors.Is:
// ErrInvalidName, ErrEmptyBoardID, ErrAuth, ErrUnavailable, ErrHTTPStatus,
// ErrParse and ErrNoIdentity. Non-2xx responses are *StatusError values.
// Nothing is retried at this layer.
//
// # Concurrency & Contexts
//
// HTTPClient and TokenManager are safe for concurrent use. All operations
// accept a context.Context that bounds the caller's wait.
package client
