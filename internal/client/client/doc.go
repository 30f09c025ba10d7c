// Package client contains client-side building blocks for the MyBank
// console.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) with two
//     verbs, Get and Post, both returning a decoded Result.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that stamps every
//     request with X-Request-ID, adds an Idempotency-Key to POSTs, bounds
//     calls with a timeout and decodes the {status, message, data} envelope
//     exactly once.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database with embedded goose migrations.
//
// # Results
//
// A Result is one of three kinds:
//
//   - KindOK: status "success"; Data holds the raw payload.
//   - KindRejected: the server answered with an envelope that is not a
//     success (or a non-2xx code). Message is the server text, possibly empty.
//   - KindUnreachable: the request failed or the body was not JSON.
//
// Result.Err maps these to nil, *BusinessError and ErrUnavailable so
// callers can use errors.Is / errors.As.
package client
