// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
//  1. The Client interface: the GuiDipper backend API (auth, bookmarks,
//     route generation and storage, chat, profile).
//  2. HTTPClient, its net/http implementation. Every request carries an
//     X-Request-ID, authenticated ones a bearer token; each request is a
//     trace span and bumps a request counter.
//  3. InitDatabase / RunMigrations: the local SQLite store bootstrap with
//     embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable; 401/403 map to ErrUnauthorized,
// 404 to ErrNotFound; any other failure status is an *APIError. Calls that
// need a token fail with ErrNoToken before any I/O when it is empty.
package client
