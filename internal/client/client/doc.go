// Package client contains the transport layer of the Jafa client.
//
// # Overview
//
// The package provides:
//  1. The Client interface, the set of backend calls the rest of the client
//     needs: identity lookup, login/register/logout, voting, post listing and
//     post/subforum creation.
//  2. HTTPClient, an implementation over net/http. It sends form-encoded
//     POST bodies, tags each request with an X-Request-ID header, and carries
//     the backend's session cookie through a cookie jar.
//  3. Jar, a cookie jar that mirrors its content into the local SQLite
//     database so the server session survives restarts, plus InitDatabase and
//     RunMigrations to bootstrap that database with embedded goose migrations.
//
// # Error Handling
//
// Failures to reach the backend wrap ErrUnavailable. Error bodies sent by the
// backend become *APIError; a 401 without a body is ErrUnauthorized. Match
// them with errors.Is and errors.As.
//
// # Concurrency
//
// HTTPClient and Jar are safe for concurrent use. Every call accepts a
// context.Context and honors cancellation.
package client
