// Package cookies persists backend cookies in the local SQLite database.
//
// Rows are keyed by (host, name, path), matching how a cookie jar identifies
// a cookie. Expiry is stored as Unix seconds; zero marks a session cookie.
package cookies
