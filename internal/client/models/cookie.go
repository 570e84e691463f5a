package models

import "time"

// StoredCookie is a backend cookie kept in the local database so the server
// session outlives the process, the way a browser keeps it.
type StoredCookie struct {
	Host     string
	Name     string
	Value    string
	Path     string
	Secure   bool
	HttpOnly bool
	// Expires is zero for session cookies.
	Expires time.Time
}
