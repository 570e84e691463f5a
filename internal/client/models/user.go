package models

import (
	"strings"
	"time"
)

// User is the payload of GET /api/user/get for a signed-in caller.
// The backend answers an empty object for anonymous callers, which decodes
// to a User with an empty Username.
type User struct {
	Username         string `json:"username"`
	RegistrationDate string `json:"registration_date"`
}

// Empty reports whether the payload carried no user.
func (u User) Empty() bool {
	return strings.TrimSpace(u.Username) == ""
}

var registrationLayouts = []string{
	time.RFC1123,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05.999999",
	time.DateOnly,
}

// RegisteredAt parses RegistrationDate. The backend has emitted both HTTP
// dates and ISO timestamps; an unknown format yields the zero time.
func (u User) RegisteredAt() time.Time {
	for _, layout := range registrationLayouts {
		if t, err := time.Parse(layout, u.RegistrationDate); err == nil {
			return t
		}
	}
	return time.Time{}
}
