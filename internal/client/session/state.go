package session

import "time"

// User is the identity the backend reports for the current session.
// It is replaced wholesale and never mutated in place.
type User struct {
	Username         string
	RegistrationDate time.Time
}

// State is the client-side session snapshot.
type State struct {
	loaded bool
	user   *User
}

// Pending is the state before the first resolution has finished.
func Pending() State {
	return State{}
}

// Anonymous is a resolved state without a user.
func Anonymous() State {
	return State{loaded: true}
}

// Authenticated is a resolved state carrying u.
func Authenticated(u User) State {
	return State{loaded: true, user: &u}
}

// Loaded reports whether resolution has completed at least once.
func (s State) Loaded() bool {
	return s.loaded
}

// User returns the signed-in user, if any.
func (s State) User() (User, bool) {
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Authenticated reports whether a user is signed in.
func (s State) Authenticated() bool {
	return s.user != nil
}

func (s State) String() string {
	switch {
	case !s.loaded:
		return "pending"
	case s.user == nil:
		return "anonymous"
	default:
		return "authenticated(" + s.user.Username + ")"
	}
}
