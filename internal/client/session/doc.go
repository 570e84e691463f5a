// Package session holds the client's view of who is signed in.
//
// A State is one of three values: pending (not yet resolved), anonymous, or
// authenticated with a User. States are built only through Pending, Anonymous
// and Authenticated, so an authenticated state without a user, or a user in a
// state that has not loaded, cannot be expressed.
//
// The Store keeps the current State and notifies subscribers after every
// replacement. The Resolver asks the backend who the caller is and writes the
// answer into the Store.
package session
