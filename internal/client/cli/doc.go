// Package cli provides the interactive Jafa command-line client.
//
// It wires configuration, the persisted cookie jar, the backend client, the
// session store and resolver, the feedback channel and a router of terminal
// views, then runs a REPL over them. The session is resolved once when the
// shell starts; guarded pages show nothing until it is known.
//
// Key features:
//   - Browse the root listing and subforums, page by page
//   - Login / Register / Logout
//   - Like and dislike posts
//   - Create posts and subforums (login required)
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
