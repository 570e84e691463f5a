package cli

import (
	"context"
)

// Root mounts the shell: the session is resolved once in the background
// while the home page loads, then the REPL takes over.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to Jafa (type 'help' for commands)")

	go a.resolver.Resolve(ctx, false)
	a.router.Navigate("/")

	runREPL(ctx, a, a.status, a.reader)
}
