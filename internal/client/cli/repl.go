package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const helpText = `Available commands:
  help                    show this list
  home | back | refresh   move around
  go <path>               open a path, e.g. /subforum/golang/2
  subforum <title> [n]    open a subforum listing
  page <n>                open page n of the current listing
  view                    draw the current page again
  login | register        sign in or create an account
  tab                     switch between the login and register tabs
  logout | whoami         end the session or show who you are
  like <id> | dislike <id>
  newpost | newsubforum   create content (requires login)
  submit                  send the form on the current page
  toasts                  show recent notifications
  exit | quit             leave the program`

// execIface is the command surface of the shell. App implements it; tests
// provide a stub.
type execIface interface {
	Home(ctx context.Context) error
	Back(ctx context.Context) error
	Refresh(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Subforum(ctx context.Context, args []string) error
	Page(ctx context.Context, args []string) error
	View(ctx context.Context) error
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Tab(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Vote(ctx context.Context, args []string, isLike bool) error
	NewPost(ctx context.Context) error
	NewSubforum(ctx context.Context) error
	Submit(ctx context.Context) error
	Toasts(ctx context.Context) error
	println(args ...any)
}

var errUsage = errors.New("usage")

// runREPL reads one command per line from reader and dispatches it to a.
// It returns on EOF, on "exit"/"quit" or when ctx is done.
//
// Command errors are not printed here: backend and validation failures
// already reach the user as toasts. Usage errors print their hint.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		a.println(fmt.Sprintf("jafa %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error

		switch cmd {
		case "help":
			a.println(helpText)
		case "home":
			cmdErr = a.Home(ctx)
		case "back":
			cmdErr = a.Back(ctx)
		case "refresh":
			cmdErr = a.Refresh(ctx)
		case "go":
			if len(args) != 1 {
				cmdErr = fmt.Errorf("%w: go <path>", errUsage)
				break
			}
			cmdErr = a.Go(ctx, args[0])
		case "subforum":
			cmdErr = a.Subforum(ctx, args)
		case "page":
			cmdErr = a.Page(ctx, args)
		case "view":
			cmdErr = a.View(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "register":
			cmdErr = a.Register(ctx)
		case "tab":
			cmdErr = a.Tab(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "like", "dislike":
			cmdErr = a.Vote(ctx, args, cmd == "like")
		case "newpost":
			cmdErr = a.NewPost(ctx)
		case "newsubforum":
			cmdErr = a.NewSubforum(ctx)
		case "submit":
			cmdErr = a.Submit(ctx)
		case "toasts":
			cmdErr = a.Toasts(ctx)
		case "exit", "quit":
			a.println("Bye!")
			return
		default:
			a.println("Unknown command:", cmd)
		}

		if errors.Is(cmdErr, errUsage) {
			a.println(cmdErr.Error())
		}
	}
}
