package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jafa/internal/client/actions"
)

func (a *App) Home(ctx context.Context) error {
	a.router.Navigate("/")
	return nil
}

func (a *App) Back(ctx context.Context) error {
	if !a.router.Back() {
		a.println("Nothing to go back to")
	}
	return nil
}

// Refresh remounts the current page, fetching it again.
func (a *App) Refresh(ctx context.Context) error {
	a.router.Refresh()
	return nil
}

func (a *App) Go(ctx context.Context, path string) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	a.router.Navigate(path)
	return nil
}

// Subforum opens a subforum listing. A trailing number is the page; the
// other arguments make up the title.
func (a *App) Subforum(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: subforum <title> [page]", errUsage)
	}

	page := 1
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[len(args)-1]); err == nil {
			page = n
			args = args[:len(args)-1]
		}
	}
	if page < 1 {
		return fmt.Errorf("%w: page must be positive", errUsage)
	}

	path := actions.SubforumPath(strings.Join(args, " "))
	if page > 1 {
		path += "/" + strconv.Itoa(page)
	}
	a.router.Navigate(path)
	return nil
}

// Page opens page n of the listing currently shown, or of the root listing.
func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: page <n>", errUsage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("%w: page must be a positive number", errUsage)
	}

	path, _ := a.router.Current()
	if rest, ok := strings.CutPrefix(path, "/subforum/"); ok {
		title, _, _ := strings.Cut(rest, "/")
		a.router.Navigate(fmt.Sprintf("/subforum/%s/%d", title, n))
		return nil
	}
	a.router.Navigate(fmt.Sprintf("/page/%d", n))
	return nil
}

// View draws the current page again without fetching it.
func (a *App) View(ctx context.Context) error {
	a.render(true)
	return nil
}

// Toasts lists the notifications that have not expired yet.
func (a *App) Toasts(ctx context.Context) error {
	visible := a.toasts.Visible()
	if len(visible) == 0 {
		a.println("No notifications")
		return nil
	}
	for _, t := range visible {
		a.println(fmt.Sprintf("%s (%s) %s", t.CreatedAt.Format("15:04:05"), toastMark(t.Kind), t.Message))
	}
	return nil
}
