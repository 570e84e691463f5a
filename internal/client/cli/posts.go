package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jafa/internal/client/guard"
	"github.com/dmitrijs2005/jafa/internal/client/models"
)

// Vote likes or dislikes a post by id.
func (a *App) Vote(ctx context.Context, args []string, isLike bool) error {
	if len(args) != 1 {
		cmd := "like"
		if !isLike {
			cmd = "dislike"
		}
		return fmt.Errorf("%w: %s <post id>", errUsage, cmd)
	}
	return a.handlers.Vote(ctx, args[0], isLike)
}

// NewPost opens the new-post page; anonymous users are sent to the login
// page instead.
func (a *App) NewPost(ctx context.Context) error {
	return a.openForm(ctx, PathSubmitPost)
}

func (a *App) NewSubforum(ctx context.Context) error {
	return a.openForm(ctx, PathSubmitSubforum)
}

func (a *App) openForm(ctx context.Context, path string) error {
	a.router.Navigate(path)
	if current, _ := a.router.Current(); current != path {
		return nil
	}
	return a.Submit(ctx)
}

// Submit sends the form of the current page.
func (a *App) Submit(ctx context.Context) error {
	path, _ := a.router.Current()
	st := a.store.Snapshot()

	switch path {
	case guard.LoginPath:
		return a.submitLogin(ctx)
	case PathSubmitPost, PathSubmitSubforum:
		switch guard.Evaluate(st) {
		case guard.Pending:
			a.println(msgSessionPending)
			return nil
		case guard.Denied:
			return nil
		}
		if path == PathSubmitPost {
			return a.submitPost(ctx)
		}
		return a.submitSubforum(ctx)
	default:
		a.println("Nothing to submit on this page")
		return nil
	}
}

func (a *App) submitPost(ctx context.Context) error {
	var (
		d   models.PostDraft
		err error
	)
	if d.Subforum, err = getSimpleText(a.reader, "Subforum", a.term); err != nil {
		return err
	}
	if d.Title, err = getSimpleText(a.reader, "Title", a.term); err != nil {
		return err
	}
	if d.Body, err = getMultiline(a.reader, "Body", a.term); err != nil {
		return err
	}
	if d.Tags, err = getList(a.reader, "Tags", a.term); err != nil {
		return err
	}
	return a.handlers.CreatePost(ctx, d)
}

func (a *App) submitSubforum(ctx context.Context) error {
	var (
		d   models.SubforumDraft
		err error
	)
	if d.Title, err = getSimpleText(a.reader, "Title", a.term); err != nil {
		return err
	}
	if d.Description, err = getMultiline(a.reader, "Description", a.term); err != nil {
		return err
	}
	return a.handlers.CreateSubforum(ctx, d)
}
