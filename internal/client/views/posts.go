package views

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/jafa/internal/client/models"
	"github.com/dmitrijs2005/jafa/internal/client/services"
	"github.com/dmitrijs2005/jafa/internal/client/session"
)

// PostList is the root listing or, with a subforum set, a subforum listing.
type PostList struct {
	posts    services.PostService
	reporter session.ErrorReporter
	subforum string
	page     int

	mu     sync.Mutex
	result *models.PostPage
	failed bool
	loaded bool
}

func NewHome(posts services.PostService, reporter session.ErrorReporter, page int) *PostList {
	return &PostList{posts: posts, reporter: reporter, page: page}
}

func NewSubforum(posts services.PostService, reporter session.ErrorReporter, subforum string, page int) *PostList {
	return &PostList{posts: posts, reporter: reporter, subforum: subforum, page: page}
}

// Mount fetches the page.
func (v *PostList) Mount(ctx context.Context) {
	var (
		page *models.PostPage
		err  error
	)
	if v.subforum == "" {
		page, err = v.posts.List(ctx, v.page)
	} else {
		page, err = v.posts.ListSubforum(ctx, v.subforum, v.page)
	}

	if ctx.Err() != nil {
		return
	}

	v.mu.Lock()
	v.loaded = true
	v.result = page
	v.failed = err != nil
	v.mu.Unlock()

	if err != nil {
		v.reporter.Report(ctx, err)
	}
}

func (v *PostList) Unmount() {}

func (v *PostList) Render(w io.Writer) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.subforum == "" {
		fmt.Fprintf(w, "Jafa, page %d\n", v.page)
	} else {
		fmt.Fprintf(w, "Jafa / %s, page %d\n", v.subforum, v.page)
		if v.result != nil && v.result.Info.Description != "" {
			fmt.Fprintf(w, "%s\n", v.result.Info.Description)
		}
	}
	fmt.Fprintln(w, strings.Repeat("-", 40))

	switch {
	case !v.loaded:
		fmt.Fprintln(w, "Loading...")
		return
	case v.failed:
		fmt.Fprintln(w, "Could not load posts.")
		return
	case v.result == nil || len(v.result.Posts) == 0:
		fmt.Fprintln(w, "No posts found...")
		return
	}

	for _, p := range v.result.Posts {
		renderPost(w, p)
	}
	if info := v.result.Info; info.PageCount > 1 {
		fmt.Fprintf(w, "page %d of %d (%d posts)\n", v.page, info.PageCount, info.PostCount)
	}
}

func renderPost(w io.Writer, p models.Post) {
	lock := ""
	if p.Locked {
		lock = " [locked]"
	}
	fmt.Fprintf(w, "[%s] %s%s\n", p.PostID, p.Title, lock)
	fmt.Fprintf(w, "  in %s by %s, %s  +%d/-%d\n", p.Subforum, p.Op, p.CreationDate, p.Likes, p.Dislikes)
	if body := strings.TrimSpace(p.Body); body != "" {
		fmt.Fprintf(w, "  %s\n", body)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "  tags: %s\n", strings.Join(p.Tags, ", "))
	}
}
