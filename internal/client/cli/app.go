package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/jafa/internal/client/actions"
	"github.com/dmitrijs2005/jafa/internal/client/client"
	"github.com/dmitrijs2005/jafa/internal/client/config"
	"github.com/dmitrijs2005/jafa/internal/client/feedback"
	"github.com/dmitrijs2005/jafa/internal/client/guard"
	"github.com/dmitrijs2005/jafa/internal/client/router"
	"github.com/dmitrijs2005/jafa/internal/client/services"
	"github.com/dmitrijs2005/jafa/internal/client/session"
	"github.com/dmitrijs2005/jafa/internal/client/views"
	"github.com/dmitrijs2005/jafa/internal/logging"
)

const (
	PathSubmitPost     = "/submit/post"
	PathSubmitSubforum = "/submit/subforum"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  *client.Repositories

	store    *session.Store
	resolver *session.Resolver
	toasts   *feedback.Channel
	reporter *feedback.Translator
	router   *router.Router
	handlers *actions.Handlers
	posts    services.PostService
	form     *actions.LoginForm

	reader *bufio.Reader
	out    io.Writer
	term   io.Writer

	outMu       sync.Mutex
	lastPath    string
	lastVersion uint64
}

// NewApp wires the client against the real terminal.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)
	return newApp(ctx, c, os.Stdin, os.Stdout, logger)
}

func newApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer, logger logging.Logger) (*App, error) {
	repos, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	jar, err := client.NewJar(ctx, repos.Cookies, logger)
	if err != nil {
		_ = repos.DB.Close()
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.BackendURL, c.RequestTimeout, jar, logger)
	if err != nil {
		_ = repos.DB.Close()
		return nil, err
	}

	a := &App{
		config: c,
		logger: logger.With("module", "cli"),
		repos:  repos,
		store:  session.NewStore(),
		form:   actions.NewLoginForm(),
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.term = syncWriter{mu: &a.outMu, w: out}

	auth := services.NewAuthService(apiClient, jar, logger)
	a.posts = services.NewPostService(apiClient)
	a.toasts = feedback.NewChannel(feedback.Options{
		Capacity: c.ToastCapacity,
		TTL:      c.ToastTTL,
	}, a.present, logger)
	a.reporter = feedback.NewTranslator(a.toasts, logger)
	a.resolver = session.NewResolver(auth, a.store, a.reporter, logger)
	a.router = a.routes(ctx, logger)
	a.handlers = actions.New(actions.Deps{
		Auth:      auth,
		Posts:     a.posts,
		Store:     a.store,
		Resolver:  a.resolver,
		Notifier:  a.toasts,
		Reporter:  a.reporter,
		Navigator: a.router,
		Logger:    logger,
	})

	a.store.Subscribe(func(session.State) { a.render(false) })
	a.router.OnChange(func(string) { a.render(true) })

	return a, nil
}

func (a *App) routes(ctx context.Context, logger logging.Logger) *router.Router {
	r := router.New(ctx, func(p router.Params) router.View {
		return views.NotFound{Path: p["path"]}
	}, logger)

	r.Handle("/", func(router.Params) router.View {
		return views.NewHome(a.posts, a.reporter, 1)
	})
	r.Handle("/page/{page:[0-9]+}", func(p router.Params) router.View {
		return views.NewHome(a.posts, a.reporter, pageNumber(p["page"]))
	})
	r.Handle("/subforum/{title}", func(p router.Params) router.View {
		return views.NewSubforum(a.posts, a.reporter, p["title"], 1)
	})
	r.Handle("/subforum/{title}/{page:[0-9]+}", func(p router.Params) router.View {
		return views.NewSubforum(a.posts, a.reporter, p["title"], pageNumber(p["page"]))
	})
	r.Handle(guard.LoginPath, func(router.Params) router.View {
		return guard.GuestOnly(a.store, r, views.NewLogin(a.form))
	})
	r.Handle(PathSubmitPost, func(router.Params) router.View {
		return guard.Protect(a.store, r, views.SubmitPost{})
	})
	r.Handle(PathSubmitSubforum, func(router.Params) router.View {
		return guard.Protect(a.store, r, views.SubmitSubforum{})
	})
	return r
}

func pageNumber(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Run starts the shell and blocks until the user leaves.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	a.router.Close()
	if err := a.repos.DB.Close(); err != nil {
		a.logger.Warn(context.Background(), "close database", "error", err)
	}
}

// syncWriter serializes writes with the renderer.
type syncWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (s syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// present prints a toast as soon as it is raised.
func (a *App) present(t feedback.Toast) {
	fmt.Fprintf(a.term, "(%s) %s\n", toastMark(t.Kind), t.Message)
}

func toastMark(k feedback.Kind) string {
	if k == feedback.KindError {
		return "error"
	}
	return "ok"
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.term, args...)
}

// render draws the status line and the current view. Unforced renders are
// skipped when neither the path nor the session changed since the last one.
func (a *App) render(force bool) {
	path, view := a.router.Current()
	if view == nil {
		return
	}
	version := a.store.Version()
	st := a.store.Snapshot()

	a.outMu.Lock()
	defer a.outMu.Unlock()
	if !force && path == a.lastPath && version == a.lastVersion {
		return
	}
	a.lastPath, a.lastVersion = path, version

	fmt.Fprintf(a.out, "\n== Jafa ==  %s\n", views.Status(st))
	view.Render(a.out)
}

func (a *App) status() string {
	path, _ := a.router.Current()
	if s := views.Status(a.store.Snapshot()); s != "" {
		return s + " " + path
	}
	return path
}
