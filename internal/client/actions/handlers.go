package actions

import (
	"context"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/jafa/internal/client/feedback"
	"github.com/dmitrijs2005/jafa/internal/client/models"
	"github.com/dmitrijs2005/jafa/internal/client/router"
	"github.com/dmitrijs2005/jafa/internal/client/services"
	"github.com/dmitrijs2005/jafa/internal/client/session"
	"github.com/dmitrijs2005/jafa/internal/logging"
)

const (
	MsgLikeReceived    = "Like received"
	MsgDislikeReceived = "Dislike received"
)

// Credentials are what the login and register tabs submit.
type Credentials struct {
	Username string
	Password []byte
}

func (c Credentials) validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return ErrEmptyUsername
	}
	if len(c.Password) == 0 {
		return ErrEmptyPassword
	}
	return nil
}

// Resolver refreshes the session store from the backend.
type Resolver interface {
	Resolve(ctx context.Context, force bool)
}

// StateWriter is the write side of the session store.
type StateWriter interface {
	Replace(st session.State)
}

// Deps wires Handlers.
type Deps struct {
	Auth      services.AuthService
	Posts     services.PostService
	Store     StateWriter
	Resolver  Resolver
	Notifier  feedback.Notifier
	Reporter  session.ErrorReporter
	Navigator router.Navigator
	Logger    logging.Logger
}

type Handlers struct {
	auth     services.AuthService
	posts    services.PostService
	store    StateWriter
	resolver Resolver
	notifier feedback.Notifier
	reporter session.ErrorReporter
	nav      router.Navigator
	logger   logging.Logger
}

func New(d Deps) *Handlers {
	return &Handlers{
		auth:     d.Auth,
		posts:    d.Posts,
		store:    d.Store,
		resolver: d.Resolver,
		notifier: d.Notifier,
		reporter: d.Reporter,
		nav:      d.Navigator,
		logger:   d.Logger.With("module", "actions"),
	}
}

func (h *Handlers) fail(ctx context.Context, err error) error {
	h.reporter.Report(ctx, err)
	return err
}

// Login signs in, re-reads the session from the backend, goes home and
// shows the backend's message.
func (h *Handlers) Login(ctx context.Context, c Credentials) error {
	return h.authenticate(ctx, c, h.auth.Login)
}

// Register creates the account; the backend signs the new user in, so the
// rest mirrors Login.
func (h *Handlers) Register(ctx context.Context, c Credentials) error {
	return h.authenticate(ctx, c, h.auth.Register)
}

func (h *Handlers) authenticate(ctx context.Context, c Credentials, call func(context.Context, string, []byte) (string, error)) error {
	if err := c.validate(); err != nil {
		return h.fail(ctx, err)
	}

	msg, err := call(ctx, strings.TrimSpace(c.Username), c.Password)
	if err != nil {
		return h.fail(ctx, err)
	}

	h.resolver.Resolve(ctx, true)
	if err := ctx.Err(); err != nil {
		h.logger.Debug(ctx, "login settled after the form went away", "user", c.Username)
		return err
	}

	h.nav.Navigate("/")
	h.notifier.Notify(msg, feedback.KindSuccess)
	return nil
}

// Logout ends the session. Only a successful call clears the store, and
// only while ctx is live, the same as Login.
func (h *Handlers) Logout(ctx context.Context) error {
	msg, err := h.auth.Logout(ctx)
	if err != nil {
		return h.fail(ctx, err)
	}
	if err := ctx.Err(); err != nil {
		h.logger.Debug(ctx, "logout settled after the caller went away")
		return err
	}

	h.store.Replace(session.Anonymous())
	h.nav.Navigate("/")
	h.notifier.Notify(msg, feedback.KindSuccess)
	return nil
}

// Vote likes or dislikes a post. The session is not touched.
func (h *Handlers) Vote(ctx context.Context, postID string, isLike bool) error {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return h.fail(ctx, ErrEmptyPostID)
	}

	if _, err := h.posts.Vote(ctx, postID, isLike); err != nil {
		return h.fail(ctx, err)
	}

	if isLike {
		h.notifier.Notify(MsgLikeReceived, feedback.KindSuccess)
	} else {
		h.notifier.Notify(MsgDislikeReceived, feedback.KindSuccess)
	}
	return nil
}

// CreatePost submits d and opens its subforum.
func (h *Handlers) CreatePost(ctx context.Context, d models.PostDraft) error {
	d.Subforum = strings.TrimSpace(d.Subforum)
	d.Title = strings.TrimSpace(d.Title)
	switch {
	case d.Subforum == "":
		return h.fail(ctx, ErrEmptySubforum)
	case d.Title == "":
		return h.fail(ctx, ErrEmptyTitle)
	case strings.TrimSpace(d.Body) == "":
		return h.fail(ctx, ErrEmptyBody)
	}

	msg, err := h.posts.CreatePost(ctx, d)
	if err != nil {
		return h.fail(ctx, err)
	}

	h.nav.Navigate(SubforumPath(d.Subforum))
	h.notifier.Notify(msg, feedback.KindSuccess)
	return nil
}

// CreateSubforum submits d and opens the new subforum.
func (h *Handlers) CreateSubforum(ctx context.Context, d models.SubforumDraft) error {
	d.Title = strings.TrimSpace(d.Title)
	switch {
	case d.Title == "":
		return h.fail(ctx, ErrEmptyTitle)
	case strings.TrimSpace(d.Description) == "":
		return h.fail(ctx, ErrEmptyDescription)
	}

	msg, err := h.posts.CreateSubforum(ctx, d)
	if err != nil {
		return h.fail(ctx, err)
	}

	h.nav.Navigate(SubforumPath(d.Title))
	h.notifier.Notify(msg, feedback.KindSuccess)
	return nil
}

// SubforumPath is the route of a subforum listing.
func SubforumPath(title string) string {
	return "/subforum/" + url.PathEscape(title)
}
