package actions

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/jafa/internal/client/client"
	"github.com/dmitrijs2005/jafa/internal/client/feedback"
	"github.com/dmitrijs2005/jafa/internal/client/models"
	"github.com/dmitrijs2005/jafa/internal/client/session"
	"github.com/dmitrijs2005/jafa/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// events is a shared, ordered log of side effects.
type events []string

type fakeAuth struct {
	log        *events
	msg        string
	err        error
	lastUser   string
	lastPass   string
	loginCalls int
	regCalls   int
	outCalls   int
}

func (f *fakeAuth) CurrentUser(context.Context) (session.Identity, error) {
	return session.AnonymousIdentity(), nil
}

func (f *fakeAuth) Login(_ context.Context, u string, p []byte) (string, error) {
	f.loginCalls++
	f.lastUser, f.lastPass = u, string(p)
	*f.log = append(*f.log, "login")
	return f.msg, f.err
}

func (f *fakeAuth) Register(_ context.Context, u string, p []byte) (string, error) {
	f.regCalls++
	f.lastUser, f.lastPass = u, string(p)
	*f.log = append(*f.log, "register")
	return f.msg, f.err
}

func (f *fakeAuth) Logout(context.Context) (string, error) {
	f.outCalls++
	*f.log = append(*f.log, "logout")
	return f.msg, f.err
}

type fakePosts struct {
	msg       string
	err       error
	votes     int
	lastDraft models.PostDraft
	lastForum models.SubforumDraft
}

func (f *fakePosts) Vote(context.Context, string, bool) (string, error) {
	f.votes++
	return f.msg, f.err
}

func (f *fakePosts) List(context.Context, int) (*models.PostPage, error) { return nil, nil }

func (f *fakePosts) ListSubforum(context.Context, string, int) (*models.PostPage, error) {
	return nil, nil
}

func (f *fakePosts) CreatePost(_ context.Context, d models.PostDraft) (string, error) {
	f.lastDraft = d
	return f.msg, f.err
}

func (f *fakePosts) CreateSubforum(_ context.Context, d models.SubforumDraft) (string, error) {
	f.lastForum = d
	return f.msg, f.err
}

type fakeResolver struct {
	log    *events
	store  *session.Store
	result session.State
	forced []bool
}

func (f *fakeResolver) Resolve(_ context.Context, force bool) {
	f.forced = append(f.forced, force)
	*f.log = append(*f.log, "resolve")
	f.store.Replace(f.result)
}

type fakeNav struct {
	log   *events
	paths []string
}

func (f *fakeNav) Navigate(path string) {
	f.paths = append(f.paths, path)
	*f.log = append(*f.log, "navigate:"+path)
}

func (f *fakeNav) Replace(path string) {
	f.paths = append(f.paths, path)
	*f.log = append(*f.log, "replace:"+path)
}

type toast struct {
	msg  string
	kind feedback.Kind
}

type fakeNotifier struct {
	log    *events
	toasts []toast
}

func (f *fakeNotifier) Notify(m string, k feedback.Kind) {
	f.toasts = append(f.toasts, toast{msg: m, kind: k})
	*f.log = append(*f.log, "toast:"+m)
}

type fixture struct {
	log      *events
	auth     *fakeAuth
	posts    *fakePosts
	store    *session.Store
	resolver *fakeResolver
	nav      *fakeNav
	notifier *fakeNotifier
	h        *Handlers
}

func newFixture() *fixture {
	log := &events{}
	store := session.NewStore()
	notifier := &fakeNotifier{log: log}
	f := &fixture{
		log:      log,
		auth:     &fakeAuth{log: log},
		posts:    &fakePosts{},
		store:    store,
		resolver: &fakeResolver{log: log, store: store},
		nav:      &fakeNav{log: log},
		notifier: notifier,
	}
	f.h = New(Deps{
		Auth:      f.auth,
		Posts:     f.posts,
		Store:     store,
		Resolver:  f.resolver,
		Notifier:  notifier,
		Reporter:  feedback.NewTranslator(notifier, logging.Discard()),
		Navigator: f.nav,
		Logger:    logging.Discard(),
	})
	return f
}

func TestLogin_FromAnonymous(t *testing.T) {
	f := newFixture()
	f.store.Replace(session.Anonymous())
	f.auth.msg = "Logged in"
	alice := session.User{Username: "alice"}
	f.resolver.result = session.Authenticated(alice)

	err := f.h.Login(context.Background(), Credentials{Username: " alice ", Password: []byte("pw")})
	require.NoError(t, err)

	assert.Equal(t, events{"login", "resolve", "navigate:/", "toast:Logged in"}, *f.log)
	assert.Equal(t, []bool{true}, f.resolver.forced, "resolution is forced")
	assert.Equal(t, "alice", f.auth.lastUser)
	assert.Equal(t, "pw", f.auth.lastPass)
	assert.Equal(t, []toast{{msg: "Logged in", kind: feedback.KindSuccess}}, f.notifier.toasts)

	u, ok := f.store.Snapshot().User()
	require.True(t, ok)
	assert.Equal(t, alice, u)
}

func TestRegister_Success(t *testing.T) {
	f := newFixture()
	f.auth.msg = "User created"
	f.resolver.result = session.Authenticated(session.User{Username: "bob"})

	err := f.h.Register(context.Background(), Credentials{Username: "bob", Password: []byte("pw")})
	require.NoError(t, err)

	assert.Equal(t, events{"register", "resolve", "navigate:/", "toast:User created"}, *f.log)
	assert.Equal(t, 1, f.auth.regCalls)
}

func TestLogin_Validation(t *testing.T) {
	tests := []struct {
		name string
		c    Credentials
		want error
	}{
		{name: "empty username", c: Credentials{Password: []byte("pw")}, want: ErrEmptyUsername},
		{name: "blank username", c: Credentials{Username: "  ", Password: []byte("pw")}, want: ErrEmptyUsername},
		{name: "empty password", c: Credentials{Username: "alice"}, want: ErrEmptyPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			err := f.h.Login(context.Background(), tt.c)
			require.ErrorIs(t, err, tt.want)

			assert.Zero(t, f.auth.loginCalls, "no server call")
			assert.Empty(t, f.nav.paths)
			assert.Equal(t, []toast{{msg: tt.want.Error(), kind: feedback.KindError}}, f.notifier.toasts)
		})
	}
}

func TestLogin_ServerRejects(t *testing.T) {
	f := newFixture()
	f.store.Replace(session.Anonymous())
	f.auth.err = &client.APIError{Status: 401, Type: "InvalidCredentials", Message: "Invalid credentials"}

	err := f.h.Login(context.Background(), Credentials{Username: "alice", Password: []byte("bad")})
	require.Error(t, err)

	assert.Equal(t, events{"login", "toast:[InvalidCredentials]: Invalid credentials"}, *f.log)
	assert.Empty(t, f.resolver.forced)
	assert.Equal(t, session.Anonymous(), f.store.Snapshot())
}

func TestLogin_ContextGoneSkipsNavigation(t *testing.T) {
	f := newFixture()
	f.auth.msg = "Logged in"
	f.resolver.result = session.Authenticated(session.User{Username: "alice"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.h.Login(ctx, Credentials{Username: "alice", Password: []byte("pw")})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.nav.paths)
	assert.Empty(t, f.notifier.toasts)
}

func TestLogout_Success(t *testing.T) {
	f := newFixture()
	f.store.Replace(session.Authenticated(session.User{Username: "alice"}))
	f.auth.msg = "Logged out"

	require.NoError(t, f.h.Logout(context.Background()))

	assert.Equal(t, session.Anonymous(), f.store.Snapshot())
	assert.Equal(t, events{"logout", "navigate:/", "toast:Logged out"}, *f.log)
}

func TestLogout_ContextGoneSkipsWrite(t *testing.T) {
	f := newFixture()
	signedIn := session.Authenticated(session.User{Username: "alice"})
	f.store.Replace(signedIn)
	f.auth.msg = "Logged out"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.h.Logout(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, f.auth.outCalls)
	assert.Equal(t, signedIn, f.store.Snapshot())
	assert.Empty(t, f.nav.paths)
	assert.Empty(t, f.notifier.toasts)
}

func TestLogout_FailureKeepsSession(t *testing.T) {
	f := newFixture()
	signedIn := session.Authenticated(session.User{Username: "alice"})
	f.store.Replace(signedIn)
	f.auth.err = &client.APIError{Status: 500, Message: "Internal Server Error"}

	require.Error(t, f.h.Logout(context.Background()))

	assert.Equal(t, signedIn, f.store.Snapshot())
	assert.Empty(t, f.nav.paths)
	assert.Equal(t, []toast{{msg: "Internal Server Error", kind: feedback.KindError}}, f.notifier.toasts)
}

func TestVote(t *testing.T) {
	tests := []struct {
		name   string
		isLike bool
		want   string
	}{
		{name: "like", isLike: true, want: MsgLikeReceived},
		{name: "dislike", isLike: false, want: MsgDislikeReceived},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			signedIn := session.Authenticated(session.User{Username: "alice"})
			f.store.Replace(signedIn)
			version := f.store.Version()
			f.posts.msg = "Post vote acknowledged"

			require.NoError(t, f.h.Vote(context.Background(), "p1", tt.isLike))

			assert.Equal(t, []toast{{msg: tt.want, kind: feedback.KindSuccess}}, f.notifier.toasts)
			assert.Equal(t, version, f.store.Version(), "store untouched")
			assert.Empty(t, f.nav.paths)
		})
	}
}

func TestVote_Failures(t *testing.T) {
	f := newFixture()
	require.ErrorIs(t, f.h.Vote(context.Background(), "  ", true), ErrEmptyPostID)
	assert.Zero(t, f.posts.votes)

	f.posts.err = &client.APIError{Status: 400, Type: "InvalidContent", Message: "Post does not exist"}
	require.Error(t, f.h.Vote(context.Background(), "p404", true))
	assert.Equal(t, "[InvalidContent]: Post does not exist", f.notifier.toasts[1].msg)
	assert.Equal(t, session.Pending(), f.store.Snapshot())
}

func TestCreatePost(t *testing.T) {
	f := newFixture()
	f.posts.msg = "Post created"

	err := f.h.CreatePost(context.Background(), models.PostDraft{Subforum: " my forum ", Title: "t", Body: "b"})
	require.NoError(t, err)

	assert.Equal(t, "my forum", f.posts.lastDraft.Subforum)
	assert.Equal(t, []string{"/subforum/my%20forum"}, f.nav.paths)
	assert.Equal(t, []toast{{msg: "Post created", kind: feedback.KindSuccess}}, f.notifier.toasts)
}

func TestCreatePost_Validation(t *testing.T) {
	tests := []struct {
		d    models.PostDraft
		want error
	}{
		{d: models.PostDraft{Title: "t", Body: "b"}, want: ErrEmptySubforum},
		{d: models.PostDraft{Subforum: "s", Body: "b"}, want: ErrEmptyTitle},
		{d: models.PostDraft{Subforum: "s", Title: "t", Body: " "}, want: ErrEmptyBody},
	}
	for _, tt := range tests {
		f := newFixture()
		require.ErrorIs(t, f.h.CreatePost(context.Background(), tt.d), tt.want)
		assert.Empty(t, f.nav.paths)
	}
}

func TestCreateSubforum(t *testing.T) {
	f := newFixture()
	f.posts.msg = "Subforum created"

	require.NoError(t, f.h.CreateSubforum(context.Background(), models.SubforumDraft{Title: "rust", Description: "crabs"}))
	assert.Equal(t, []string{"/subforum/rust"}, f.nav.paths)

	f = newFixture()
	require.ErrorIs(t, f.h.CreateSubforum(context.Background(), models.SubforumDraft{Title: "rust"}), ErrEmptyDescription)

	f = newFixture()
	f.posts.err = &client.APIError{Status: 400, Type: "SubForumTitleExistsError", Message: "Subforum title already exists"}
	require.Error(t, f.h.CreateSubforum(context.Background(), models.SubforumDraft{Title: "rust", Description: "d"}))
	assert.Empty(t, f.nav.paths)
}
