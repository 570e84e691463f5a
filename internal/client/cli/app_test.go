package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/jafa/internal/client/config"
	"github.com/dmitrijs2005/jafa/internal/client/guard"
	"github.com/dmitrijs2005/jafa/internal/client/models"
	"github.com/dmitrijs2005/jafa/internal/jafatest"
	"github.com/dmitrijs2005/jafa/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type harness struct {
	backend *jafatest.Backend
	cfg     *config.Config
	out     *lockedBuffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := jafatest.New()
	srv := backend.Start()
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BackendURL = srv.URL
	cfg.DatabasePath = filepath.Join(t.TempDir(), "jafa.db")
	cfg.RequestTimeout = 5 * time.Second

	return &harness{backend: backend, cfg: cfg, out: &lockedBuffer{}}
}

func (h *harness) app(t *testing.T, input string) *App {
	t.Helper()
	a, err := newApp(context.Background(), h.cfg, strings.NewReader(input), h.out, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

// start does what Root does before handing over to the REPL and waits for
// the session to settle.
func start(t *testing.T, a *App) {
	t.Helper()
	go a.resolver.Resolve(context.Background(), false)
	a.router.Navigate("/")
	require.Eventually(t, func() bool { return a.store.Snapshot().Loaded() }, 2*time.Second, 5*time.Millisecond)
}

type prompts struct {
	text      map[string]string
	multiline map[string]string
	list      []string
	password  []byte
	asked     []string
}

func stubPrompts(t *testing.T, p *prompts) {
	t.Helper()
	origST, origGP, origML, origGL := getSimpleText, getPassword, getMultiline, getList
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		p.asked = append(p.asked, prompt)
		return p.text[prompt], nil
	}
	getPassword = func(*bufio.Reader, io.Writer) ([]byte, error) {
		p.asked = append(p.asked, "password")
		return append([]byte(nil), p.password...), nil
	}
	getMultiline = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		p.asked = append(p.asked, prompt)
		return p.multiline[prompt], nil
	}
	getList = func(_ *bufio.Reader, prompt string, _ io.Writer) ([]string, error) {
		p.asked = append(p.asked, prompt)
		return p.list, nil
	}
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline, getList = origST, origGP, origML, origGL
	})
}

func loginAs(t *testing.T, a *App, username, password string) {
	t.Helper()
	stubPrompts(t, &prompts{text: map[string]string{"Enter username": username}, password: []byte(password)})
	require.NoError(t, a.Login(context.Background()))
}

func currentPath(a *App) string {
	p, _ := a.router.Current()
	return p
}

func TestApp_ColdStartResolvesOnceAndGuards(t *testing.T) {
	h := newHarness(t)
	a := h.app(t, "")
	start(t, a)

	assert.False(t, a.store.Snapshot().Authenticated())
	require.Eventually(t, func() bool {
		return strings.Contains(h.out.String(), "== Jafa ==  Login")
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, a.Go(context.Background(), PathSubmitPost))
	assert.Equal(t, guard.LoginPath, currentPath(a))
	assert.Equal(t, []string{"/", guard.LoginPath}, a.router.History(), "the guarded page is replaced")

	require.NoError(t, a.Home(context.Background()))
	require.NoError(t, a.Go(context.Background(), PathSubmitSubforum))
	assert.Equal(t, 1, h.backend.Calls("/api/user/get"), "navigation never re-resolves")
}

func TestApp_LoginVoteLogout(t *testing.T) {
	h := newHarness(t)
	h.backend.AddUser("alice", "pass")
	h.backend.AddSubforum("general", "anything", "alice")
	id := h.backend.AddPost(models.Post{Title: "Hello", Body: "hi", Op: "alice", Subforum: "general"})

	a := h.app(t, "")
	start(t, a)
	ctx := context.Background()

	loginAs(t, a, "alice", "pass")
	u, ok := a.store.Snapshot().User()
	require.True(t, ok)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "/", currentPath(a))
	assert.Contains(t, h.out.String(), "(ok) Logged in")
	assert.Empty(t, a.form.Values(a.form.Active()).Password, "password is wiped")

	require.NoError(t, a.Vote(ctx, []string{id}, true))
	assert.Contains(t, h.out.String(), "(ok) Like received")
	require.Len(t, h.backend.Votes(), 1)
	assert.Equal(t, jafatest.Vote{Username: "alice", PostID: id, IsLike: true}, h.backend.Votes()[0])
	assert.True(t, a.store.Snapshot().Authenticated())

	require.NoError(t, a.WhoAmI(ctx))
	assert.Contains(t, h.out.String(), "Logged in as alice, registered 2024-01-02")

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.store.Snapshot().Authenticated())
	assert.True(t, a.store.Snapshot().Loaded())
	assert.Contains(t, h.out.String(), "(ok) Logged out")

	err := a.Logout(ctx)
	require.Error(t, err)
	assert.Contains(t, h.out.String(), "(error) [NotLoggedIn]: You must be logged in")
}

func TestApp_LoginFailureKeepsState(t *testing.T) {
	h := newHarness(t)
	h.backend.AddUser("alice", "pass")
	a := h.app(t, "")
	start(t, a)

	stubPrompts(t, &prompts{text: map[string]string{"Enter username": "alice"}, password: []byte("wrong")})
	require.Error(t, a.Login(context.Background()))

	assert.False(t, a.store.Snapshot().Authenticated())
	assert.Equal(t, guard.LoginPath, currentPath(a))
	assert.Contains(t, h.out.String(), "(error) [InvalidCredentials]: Invalid credentials")
}

func TestApp_EmptyUsernameNeverReachesBackend(t *testing.T) {
	h := newHarness(t)
	a := h.app(t, "")
	start(t, a)

	stubPrompts(t, &prompts{password: []byte("pw")})
	require.Error(t, a.Login(context.Background()))

	assert.Contains(t, h.out.String(), "(error) username is required")
	assert.Zero(t, h.backend.Calls("/api/user/login"))
}

func TestApp_RegisterSignsIn(t *testing.T) {
	h := newHarness(t)
	a := h.app(t, "")
	start(t, a)

	stubPrompts(t, &prompts{text: map[string]string{"Enter username": "bob"}, password: []byte("secret")})
	require.NoError(t, a.Register(context.Background()))

	u, ok := a.store.Snapshot().User()
	require.True(t, ok)
	assert.Equal(t, "bob", u.Username)
	assert.Contains(t, h.out.String(), "(ok) User created")

	require.NoError(t, a.Login(context.Background()))
	assert.Contains(t, h.out.String(), "Already logged in as bob")
	assert.Equal(t, "/", currentPath(a))
	assert.Equal(t, []string{"/"}, a.router.History(), "the bounce leaves no duplicate home entry")
}

func TestApp_CreateSubforumAndPost(t *testing.T) {
	h := newHarness(t)
	h.backend.AddUser("alice", "pass")
	a := h.app(t, "")
	start(t, a)
	loginAs(t, a, "alice", "pass")
	ctx := context.Background()

	stubPrompts(t, &prompts{
		text:      map[string]string{"Title": "golang"},
		multiline: map[string]string{"Description": "gophers welcome"},
	})
	require.NoError(t, a.NewSubforum(ctx))
	assert.True(t, h.backend.HasSubforum("golang"))
	assert.Equal(t, "/subforum/golang", currentPath(a))
	assert.Contains(t, h.out.String(), "(ok) Subforum created")

	p := &prompts{
		text:      map[string]string{"Subforum": "golang", "Title": "Generics"},
		multiline: map[string]string{"Body": "type parameters"},
		list:      []string{"go", "generics"},
	}
	stubPrompts(t, p)
	require.NoError(t, a.NewPost(ctx))
	assert.Equal(t, []string{"Subforum", "Title", "Body", "Tags"}, p.asked)
	assert.Contains(t, h.out.String(), "(ok) Post created")
	assert.Contains(t, h.out.String(), "Generics")

	posts := h.backend.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "alice", posts[0].Op)
	assert.Equal(t, []string{"go", "generics"}, posts[0].Tags)
}

func TestApp_AnonymousNewPostGoesToLogin(t *testing.T) {
	h := newHarness(t)
	a := h.app(t, "")
	start(t, a)

	p := &prompts{}
	stubPrompts(t, p)
	require.NoError(t, a.NewPost(context.Background()))

	assert.Equal(t, guard.LoginPath, currentPath(a))
	assert.Empty(t, p.asked)
	assert.Empty(t, h.backend.Posts())
}

func TestApp_Navigation(t *testing.T) {
	h := newHarness(t)
	h.backend.AddSubforum("golang", "gophers", "alice")
	for i := 0; i < 12; i++ {
		h.backend.AddPost(models.Post{Title: "post", Op: "alice", Subforum: "golang"})
	}
	a := h.app(t, "")
	start(t, a)
	ctx := context.Background()

	require.NoError(t, a.Subforum(ctx, []string{"golang"}))
	assert.Equal(t, "/subforum/golang", currentPath(a))
	require.NoError(t, a.Page(ctx, []string{"2"}))
	assert.Equal(t, "/subforum/golang/2", currentPath(a))
	assert.Contains(t, h.out.String(), "Jafa / golang, page 2")

	require.NoError(t, a.Back(ctx))
	assert.Equal(t, "/subforum/golang", currentPath(a))

	require.NoError(t, a.Home(ctx))
	require.NoError(t, a.Page(ctx, []string{"2"}))
	assert.Equal(t, "/page/2", currentPath(a))

	require.ErrorIs(t, a.Page(ctx, []string{"0"}), errUsage)
	require.ErrorIs(t, a.Subforum(ctx, nil), errUsage)

	require.NoError(t, a.Go(ctx, "nowhere"))
	assert.Contains(t, h.out.String(), "Nothing at /nowhere")

	require.NoError(t, a.Submit(ctx))
	assert.Contains(t, h.out.String(), "Nothing to submit on this page")

	require.NoError(t, a.Toasts(ctx))
	assert.Contains(t, h.out.String(), "No notifications")
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	h := newHarness(t)
	h.backend.AddUser("alice", "pass")

	first := h.app(t, "")
	start(t, first)
	loginAs(t, first, "alice", "pass")
	first.Close()

	second := h.app(t, "")
	start(t, second)
	u, ok := second.store.Snapshot().User()
	require.True(t, ok)
	assert.Equal(t, "alice", u.Username)
}

func TestApp_RootRunsUntilExit(t *testing.T) {
	h := newHarness(t)
	a := h.app(t, "help\nexit\n")

	a.Root(context.Background())

	out := h.out.String()
	assert.Contains(t, out, "Welcome to Jafa")
	assert.Contains(t, out, "Available commands:")
	assert.Contains(t, out, "Bye!")
	require.Eventually(t, func() bool { return h.backend.Calls("/api/user/get") == 1 }, 2*time.Second, 5*time.Millisecond)
}
