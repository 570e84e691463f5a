// Package jafatest provides an in-memory Jafa backend for tests. It speaks
// the same JSON API as the real server and keeps the login in a signed
// cookie session.
package jafatest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/jafa/internal/client/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "session"
	sessionUser = "user"
	pageSize    = 10
)

// Vote is a recorded POST /api/post/vote.
type Vote struct {
	Username string
	PostID   string
	IsLike   bool
}

type account struct {
	password   string
	registered time.Time
}

// Backend is the fake server state. The zero value is not usable; call New.
type Backend struct {
	mu        sync.Mutex
	users     map[string]account
	subforums map[string]models.SubforumInfo
	posts     []models.Post
	votes     []Vote
	calls     map[string]int

	store  *sessions.CookieStore
	router *mux.Router
	now    func() time.Time
}

// New returns an empty backend.
func New() *Backend {
	b := &Backend{
		users:     make(map[string]account),
		subforums: make(map[string]models.SubforumInfo),
		calls:     make(map[string]int),
		store:     sessions.NewCookieStore([]byte("jafatest-secret-key-32-bytes-ok!")),
		now:       func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
	b.store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	b.router = b.routes()
	return b
}

// Start serves the backend on a local listener until the returned server is
// closed.
func (b *Backend) Start() *httptest.Server {
	return httptest.NewServer(b)
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.router.ServeHTTP(w, r)
}

func (b *Backend) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(b.countCalls)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/user/get", b.handleUserGet).Methods(http.MethodGet)
	api.HandleFunc("/user/login", b.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/user/register", b.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/user/logout", b.requireLogin(b.handleLogout)).Methods(http.MethodGet)
	api.HandleFunc("/post/list", b.handlePostList).Methods(http.MethodGet)
	api.HandleFunc("/post/vote", b.requireLogin(b.handleVote)).Methods(http.MethodPost)
	api.HandleFunc("/post/create", b.requireLogin(b.handlePostCreate)).Methods(http.MethodPost)
	api.HandleFunc("/subforum/create", b.requireLogin(b.handleSubforumCreate)).Methods(http.MethodPost)
	return r
}

// AddUser registers an account directly.
func (b *Backend) AddUser(username, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[username] = account{password: password, registered: b.now()}
}

// AddSubforum creates a subforum directly.
func (b *Backend) AddSubforum(title, description, creator string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subforums[title] = models.SubforumInfo{Title: title, Description: description, Creator: creator}
}

// AddPost stores p, assigning an id when it has none, and returns the id.
func (b *Backend) AddPost(p models.Post) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p.PostID == "" {
		p.PostID = uuid.NewString()
	}
	if p.CreationDate == "" {
		p.CreationDate = b.now().Format(time.RFC1123)
	}
	b.posts = append(b.posts, p)
	return p.PostID
}

// Calls reports how many requests hit path, e.g. "/api/user/get".
func (b *Backend) Calls(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

// Votes returns the votes received so far.
func (b *Backend) Votes() []Vote {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Vote(nil), b.votes...)
}

// Posts returns the stored posts.
func (b *Backend) Posts() []models.Post {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Post(nil), b.posts...)
}

// HasSubforum reports whether title exists.
func (b *Backend) HasSubforum(title string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.subforums[title]
	return ok
}

func (b *Backend) countCalls(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls[r.URL.Path]++
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func success(w http.ResponseWriter, msg any) {
	writeJSON(w, http.StatusOK, map[string]any{"msg": msg})
}

func fail(w http.ResponseWriter, status int, typ, msg string) {
	body := map[string]string{"error": msg}
	if typ != "" {
		body["type"] = typ
	}
	writeJSON(w, status, body)
}

func requireKeys(w http.ResponseWriter, r *http.Request, keys ...string) bool {
	if err := r.ParseForm(); err != nil {
		fail(w, http.StatusBadRequest, "InvalidForm", err.Error())
		return false
	}
	var missing []string
	for _, k := range keys {
		if r.PostForm.Get(k) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		fail(w, http.StatusBadRequest, "MissingKeys", "Missing keys: "+strings.Join(missing, ", "))
		return false
	}
	return true
}

func (b *Backend) sessionUser(r *http.Request) (*sessions.Session, string) {
	s, _ := b.store.Get(r, sessionName)
	name, _ := s.Values[sessionUser].(string)
	return s, name
}

func (b *Backend) requireLogin(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, name := b.sessionUser(r)
		if name == "" {
			fail(w, http.StatusUnauthorized, "NotLoggedIn", "You must be logged in")
			return
		}
		next(w, r, name)
	}
}

func (b *Backend) handleUserGet(w http.ResponseWriter, r *http.Request) {
	_, name := b.sessionUser(r)
	if name == "" {
		success(w, map[string]any{})
		return
	}
	b.mu.Lock()
	acc := b.users[name]
	b.mu.Unlock()
	success(w, models.User{Username: name, RegistrationDate: acc.registered.Format(time.RFC1123)})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !requireKeys(w, r, "username", "password") {
		return
	}
	s, current := b.sessionUser(r)
	if current != "" {
		fail(w, http.StatusUnauthorized, "AlreadyLoggedIn", "Already logged in")
		return
	}

	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	b.mu.Lock()
	acc, ok := b.users[username]
	b.mu.Unlock()
	if !ok || acc.password != password {
		fail(w, http.StatusUnauthorized, "InvalidCredentials", "Invalid credentials")
		return
	}

	s.Values[sessionUser] = username
	if err := s.Save(r, w); err != nil {
		fail(w, http.StatusInternalServerError, "", err.Error())
		return
	}
	success(w, "Logged in")
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !requireKeys(w, r, "username", "password") {
		return
	}
	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	if len(password) < 4 {
		fail(w, http.StatusUnauthorized, "InvalidPasswordError", "Password must be at least 4 characters")
		return
	}

	b.mu.Lock()
	if _, exists := b.users[username]; exists {
		b.mu.Unlock()
		fail(w, http.StatusUnauthorized, "UsernameExistsError", "Username already exists")
		return
	}
	b.users[username] = account{password: password, registered: b.now()}
	b.mu.Unlock()

	s, _ := b.sessionUser(r)
	s.Values[sessionUser] = username
	if err := s.Save(r, w); err != nil {
		fail(w, http.StatusInternalServerError, "", err.Error())
		return
	}
	success(w, "User created")
}

func (b *Backend) handleLogout(w http.ResponseWriter, r *http.Request, _ string) {
	s, _ := b.sessionUser(r)
	delete(s.Values, sessionUser)
	s.Options.MaxAge = -1
	if err := s.Save(r, w); err != nil {
		fail(w, http.StatusInternalServerError, "", err.Error())
		return
	}
	success(w, "Logged out")
}

func (b *Backend) handleVote(w http.ResponseWriter, r *http.Request, username string) {
	if !requireKeys(w, r, "post_id", "is_like") {
		return
	}
	postID := r.PostForm.Get("post_id")
	isLike := strings.EqualFold(r.PostForm.Get("is_like"), "true")

	b.mu.Lock()
	defer b.mu.Unlock()
	idx := -1
	for i, p := range b.posts {
		if p.PostID == postID {
			idx = i
			break
		}
	}
	if idx < 0 {
		fail(w, http.StatusBadRequest, "InvalidContent", "Post does not exist")
		return
	}
	if isLike {
		b.posts[idx].Likes++
	} else {
		b.posts[idx].Dislikes++
	}
	b.votes = append(b.votes, Vote{Username: username, PostID: postID, IsLike: isLike})
	success(w, "Post vote acknowledged")
}

func (b *Backend) handlePostList(w http.ResponseWriter, r *http.Request) {
	subforum := r.URL.Query().Get("subforum")
	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fail(w, http.StatusBadRequest, "InvalidPageError", fmt.Sprintf("Invalid page %q", raw))
			return
		}
		page = n
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	info := models.SubforumInfo{}
	if subforum != "" {
		sf, ok := b.subforums[subforum]
		if !ok {
			fail(w, http.StatusBadRequest, "NoSubForumFoundError", "Subforum does not exist")
			return
		}
		info = sf
	}

	// newest first
	var matched []models.Post
	for i := len(b.posts) - 1; i >= 0; i-- {
		if p := b.posts[i]; subforum == "" || p.Subforum == subforum {
			matched = append(matched, p)
		}
	}

	info.CurrentPage = page
	info.PostCount = len(matched)
	info.PageCount = (len(matched) + pageSize - 1) / pageSize
	start := page * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	success(w, map[string]any{"posts": matched[start:end], "info": info})
}

func (b *Backend) handlePostCreate(w http.ResponseWriter, r *http.Request, username string) {
	if !requireKeys(w, r, "subforum", "title", "body") {
		return
	}
	subforum := r.PostForm.Get("subforum")

	b.mu.Lock()
	_, ok := b.subforums[subforum]
	b.mu.Unlock()
	if !ok {
		fail(w, http.StatusBadRequest, "NoSubForumFoundError", "Subforum does not exist")
		return
	}

	var tags []string
	if raw := r.PostForm.Get("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}
	b.AddPost(models.Post{
		Title:    r.PostForm.Get("title"),
		Body:     r.PostForm.Get("body"),
		Op:       username,
		Subforum: subforum,
		Tags:     tags,
	})
	success(w, "Post created")
}

func (b *Backend) handleSubforumCreate(w http.ResponseWriter, r *http.Request, username string) {
	if !requireKeys(w, r, "title", "description") {
		return
	}
	title := r.PostForm.Get("title")

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.subforums[title]; exists {
		fail(w, http.StatusBadRequest, "SubForumTitleExistsError", "Subforum title already exists")
		return
	}
	b.subforums[title] = models.SubforumInfo{Title: title, Description: r.PostForm.Get("description"), Creator: username}
	success(w, "Subforum created")
}
