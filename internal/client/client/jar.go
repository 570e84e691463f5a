package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/jafa/internal/client/models"
	"github.com/dmitrijs2005/jafa/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/jafa/internal/logging"
	"golang.org/x/net/publicsuffix"
)

const persistTimeout = 2 * time.Second

// Jar is an http.CookieJar that writes every cookie it accepts through to a
// cookies.Repository and reloads them on construction. With a nil repository
// it behaves like a plain in-memory jar.
type Jar struct {
	mu     sync.RWMutex
	inner  *cookiejar.Jar
	repo   cookies.Repository
	logger logging.Logger
	now    func() time.Time
}

var _ http.CookieJar = (*Jar)(nil)

func newInnerJar() *cookiejar.Jar {
	// cookiejar.New never returns a non-nil error.
	j, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return j
}

// NewJar builds a jar and preloads it with the unexpired cookies from repo.
func NewJar(ctx context.Context, repo cookies.Repository, logger logging.Logger) (*Jar, error) {
	j := &Jar{
		inner:  newInnerJar(),
		repo:   repo,
		logger: logger.With("module", "cookiejar"),
		now:    time.Now,
	}
	if repo == nil {
		return j, nil
	}

	stored, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cookies: %w", err)
	}

	now := j.now()
	for _, sc := range stored {
		if !sc.Expires.IsZero() && !sc.Expires.After(now) {
			continue
		}
		scheme := "http"
		if sc.Secure {
			scheme = "https"
		}
		u := &url.URL{Scheme: scheme, Host: sc.Host, Path: sc.Path}
		j.inner.SetCookies(u, []*http.Cookie{{
			Name:     sc.Name,
			Value:    sc.Value,
			Path:     sc.Path,
			Secure:   sc.Secure,
			HttpOnly: sc.HttpOnly,
			Expires:  sc.Expires,
		}})
	}
	j.logger.Debug(ctx, "cookies restored", "count", len(stored))
	return j, nil
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.inner.Cookies(u)
}

func (j *Jar) SetCookies(u *url.URL, cs []*http.Cookie) {
	j.mu.RLock()
	j.inner.SetCookies(u, cs)
	j.mu.RUnlock()

	if j.repo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	now := j.now()
	host := u.Hostname()
	var save, remove []models.StoredCookie
	for _, c := range cs {
		path := c.Path
		if path == "" {
			path = "/"
		}

		expires := c.Expires
		if c.MaxAge > 0 {
			expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}

		sc := models.StoredCookie{
			Host:     host,
			Name:     c.Name,
			Value:    c.Value,
			Path:     path,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
			Expires:  expires,
		}
		if c.MaxAge < 0 || (!expires.IsZero() && !expires.After(now)) {
			remove = append(remove, sc)
		} else {
			save = append(save, sc)
		}
	}

	if err := j.repo.Apply(ctx, save, remove); err != nil {
		j.logger.Warn(ctx, "cookies not persisted", "host", host, "count", len(cs), "error", err)
	}
}

// Clear drops every cookie from memory and from the repository.
func (j *Jar) Clear(ctx context.Context) error {
	j.mu.Lock()
	j.inner = newInnerJar()
	j.mu.Unlock()

	if j.repo == nil {
		return nil
	}
	return j.repo.Clear(ctx)
}
