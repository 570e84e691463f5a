// Package services contains application services for the Jafa client.
// This file defines the authentication service: identity lookup, login,
// registration and logout, plus cleanup of the locally kept session cookie.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jafa/internal/client/client"
	"github.com/dmitrijs2005/jafa/internal/client/session"
	"github.com/dmitrijs2005/jafa/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - CurrentUser: ask the backend who the caller is.
//   - Login / Register: open a backend session; return the backend's message.
//   - Logout: close the backend session and forget the local cookie.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	session.IdentitySource
	Login(ctx context.Context, username string, password []byte) (string, error)
	Register(ctx context.Context, username string, password []byte) (string, error)
	Logout(ctx context.Context) (string, error)
}

// CookieClearer forgets stored cookies.
type CookieClearer interface {
	Clear(ctx context.Context) error
}

type authService struct {
	client  client.Client
	cookies CookieClearer
	logger  logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client.
// cookies may be nil when nothing is persisted.
func NewAuthService(c client.Client, cookies CookieClearer, logger logging.Logger) AuthService {
	return &authService{client: c, cookies: cookies, logger: logger.With("module", "auth")}
}

// CurrentUser maps the backend's answer onto a session.Identity. An empty
// answer is the anonymous identity.
func (a *authService) CurrentUser(ctx context.Context) (session.Identity, error) {
	u, err := a.client.CurrentUser(ctx)
	if err != nil {
		return session.Identity{}, fmt.Errorf("get current user: %w", err)
	}
	if u == nil || u.Empty() {
		return session.AnonymousIdentity(), nil
	}
	return session.AuthenticatedIdentity(session.User{
		Username:         u.Username,
		RegistrationDate: u.RegisteredAt(),
	}), nil
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (string, error) {
	msg, err := a.client.Login(ctx, username, password)
	if err != nil {
		return "", err
	}
	a.logger.Info(ctx, "logged in", "user", username)
	return msg, nil
}

func (a *authService) Register(ctx context.Context, username string, password []byte) (string, error) {
	msg, err := a.client.Register(ctx, username, password)
	if err != nil {
		return "", err
	}
	a.logger.Info(ctx, "registered", "user", username)
	return msg, nil
}

// Logout ends the backend session. A failure to wipe the local cookie store
// is logged; the backend session is already gone at that point.
func (a *authService) Logout(ctx context.Context) (string, error) {
	msg, err := a.client.Logout(ctx)
	if err != nil {
		return "", err
	}
	if a.cookies != nil {
		if err := a.cookies.Clear(ctx); err != nil {
			a.logger.Warn(ctx, "stored cookies not cleared", "error", err)
		}
	}
	a.logger.Info(ctx, "logged out")
	return msg, nil
}
