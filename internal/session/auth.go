package session

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Auth looks up the token across the persistent and session scopes.
type Auth struct {
	Persistent Store
	Session    Store
	Tokens     *Tokens

	// Now is the clock tokens are verified against.
	Now func() time.Time
}

// NewAuth builds an Auth over the two scopes.
func NewAuth(persistent, session Store, tokens *Tokens) *Auth {
	return &Auth{Persistent: persistent, Session: session, Tokens: tokens, Now: time.Now}
}

func (a *Auth) scopes() []Store {
	var scopes []Store
	if a.Persistent != nil {
		scopes = append(scopes, a.Persistent)
	}
	if a.Session != nil {
		scopes = append(scopes, a.Session)
	}
	return scopes
}

// IsLoggedIn reports whether a token is present in either scope.
// When a Tokens verifier is configured, expired or forged tokens do not count.
func (a *Auth) IsLoggedIn() bool {
	_, err := a.CurrentUser()
	return err == nil
}

// CurrentUser returns the email of the logged-in user. Scopes are checked
// persistent first; the first token that verifies wins.
func (a *Auth) CurrentUser() (string, error) {
	err := ErrNotLoggedIn
	for _, s := range a.scopes() {
		tok, ok := s.Get(TokenKey)
		if !ok || tok == "" {
			continue
		}
		if a.Tokens == nil {
			return "", nil
		}
		var user string
		if user, err = a.Tokens.Verify(tok, a.now()); err == nil {
			return user, nil
		}
	}
	return "", err
}

func (a *Auth) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// Login stores token in the persistent scope when remember is set,
// otherwise in the session scope. Any token in the other scope is cleared.
func (a *Auth) Login(token string, remember bool) error {
	target, other := a.Session, a.Persistent
	if remember && a.Persistent != nil {
		target, other = a.Persistent, a.Session
	}
	if target == nil {
		return fmt.Errorf("no session scope configured")
	}
	if err := target.Set(TokenKey, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if other != nil {
		if err := other.Delete(TokenKey); err != nil {
			return fmt.Errorf("failed to clear token: %w", err)
		}
	}
	return nil
}

// Logout removes the token from both scopes.
func (a *Auth) Logout() error {
	for _, s := range a.scopes() {
		if err := s.Delete(TokenKey); err != nil {
			return fmt.Errorf("failed to clear token: %w", err)
		}
	}
	return nil
}

// Require returns "" when the user may proceed to path. Otherwise it records
// path under RedirectKey and returns LoginPath for the caller to navigate to.
func (a *Auth) Require(path string) string {
	if a.IsLoggedIn() {
		return ""
	}
	if s := a.redirectScope(); s != nil {
		if err := s.Set(RedirectKey, path); err != nil {
			slog.Warn("failed to record redirect", "path", path, "error", err)
		}
	}
	return LoginPath
}

// TakeRedirect returns and clears the recorded path, or fallback when none.
func (a *Auth) TakeRedirect(fallback string) string {
	s := a.redirectScope()
	if s == nil {
		return fallback
	}
	path, ok := s.Get(RedirectKey)
	if !ok || !strings.HasPrefix(path, "/") {
		return fallback
	}
	if err := s.Delete(RedirectKey); err != nil {
		slog.Warn("failed to clear redirect", "error", err)
	}
	return path
}

// The redirect lives in the persistent scope so a CLI "book" that was denied
// can resume after a separate "login" invocation.
func (a *Auth) redirectScope() Store {
	if a.Persistent != nil {
		return a.Persistent
	}
	return a.Session
}
