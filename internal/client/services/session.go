// Package services contains application services for the studio client.
// This file defines the session store: the single owner of the signed-in
// user and bearer token, and the only code allowed to change them.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/studiobook/internal/client/client"
	"github.com/dmitrijs2005/studiobook/internal/client/models"
	"github.com/dmitrijs2005/studiobook/internal/logging"
)

// TokenStore persists the bearer token across restarts.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Navigator moves the front-end to a route such as "/login".
type Navigator interface {
	Navigate(path string)
}

// State is the lifecycle position of a SessionStore.
type State int

const (
	StateUninitialized State = iota
	StateBootstrapping
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateBootstrapping:
		return "bootstrapping"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const PathLogin = "/login"

// SessionStore holds user, token and loading. Readers get copies; only the
// methods below mutate. Concurrent mutations are not ordered: the last one
// to finish wins.
type SessionStore struct {
	client client.Client
	tokens TokenStore
	nav    Navigator
	log    logging.Logger

	bootOnce sync.Once

	mu      sync.RWMutex
	state   State
	user    *models.User
	token   string
	loading bool
}

func NewSessionStore(c client.Client, tokens TokenStore, nav Navigator, log logging.Logger) *SessionStore {
	if log == nil {
		log = logging.Nop{}
	}
	return &SessionStore{client: c, tokens: tokens, nav: nav, log: log}
}

func (s *SessionStore) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *SessionStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot returns token and user read under one lock.
func (s *SessionStore) Snapshot() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Session{Token: s.token, User: s.user.Clone()}
}

// Bootstrap restores a persisted session. Only the first call does work.
// A token the backend no longer accepts leads to a full Logout.
func (s *SessionStore) Bootstrap(ctx context.Context) {
	s.bootOnce.Do(func() { s.bootstrap(ctx) })
}

func (s *SessionStore) bootstrap(ctx context.Context) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.log.Warn(ctx, "reading persisted token failed", "error", err)
	}
	if token == "" {
		s.mu.Lock()
		s.state = StateAnonymous
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.state = StateBootstrapping
	s.token = token
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	user, err := s.client.Me(ctx, client.WithToken(token))
	if err != nil {
		s.log.Info(ctx, "session restore failed", "error", err)
		s.Logout(ctx)
		return
	}

	s.mu.Lock()
	s.user = user.Clone()
	s.state = StateAuthenticated
	s.mu.Unlock()
	s.log.Debug(ctx, "session restored", "user_id", user.ID)
}

// open persists the token under both keys and caches the user.
func (s *SessionStore) open(ctx context.Context, resp *models.AuthResponse) (*models.User, error) {
	if resp == nil || resp.Token == "" || resp.User == nil {
		return nil, errors.New("incomplete auth response")
	}
	if err := s.tokens.SetToken(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}

	s.mu.Lock()
	s.token = resp.Token
	s.user = resp.User.Clone()
	s.state = StateAuthenticated
	s.mu.Unlock()

	s.log.Info(ctx, "session opened", "user_id", resp.User.ID, "role", string(resp.User.Role))
	return resp.User.Clone(), nil
}

// Login returns the user so the caller can branch on role. A rejection by
// the backend matches ErrInvalidCredentials and reads as its message.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.client.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return nil, &rejection{kind: ErrInvalidCredentials, cause: err}
		}
		return nil, err
	}
	return s.open(ctx, resp)
}

func (s *SessionStore) Register(ctx context.Context, email, password, displayName string) (*models.User, error) {
	resp, err := s.client.Register(ctx, models.RegisterRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	})
	if err != nil {
		return nil, err
	}
	return s.open(ctx, resp)
}

// SendEmailOTP returns the code echoed by a development backend, or "".
func (s *SessionStore) SendEmailOTP(ctx context.Context, email string) (string, error) {
	resp, err := s.client.SendEmailOTP(ctx, email)
	if err != nil {
		return "", err
	}
	return resp.DevOTP, nil
}

func (s *SessionStore) VerifyEmailOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.User, error) {
	resp, err := s.client.VerifyEmailOTP(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, resp)
}

func (s *SessionStore) GoogleAuth(ctx context.Context, email, displayName, photoURL string) (*models.User, error) {
	resp, err := s.client.GoogleAuth(ctx, models.GoogleAuthRequest{
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
	})
	if err != nil {
		return nil, err
	}
	return s.open(ctx, resp)
}

// TokenSource is what the HTTP client should read the bearer token from.
// When the client drops a token the backend rejected, the store forgets
// the user too.
func (s *SessionStore) TokenSource() client.TokenSource {
	return sessionTokens{s: s}
}

type sessionTokens struct {
	s *SessionStore
}

func (t sessionTokens) Token(ctx context.Context) (string, error) {
	return t.s.tokens.Token(ctx)
}

func (t sessionTokens) ClearToken(ctx context.Context) error {
	return t.s.Purge(ctx)
}

// Purge drops the session after the backend rejected its token. Unlike
// Logout it neither calls the backend nor navigates.
func (s *SessionStore) Purge(ctx context.Context) error {
	s.mu.Lock()
	had := s.user != nil
	s.user = nil
	s.token = ""
	s.state = StateAnonymous
	s.mu.Unlock()

	if had {
		s.log.Info(ctx, "session purged after token rejection")
	}
	if err := s.tokens.ClearToken(ctx); err != nil {
		return fmt.Errorf("clear persisted token: %w", err)
	}
	return nil
}

// Logout always succeeds locally. The backend call is best effort; its
// error is only logged.
func (s *SessionStore) Logout(ctx context.Context) {
	var opts []client.RequestOption
	if token := s.Token(); token != "" {
		opts = append(opts, client.WithToken(token))
	}
	if err := s.client.Logout(ctx, opts...); err != nil {
		s.log.Warn(ctx, "backend logout failed", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.state = StateAnonymous
	s.mu.Unlock()

	if err := s.tokens.ClearToken(ctx); err != nil {
		s.log.Error(ctx, "clearing persisted token failed", "error", err)
	}

	if s.nav != nil {
		s.nav.Navigate(PathLogin)
	}
}
