// Package services contains the application services of the gophforum
// client: authentication with a persisted session, and forum reads and
// mutations. Mutations return the server's field errors next to the payload;
// the Go error is reserved for transport failures.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophforum/internal/client/client"
	"github.com/dmitrijs2005/gophforum/internal/client/session"
	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
)

// SessionStore persists the signed-in user; *session.Store implements it.
type SessionStore interface {
	Load(ctx context.Context) (*session.Session, error)
	Save(ctx context.Context, s *session.Session) error
	SaveTokens(ctx context.Context, access, refresh string) error
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
type AuthService interface {
	Login(ctx context.Context, login, password string) (*session.User, []fielderrors.FieldError, error)
	Register(ctx context.Context, name, email, password string) (*session.User, []fielderrors.FieldError, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (*session.User, error)
	Current() *session.User
	Ping(ctx context.Context) error
	Close() error
}

type authService struct {
	client client.Client
	store  SessionStore

	mu   sync.Mutex
	user *session.User
}

func NewAuthService(c client.Client, store SessionStore) AuthService {
	return &authService{client: c, store: store}
}

func (a *authService) setUser(u *session.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u
}

// Current returns the signed-in user or nil.
func (a *authService) Current() *session.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

// Login signs in and persists the session. Rejected credentials come back
// as field errors.
func (a *authService) Login(ctx context.Context, login, password string) (*session.User, []fielderrors.FieldError, error) {
	resp, err := a.client.Login(ctx, login, password)
	if err != nil {
		return nil, nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, resp.Errors, nil
	}
	if resp.User == nil {
		return nil, nil, fmt.Errorf("login: %w", client.ErrEmptyResponse)
	}

	u := &session.User{ID: resp.User.ID, Name: resp.User.Name, IsModerator: resp.User.IsModerator}
	err = a.store.Save(ctx, &session.Session{User: *u, AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken})
	if err != nil {
		return nil, nil, fmt.Errorf("session saving error: %w", err)
	}
	a.setUser(u)
	return u, nil, nil
}

// Register creates an account. It does not sign the new user in.
func (a *authService) Register(ctx context.Context, name, email, password string) (*session.User, []fielderrors.FieldError, error) {
	resp, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, resp.Errors, nil
	}
	if resp.User == nil {
		return nil, nil, fmt.Errorf("register: %w", client.ErrEmptyResponse)
	}
	return &session.User{ID: resp.User.ID, Name: resp.User.Name, IsModerator: resp.User.IsModerator}, nil, nil
}

// Logout forgets the local session even when the server cannot be told.
func (a *authService) Logout(ctx context.Context) error {
	remoteErr := a.client.Logout(ctx)
	a.setUser(nil)
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("session clearing error: %w", err)
	}
	return remoteErr
}

// Restore resumes a stored session. It returns nil when nobody is signed in.
func (a *authService) Restore(ctx context.Context) (*session.User, error) {
	s, err := a.store.Load(ctx)
	if err != nil || s == nil {
		return nil, err
	}
	a.client.SetTokens(s.AccessToken, s.RefreshToken)
	u := s.User
	a.setUser(&u)
	return &u, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close() error {
	return a.client.Close()
}
