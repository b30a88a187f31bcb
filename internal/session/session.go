// Package session holds the signed-in cashier and the access token used for
// backend calls. The token lives in an injectable TokenStore.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sarisari-pos/internal/backend"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotSignedIn is returned by operations that need a cashier.
var ErrNotSignedIn = errors.New("no cashier signed in")

// DefaultCashier is used when nobody has signed in.
const DefaultCashier = "Cashier"

// Authenticator is the backend's login API.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*backend.LoginResult, error)
	Verify(ctx context.Context) (*backend.VerifyResult, error)
}

type Log interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
}

// User is the signed-in cashier.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Info is a read-only view of the session.
type Info struct {
	ID        string    `json:"id"`
	SignedIn  bool      `json:"signed_in"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

type Session struct {
	store TokenStore
	log   Log
	now   func() time.Time

	mu     sync.Mutex
	id     uuid.UUID
	token  string
	loaded bool
	user   User
	expiry time.Time
}

func New(store TokenStore, log Log) *Session {
	return &Session{
		store: store,
		log:   log,
		now:   time.Now,
		id:    uuid.New(),
	}
}

// Token implements backend.TokenSource. The stored token is read lazily
// on first use.
func (s *Session) Token(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	if !s.expiry.IsZero() && !s.expiry.After(s.now()) {
		return ""
	}
	return s.token
}

func (s *Session) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	token, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("failed to load stored token", zap.Error(err))
		return
	}
	if token != "" {
		s.applyTokenLocked(token)
	}
}

// SetToken stores token and picks up whatever identity it carries.
func (s *Session) SetToken(ctx context.Context, token string) error {
	if err := s.store.Save(ctx, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	s.mu.Lock()
	s.loaded = true
	s.applyTokenLocked(token)
	s.mu.Unlock()
	return nil
}

func (s *Session) applyTokenLocked(token string) {
	s.token = token
	s.expiry = time.Time{}
	claims, err := ParseClaims(token)
	if err != nil {
		return
	}
	if claims.ExpiresAt != nil {
		s.expiry = claims.ExpiresAt.Time
	}
	if s.user.Name == "" && s.user.Username == "" {
		s.user = User{
			Username: claims.Username,
			Name:     claims.DisplayName(),
			Role:     claims.Role,
		}
		if claims.UserId != 0 {
			s.user.ID = fmt.Sprint(claims.UserId)
		}
	}
}

func (s *Session) SetUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// Login authenticates against the backend and starts a new session.
func (s *Session) Login(ctx context.Context, auth Authenticator, username, password string) (User, error) {
	res, err := auth.Login(ctx, username, password)
	if err != nil {
		return User{}, err
	}

	s.mu.Lock()
	s.id = uuid.New()
	s.user = User{Username: username, Name: username}
	if res.User != nil {
		s.user = fromBackend(*res.User)
	}
	s.mu.Unlock()

	if err := s.SetToken(ctx, res.AccessToken); err != nil {
		return User{}, err
	}

	u := s.User()
	s.log.Info("cashier signed in", zap.String("username", u.Username), zap.String("session", s.ID()))
	return u, nil
}

// Restore verifies a stored token with the backend and loads the user.
func (s *Session) Restore(ctx context.Context, auth Authenticator) (User, error) {
	if s.Token(ctx) == "" {
		return User{}, ErrNotSignedIn
	}
	res, err := auth.Verify(ctx)
	if err != nil {
		return User{}, err
	}
	if !res.Success {
		_ = s.Logout(ctx)
		return User{}, ErrNotSignedIn
	}
	if res.User != nil {
		s.SetUser(fromBackend(*res.User))
	}
	return s.User(), nil
}

func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	name := s.user.Username
	s.token = ""
	s.expiry = time.Time{}
	s.user = User{}
	s.loaded = true
	s.id = uuid.New()
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	s.log.Info("cashier signed out", zap.String("username", name))
	return nil
}

func (s *Session) User() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// CashierName is the name printed on receipts.
func (s *Session) CashierName() string {
	u := s.User()
	switch {
	case u.Name != "":
		return u.Name
	case u.Username != "":
		return u.Username
	default:
		return DefaultCashier
	}
}

func (s *Session) UserID() string {
	return s.User().ID
}

func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id.String()
}

func (s *Session) Info(ctx context.Context) Info {
	token := s.Token(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		ID:        s.id.String(),
		SignedIn:  token != "",
		User:      s.user,
		ExpiresAt: s.expiry,
	}
}

func fromBackend(u backend.User) User {
	name := u.Name
	if name == "" {
		name = u.Username
	}
	return User{ID: string(u.ID), Username: u.Username, Name: name, Role: u.Role}
}
