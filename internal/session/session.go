// Package session holds the signed-in identity and keeps the stored
// credential, the in-memory profile and the client's bearer header in step.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mindcare/internal/api"
	"mindcare/internal/localstore"
)

type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Backend is the subset of the API client a session drives.
type Backend interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Profile(ctx context.Context) (*api.User, error)
	SetBearer(token string)
	ClearBearer()
}

type Session struct {
	storage Storage
	backend Backend
	now     func() time.Time

	mu    sync.RWMutex
	token string
	user  *api.User
}

func New(storage Storage, backend Backend) *Session {
	return &Session{
		storage: storage,
		backend: backend,
		now:     time.Now,
	}
}

// Init restores a stored credential. An expired or rejected credential is
// cleared and the session stays signed out; only storage failures are
// returned.
func (s *Session) Init(ctx context.Context) error {
	token, ok, err := s.storage.Get(ctx, localstore.KeyAuthToken)
	if err != nil {
		return err
	}
	if !ok || token == "" {
		return nil
	}

	if s.expired(token) {
		log.Printf("stored credential expired, signing out")
		return s.Logout(ctx)
	}

	s.backend.SetBearer(token)
	user, err := s.backend.Profile(ctx)
	if err != nil {
		log.Printf("restore session: %v", err)
		return s.Logout(ctx)
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return nil
}

// expired reports whether the token's exp claim has passed. Tokens without a
// readable exp are left for the backend to judge.
func (s *Session) expired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !s.now().Before(claims.ExpiresAt.Time)
}

func (s *Session) Login(ctx context.Context, email, password string) (*api.User, error) {
	result, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.Establish(ctx, result.Token, result.User); err != nil {
		return nil, err
	}
	user := result.User
	return &user, nil
}

// Establish adopts a credential issued elsewhere, such as by registration.
func (s *Session) Establish(ctx context.Context, token string, user api.User) error {
	if err := s.storage.Set(ctx, localstore.KeyAuthToken, token); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	s.backend.SetBearer(token)
	return nil
}

func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	s.backend.ClearBearer()
	return s.storage.Remove(ctx, localstore.KeyAuthToken)
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// User returns a copy of the signed-in profile, or nil.
func (s *Session) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
