// Package session binds opaque per-browser tokens to users.
//
// Sessions live in process memory only: a restart logs everybody out.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/galaxy/internal/error_values"
	"github.com/limbo/galaxy/pkg/entity"
)

const DefaultTTL = 7 * 24 * time.Hour

// TokenSigner turns a session id into a tamper-evident token and back.
type TokenSigner interface {
	Sign(sessionID string, expiresAt time.Time) (string, error)
	Parse(token string) (string, error)
}

type binding struct {
	user      entity.UserContext
	expiresAt time.Time
}

type Authority struct {
	signer   TokenSigner
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
	sessions map[string]binding
}

type Option func(*Authority)

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(a *Authority) {
		a.now = now
	}
}

func New(signer TokenSigner, ttl time.Duration, opts ...Option) *Authority {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	a := &Authority{
		signer:   signer,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]binding),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start binds a fresh session to user and returns its token.
func (a *Authority) Start(user *entity.User) (string, error) {
	if user == nil {
		return "", errors.New("user is nil")
	}
	sid := uuid.NewString()
	expiresAt := a.now().Add(a.ttl)
	token, err := a.signer.Sign(sid, expiresAt)
	if err != nil {
		return "", errors.New("signing session token error: " + err.Error())
	}
	a.mu.Lock()
	a.sessions[sid] = binding{
		user: entity.UserContext{
			UserID:      user.ID,
			DisplayName: user.DisplayName,
		},
		expiresAt: expiresAt,
	}
	a.mu.Unlock()
	return token, nil
}

// Resolve returns the user bound to token. Absent, forged, ended and expired
// tokens all yield ErrUnauthenticated.
func (a *Authority) Resolve(token string) (entity.UserContext, error) {
	sid, ok := a.sessionID(token)
	if !ok {
		return entity.UserContext{}, errorvalues.ErrUnauthenticated
	}
	a.mu.RLock()
	b, found := a.sessions[sid]
	a.mu.RUnlock()
	if !found {
		return entity.UserContext{}, errorvalues.ErrUnauthenticated
	}
	if !a.now().Before(b.expiresAt) {
		a.mu.Lock()
		delete(a.sessions, sid)
		a.mu.Unlock()
		return entity.UserContext{}, errorvalues.ErrUnauthenticated
	}
	return b.user, nil
}

// End invalidates the session behind token. Unknown tokens are ignored.
func (a *Authority) End(token string) {
	sid, ok := a.sessionID(token)
	if !ok {
		return
	}
	a.mu.Lock()
	delete(a.sessions, sid)
	a.mu.Unlock()
}

func (a *Authority) sessionID(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	sid, err := a.signer.Parse(token)
	if err != nil {
		return "", false
	}
	return sid, true
}
