// Package identity implements the identity provider capability over an
// externally issued session token. The provider only validates and stores the
// token; the exchange that produced it (OAuth redirect, cookie handshake)
// happens outside this system.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pocketwatch/backend/internal/application/adapter"
	"github.com/pocketwatch/backend/internal/domain/entity"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
)

// SessionClaims represents the claims of a session token.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenProvider resolves the current identity from a session token persisted
// on the device and notifies listeners when the session changes.
type TokenProvider struct {
	mu          sync.Mutex
	secret      []byte
	sessionPath string
	listeners   map[int]func(*entity.Identity)
	nextID      int
	now         func() time.Time
}

// NewTokenProvider creates a provider validating tokens with the given secret
// and persisting the active session at sessionPath.
func NewTokenProvider(secret string, sessionPath string) *TokenProvider {
	return &TokenProvider{
		secret:      []byte(secret),
		sessionPath: sessionPath,
		listeners:   make(map[int]func(*entity.Identity)),
		now:         time.Now,
	}
}

var _ adapter.IdentityProvider = (*TokenProvider)(nil)

// Current resolves the stored session to an identity. A missing, expired or
// invalid session resolves to anonymous (nil identity), never to an error:
// the caller always gets a definite answer.
func (p *TokenProvider) Current(ctx context.Context) (*entity.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	raw, err := os.ReadFile(p.sessionPath)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Session file unreadable, resolving to anonymous", "error", err)
		}
		return nil, nil
	}

	ident, err := p.parse(string(raw))
	if err != nil {
		slog.Warn("Stored session token invalid, resolving to anonymous", "error", err)
		return nil, nil
	}
	return ident, nil
}

// SignIn validates an externally issued session token, persists it and
// notifies listeners of the new identity.
func (p *TokenProvider) SignIn(ctx context.Context, token string) (*entity.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	ident, err := p.parse(token)
	if err != nil {
		p.mu.Unlock()
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeInvalidSessionToken,
			"session token could not be validated",
			err,
		)
	}

	if err := os.MkdirAll(filepath.Dir(p.sessionPath), 0o755); err == nil {
		if err := os.WriteFile(p.sessionPath, []byte(token), 0o600); err != nil {
			slog.Warn("Failed to persist session token", "error", err)
		}
	}

	listeners := p.snapshotListeners()
	p.mu.Unlock()

	slog.Info("Signed in", "user_id", ident.ID, "email", ident.Email)
	for _, fn := range listeners {
		fn(ident)
	}
	return ident, nil
}

// SignOut removes the persisted session and notifies listeners.
func (p *TokenProvider) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	if err := os.Remove(p.sessionPath); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove session token", "error", err)
	}
	listeners := p.snapshotListeners()
	p.mu.Unlock()

	slog.Info("Signed out")
	for _, fn := range listeners {
		fn(nil)
	}
	return nil
}

// OnChange registers a state-change callback and returns an unsubscribe
// function.
func (p *TokenProvider) OnChange(fn func(*entity.Identity)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.listeners[id] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

// parse validates a token and extracts the identity. Caller holds the lock.
func (p *TokenProvider) parse(raw string) (*entity.Identity, error) {
	token, err := jwt.ParseWithClaims(raw, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.ErrSessionExpired
		}
		return nil, domainerror.ErrInvalidSessionToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, domainerror.ErrInvalidSessionToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domainerror.ErrInvalidSessionToken
	}

	return &entity.Identity{ID: userID, Email: claims.Email}, nil
}

// snapshotListeners copies the listener set so callbacks run outside the
// lock. Caller holds the lock.
func (p *TokenProvider) snapshotListeners() []func(*entity.Identity) {
	fns := make([]func(*entity.Identity), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	return fns
}
