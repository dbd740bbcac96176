package adapter

import (
	"context"

	"github.com/pocketwatch/backend/internal/domain/entity"
)

// IdentityProvider is the authentication capability. How a session token is
// obtained (OAuth redirect, cookie exchange) is outside this system; the
// provider only resolves the current identity and reports state changes.
type IdentityProvider interface {
	// Current resolves the currently authenticated identity, or nil when in
	// anonymous mode. It honors ctx cancellation.
	Current(ctx context.Context) (*entity.Identity, error)

	// OnChange registers a callback invoked with the new identity (nil on
	// sign-out) whenever the authentication state changes. It returns an
	// unsubscribe function.
	OnChange(fn func(*entity.Identity)) (unsubscribe func())

	// SignIn establishes a session from an externally issued token and
	// returns the resolved identity.
	SignIn(ctx context.Context, token string) (*entity.Identity, error)

	// SignOut tears down the current session.
	SignOut(ctx context.Context) error
}
