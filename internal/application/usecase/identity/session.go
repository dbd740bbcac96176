// Package identity contains session-identity use cases.
package identity

import (
	"context"
	"strings"

	"github.com/pocketwatch/backend/internal/application/adapter"
	"github.com/pocketwatch/backend/internal/domain/entity"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
)

// SignInInput represents the input for establishing a session.
type SignInInput struct {
	Token string
}

// SignInOutput represents the output of establishing a session.
type SignInOutput struct {
	Identity *entity.Identity
}

// SignInUseCase validates an externally issued session token and makes its
// identity current.
type SignInUseCase struct {
	provider adapter.IdentityProvider
}

// NewSignInUseCase creates a new SignInUseCase instance.
func NewSignInUseCase(provider adapter.IdentityProvider) *SignInUseCase {
	return &SignInUseCase{provider: provider}
}

// Execute performs the sign-in.
func (uc *SignInUseCase) Execute(ctx context.Context, input SignInInput) (*SignInOutput, error) {
	token := strings.TrimSpace(input.Token)
	if token == "" {
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeInvalidSessionToken,
			"session token is required",
			domainerror.ErrInvalidSessionToken,
		)
	}

	ident, err := uc.provider.SignIn(ctx, token)
	if err != nil {
		return nil, err
	}
	return &SignInOutput{Identity: ident}, nil
}

// SignOutUseCase ends the current session.
type SignOutUseCase struct {
	provider adapter.IdentityProvider
}

// NewSignOutUseCase creates a new SignOutUseCase instance.
func NewSignOutUseCase(provider adapter.IdentityProvider) *SignOutUseCase {
	return &SignOutUseCase{provider: provider}
}

// Execute performs the sign-out. Signing out of an anonymous session succeeds.
func (uc *SignOutUseCase) Execute(ctx context.Context) error {
	return uc.provider.SignOut(ctx)
}

// SessionView describes the current session for presentation.
type SessionView struct {
	SignedIn bool
	Email    string
}

// Snapshot is the minimal session read surface. *session.Coordinator
// satisfies it.
type Snapshot interface {
	Identity() *entity.Identity
}

// GetSessionUseCase reports the current session state.
type GetSessionUseCase struct {
	snapshot Snapshot
}

// NewGetSessionUseCase creates a new GetSessionUseCase instance.
func NewGetSessionUseCase(snapshot Snapshot) *GetSessionUseCase {
	return &GetSessionUseCase{snapshot: snapshot}
}

// Execute returns the session view.
func (uc *GetSessionUseCase) Execute(context.Context) (*SessionView, error) {
	ident := uc.snapshot.Identity()
	if ident == nil {
		return &SessionView{SignedIn: false}, nil
	}
	return &SessionView{SignedIn: true, Email: ident.Email}, nil
}
