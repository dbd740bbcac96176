package identity

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pocketwatch/backend/internal/domain/entity"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
)

const testSecret = "test-secret"

func issueToken(t *testing.T, userID uuid.UUID, email string, expiresIn time.Duration) string {
	t.Helper()

	claims := SessionClaims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newTestProvider(t *testing.T) *TokenProvider {
	t.Helper()
	return NewTokenProvider(testSecret, filepath.Join(t.TempDir(), "session"))
}

func TestCurrentWithoutSessionIsAnonymous(t *testing.T) {
	provider := newTestProvider(t)

	ident, err := provider.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if ident != nil {
		t.Errorf("expected anonymous, got %+v", ident)
	}
}

func TestSignInResolvesIdentity(t *testing.T) {
	provider := newTestProvider(t)
	userID := uuid.New()
	token := issueToken(t, userID, "user@example.com", time.Hour)

	ident, err := provider.SignIn(context.Background(), token)
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if ident.ID != userID || ident.Email != "user@example.com" {
		t.Errorf("identity = %+v", ident)
	}

	// The session persists: a fresh Current resolves the same identity.
	current, err := provider.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current == nil || current.ID != userID {
		t.Errorf("current = %+v, want signed-in identity", current)
	}
}

func TestSignInRejectsBadToken(t *testing.T) {
	provider := newTestProvider(t)

	_, err := provider.SignIn(context.Background(), "not-a-token")
	if !errors.Is(err, domainerror.ErrInvalidSessionToken) {
		t.Errorf("err = %v, want ErrInvalidSessionToken", err)
	}

	var sessionErr *domainerror.SessionError
	if !errors.As(err, &sessionErr) || sessionErr.Code != domainerror.ErrCodeInvalidSessionToken {
		t.Errorf("expected coded session error, got %v", err)
	}
}

func TestSignInRejectsWrongSecret(t *testing.T) {
	provider := newTestProvider(t)

	claims := SessionClaims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))

	if _, err := provider.SignIn(context.Background(), forged); err == nil {
		t.Error("expected forged token to be rejected")
	}
}

func TestExpiredSessionResolvesToAnonymous(t *testing.T) {
	provider := newTestProvider(t)
	token := issueToken(t, uuid.New(), "user@example.com", time.Hour)

	if _, err := provider.SignIn(context.Background(), token); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	// Jump past expiry: the stored token no longer yields an identity, but
	// Current still answers definitively instead of erroring.
	provider.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	ident, err := provider.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if ident != nil {
		t.Errorf("expected anonymous after expiry, got %+v", ident)
	}
}

func TestSignOutNotifiesListeners(t *testing.T) {
	provider := newTestProvider(t)
	token := issueToken(t, uuid.New(), "user@example.com", time.Hour)

	var events []*entity.Identity
	unsubscribe := provider.OnChange(func(ident *entity.Identity) {
		events = append(events, ident)
	})
	defer unsubscribe()

	ctx := context.Background()
	if _, err := provider.SignIn(ctx, token); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if err := provider.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 state-change events, got %d", len(events))
	}
	if events[0] == nil {
		t.Error("first event should carry the signed-in identity")
	}
	if events[1] != nil {
		t.Error("second event should be nil for sign-out")
	}

	ident, _ := provider.Current(ctx)
	if ident != nil {
		t.Errorf("expected anonymous after sign-out, got %+v", ident)
	}
}

func TestUnsubscribeStopsEvents(t *testing.T) {
	provider := newTestProvider(t)
	token := issueToken(t, uuid.New(), "user@example.com", time.Hour)

	calls := 0
	unsubscribe := provider.OnChange(func(*entity.Identity) { calls++ })
	unsubscribe()

	if _, err := provider.SignIn(context.Background(), token); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no callbacks after unsubscribe, got %d", calls)
	}
}
