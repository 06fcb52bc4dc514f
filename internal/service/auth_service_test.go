package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/roadtrippi/roadtrippi-backend/internal/util"
)

func newAuthFixture() (*AuthService, *memoryUserRepo) {
	users := newMemoryUserRepo()
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(users, jwtManager), users
}

func TestAuthService_RegisterLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture()

	result, err := svc.Register(ctx, "Wanda@Example.com", "wanda", "route66roadtrip1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.User.Email != "wanda@example.com" {
		t.Fatalf("expected lowercased email, got %s", result.User.Email)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}

	login, err := svc.Login(ctx, "wanda@example.com", "route66roadtrip1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if login.User.ID != result.User.ID {
		t.Fatalf("expected same user on login")
	}

	user, err := svc.Authenticate(ctx, login.Token)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.ID != result.User.ID {
		t.Fatalf("expected authenticated user to match")
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture()

	if _, err := svc.Register(ctx, "wanda@example.com", "wanda", "route66roadtrip1"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, err := svc.Login(ctx, "wanda@example.com", "wrong-password-99"); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Fatalf("expected ErrAuthInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "route66roadtrip1"); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Fatalf("expected ErrAuthInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture()

	if _, err := svc.Register(ctx, "wanda@example.com", "wanda", "route66roadtrip1"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Register(ctx, "wanda@example.com", "wanda2", "route66roadtrip1"); !errors.Is(err, ErrAuthEmailTaken) {
		t.Fatalf("expected ErrAuthEmailTaken, got %v", err)
	}
}

func TestAuthService_RegisterInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture()

	cases := []struct {
		email, username, password string
	}{
		{"not-an-email", "wanda", "route66roadtrip1"},
		{"wanda@example.com", "ab", "route66roadtrip1"},
		{"wanda@example.com", "wanda", "short1"},
	}
	for _, tc := range cases {
		if _, err := svc.Register(ctx, tc.email, tc.username, tc.password); !errors.Is(err, ErrAuthInvalidInput) {
			t.Fatalf("expected ErrAuthInvalidInput for %+v, got %v", tc, err)
		}
	}
}

func TestAuthService_AuthenticateGarbageToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture()

	if _, err := svc.Authenticate(ctx, "not-a-token"); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Fatalf("expected ErrAuthInvalidCredentials, got %v", err)
	}
}
