package services

import (
	"errors"
	"testing"
	"time"

	"github.com/gymtrack/gymtrack-api/internal/config"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	svc, err := NewAuthService(config.AdminConfig{
		Username:  "admin",
		Password:  "s3cret",
		JWTSecret: "test-signing-key",
		TokenTTL:  "1h",
	})
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return svc
}

func TestAuthServiceRequiresConfig(t *testing.T) {
	if _, err := NewAuthService(config.AdminConfig{Username: "admin", JWTSecret: "k"}); err == nil {
		t.Fatalf("expected error without password")
	}
	if _, err := NewAuthService(config.AdminConfig{Username: "admin", Password: "p"}); err == nil {
		t.Fatalf("expected error without jwt secret")
	}
	if _, err := NewAuthService(config.AdminConfig{
		Username: "admin", Password: "p", JWTSecret: "k", TokenTTL: "soon",
	}); err == nil {
		t.Fatalf("expected error for bad ttl")
	}
}

func TestLoginAndValidate(t *testing.T) {
	svc := newTestAuthService(t)

	token, err := svc.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	subject, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if subject != "admin" {
		t.Fatalf("expected subject admin got %q", subject)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)

	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials got %v", err)
	}
	if _, err := svc.Login("root", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials got %v", err)
	}
}

func TestValidateRejectsGarbageAndExpired(t *testing.T) {
	svc := newTestAuthService(t)

	if _, err := svc.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken got %v", err)
	}

	// Issue a token that expired an hour ago.
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	svc := newTestAuthService(t)
	other, err := NewAuthService(config.AdminConfig{
		Username: "admin", Password: "s3cret", JWTSecret: "different-key",
	})
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}

	token, err := other.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected token signed with another key to be rejected, got %v", err)
	}
}
