package services

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	s := NewAuthService(zerolog.Nop())

	token, err := s.GenerateToken(42, "alice@example.com", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q", claims.Role)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	s1 := NewAuthService(zerolog.Nop())
	token, err := s1.GenerateToken(1, "bob@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-two")
	s2 := NewAuthService(zerolog.Nop())
	if _, err := s2.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret validated")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	s := NewAuthService(zerolog.Nop())
	if _, err := s.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token validated")
	}
}
