package util

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()

	token, expiresAt, err := manager.Generate(userID, "dewi@example.com", "user")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatal("expected expiry in the future")
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected subject %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "dewi@example.com" {
		t.Fatalf("unexpected email claim %q", claims.Email)
	}
	if claims.Role != "user" {
		t.Fatalf("unexpected role claim %q", claims.Role)
	}
}

func TestJWTParseRejects(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		token, _, err := expired.Generate(uuid.New(), "dewi@example.com", "user")
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		if _, err := manager.Parse(token); err == nil {
			t.Fatal("expected expired token to be rejected")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		token, _, err := other.Generate(uuid.New(), "dewi@example.com", "user")
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		if _, err := manager.Parse(token); err == nil {
			t.Fatal("expected foreign signature to be rejected")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := manager.Parse("not-a-jwt"); err == nil {
			t.Fatal("expected malformed token to be rejected")
		}
	})
}
