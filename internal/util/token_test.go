package util

import (
	"encoding/hex"
	"testing"
)

func TestGenerateOpaqueToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateOpaqueToken()
		if err != nil {
			t.Fatalf("GenerateOpaqueToken returned error: %v", err)
		}
		if len(token) != tokenBytes*2 {
			t.Fatalf("expected %d-char token, got %d", tokenBytes*2, len(token))
		}
		if _, err := hex.DecodeString(token); err != nil {
			t.Fatalf("token is not valid hex: %v", err)
		}
		if seen[token] {
			t.Fatal("token collision")
		}
		seen[token] = true
	}
}
