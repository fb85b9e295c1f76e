package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestDeriveAndVerifyPassword(t *testing.T) {
	hash, salt, err := DerivePassword("rahasia123")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	if len(hash) != hashLength {
		t.Fatalf("expected %d-byte hash, got %d", hashLength, len(hash))
	}
	if len(salt) != saltLength {
		t.Fatalf("expected %d-byte salt, got %d", saltLength, len(salt))
	}

	if !VerifyPassword("rahasia123", salt, hash) {
		t.Fatal("expected original password to verify")
	}
	if VerifyPassword("rahasia124", salt, hash) {
		t.Fatal("different password must not verify")
	}
	if VerifyPassword("", salt, hash) {
		t.Fatal("empty password must not verify")
	}

	otherSalt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt returned error: %v", err)
	}
	if VerifyPassword("rahasia123", otherSalt, hash) {
		t.Fatal("same password under a different salt must not verify")
	}
}

func TestDerivePasswordSaltsAreUnique(t *testing.T) {
	hash1, salt1, err := DerivePassword("rahasia123")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	hash2, salt2, err := DerivePassword("rahasia123")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	if bytes.Equal(salt1, salt2) {
		t.Fatal("expected a fresh salt per derivation")
	}
	if bytes.Equal(hash1, hash2) {
		t.Fatal("expected distinct digests for distinct salts")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"too short", "12345", true},
		{"minimum length", "123456", false},
		{"maximum length", strings.Repeat("a", 50), false},
		{"too long", strings.Repeat("a", 51), true},
		{"empty", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %q", tc.password)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.password, err)
			}
		})
	}
}

func TestHashPasswordRejectsEmptyInputs(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt returned error: %v", err)
	}
	if _, err := HashPassword("", salt); err == nil {
		t.Fatal("expected error for empty password")
	}
	if _, err := HashPassword("rahasia123", nil); err == nil {
		t.Fatal("expected error for empty salt")
	}
}
