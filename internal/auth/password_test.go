package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashNeverStoresPlaintext(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == "pw1" || second == "pw1" {
		t.Fatal("credential must not equal the plaintext")
	}
	if first == second {
		t.Fatal("expected random salt to produce different credentials")
	}
	if !h.Verify("pw1", first) || !h.Verify("pw1", second) {
		t.Fatal("both credentials should verify against the original password")
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	credential, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	for _, candidate := range []string{"", "wrong", "correct horse "} {
		if h.Verify(candidate, credential) {
			t.Fatalf("expected %q to be rejected", candidate)
		}
	}
	if h.Verify("correct horse", "not-a-hash") {
		t.Fatal("malformed credential must not verify")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	if _, err := NewHasher(bcrypt.MinCost).Hash(""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	_, err := NewHasher(bcrypt.MinCost).Hash(strings.Repeat("a", 73))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	if got := NewHasher(1).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost for too-low value, got %d", got)
	}
	if got := NewHasher(bcrypt.MinCost).cost; got != bcrypt.MinCost {
		t.Fatalf("expected min cost to be kept, got %d", got)
	}
}
