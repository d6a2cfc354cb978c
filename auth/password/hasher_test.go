package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(WithCost(bcrypt.MinCost))

	hash, err := h.Hash("correct-horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "correct-horse" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := h.Verify("correct-horse", hash); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestBcryptHasher_Mismatch(t *testing.T) {
	h := NewBcryptHasher(WithCost(bcrypt.MinCost))

	hash, err := h.Hash("correct-horse")
	if err != nil {
		t.Fatal(err)
	}
	err = h.Verify("wrong-horse", hash)
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify error = %v, want ErrMismatch", err)
	}
}

func TestBcryptHasher_Lengths(t *testing.T) {
	h := NewBcryptHasher(WithCost(bcrypt.MinCost))

	if _, err := h.Hash("short"); err == nil {
		t.Error("expected error for short password")
	}
	if _, err := h.Hash(strings.Repeat("x", 73)); err == nil {
		t.Error("expected error for over-long password")
	}
}

func TestWithCost_IgnoresOutOfRange(t *testing.T) {
	h := NewBcryptHasher(WithCost(99))
	if h.cost != 10 {
		t.Errorf("cost = %d, want default 10", h.cost)
	}
}
