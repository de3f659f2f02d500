package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// newTestHasher returns a Hasher at bcrypt's minimum cost.
func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}
	return h
}

// =========================================================================
// NewHasher TESTS
// =========================================================================

func TestNewHasher_ZeroMeansDefault(t *testing.T) {
	h, err := NewHasher(0)
	if err != nil {
		t.Fatalf("NewHasher(0) error = %v", err)
	}
	if h.Cost() != DefaultCost {
		t.Errorf("Cost() = %d, want %d", h.Cost(), DefaultCost)
	}
}

func TestNewHasher_RejectsCostOutOfRange(t *testing.T) {
	for _, cost := range []int{-1, bcrypt.MinCost - 1, bcrypt.MaxCost + 1} {
		if _, err := NewHasher(cost); err == nil {
			t.Errorf("NewHasher(%d) should fail", cost)
		}
	}
}

// =========================================================================
// Hash TESTS
// =========================================================================

func TestHash_StoresBcryptWithConfiguredCost(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("my-secret-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("stored value is not a bcrypt hash: %q (%v)", hash, err)
	}
	if cost != bcrypt.MinCost {
		t.Errorf("hash cost = %d, want %d", cost, bcrypt.MinCost)
	}
}

func TestHash_SamePasswordProducesDifferentHashes(t *testing.T) {
	h := newTestHasher(t)

	hash1, _ := h.Hash("same-password")
	hash2, _ := h.Hash("same-password")

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for the same password (salt must be random)")
	}
}

func TestHash_LengthLimit(t *testing.T) {
	h := newTestHasher(t)

	if _, err := h.Hash(strings.Repeat("a", MaxPasswordBytes)); err != nil {
		t.Fatalf("Hash() should accept %d bytes, got error: %v", MaxPasswordBytes, err)
	}

	_, err := h.Hash(strings.Repeat("a", MaxPasswordBytes+1))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("Hash() error = %v, want ErrPasswordTooLong", err)
	}

	// Multi-byte runes count in bytes: 25 × 3 bytes is over the limit.
	_, err = h.Hash(strings.Repeat("密", 25))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("Hash() of 75 bytes error = %v, want ErrPasswordTooLong", err)
	}
}

// =========================================================================
// Verify TESTS
// =========================================================================

func TestVerify_Mismatches(t *testing.T) {
	h := newTestHasher(t)
	hash, _ := h.Hash("the-real-password")

	cases := []struct {
		name     string
		hash     string
		password string
	}{
		{"wrong password", hash, "the-wrong-password"},
		{"empty password", hash, ""},
		{"case differs", hash, "The-Real-Password"},
		{"garbage hash", "not-a-valid-bcrypt-hash", "the-real-password"},
		{"empty hash", "", "the-real-password"},
		{"plaintext stored", "the-real-password", "the-real-password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if h.Verify(tc.hash, tc.password) {
				t.Errorf("Verify(%q, %q) = true, want false", tc.hash, tc.password)
			}
		})
	}
}

func TestVerify_HashFromAnotherCost(t *testing.T) {
	old := newTestHasher(t)
	hash, err := old.Hash("pw")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	raised, err := NewHasher(bcrypt.MinCost + 1)
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}
	if !raised.Verify(hash, "pw") {
		t.Error("a hash made at the old cost should still verify")
	}
}

func TestHashVerify_RoundTrip(t *testing.T) {
	h := newTestHasher(t)

	cases := []struct {
		name     string
		password string
		other    string
	}{
		{"register form default", "pw", "pW"},
		{"special characters", "p@$$w0rd!#%", "p@$$w0rd!#"},
		{"unicode", "пароль-密码", "пароль"},
		{"whitespace kept", "  leading and trailing  ", "leading and trailing"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hash, err := h.Hash(tc.password)
			if err != nil {
				t.Fatalf("Hash(%q) error = %v", tc.password, err)
			}
			if !h.Verify(hash, tc.password) {
				t.Errorf("Verify() = false for %q against its own hash", tc.password)
			}
			if h.Verify(hash, tc.other) {
				t.Errorf("Verify() = true for %q against the hash of %q", tc.other, tc.password)
			}
		})
	}
}
