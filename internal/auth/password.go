package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when Config.BcryptCost is 0.
// At 12 one hash takes roughly 250ms, paid once per register or login.
const DefaultCost = 12

// MaxPasswordBytes is the longest password bcrypt reads in full. Anything
// past it would be silently ignored, so Hash refuses it instead.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned by Hash for a password over MaxPasswordBytes.
// The register flow reports it as a form error on the password field.
var ErrPasswordTooLong = errors.New("auth: password too long")

// Hasher hashes account passwords on register and checks them on login.
//
// The stored value is bcrypt's own encoding, salt and cost included:
//
//	$2a$12$<22-char salt><31-char hash>
//
// so a user row needs one password column and nothing else. Rows hashed
// under an older cost keep verifying after the cost is raised.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using cost, or DefaultCost when cost is 0.
// Tests pass bcrypt.MinCost to keep a hash under a millisecond.
func NewHasher(cost int) (*Hasher, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("auth: bcrypt cost %d outside [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Hasher{cost: cost}, nil
}

// Cost reports the work factor new hashes are made with.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns the string to store in model.User.Password. Each call draws
// a fresh salt, so one password hashed twice gives two different strings
// that both verify.
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrPasswordTooLong, len(password), MaxPasswordBytes)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password is the one stored as hash.
//
// A wrong password, an empty hash (a row written before hashing existed)
// and a malformed hash all read as "no match": login answers each with the
// same "Invalid Email or Password". The comparison is constant-time.
func (h *Hasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
