// Package hasher turns plaintext passwords into stored credentials.
//
// The default SHA256 hasher is deterministic and unsalted so that existing
// stored credentials keep verifying. It is not a password KDF; deployments
// that can migrate credentials should select the bcrypt hasher instead.
package hasher

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/foodtrace/backend/internal/types"
)

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, stored string) bool
}

// Names accepted by New.
const (
	SHA256 = "sha256"
	Bcrypt = "bcrypt"
)

// New returns the hasher registered under name.
func New(name string) (Hasher, error) {
	switch name {
	case "", SHA256:
		return SHA256Hasher{}, nil
	case Bcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}

// SHA256Hasher produces a 64 character lower-case hex SHA-256 digest.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("hash password: %w", types.ErrInvalidInput)
	}
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(plaintext, stored string) bool {
	got, err := h.Hash(plaintext)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(stored)) == 1
}

// BcryptHasher is the salted alternative. Its output is not deterministic
// and is incompatible with SHA256Hasher credentials.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("hash password: %w", types.ErrInvalidInput)
	}
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(out), nil
}

func (BcryptHasher) Verify(plaintext, stored string) bool {
	if plaintext == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
}
