// Package password provides salted password hashing and verification.
//
// Hashes are derived with PBKDF2-SHA512 and encoded as a tagged base64
// string. The tag ("HASH$") distinguishes already-hashed values from raw
// plaintext so a record round-tripped through the store is never hashed
// twice.
//
// Usage:
//
//	hasher := password.NewPBKDF2Hasher()
//	hash, salt, err := hasher.Hash("my-password")
//	ok, err := hasher.Verify("my-password", hash, salt)
package password

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// HashTag marks a derived hash string. Values without the tag are treated
// as an unsupported format, never as plaintext to compare against.
const HashTag = "HASH$"

// ErrUnsupportedHash is returned by Verify when the stored hash lacks the
// expected tag. This is a data-integrity fault: callers must abort the
// operation rather than report a verification result.
var ErrUnsupportedHash = errors.New("password: stored hash is not in a supported format")

// Hasher defines the interface for password hashing and verification.
type Hasher interface {
	// Hash derives a tagged hash and a fresh random salt for the password.
	Hash(password string) (hash, salt string, err error)

	// Verify recomputes the derivation with the stored salt and reports
	// whether the password matches. Returns ErrUnsupportedHash when the
	// stored hash lacks the expected tag.
	Verify(password, hash, salt string) (bool, error)
}

// PBKDF2Hasher implements Hasher using PBKDF2 with SHA-512.
type PBKDF2Hasher struct {
	iterations int
	keyLength  int
	saltLength int
}

// Option configures the PBKDF2 hasher.
type Option func(*PBKDF2Hasher)

// WithIterations raises the PBKDF2 iteration count. Values below the
// default are ignored: the iteration count is a brute-force deterrent and
// must never be weakened.
func WithIterations(n int) Option {
	return func(h *PBKDF2Hasher) {
		if n > h.iterations {
			h.iterations = n
		}
	}
}

// NewPBKDF2Hasher creates a PBKDF2-SHA512 password hasher.
// Defaults: 350,000 iterations, 64-byte derived key, 64-byte salt.
func NewPBKDF2Hasher(opts ...Option) *PBKDF2Hasher {
	h := &PBKDF2Hasher{
		iterations: DefaultIterations,
		keyLength:  DefaultKeyLength,
		saltLength: DefaultSaltLength,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash derives a key from the password with a fresh random salt and returns
// both as base64 strings. The hash carries the HashTag prefix.
func (h *PBKDF2Hasher) Hash(password string) (string, string, error) {
	saltBytes, err := generateRandomBytes(h.saltLength)
	if err != nil {
		return "", "", fmt.Errorf("password: generate salt: %w", err)
	}

	derived := pbkdf2.Key([]byte(password), saltBytes, h.iterations, h.keyLength, sha512.New)

	hash := HashTag + base64.StdEncoding.EncodeToString(derived)
	salt := base64.StdEncoding.EncodeToString(saltBytes)
	return hash, salt, nil
}

// Verify recomputes the derivation with the stored salt and compares the
// result against the stored hash in constant time.
func (h *PBKDF2Hasher) Verify(password, hash, salt string) (bool, error) {
	if !strings.Contains(hash, HashTag) {
		return false, ErrUnsupportedHash
	}
	encoded := strings.Replace(hash, HashTag, "", 1)

	expected, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false, fmt.Errorf("password: decode hash: %w", err)
	}
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return false, fmt.Errorf("password: decode salt: %w", err)
	}

	derived := pbkdf2.Key([]byte(password), saltBytes, h.iterations, h.keyLength, sha512.New)
	return subtle.ConstantTimeCompare(derived, expected) == 1, nil
}

// generateRandomBytes returns cryptographically secure random bytes.
func generateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}
