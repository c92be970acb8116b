package password

import (
	"errors"
	"strings"
	"testing"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	h := NewPBKDF2Hasher()

	hash, salt, err := h.Hash("Sup3r$ecret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := h.Verify("Sup3r$ecret", hash, salt)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify against its own hash")
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	h := NewPBKDF2Hasher()

	hash, salt, err := h.Hash("Correct#1pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := h.Verify("Wrong#1pass", hash, salt)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("expected mismatched password to fail verification")
	}
}

func TestHashProducesUniqueSalts(t *testing.T) {
	h := NewPBKDF2Hasher()

	hash1, salt1, err := h.Hash("Same$1password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	hash2, salt2, err := h.Hash("Same$1password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if salt1 == salt2 {
		t.Fatal("expected a fresh salt per call")
	}
	if hash1 == hash2 {
		t.Fatal("expected distinct hashes for distinct salts")
	}
}

func TestHashIsTagged(t *testing.T) {
	h := NewPBKDF2Hasher()

	hash, _, err := h.Hash("Tagged#1pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, HashTag) {
		t.Fatalf("expected hash to carry the %q tag, got %q", HashTag, hash)
	}
	if strings.Contains(hash, "Tagged#1pass") {
		t.Fatal("hash must not contain the plaintext")
	}
}

func TestVerifyUnsupportedFormat(t *testing.T) {
	h := NewPBKDF2Hasher()

	_, err := h.Verify("whatever", "bm90LWEtdGFnZ2VkLWhhc2g=", "c2FsdA==")
	if !errors.Is(err, ErrUnsupportedHash) {
		t.Fatalf("expected ErrUnsupportedHash, got %v", err)
	}
}

func TestWithIterationsNeverWeakens(t *testing.T) {
	h := NewPBKDF2Hasher(WithIterations(1000))
	if h.iterations != DefaultIterations {
		t.Fatalf("expected iteration floor %d, got %d", DefaultIterations, h.iterations)
	}

	raised := NewPBKDF2Hasher(WithIterations(DefaultIterations + 1))
	if raised.iterations != DefaultIterations+1 {
		t.Fatalf("expected raised count to stick, got %d", raised.iterations)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	weak := Config{Iterations: 10_000}
	if err := weak.Validate(); err == nil {
		t.Fatal("expected weakened iteration count to be rejected")
	}
}
