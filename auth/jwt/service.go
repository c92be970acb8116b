// Package jwt issues and validates the server's bearer tokens.
//
// Tokens are signed with HMAC-SHA512 under a single process-wide secret and
// carry the subject's identity claims plus an absolute UTC expiry. No
// issuer or audience checks are performed (single-tenant deployment).
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims are the identity facts embedded in every issued token.
type Claims struct {
	gojwt.RegisteredClaims

	// UserID is the subject's opaque store identity.
	UserID string `json:"user_id,omitempty"`
	// Name is the subject's username.
	Name string `json:"name"`
	// Email is the subject's email address.
	Email string `json:"email"`
}

// Empty reports whether the claims carry no identity facts at all.
func (c Claims) Empty() bool {
	return c.UserID == "" && c.Name == "" && c.Email == ""
}

// ErrEmptyClaims is returned by Issue when the claims carry no identity.
var ErrEmptyClaims = errors.New("jwt: arguments to create token are not valid")

// InvalidReason tags why a token failed validation. The boolean gate merges
// all reasons; the tag exists for logging and tests, never for branching
// authorization decisions.
type InvalidReason string

const (
	ReasonValid     InvalidReason = ""
	ReasonEmpty     InvalidReason = "empty"
	ReasonMalformed InvalidReason = "malformed"
	ReasonSignature InvalidReason = "signature"
	ReasonExpired   InvalidReason = "expired"
)

// Service signs and validates bearer tokens. The secret and algorithm are
// immutable after construction; there is no runtime key rotation.
type Service struct {
	cfg Config
}

// NewService creates a token service. It fails when no secret is
// configured — callers treat that as fatal at process boot.
func NewService(cfg *Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: *cfg}, nil
}

// Issue creates a signed token embedding the claims with an expiry of
// now + expireMinutes (DefaultExpiryMinutes when zero). The freshly minted
// token is validated before it is returned; a failure here means the service
// is misconfigured and issuance aborts. A negative expiry is not clamped:
// the resulting token is already expired and the self-validation guard
// rejects it.
func (s *Service) Issue(claims Claims, expireMinutes int) (string, error) {
	if claims.Empty() {
		return "", ErrEmptyClaims
	}
	if expireMinutes == 0 {
		expireMinutes = s.cfg.ExpiryMinutes
	}

	now := time.Now().UTC()
	claims.IssuedAt = gojwt.NewNumericDate(now)
	claims.ExpiresAt = gojwt.NewNumericDate(now.Add(time.Duration(expireMinutes) * time.Minute))

	token := gojwt.NewWithClaims(s.cfg.signingMethod(), claims)
	signed, err := token.SignedString(s.cfg.signKey())
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}

	// Consistency guard: a token we cannot validate ourselves must never
	// leave the process.
	if !s.Validate(signed) {
		return "", fmt.Errorf("jwt: freshly issued token failed self-validation")
	}
	return signed, nil
}

// Validate reports whether the token is well-formed, correctly signed, and
// unexpired. Empty, malformed, forged, and expired tokens all yield false;
// the caller cannot distinguish the sub-causes from this call.
func (s *Service) Validate(token string) bool {
	ok, _ := s.ValidateWithReason(token)
	return ok
}

// ValidateWithReason is Validate plus a tagged reason for the failure.
func (s *Service) ValidateWithReason(token string) (bool, InvalidReason) {
	if token == "" {
		return false, ReasonEmpty
	}
	_, err := s.parse(token)
	switch {
	case err == nil:
		return true, ReasonValid
	case errors.Is(err, gojwt.ErrTokenExpired):
		return false, ReasonExpired
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return false, ReasonSignature
	default:
		return false, ReasonMalformed
	}
}

// ExtractClaims re-runs signature and expiry validation and returns the
// embedded claims. Unlike Validate it propagates the underlying error:
// callers must not treat claim extraction as safe on unvalidated tokens.
func (s *Service) ExtractClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("jwt: given token is null or empty")
	}
	return s.parse(token)
}

// parse validates the token and returns its claims.
func (s *Service) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(token, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("jwt: parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("jwt: invalid token")
	}
	return claims, nil
}

// keyFunc is the gojwt.Keyfunc used during token parsing.
func (s *Service) keyFunc(token *gojwt.Token) (interface{}, error) {
	expected := s.cfg.signingMethod()
	if token.Method.Alg() != expected.Alg() {
		return nil, fmt.Errorf("jwt: unexpected signing method: %s", token.Method.Alg())
	}
	return s.cfg.signKey(), nil
}
