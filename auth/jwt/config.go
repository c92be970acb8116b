package jwt

import (
	"errors"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// DefaultExpiryMinutes is the token lifetime applied when the caller does
// not specify one.
const DefaultExpiryMinutes = 60

// ErrMissingSecret is returned when the service is constructed without a
// signing key. This is a configuration failure: the process must not start.
var ErrMissingSecret = errors.New("jwt: a secret key is required to sign tokens")

// Config configures the token service.
// Loadable from YAML/env via mapstructure tags.
type Config struct {
	// Secret is the HMAC signing key. Required.
	Secret string `mapstructure:"secret" validate:"required"`

	// ExpiryMinutes is the default token lifetime in minutes (default: 60).
	ExpiryMinutes int `mapstructure:"expiry_minutes"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.ExpiryMinutes == 0 {
		c.ExpiryMinutes = DefaultExpiryMinutes
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return ErrMissingSecret
	}
	return nil
}

// signingMethod returns the fixed signing algorithm. The service signs with
// HMAC-SHA512 only; there is no per-deployment algorithm negotiation.
func (c *Config) signingMethod() gojwt.SigningMethod {
	return gojwt.SigningMethodHS512
}

// signKey returns the key used for signing and verifying tokens.
func (c *Config) signKey() []byte {
	return []byte(c.Secret)
}
