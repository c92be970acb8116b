package password

import "fmt"

// Derivation parameters. The iteration count is deliberately high; it is a
// floor, not a tunable.
const (
	DefaultIterations = 350_000
	DefaultKeyLength  = 64
	DefaultSaltLength = 64
)

// Config configures password hashing behavior.
// Loadable from YAML/env via mapstructure tags.
type Config struct {
	// Iterations is the PBKDF2 iteration count (default: 350,000).
	// Values below the default are rejected by Validate.
	Iterations int `mapstructure:"iterations"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Iterations == 0 {
		c.Iterations = DefaultIterations
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Iterations < DefaultIterations {
		return fmt.Errorf("password.iterations must be at least %d (got: %d)", DefaultIterations, c.Iterations)
	}
	return nil
}

// NewHasher creates a Hasher from configuration.
func NewHasher(cfg Config) Hasher {
	cfg.ApplyDefaults()
	return NewPBKDF2Hasher(WithIterations(cfg.Iterations))
}
