package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors (recoverable, surfaced to the caller as 400)
const (
	// ErrCodeValidationFailure indicates one or more credential fields failed validation.
	ErrCodeValidationFailure ErrorCode = "VALIDATION_FAILURE"
	// ErrCodeSchemaMismatch indicates the payload is missing an expected field entirely.
	ErrCodeSchemaMismatch ErrorCode = "SCHEMA_MISMATCH"
)

// Authentication/Authorization errors (surfaced as 401)
const (
	// ErrCodeAuthenticationFailure indicates a missing, invalid, or expired token.
	// Sub-causes are deliberately not distinguished at the boundary.
	ErrCodeAuthenticationFailure ErrorCode = "AUTHENTICATION_FAILURE"
	// ErrCodeAuthorizationFailure indicates a valid token presented for the wrong principal.
	ErrCodeAuthorizationFailure ErrorCode = "AUTHORIZATION_FAILURE"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Integrity/configuration faults (not recoverable at the request boundary)
const (
	// ErrCodeUnsupportedHashFormat indicates a stored password hash lacks the
	// expected tag. Treated as a data-integrity fault, never silently handled.
	ErrCodeUnsupportedHashFormat ErrorCode = "UNSUPPORTED_HASH_FORMAT"
	// ErrCodeConfigurationFailure indicates invalid or missing boot configuration
	// (e.g. no signing key). Fatal: prevents startup.
	ErrCodeConfigurationFailure ErrorCode = "CONFIGURATION_FAILURE"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeDatabaseError indicates a user-store error.
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

var recoverableCodes = map[ErrorCode]bool{
	ErrCodeValidationFailure:     true,
	ErrCodeSchemaMismatch:        true,
	ErrCodeAuthenticationFailure: true,
	ErrCodeAuthorizationFailure:  true,
	ErrCodeNotFound:              true,
}

// IsRecoverableCode reports whether the code is recovered at the request
// boundary and turned into a structured response. Configuration and
// hash-format faults are not: they abort the operation instead.
func IsRecoverableCode(code ErrorCode) bool {
	return recoverableCodes[code]
}
