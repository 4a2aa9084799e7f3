package jwt

import (
	"errors"
	"fmt"
)

// Predefined errors for encode and decode operations. Decode returns exactly
// one of these per failure; nothing is retried, logged, or partially
// returned.
var (
	// Structural errors
	ErrMalformedToken    = errors.New("malformed token: wrong segment count, invalid base64url, or invalid JSON")
	ErrMalformedEncoding = errors.New("malformed base64url encoding")

	// Algorithm and key errors
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm: absent, unknown, or not in the allowed set")
	ErrKeyResolution        = errors.New("key resolution failed: kid missing or not in key map")
	ErrInvalidKey           = errors.New("invalid key type for algorithm")

	// Verification errors
	ErrSignatureInvalid = errors.New("signature verification failed")

	// Time claim errors
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrTokenExpired     = errors.New("token expired")

	// Encode-side errors
	ErrSigningFailure      = errors.New("signing failed")
	ErrPayloadEncoding     = errors.New("payload serialization failed")
	ErrReservedHeaderField = errors.New("header field is reserved and cannot be overridden")

	// Processor errors
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrInvalidSecretKey  = errors.New("invalid secret key: must be at least 32 bytes with sufficient entropy")
	ErrTokenRevoked      = errors.New("token has been revoked")
	ErrInvalidIssuer     = errors.New("token issuer mismatch")
	ErrTokenMissingID    = errors.New("token does not contain a jti claim")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrProcessorClosed   = errors.New("processor is closed")
)

// VerificationError reports a verification attempt that failed before the
// signature could be judged: wrong key type for the algorithm family, a
// malformed key, or a provider failure. It is deliberately distinct from the
// plain false result Verify returns for a wrong-but-well-formed signature;
// Decode rejects the token either way, but callers and tests can tell the
// two apart.
type VerificationError struct {
	Alg Algorithm
	Err error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification error for %s: %v", e.Alg, e.Err)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}
