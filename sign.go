package jwt

import (
	"fmt"

	"github.com/tokenforge/jwt/internal/signing"
)

// Sign computes the raw signature of message under key with the given
// algorithm. The algorithm is resolved against the registry before key is
// touched; HMAC algorithms require a []byte or string key, RSA algorithms a
// *rsa.PrivateKey. Failures from the cryptographic provider are reported as
// ErrSigningFailure.
func Sign(message []byte, key any, alg Algorithm) ([]byte, error) {
	method, err := signing.Lookup(string(alg))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}

	sig, err := method.Sign(message, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailure, err)
	}
	return sig, nil
}

// Verify checks signature against message under key.
//
// The result is three-valued:
//   - (true, nil): the signature is valid
//   - (false, nil): the signature is well-formed for the attempt but wrong
//   - (false, *VerificationError): the attempt itself failed, e.g. wrong
//     key type for the algorithm family or a provider failure
//
// An algorithm outside the registry returns ErrUnsupportedAlgorithm. The
// registry lookup happens before key is touched, and the resolved family
// alone decides which primitive runs; the key's shape never does.
func Verify(message, signature []byte, key any, alg Algorithm) (bool, error) {
	method, err := signing.Lookup(string(alg))
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}

	ok, err := method.Verify(message, signature, key)
	if err != nil {
		return false, &VerificationError{Alg: alg, Err: err}
	}
	return ok, nil
}
