// Package security holds the constant-time comparison and key-hygiene
// primitives shared by the signing and processor layers.
package security

import "crypto/subtle"

// ConstantTimeEqual reports whether a and b are equal without leaking, through
// timing, the position of the first differing byte. The lengths themselves are
// not secret (an HMAC digest length is fixed per algorithm), so a length
// mismatch may return early.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
