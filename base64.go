package jwt

import (
	"fmt"

	"github.com/tokenforge/jwt/internal/encoding"
)

// Base64URLEncode returns the canonical token-segment text for b: URL-safe
// base64 with padding stripped.
func Base64URLEncode(b []byte) string {
	return encoding.Encode(b)
}

// Base64URLDecode reverses Base64URLEncode. Trailing '=' padding is accepted;
// any other invalid input returns ErrMalformedEncoding rather than an empty
// result, so corrupt data can never pass as an empty value.
func Base64URLDecode(s string) ([]byte, error) {
	b, err := encoding.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	return b, nil
}
