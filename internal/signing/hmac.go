package signing

import (
	"crypto"
	"crypto/hmac"
	"fmt"

	"github.com/tokenforge/jwt/internal/security"
)

// hmacMethod signs with a keyed SHA-2 digest. Keys are raw secret bytes;
// a string is accepted as a convenience and used byte-for-byte.
type hmacMethod struct {
	name string
	hash crypto.Hash
}

func (h *hmacMethod) Alg() string       { return h.name }
func (h *hmacMethod) Family() Family    { return FamilyHMAC }
func (h *hmacMethod) Hash() crypto.Hash { return h.hash }

func (h *hmacMethod) Sign(message []byte, key any) ([]byte, error) {
	keyBytes, err := hmacKeyBytes(key)
	if err != nil {
		return nil, err
	}

	mac := hmac.New(h.hash.New, keyBytes)
	mac.Write(message)
	return mac.Sum(nil), nil
}

func (h *hmacMethod) Verify(message, signature []byte, key any) (bool, error) {
	expected, err := h.Sign(message, key)
	if err != nil {
		return false, err
	}
	defer security.ZeroBytes(expected)

	// A length mismatch (truncated or foreign-algorithm signature) is just a
	// wrong signature; ConstantTimeEqual handles it without early content
	// comparison.
	return security.ConstantTimeEqual(signature, expected), nil
}

// hmacKeyBytes rejects anything that is not a raw secret. In particular an
// RSA key never reaches the digest: a token claiming an HS* algorithm while
// the verifier holds an asymmetric key is an algorithm-confusion attempt.
func hmacKeyBytes(key any) ([]byte, error) {
	switch k := key.(type) {
	case []byte:
		return k, nil
	case string:
		return []byte(k), nil
	default:
		return nil, fmt.Errorf("%w: HMAC requires []byte or string, got %T", ErrInvalidKey, key)
	}
}
