package jwt

import (
	"encoding/json"
	"fmt"

	"github.com/tokenforge/jwt/internal/encoding"
	"github.com/tokenforge/jwt/internal/signing"
)

// EncodeOptions adjusts Encode behavior. The zero value selects HS256 with
// no extra header fields.
type EncodeOptions struct {
	// Algorithm selects the signing algorithm. Empty means HS256.
	Algorithm Algorithm

	// Header is merged into the token header, e.g. for a "kid" field. The
	// reserved "alg" and "typ" fields cannot be overridden; attempting to is
	// an error rather than a silent drop.
	Header map[string]any
}

// Encode serializes claims into a signed three-segment token.
//
// The header is {"typ":"JWT","alg":<algorithm>} plus any extra fields from
// opts. The signature covers the dot-joined base64url header and payload
// segments.
func Encode(claims any, key any, opts ...EncodeOptions) (string, error) {
	var opt EncodeOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	alg := opt.Algorithm
	if alg == "" {
		alg = AlgHS256
	}

	method, err := signing.Lookup(string(alg))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}

	header := map[string]any{
		headerTyp: headerTypJWT,
		headerAlg: string(alg),
	}
	for k, v := range opt.Header {
		if k == headerAlg || k == headerTyp {
			return "", fmt.Errorf("%w: %q", ErrReservedHeaderField, k)
		}
		header[k] = v
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("%w: header: %v", ErrPayloadEncoding, err)
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("%w: claims: %v", ErrPayloadEncoding, err)
	}

	signingInput := encoding.Encode(headerJSON) + "." + encoding.Encode(claimsJSON)

	sig, err := method.Sign([]byte(signingInput), key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailure, err)
	}

	return signingInput + "." + encoding.Encode(sig), nil
}
