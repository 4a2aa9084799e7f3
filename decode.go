package jwt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tokenforge/jwt/internal/encoding"
	"github.com/tokenforge/jwt/internal/signing"
)

// DecodeOptions adjusts Decode behavior. The zero value accepts every
// registered algorithm with zero leeway against the wall clock.
type DecodeOptions struct {
	// AllowedAlgorithms restricts the algorithms accepted from the token
	// header. Nil or empty means every registry member. Entries outside the
	// registry are ignored: the allowed set is always an intersection with
	// the registry, never an extension of it.
	AllowedAlgorithms []Algorithm

	// Leeway compensates clock skew between issuer and verifier in the nbf
	// and exp checks. Default 0.
	Leeway time.Duration

	// Clock supplies the current time, sampled exactly once per Decode call.
	// Nil means time.Now.
	Clock func() time.Time
}

// Decode parses and verifies a token, returning its fully validated claims.
//
// key is either the key material itself or a map[string]any keyed by kid for
// rotation; with a map, the token header must carry a kid naming a map entry.
//
// The signature is verified before the payload is parsed and before any time
// claim is consulted, so an attacker-controlled payload never influences
// behavior prior to signature acceptance. Every failure is one of the
// package's sentinel errors; a false verification result and an internal
// verification error both surface as ErrSignatureInvalid.
func Decode(token string, key any, opts ...DecodeOptions) (Claims, error) {
	var opt DecodeOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}
	if len(token) > maxTokenLength {
		return nil, fmt.Errorf("%w: token exceeds %d bytes", ErrMalformedToken, maxTokenLength)
	}

	headerSeg, payloadSeg, sigSeg, ok := splitToken(token)
	if !ok {
		return nil, fmt.Errorf("%w: expected 3 segments", ErrMalformedToken)
	}

	headerJSON, err := encoding.Decode(headerSeg)
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedToken, err)
	}

	var header map[string]any
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedToken, err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: empty header", ErrMalformedToken)
	}

	alg, _ := header[headerAlg].(string)
	if alg == "" {
		return nil, fmt.Errorf("%w: header has no alg", ErrUnsupportedAlgorithm)
	}

	method, err := signing.Lookup(alg)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
	if !algorithmAllowed(Algorithm(alg), opt.AllowedAlgorithms) {
		return nil, fmt.Errorf("%w: %q is excluded by the allowed set", ErrUnsupportedAlgorithm, alg)
	}

	resolvedKey, err := resolveKey(key, header)
	if err != nil {
		return nil, err
	}

	signature, err := encoding.Decode(sigSeg)
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %v", ErrMalformedToken, err)
	}

	signingInput := token[:len(headerSeg)+1+len(payloadSeg)]
	valid, err := method.Verify([]byte(signingInput), signature, resolvedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	if !valid {
		return nil, ErrSignatureInvalid
	}

	payloadJSON, err := encoding.Decode(payloadSeg)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformedToken, err)
	}

	var claims Claims
	if err := json.Unmarshal(payloadJSON, &claims); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformedToken, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: null payload", ErrMalformedToken)
	}

	clock := opt.Clock
	if clock == nil {
		clock = time.Now
	}
	if err := validateTimeClaims(claims, clock(), opt.Leeway); err != nil {
		return nil, err
	}

	return claims, nil
}

// splitToken splits a token into its three segments without allocating.
func splitToken(token string) (header, payload, signature string, ok bool) {
	first, second := -1, -1
	for i := 0; i < len(token); i++ {
		if token[i] != '.' {
			continue
		}
		switch {
		case first == -1:
			first = i
		case second == -1:
			second = i
		default:
			return "", "", "", false
		}
	}
	if first == -1 || second == -1 {
		return "", "", "", false
	}
	return token[:first], token[first+1 : second], token[second+1:], true
}

func algorithmAllowed(alg Algorithm, allowed []Algorithm) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == alg {
			return true
		}
	}
	return false
}

// resolveKey selects the verification key. A map key demands a kid header
// naming one of its entries; anything else is used directly.
func resolveKey(key any, header map[string]any) (any, error) {
	keyMap, ok := key.(map[string]any)
	if !ok {
		return key, nil
	}

	kid, _ := header[headerKid].(string)
	if kid == "" {
		return nil, fmt.Errorf("%w: key map supplied but header has no kid", ErrKeyResolution)
	}

	k, ok := keyMap[kid]
	if !ok {
		return nil, fmt.Errorf("%w: unknown kid %q", ErrKeyResolution, kid)
	}
	return k, nil
}
