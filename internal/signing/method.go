// Package signing implements the algorithm registry and the HMAC and RSA
// PKCS#1 v1.5 signing methods behind the token codec.
//
// The registry is the single authority on which code path a given "alg"
// identifier runs: callers resolve the method first and only then hand over
// key material, so an attacker-controlled header can never steer a key into
// the wrong primitive family.
package signing

import (
	"crypto"
	"errors"
	"fmt"

	_ "crypto/sha256"
	_ "crypto/sha512"
)

// Family identifies the primitive family of a signing method.
type Family int

const (
	FamilyHMAC Family = iota
	FamilyRSA
)

// ErrUnknownAlgorithm is returned by Lookup for identifiers outside the
// registry, including "none" and other deliberately unsupported values.
var ErrUnknownAlgorithm = errors.New("unknown signing algorithm")

// ErrInvalidKey is returned when key material has the wrong type for the
// resolved method's family.
var ErrInvalidKey = errors.New("invalid key type for algorithm")

// Method is one entry of the algorithm registry.
//
// Sign returns raw signature bytes. Verify distinguishes a merely wrong
// signature (false, nil) from a provider or key failure (false, err); callers
// that only care about acceptance must treat both as rejection.
type Method interface {
	Alg() string
	Family() Family
	Hash() crypto.Hash
	Sign(message []byte, key any) ([]byte, error)
	Verify(message, signature []byte, key any) (bool, error)
}

// registry is the closed set of supported algorithms. It is built once at
// init and never mutated; there is no registration API.
var registry = map[string]Method{
	"HS256": &hmacMethod{name: "HS256", hash: crypto.SHA256},
	"HS384": &hmacMethod{name: "HS384", hash: crypto.SHA384},
	"HS512": &hmacMethod{name: "HS512", hash: crypto.SHA512},
	"RS256": &rsaMethod{name: "RS256", hash: crypto.SHA256},
	"RS384": &rsaMethod{name: "RS384", hash: crypto.SHA384},
	"RS512": &rsaMethod{name: "RS512", hash: crypto.SHA512},
}

// Lookup resolves an algorithm identifier to its method. The identifier is
// matched exactly: no trimming, no case folding.
func Lookup(alg string) (Method, error) {
	m, ok := registry[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
	return m, nil
}

// Registered returns the identifiers of every registry member.
func Registered() []string {
	algs := make([]string, 0, len(registry))
	for alg := range registry {
		algs = append(algs, alg)
	}
	return algs
}
