// Package encoding implements the base64url segment codec used by the token
// wire format: URL-safe base64 with all '=' padding stripped on encode and
// tolerated on decode.
package encoding

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// MaxSegmentLength bounds the encoded length of a single token segment.
const MaxSegmentLength = 4096

var (
	ErrInvalidBase64   = errors.New("invalid base64url data")
	ErrSegmentTooLarge = fmt.Errorf("segment exceeds %d bytes", MaxSegmentLength)
)

// Encode produces the canonical unpadded base64url text for b.
func Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode reverses Encode. Input may carry trailing '=' padding; any other
// deviation from the base64url alphabet is an error, never an empty result.
func Decode(s string) ([]byte, error) {
	if len(s) > MaxSegmentLength {
		return nil, ErrSegmentTooLarge
	}

	trimmed := trimPadding(s)
	if trimmed == "" && s != "" {
		return nil, fmt.Errorf("%w: padding only", ErrInvalidBase64)
	}

	for i := 0; i < len(trimmed); i++ {
		if !isBase64URLChar(trimmed[i]) {
			return nil, fmt.Errorf("%w: byte 0x%02x at position %d", ErrInvalidBase64, trimmed[i], i)
		}
	}

	// Strict decoding rejects non-zero trailing bits, so every byte sequence
	// has exactly one accepted encoding. Without this, two distinct signature
	// segments could decode to the same signature bytes.
	b, err := base64.RawURLEncoding.Strict().DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	return b, nil
}

func trimPadding(s string) string {
	for len(s) > 0 && s[len(s)-1] == '=' {
		s = s[:len(s)-1]
	}
	return s
}

func isBase64URLChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_'
}
