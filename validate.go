package jwt

import (
	"encoding/json"
	"fmt"
	"time"
)

// validateTimeClaims enforces nbf then exp against a single time sample.
// Both checks are independent; leeway widens the validity window on each
// side to absorb clock skew between issuer and verifier.
func validateTimeClaims(claims Claims, now time.Time, leeway time.Duration) error {
	nowSec := now.Unix()
	leewaySec := int64(leeway / time.Second)

	if nbf, ok := numericClaim(claims, claimNotBefore); ok {
		if nowSec < nbf-leewaySec {
			return fmt.Errorf("%w: nbf is %d, now is %d", ErrTokenNotYetValid, nbf, nowSec)
		}
	}

	if exp, ok := numericClaim(claims, claimExpiresAt); ok {
		if nowSec >= exp+leewaySec {
			return fmt.Errorf("%w: exp was %d, now is %d", ErrTokenExpired, exp, nowSec)
		}
	}

	return nil
}

// numericClaim reads a Unix-seconds claim. JSON numbers arrive as float64
// from encoding/json; int64 and json.Number cover claims sets built in Go.
func numericClaim(claims Claims, name string) (int64, bool) {
	v, ok := claims[name]
	if !ok {
		return 0, false
	}

	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
