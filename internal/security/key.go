package security

// MinHMACKeySize is the smallest HMAC secret the processor layer accepts.
// 32 bytes matches the output size of SHA-256, the weakest digest in use.
const MinHMACKeySize = 32

// IsWeakKey flags HMAC secrets with obviously insufficient entropy: too
// short, a single repeated byte, or drawn from a tiny alphabet. It is a
// screen for configuration mistakes, not an entropy estimator.
func IsWeakKey(key []byte) bool {
	if len(key) < MinHMACKeySize {
		return true
	}

	distinct := make(map[byte]struct{}, len(key))
	for _, b := range key {
		distinct[b] = struct{}{}
	}
	if len(distinct) == 1 {
		return true
	}

	// Fewer than 30% distinct bytes means the key is dominated by a short
	// repeating pattern.
	return float64(len(distinct))/float64(len(key)) < 0.3
}
