package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func testClaims() Claims {
	return Claims{
		"sub":  "user-42",
		"name": "Ada",
		"adm":  true,
	}
}

func requireClaimsMatch(t *testing.T, want, got Claims) {
	t.Helper()
	for k, v := range want {
		assert.EqualValues(t, v, got[k], "claim %q", k)
	}
}

func TestRoundTripHMAC(t *testing.T) {
	for _, alg := range []Algorithm{AlgHS256, AlgHS384, AlgHS512} {
		t.Run(string(alg), func(t *testing.T) {
			token, err := Encode(testClaims(), testKey, EncodeOptions{Algorithm: alg})
			require.NoError(t, err)
			assert.Equal(t, 2, strings.Count(token, "."))

			claims, err := Decode(token, testKey)
			require.NoError(t, err)
			requireClaimsMatch(t, testClaims(), claims)
		})
	}
}

func TestRoundTripRSA(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	for _, alg := range []Algorithm{AlgRS256, AlgRS384, AlgRS512} {
		t.Run(string(alg), func(t *testing.T) {
			token, err := Encode(testClaims(), priv, EncodeOptions{Algorithm: alg})
			require.NoError(t, err)

			claims, err := Decode(token, &priv.PublicKey)
			require.NoError(t, err)
			requireClaimsMatch(t, testClaims(), claims)

			// A foreign key pair's public key must reject the signature.
			other, err := rsa.GenerateKey(rand.Reader, 2048)
			require.NoError(t, err)
			_, err = Decode(token, &other.PublicKey)
			assert.ErrorIs(t, err, ErrSignatureInvalid)
		})
	}
}

func TestDefaultAlgorithmIsHS256(t *testing.T) {
	token, err := Encode(testClaims(), testKey)
	require.NoError(t, err)

	header := decodeHeader(t, token)
	assert.Equal(t, "HS256", header["alg"])
	assert.Equal(t, "JWT", header["typ"])
}

func TestWrongKeyRejected(t *testing.T) {
	token, err := Encode(testClaims(), testKey)
	require.NoError(t, err)

	_, err = Decode(token, []byte("another-32-byte-secret-key-here!"))
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestTamperedTokenNeverDecodes(t *testing.T) {
	token, err := Encode(testClaims(), testKey)
	require.NoError(t, err)

	// Replace each character in turn with a different base64url character.
	// Every mutation must fail; none may yield claims.
	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		mutated := token[:i] + string(replacement) + token[i+1:]
		if mutated == token {
			continue
		}

		claims, err := Decode(mutated, testKey)
		require.Errorf(t, err, "mutation at offset %d decoded successfully", i)
		assert.Nil(t, claims)
	}
}

func TestTamperedSegmentsFailWithSignatureInvalid(t *testing.T) {
	token, err := Encode(testClaims(), testKey)
	require.NoError(t, err)
	parts := strings.Split(token, ".")

	// Payload swap keeps valid base64 and JSON but breaks the signature.
	otherPayload, err := Encode(Claims{"sub": "intruder"}, testKey)
	require.NoError(t, err)
	swapped := parts[0] + "." + strings.Split(otherPayload, ".")[1] + "." + parts[2]
	_, err = Decode(swapped, testKey)
	assert.ErrorIs(t, err, ErrSignatureInvalid)

	// Signature from a different token is also just a wrong signature.
	reSigned := parts[0] + "." + parts[1] + "." + strings.Split(otherPayload, ".")[2]
	_, err = Decode(reSigned, testKey)
	assert.ErrorIs(t, err, ErrSignatureInvalid)

	// Empty signature segment fails verification, not parsing.
	_, err = Decode(parts[0]+"."+parts[1]+".", testKey)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestAllowedAlgorithmsExcludeValidToken(t *testing.T) {
	token, err := Encode(testClaims(), testKey)
	require.NoError(t, err)

	// The signature is perfectly valid; the allow-list alone must reject it.
	_, err = Decode(token, testKey, DecodeOptions{
		AllowedAlgorithms: []Algorithm{AlgRS256},
	})
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	claims, err := Decode(token, testKey, DecodeOptions{
		AllowedAlgorithms: []Algorithm{AlgHS256, AlgHS384},
	})
	require.NoError(t, err)
	requireClaimsMatch(t, testClaims(), claims)
}

func TestAlgorithmConfusionRejected(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	// Attacker signs an HS256 token using the verifier's public key material
	// as the HMAC secret. The verifier holds an *rsa.PublicKey; the header's
	// HS256 claim must not coerce it into a digest key.
	pubPEM := marshalPublicKeyPEM(t, &priv.PublicKey)
	forged, err := Encode(Claims{"sub": "intruder"}, pubPEM)
	require.NoError(t, err)

	_, err = Decode(forged, &priv.PublicKey)
	assert.ErrorIs(t, err, ErrSignatureInvalid)

	// The reverse direction: an RS256 header must never route secret bytes
	// into the RSA primitive.
	token, err := Encode(testClaims(), priv, EncodeOptions{Algorithm: AlgRS256})
	require.NoError(t, err)
	_, err = Decode(token, testKey)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestKeyMapResolution(t *testing.T) {
	keys := map[string]any{
		"2024-01": []byte("first-rotation-key-32-bytes-long"),
		"2024-07": testKey,
	}

	token, err := Encode(testClaims(), testKey, EncodeOptions{
		Header: map[string]any{"kid": "2024-07"},
	})
	require.NoError(t, err)

	claims, err := Decode(token, keys)
	require.NoError(t, err)
	requireClaimsMatch(t, testClaims(), claims)

	// Unknown kid.
	stale, err := Encode(testClaims(), testKey, EncodeOptions{
		Header: map[string]any{"kid": "2023-01"},
	})
	require.NoError(t, err)
	_, err = Decode(stale, keys)
	assert.ErrorIs(t, err, ErrKeyResolution)

	// Key map without any kid in the header.
	bare, err := Encode(testClaims(), testKey)
	require.NoError(t, err)
	_, err = Decode(bare, keys)
	assert.ErrorIs(t, err, ErrKeyResolution)
}

func TestKeyMapWithWrongKeySelected(t *testing.T) {
	keys := map[string]any{
		"a": []byte("first-rotation-key-32-bytes-long"),
	}

	token, err := Encode(testClaims(), testKey, EncodeOptions{
		Header: map[string]any{"kid": "a"},
	})
	require.NoError(t, err)

	_, err = Decode(token, keys)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}
