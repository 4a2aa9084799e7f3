package jwt

// Algorithm identifies a signing algorithm from the closed registry. The set
// is fixed at process start; unknown identifiers fail with
// ErrUnsupportedAlgorithm and never fall through to a default code path.
type Algorithm string

const (
	// AlgHS256 uses HMAC with SHA-256 (the default)
	AlgHS256 Algorithm = "HS256"

	// AlgHS384 uses HMAC with SHA-384
	AlgHS384 Algorithm = "HS384"

	// AlgHS512 uses HMAC with SHA-512
	AlgHS512 Algorithm = "HS512"

	// AlgRS256 uses RSA PKCS#1 v1.5 with SHA-256
	AlgRS256 Algorithm = "RS256"

	// AlgRS384 uses RSA PKCS#1 v1.5 with SHA-384
	AlgRS384 Algorithm = "RS384"

	// AlgRS512 uses RSA PKCS#1 v1.5 with SHA-512
	AlgRS512 Algorithm = "RS512"
)

// Claims is a decoded token payload. The library treats it as opaque except
// for the nbf and exp time claims, which Decode enforces, and the jti claim,
// which the Processor uses for revocation.
type Claims map[string]any

// Header field names with reserved semantics.
const (
	headerTyp = "typ"
	headerAlg = "alg"
	headerKid = "kid"

	headerTypJWT = "JWT"
)

// Registered claim names the library reads or writes.
const (
	claimIssuer    = "iss"
	claimSubject   = "sub"
	claimExpiresAt = "exp"
	claimNotBefore = "nbf"
	claimIssuedAt  = "iat"
	claimTokenID   = "jti"
)

// maxTokenLength bounds accepted token size; longer input is rejected as
// malformed before any parsing happens.
const maxTokenLength = 8192
