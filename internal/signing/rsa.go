package signing

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
)

// rsaMethod signs the message digest with RSA PKCS#1 v1.5.
type rsaMethod struct {
	name string
	hash crypto.Hash
}

func (r *rsaMethod) Alg() string       { return r.name }
func (r *rsaMethod) Family() Family    { return FamilyRSA }
func (r *rsaMethod) Hash() crypto.Hash { return r.hash }

func (r *rsaMethod) Sign(message []byte, key any) ([]byte, error) {
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s requires *rsa.PrivateKey, got %T", ErrInvalidKey, r.name, key)
	}

	digest := r.digest(message)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, r.hash, digest)
	if err != nil {
		return nil, fmt.Errorf("rsa sign: %w", err)
	}
	return sig, nil
}

func (r *rsaMethod) Verify(message, signature []byte, key any) (bool, error) {
	pub, err := rsaPublicKey(key)
	if err != nil {
		return false, err
	}

	digest := r.digest(message)
	if err := rsa.VerifyPKCS1v15(pub, r.hash, digest, signature); err != nil {
		if errors.Is(err, rsa.ErrVerification) {
			return false, nil
		}
		return false, fmt.Errorf("rsa verify: %w", err)
	}
	return true, nil
}

func (r *rsaMethod) digest(message []byte) []byte {
	h := r.hash.New()
	h.Write(message)
	return h.Sum(nil)
}

// rsaPublicKey accepts a public key directly or derives one from a private
// key, for callers that verify their own freshly signed tokens. Raw bytes are
// rejected: treating secret bytes as an RSA key is the mirror image of the
// HMAC confusion attack.
func rsaPublicKey(key any) (*rsa.PublicKey, error) {
	switch k := key.(type) {
	case *rsa.PublicKey:
		return k, nil
	case *rsa.PrivateKey:
		return &k.PublicKey, nil
	default:
		return nil, fmt.Errorf("%w: RSA requires *rsa.PublicKey, got %T", ErrInvalidKey, key)
	}
}
