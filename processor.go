package jwt

import (
	"context"
	"crypto/rsa"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tokenforge/jwt/internal/revocation"
	"github.com/tokenforge/jwt/internal/security"
)

// Processor is a configured token service on top of Encode and Decode: it
// stamps issuer, timestamps, and a jti into issued tokens, validates against
// a single configured algorithm, and tracks revoked tokens until they would
// have expired anyway.
type Processor struct {
	alg        Algorithm
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	leeway     time.Duration

	secret     *security.SecretBuffer
	privateKey *rsa.PrivateKey

	revoker *revocation.Manager
	limiter *RateLimiter

	mu     sync.RWMutex
	closed bool
}

// New creates a Processor with an in-memory revocation store.
func New(cfg Config) (*Processor, error) {
	return newProcessor(cfg, revocation.NewMemoryStore(cfg.Revocation.MaxSize))
}

// NewWithRedis creates a Processor whose revocation store lives in Redis, so
// revocations are shared across instances. The client stays owned by the
// caller.
func NewWithRedis(cfg Config, client redis.UniversalClient) (*Processor, error) {
	return newProcessor(cfg, revocation.NewRedisStore(client, ""))
}

func newProcessor(cfg Config, store revocation.Store) (*Processor, error) {
	if cfg.SigningAlgorithm == "" {
		cfg.SigningAlgorithm = AlgHS256
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "jwt-service"
	}
	if cfg.AccessTokenTTL == 0 {
		cfg.AccessTokenTTL = DefaultConfig().AccessTokenTTL
	}
	if cfg.RefreshTokenTTL == 0 {
		cfg.RefreshTokenTTL = DefaultConfig().RefreshTokenTTL
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	p := &Processor{
		alg:        cfg.SigningAlgorithm,
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		leeway:     cfg.Leeway,
	}

	switch cfg.SigningAlgorithm {
	case AlgHS256, AlgHS384, AlgHS512:
		p.secret = security.NewSecretBuffer([]byte(cfg.SecretKey))
	default:
		key, err := ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		p.privateKey = key
	}

	p.revoker = revocation.NewManager(store, revocation.Config{
		CleanupInterval: cfg.Revocation.CleanupInterval,
		MaxSize:         cfg.Revocation.MaxSize,
		AutoCleanup:     cfg.Revocation.AutoCleanup,
	})

	if cfg.EnableRateLimit {
		p.limiter = NewRateLimiter(cfg.RateLimitRate, cfg.RateLimitWindow)
	}

	return p, nil
}

// IssueToken issues an access token carrying claims. Missing iss, iat, exp,
// and jti claims are stamped; caller-supplied values win.
func (p *Processor) IssueToken(claims Claims) (string, error) {
	return p.issue(claims, p.accessTTL)
}

// IssueRefreshToken issues a longer-lived refresh token carrying claims.
func (p *Processor) IssueRefreshToken(claims Claims) (string, error) {
	return p.issue(claims, p.refreshTTL)
}

func (p *Processor) issue(claims Claims, ttl time.Duration) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return "", ErrProcessorClosed
	}

	if p.limiter != nil {
		if sub, _ := claims[claimSubject].(string); sub != "" && !p.limiter.Allow(sub) {
			return "", ErrRateLimitExceeded
		}
	}

	stamped := make(Claims, len(claims)+4)
	for k, v := range claims {
		stamped[k] = v
	}

	now := time.Now()
	if _, ok := stamped[claimIssuer]; !ok {
		stamped[claimIssuer] = p.issuer
	}
	if _, ok := stamped[claimIssuedAt]; !ok {
		stamped[claimIssuedAt] = now.Unix()
	}
	if _, ok := stamped[claimExpiresAt]; !ok {
		stamped[claimExpiresAt] = now.Add(ttl).Unix()
	}
	if _, ok := stamped[claimTokenID]; !ok {
		stamped[claimTokenID] = uuid.NewString()
	}

	return Encode(stamped, p.signKey(), EncodeOptions{Algorithm: p.alg})
}

// ValidateToken verifies a token against the configured algorithm, issuer,
// and revocation state, returning its claims.
func (p *Processor) ValidateToken(ctx context.Context, token string) (Claims, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrProcessorClosed
	}

	claims, err := Decode(token, p.verifyKey(), DecodeOptions{
		AllowedAlgorithms: []Algorithm{p.alg},
		Leeway:            p.leeway,
	})
	if err != nil {
		return nil, err
	}

	if iss, _ := claims[claimIssuer].(string); iss != p.issuer {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrInvalidIssuer, iss, p.issuer)
	}

	if jti, _ := claims[claimTokenID].(string); jti != "" {
		revoked, err := p.revoker.IsRevoked(ctx, jti)
		if err != nil {
			return nil, fmt.Errorf("revocation check failed: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// RefreshToken validates a refresh token and issues a fresh access token
// with the same claims but new timestamps and jti.
func (p *Processor) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := p.ValidateToken(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("invalid refresh token: %w", err)
	}

	delete(claims, claimIssuedAt)
	delete(claims, claimExpiresAt)
	delete(claims, claimTokenID)

	return p.IssueToken(claims)
}

// RevokeToken validates a token and marks its jti revoked until the token's
// own expiry. Tokens without a jti cannot be revoked individually.
func (p *Processor) RevokeToken(ctx context.Context, token string) error {
	claims, err := p.ValidateToken(ctx, token)
	if err != nil {
		return err
	}

	jti, _ := claims[claimTokenID].(string)
	if jti == "" {
		return ErrTokenMissingID
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	if exp, ok := numericClaim(claims, claimExpiresAt); ok {
		expiresAt = time.Unix(exp, 0)
	}

	return p.RevokeTokenID(ctx, jti, expiresAt)
}

// RevokeTokenID marks a token ID revoked until expiresAt.
func (p *Processor) RevokeTokenID(ctx context.Context, jti string, expiresAt time.Time) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrProcessorClosed
	}

	return p.revoker.Revoke(ctx, jti, expiresAt)
}

// Close shuts the processor down and zeroes the secret key. Safe to call
// more than once.
func (p *Processor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.secret != nil {
		p.secret.Destroy()
	}
	if p.limiter != nil {
		p.limiter.Close()
	}

	return p.revoker.Close()
}

func (p *Processor) signKey() any {
	if p.secret != nil {
		return p.secret.Bytes()
	}
	return p.privateKey
}

func (p *Processor) verifyKey() any {
	if p.secret != nil {
		return p.secret.Bytes()
	}
	return &p.privateKey.PublicKey
}
