package jwt

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/tokenforge/jwt/internal/security"
	"github.com/tokenforge/jwt/internal/signing"
)

// Config configures a Processor.
type Config struct {
	// SecretKey signs and verifies tokens for the HS* algorithms. Minimum 32
	// bytes with reasonable entropy.
	SecretKey string `env:"JWT_SECRET_KEY" yaml:"secret_key" json:"secret_key"`

	// PrivateKeyPEM holds the RSA private key (PKCS#1 or PKCS#8 PEM) for the
	// RS* algorithms. The public half is derived from it for validation.
	PrivateKeyPEM string `env:"JWT_RSA_PRIVATE_KEY" yaml:"private_key_pem" json:"private_key_pem"`

	// SigningAlgorithm selects the algorithm for issued tokens and the only
	// algorithm accepted during validation.
	SigningAlgorithm Algorithm `env:"JWT_SIGNING_ALGORITHM" envDefault:"HS256" yaml:"signing_algorithm" json:"signing_algorithm"`

	// Issuer is stamped into the iss claim and enforced on validation.
	Issuer string `env:"JWT_ISSUER" envDefault:"jwt-service" yaml:"issuer" json:"issuer"`

	// AccessTokenTTL is the lifetime of access tokens.
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TOKEN_TTL" envDefault:"15m" yaml:"access_token_ttl" json:"access_token_ttl"`

	// RefreshTokenTTL is the lifetime of refresh tokens; must exceed
	// AccessTokenTTL.
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" envDefault:"168h" yaml:"refresh_token_ttl" json:"refresh_token_ttl"`

	// Leeway widens the nbf/exp validity window to absorb clock skew.
	Leeway time.Duration `env:"JWT_LEEWAY" envDefault:"0s" yaml:"leeway" json:"leeway"`

	// EnableRateLimit turns on per-subject issuance rate limiting.
	EnableRateLimit bool `env:"JWT_ENABLE_RATE_LIMIT" yaml:"enable_rate_limit" json:"enable_rate_limit"`

	// RateLimitRate is the maximum number of issued tokens per subject and
	// window.
	RateLimitRate int `env:"JWT_RATE_LIMIT_RATE" envDefault:"100" yaml:"rate_limit_rate" json:"rate_limit_rate"`

	// RateLimitWindow is the rate limiting window.
	RateLimitWindow time.Duration `env:"JWT_RATE_LIMIT_WINDOW" envDefault:"1m" yaml:"rate_limit_window" json:"rate_limit_window"`

	// Revocation configures the revocation store and its cleanup.
	Revocation RevocationConfig `yaml:"revocation" json:"revocation"`
}

// RevocationConfig configures revoked-token tracking.
type RevocationConfig struct {
	// CleanupInterval is how often expired entries are swept.
	CleanupInterval time.Duration `env:"JWT_REVOCATION_CLEANUP_INTERVAL" envDefault:"5m" yaml:"cleanup_interval" json:"cleanup_interval"`

	// MaxSize caps the in-memory store.
	MaxSize int `env:"JWT_REVOCATION_MAX_SIZE" envDefault:"100000" yaml:"max_size" json:"max_size"`

	// AutoCleanup enables the background sweep.
	AutoCleanup bool `env:"JWT_REVOCATION_AUTO_CLEANUP" envDefault:"true" yaml:"auto_cleanup" json:"auto_cleanup"`
}

// DefaultConfig returns secure defaults for production use. SecretKey (or
// PrivateKeyPEM for RS* algorithms) must still be supplied by the caller.
func DefaultConfig() Config {
	return Config{
		SigningAlgorithm: AlgHS256,
		Issuer:           "jwt-service",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		RateLimitRate:    100,
		RateLimitWindow:  time.Minute,
		Revocation: RevocationConfig{
			CleanupInterval: 5 * time.Minute,
			MaxSize:         100000,
			AutoCleanup:     true,
		},
	}
}

// ConfigFromEnv builds a Config from JWT_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate checks the configuration for a usable key, a registered
// algorithm, and coherent TTLs.
func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalidConfig
	}

	if _, err := signing.Lookup(string(c.SigningAlgorithm)); err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, c.SigningAlgorithm)
	}

	switch c.SigningAlgorithm {
	case AlgHS256, AlgHS384, AlgHS512:
		if len(c.SecretKey) < security.MinHMACKeySize {
			return fmt.Errorf("%w: minimum %d bytes required, got %d", ErrInvalidSecretKey, security.MinHMACKeySize, len(c.SecretKey))
		}
		if security.IsWeakKey([]byte(c.SecretKey)) {
			return fmt.Errorf("%w: key must have sufficient entropy", ErrInvalidSecretKey)
		}
	default:
		if c.PrivateKeyPEM == "" {
			return fmt.Errorf("%w: %s requires a private key PEM", ErrInvalidConfig, c.SigningAlgorithm)
		}
		if _, err := ParseRSAPrivateKeyFromPEM([]byte(c.PrivateKeyPEM)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("%w: TTL must be positive", ErrInvalidConfig)
	}
	if c.AccessTokenTTL >= c.RefreshTokenTTL {
		return fmt.Errorf("%w: access token TTL must be less than refresh token TTL", ErrInvalidConfig)
	}
	if c.Leeway < 0 {
		return fmt.Errorf("%w: leeway cannot be negative", ErrInvalidConfig)
	}

	return nil
}
