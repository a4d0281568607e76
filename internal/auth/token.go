package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/ecompjr/company-service/internal/config"
)

// ErrInvalidToken wraps every token rejection: bad signature, wrong method,
// malformed structure, missing subject or expiry in the past.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces the time source used for issuing and validating.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		tm.now = now
	}
}

// NewTokenManager builds a new manager. It fails when the secret is empty or
// the algorithm is not an HMAC method, so a misconfigured process never starts.
func NewTokenManager(cfg config.AuthConfig, opts ...TokenOption) (*TokenManager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt: secret is required")
	}
	alg := cfg.JWTAlgorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("jwt: unsupported signing method %q", alg)
	}
	ttlMinutes := cfg.AccessTokenTTLMinutes
	if ttlMinutes <= 0 {
		ttlMinutes = 30
	}

	tm := &TokenManager{
		secret: []byte(cfg.JWTSecret),
		method: method,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// Claims describes JWT payload.
type Claims struct {
	jwt.RegisteredClaims
}

// Username returns the subject claim.
func (c *Claims) Username() string {
	return c.Subject
}

// TTL returns the lifetime given to new tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// GenerateToken builds and signs a JWT for the username.
func (tm *TokenManager) GenerateToken(username string) (string, time.Time, error) {
	// whole seconds, matching the claim encoding, so exp is exactly iat+ttl
	issuedAt := tm.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(tm.method, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, claims.ExpiresAt.Time, nil
}

// ParseToken validates and returns claims. A token is accepted only while
// now < exp.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{tm.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", ErrInvalidToken)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}
