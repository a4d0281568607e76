package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecompjr/company-service/internal/config"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTokenManager(t *testing.T, secret string, clock *fakeClock) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(config.AuthConfig{
		JWTSecret:             secret,
		JWTAlgorithm:          "HS256",
		AccessTokenTTLMinutes: 30,
	}, WithClock(clock.Now))
	require.NoError(t, err)
	return tm
}

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	tm := newTestTokenManager(t, "super-secret", clock)

	tok, exp, err := tm.GenerateToken("alice")
	require.NoError(t, err)
	assert.Len(t, strings.Split(tok, "."), 3)
	assert.Equal(t, clock.now.Add(30*time.Minute), exp)

	claims, err := tm.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
}

func TestParseTokenExpiryBoundary(t *testing.T) {
	t.Parallel()
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issued}
	tm := newTestTokenManager(t, "super-secret", clock)

	tok, _, err := tm.GenerateToken("alice")
	require.NoError(t, err)

	clock.now = issued.Add(30*time.Minute - time.Second)
	_, err = tm.ParseToken(tok)
	require.NoError(t, err, "token must be valid just before expiry")

	clock.now = issued.Add(30 * time.Minute)
	_, err = tm.ParseToken(tok)
	require.ErrorIs(t, err, ErrInvalidToken, "exp equal to now is expired")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	clock.Advance(time.Hour)
	_, err = tm.ParseToken(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateTokenSubSecondClock(t *testing.T) {
	t.Parallel()
	issued := time.Date(2025, 3, 1, 12, 0, 0, 900_000_000, time.UTC)
	clock := &fakeClock{now: issued}
	tm := newTestTokenManager(t, "super-secret", clock)

	tok, exp, err := tm.GenerateToken("alice")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC), exp)

	claims, err := tm.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	clock.now = exp.Add(-100 * time.Millisecond)
	_, err = tm.ParseToken(tok)
	require.NoError(t, err)

	clock.now = exp
	_, err = tm.ParseToken(tok)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseTokenWrongSecret(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Now()}
	issuer := newTestTokenManager(t, "right-secret", clock)
	verifier := newTestTokenManager(t, "wrong-secret", clock)

	tok, _, err := issuer.GenerateToken("alice")
	require.NoError(t, err)

	_, err = verifier.ParseToken(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseTokenMalformed(t *testing.T) {
	t.Parallel()
	tm := newTestTokenManager(t, "k", &fakeClock{now: time.Now()})

	for _, tok := range []string{"", "not.a.jwt", "abc", "a.b.c.d"} {
		_, err := tm.ParseToken(tok)
		require.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestParseTokenRejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Now()}
	tm := newTestTokenManager(t, "super-secret", clock)

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("super-secret"))
	require.NoError(t, err)
	_, err = tm.ParseToken(hs512)
	require.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.ParseToken(none)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRequiresExpAndSubject(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Now()}
	tm := newTestTokenManager(t, "super-secret", clock)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "alice"}).
		SignedString([]byte("super-secret"))
	require.NoError(t, err)
	_, err = tm.ParseToken(noExp)
	require.ErrorIs(t, err, ErrInvalidToken)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}).SignedString([]byte("super-secret"))
	require.NoError(t, err)
	_, err = tm.ParseToken(noSub)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerValidation(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager(config.AuthConfig{JWTSecret: ""})
	require.Error(t, err)

	_, err = NewTokenManager(config.AuthConfig{JWTSecret: "s", JWTAlgorithm: "RS256"})
	require.Error(t, err)

	_, err = NewTokenManager(config.AuthConfig{JWTSecret: "s", JWTAlgorithm: "none"})
	require.Error(t, err)

	tm, err := NewTokenManager(config.AuthConfig{JWTSecret: "s"})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, tm.TTL())

	tm, err = NewTokenManager(config.AuthConfig{JWTSecret: "s", JWTAlgorithm: "HS384", AccessTokenTTLMinutes: 5})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, tm.TTL())
}
