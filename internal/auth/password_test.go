package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *PasswordHasher {
	return NewPasswordHasher(bcrypt.MinCost)
}

func TestPasswordHasherRoundTrip(t *testing.T) {
	t.Parallel()
	h := newTestHasher()

	for _, pw := range []string{"secret123", "", "ção-ünïcödé", strings.Repeat("a", MaxPasswordBytes)} {
		hash, err := h.Hash(pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, hash)
		assert.True(t, strings.HasPrefix(hash, "$2a$04$"), "hash %q should embed algorithm and cost", hash)

		ok, err := h.Verify(pw, hash)
		require.NoError(t, err)
		assert.True(t, ok, "password of %d bytes should verify", len(pw))
	}
}

func TestPasswordHasherSaltsEachHash(t *testing.T) {
	t.Parallel()
	h := newTestHasher()

	a, err := h.Hash("secret123")
	require.NoError(t, err)
	b, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPasswordHasherWrongPassword(t *testing.T) {
	t.Parallel()
	h := newTestHasher()

	hash, err := h.Hash("secret123")
	require.NoError(t, err)

	ok, err := h.Verify("wrongpass", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasherLongPasswordsTruncate(t *testing.T) {
	t.Parallel()
	h := newTestHasher()

	long := strings.Repeat("p", 100)
	hash, err := h.Hash(long)
	require.NoError(t, err, "passwords over 72 bytes must hash")

	ok, err := h.Verify(long, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(long+"x", hash)
	require.NoError(t, err)
	assert.True(t, ok, "bytes past 72 do not affect the hash")

	ok, err = h.Verify(long[:MaxPasswordBytes], hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(long[:MaxPasswordBytes-1], hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasherTruncatesMultibyteOnBytes(t *testing.T) {
	t.Parallel()
	h := newTestHasher()

	// 36 two-byte runes fill the limit exactly; the trailing rune is ignored.
	pw := strings.Repeat("é", 36) + "Z"
	hash, err := h.Hash(pw)
	require.NoError(t, err)

	ok, err := h.Verify(strings.Repeat("é", 36)+"Y", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasswordHasherMalformedHash(t *testing.T) {
	t.Parallel()
	h := newTestHasher()

	ok, err := h.Verify("secret123", "not-a-bcrypt-hash")
	assert.False(t, ok)
	require.ErrorIs(t, err, ErrMalformedHash)
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).Cost())
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(bcrypt.MaxCost+1).Cost())
	assert.Equal(t, 12, NewPasswordHasher(12).Cost())
}
