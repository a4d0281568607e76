package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorIsMatchesByCode(t *testing.T) {
	t.Parallel()

	err := NewDuplicateUsername("alice")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.NotErrorIs(t, err, ErrConflict)

	wrapped := fmt.Errorf("register: %w", err)
	assert.ErrorIs(t, wrapped, ErrDuplicateUsername)
}

func TestInvalidTokenHidesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("token is expired")
	err := NewInvalidToken(cause)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, cause)

	de := ToDomainError(err)
	assert.Equal(t, "invalid token", de.Message)
	assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
}

func TestToDomainError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ToDomainError(nil))

	plain := ToDomainError(errors.New("boom"))
	require.NotNil(t, plain)
	assert.Equal(t, CodeInternal, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.HTTPStatus)

	nf := ToDomainError(fmt.Errorf("lookup: %w", NewNotFound("company", nil)))
	assert.Equal(t, CodeNotFound, nf.Code)
	assert.Equal(t, "company not found", nf.Message)
	assert.Equal(t, http.StatusNotFound, nf.HTTPStatus)

	su := ToDomainError(NewStorageUnavailable(errors.New("dial tcp: refused")))
	assert.Equal(t, http.StatusServiceUnavailable, su.HTTPStatus)
	assert.Equal(t, "storage unavailable", su.Message)
}
