package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the bcrypt input ceiling. Longer passwords are cut to
// this length on both the hash and the verify path.
const MaxPasswordBytes = 72

// ErrMalformedHash is returned when a stored hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// PasswordHasher hashes and verifies administrator passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher builds a hasher. Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Cost returns the configured bcrypt cost.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash returns the encoded bcrypt hash (algorithm, cost and salt included).
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches storedHash. A mismatch is (false, nil);
// only a structurally broken stored hash yields an error.
func (h *PasswordHasher) Verify(plain, storedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), truncate(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > MaxPasswordBytes {
		b = b[:MaxPasswordBytes]
	}
	return b
}
