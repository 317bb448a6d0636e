package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

// BcryptHasher hashes passwords with a per-call random salt embedded in the output.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher uses bcrypt.DefaultCost when cost is not positive.
// Costs above bcrypt.MaxCost make every Hash call fail.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if h.cost > bcrypt.MaxCost {
		return "", domain.ErrHashFailed(fmt.Errorf("bcrypt cost %d above maximum %d", h.cost, bcrypt.MaxCost))
	}

	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domain.ErrHashFailed(err)
	}
	return string(b), nil
}

// Compare returns nil iff password matches hash. A mismatch is
// domain.ErrInvalidPassword; an unparsable hash is an internal error.
func (h *BcryptHasher) Compare(hash string, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return domain.ErrInvalidPassword()
	default:
		return domain.ErrInternal(fmt.Errorf("stored password hash unusable: %w", err))
	}
}
