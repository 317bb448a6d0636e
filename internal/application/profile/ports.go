package profile

import (
	"context"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

// ProfileRepo is the Profile Store port.
type ProfileRepo interface {
	// GetByUserID yields domain.ErrProfileNotFound when no row exists.
	GetByUserID(ctx context.Context, userID string) (domain.Profile, error)

	// Upsert creates the row when missing and overwrites all three categories otherwise.
	Upsert(ctx context.Context, p domain.Profile) (domain.Profile, error)
}
