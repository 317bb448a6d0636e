package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wellbot/wellbot-backend/internal/domain"
	"github.com/wellbot/wellbot-backend/internal/logger"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

type SeederRepo interface {
	CreateWithEmptyProfile(ctx context.Context, u domain.User) (domain.User, error)
}

// Demo account created by SeedDemoUser.
const (
	DemoName     = "Demo User"
	DemoEmail    = "demo@wellbot.local"
	DemoPassword = "DemoPassword123!"
)

// SeedDemoUser creates the dev demo account. Safe to call on every start.
func SeedDemoUser(ctx context.Context, repo SeederRepo, hasher SeederHasher) {
	hash, err := hasher.Hash(DemoPassword)
	if err != nil {
		logger.Logger.Warn().Err(err).Str("email", DemoEmail).Msg("seed: hash failed")
		return
	}

	_, err = repo.CreateWithEmptyProfile(ctx, domain.User{
		ID:           uuid.NewString(),
		Name:         DemoName,
		Email:        DemoEmail,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// already seeded on a previous start
		if domain.Is(err, "email_already_registered") {
			return
		}
		logger.Logger.Warn().Err(err).Str("email", DemoEmail).Msg("seed: create failed")
		return
	}

	logger.Logger.Info().Str("email", DemoEmail).Msg("seed: demo user created")
}
