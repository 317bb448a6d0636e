package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/wellbot/wellbot-backend/internal/domain"
	"github.com/wellbot/wellbot-backend/internal/logger"
)

// Register creates a user and its empty profile. It does not log the user in.
func (s *Service) Register(ctx context.Context, name, email, password string) (u domain.User, err error) {
	defer func() { s.onEvent("register", outcome(err)) }()

	if name == "" {
		return domain.User{}, domain.ErrMissingField("name")
	}
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return domain.User{}, domain.ErrMissingField("password")
	}

	// Fast path; the store's unique constraint settles concurrent races.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.User{}, domain.ErrEmailAlreadyRegistered()
	} else if !domain.Is(err, "user_not_found") {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, domain.ErrHashFailed(err)
	}

	created, err := s.users.CreateWithEmptyProfile(ctx, domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return domain.User{}, err
	}

	if s.pub != nil {
		evt := UserRegisteredEvent{
			UserID:       created.ID,
			Name:         created.Name,
			Email:        created.Email,
			RegisteredAt: created.CreatedAt,
		}
		if perr := s.pub.PublishUserRegistered(ctx, evt); perr != nil {
			logger.WithCtx(ctx).Warn().Err(perr).
				Str("user_id", created.ID).
				Msg("publish user_registered failed")
		}
	}

	return created, nil
}
