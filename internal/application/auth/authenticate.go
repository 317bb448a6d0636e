package auth

import (
	"context"
	"strings"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

// Authenticate resolves a raw bearer token to the identity it was issued for.
// The token is verified before any store access; a verified token whose
// account no longer exists yields domain.ErrUserNotFound.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Identity{}, domain.ErrTokenMissing()
	}

	email, err := s.tokens.DecodeAccessToken(token)
	if err != nil {
		if domain.KindOf(err) != domain.KindAuth {
			return domain.Identity{}, domain.ErrTokenInvalid()
		}
		return domain.Identity{}, err
	}

	id, err := s.identities.GetIdentityByEmail(ctx, email)
	if err != nil {
		return domain.Identity{}, err
	}
	return id, nil
}
