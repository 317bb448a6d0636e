package auth

import (
	"context"

	"github.com/wellbot/wellbot-backend/internal/domain"
	"github.com/wellbot/wellbot-backend/internal/logger"
)

// Login verifies credentials and mints an access token whose subject is the email.
// Unknown emails and wrong passwords are reported distinctly.
func (s *Service) Login(ctx context.Context, email, password string) (res LoginResult, err error) {
	defer func() { s.onEvent("login", outcome(err)) }()

	if email == "" {
		return LoginResult{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return LoginResult{}, domain.ErrMissingField("password")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return LoginResult{}, domain.ErrEmailNotRegistered()
		}
		return LoginResult{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		if !domain.Is(err, "invalid_password") {
			logger.WithCtx(ctx).Warn().Err(err).Str("user_id", u.ID).Msg("password verification failed")
		}
		return LoginResult{}, domain.ErrInvalidPassword()
	}

	tok, err := s.tokens.SignAccessToken(u.Email, s.accessTTL)
	if err != nil {
		return LoginResult{}, domain.ErrTokenSignFailed(err)
	}

	return LoginResult{
		User: u,
		Token: AccessToken{
			Token:     tok,
			TokenType: TokenTypeBearer,
			ExpiresIn: int64(s.accessTTL.Seconds()),
		},
	}, nil
}
