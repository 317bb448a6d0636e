package auth

import (
	"errors"
	"time"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

const TokenTypeBearer = "bearer"

type Service struct {
	users      UserRepo
	identities IdentityReader
	hasher     PasswordHasher
	tokens     TokenIssuer
	pub        EventPublisher

	accessTTL time.Duration
	now       func() time.Time
	onEvent   func(name, status string)
}

type Config struct {
	AccessTTL time.Duration
}

func NewService(
	users UserRepo,
	identities IdentityReader,
	hasher PasswordHasher,
	tokens TokenIssuer,
	pub EventPublisher,
	cfg Config,
) *Service {
	ttl := cfg.AccessTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		users:      users,
		identities: identities,
		hasher:     hasher,
		tokens:     tokens,
		pub:        pub,
		accessTTL:  ttl,
		now:        time.Now,
		onEvent:    func(string, string) {},
	}
}

// WithEventHook registers a callback invoked with (operation, outcome) after
// register and login attempts. Used for metrics.
func (s *Service) WithEventHook(fn func(name, status string)) *Service {
	if fn != nil {
		s.onEvent = fn
	}
	return s
}

// AccessToken is the login output mapped by handlers.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresIn int64 // seconds
}

type LoginResult struct {
	User  domain.User
	Token AccessToken
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Code
	}
	return "error"
}
