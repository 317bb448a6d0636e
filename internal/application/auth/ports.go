package auth

import (
	"context"
	"time"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

/*
UserRepo
--------
Persistence port for the Credential Store.
Only describes WHAT the account flows need, not HOW it's stored.
*/
type UserRepo interface {
	// GetByEmail returns the full user row (including the password hash).
	// Missing users yield domain.ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateWithEmptyProfile inserts the user and its placeholder profile as
	// one unit. A duplicate email yields domain.ErrEmailAlreadyRegistered.
	CreateWithEmptyProfile(ctx context.Context, u domain.User) (domain.User, error)
}

/*
IdentityReader
--------------
Password-free lookup used after token verification.
Safe to put behind a cache.
*/
type IdentityReader interface {
	GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenIssuer
-----------
Issues and decodes stateless access tokens (JWT) whose subject is the email.
*/
type TokenIssuer interface {
	SignAccessToken(email string, ttl time.Duration) (string, error)
	DecodeAccessToken(token string) (email string, err error)
}

/*
EventPublisher
--------------
Publishes account events to the broker. Failures never fail the caller.
*/
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
}

type UserRegisteredEvent struct {
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}
