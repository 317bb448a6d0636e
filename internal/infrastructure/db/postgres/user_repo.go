package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- auth.UserRepo ----------

// GetByEmail matches the stored email exactly (case-sensitive).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if strings.TrimSpace(email) == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT id, name, email, password_hash, created_at
FROM users
WHERE email = $1
LIMIT 1;
`
	var ur userRow
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&ur.ID,
		&ur.Name,
		&ur.Email,
		&ur.PasswordHash,
		&ur.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

func (r *UserRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	if strings.TrimSpace(email) == "" {
		return domain.Identity{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT id, name, email
FROM users
WHERE email = $1
LIMIT 1;
`
	var id domain.Identity
	err := r.db.QueryRowContext(ctx, q, email).Scan(&id.UserID, &id.Name, &id.Email)
	if err != nil {
		if isNoRows(err) {
			return domain.Identity{}, domain.ErrUserNotFound()
		}
		return domain.Identity{}, domain.ErrDBUnavailable(err)
	}
	return id, nil
}

// CreateWithEmptyProfile inserts the user and an all-NULL profile in one transaction.
func (r *UserRepo) CreateWithEmptyProfile(ctx context.Context, u domain.User) (domain.User, error) {
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertUser = `
INSERT INTO users (id, name, email, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING id, name, email, password_hash, created_at;
`
	var ur userRow
	err = tx.QueryRowContext(ctx, insertUser, u.ID, u.Name, u.Email, u.PasswordHash).Scan(
		&ur.ID,
		&ur.Name,
		&ur.Email,
		&ur.PasswordHash,
		&ur.CreatedAt,
	)
	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return domain.User{}, domain.ErrEmailAlreadyRegistered()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}

	const insertProfile = `
INSERT INTO profiles (id, user_id)
VALUES ($1, $2);
`
	if _, err := tx.ExecContext(ctx, insertProfile, uuid.NewString(), ur.ID); err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}

	if err := tx.Commit(); err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}
