package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	if userID == "" {
		return domain.Profile{}, domain.ErrMissingField("user_id")
	}

	const q = `
SELECT id, user_id, age_group, gender, language, updated_at
FROM profiles
WHERE user_id = $1
LIMIT 1;
`
	var pr profileRow
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&pr.ID,
		&pr.UserID,
		&pr.AgeGroup,
		&pr.Gender,
		&pr.Language,
		&pr.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return domain.Profile{}, domain.ErrProfileNotFound()
		}
		return domain.Profile{}, domain.ErrDBUnavailable(err)
	}
	return pr.toDomain(), nil
}

// Upsert overwrites all three categories; concurrent writers resolve last-write-wins.
func (r *ProfileRepo) Upsert(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	if p.UserID == "" {
		return domain.Profile{}, domain.ErrMissingField("user_id")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	const q = `
INSERT INTO profiles (id, user_id, age_group, gender, language, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE
SET age_group  = EXCLUDED.age_group,
    gender     = EXCLUDED.gender,
    language   = EXCLUDED.language,
    updated_at = EXCLUDED.updated_at
RETURNING id, user_id, age_group, gender, language, updated_at;
`
	var pr profileRow
	err := r.db.QueryRowContext(ctx, q,
		p.ID, p.UserID, toNull(p.AgeGroup), toNull(p.Gender), toNull(p.Language), p.UpdatedAt,
	).Scan(
		&pr.ID,
		&pr.UserID,
		&pr.AgeGroup,
		&pr.Gender,
		&pr.Language,
		&pr.UpdatedAt,
	)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return domain.Profile{}, domain.ErrUserNotFound()
		}
		return domain.Profile{}, domain.ErrDBUnavailable(err)
	}
	return pr.toDomain(), nil
}
