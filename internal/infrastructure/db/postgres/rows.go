package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

type userRow struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func (ur userRow) toDomain() domain.User {
	return domain.User{
		ID:           ur.ID,
		Name:         ur.Name,
		Email:        ur.Email,
		PasswordHash: ur.PasswordHash,
		CreatedAt:    ur.CreatedAt,
	}
}

type profileRow struct {
	ID        string
	UserID    string
	AgeGroup  sql.NullString
	Gender    sql.NullString
	Language  sql.NullString
	UpdatedAt time.Time
}

func (pr profileRow) toDomain() domain.Profile {
	return domain.Profile{
		ID:        pr.ID,
		UserID:    pr.UserID,
		AgeGroup:  fromNull(pr.AgeGroup),
		Gender:    fromNull(pr.Gender),
		Language:  fromNull(pr.Language),
		UpdatedAt: pr.UpdatedAt,
	}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func toNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
