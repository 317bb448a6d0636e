package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/wellbot/wellbot-backend/internal/logger"
)

const (
	dbApplicationName = "wellbot-backend"
	dbMaxOpenConns    = 20
	dbMaxIdleConns    = 10
	dbConnectTimeout  = 3 * time.Second
)

// NewDB opens a database/sql pool on the pgx driver and pings it once.
// The DSN's own application_name wins over the default.
func NewDB(dsn string, debug bool) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty DB DSN")
	}

	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DB_ADDR: %w", err)
	}
	if connCfg.RuntimeParams["application_name"] == "" {
		connCfg.RuntimeParams["application_name"] = dbApplicationName
	}
	if connCfg.ConnectTimeout == 0 || connCfg.ConnectTimeout > dbConnectTimeout {
		connCfg.ConnectTimeout = dbConnectTimeout
	}

	db := stdlib.OpenDB(*connCfg)
	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), dbConnectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s:%d: %w", connCfg.Host, connCfg.Port, err)
	}

	if debug {
		var who, dbname, ver string
		err := db.QueryRowContext(ctx,
			`SELECT current_user, current_database(), current_setting('server_version')`,
		).Scan(&who, &dbname, &ver)
		if err != nil {
			logger.Logger.Debug().Err(err).Msg("db identity query failed")
		} else {
			logger.Logger.Debug().
				Str("user", who).
				Str("db", dbname).
				Str("version", ver).
				Msg("db connected")
		}
	}

	return db, nil
}
