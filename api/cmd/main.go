package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/wellbot/wellbot-backend/internal/bootstrap"
	"github.com/wellbot/wellbot-backend/internal/config"
	"github.com/wellbot/wellbot-backend/internal/infrastructure/db/postgres"
	"github.com/wellbot/wellbot-backend/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 15 * time.Second

const usage = "usage: wellbot-backend [serve|migrate]"

// httpServer is the part of *http.Server that Run drives.
type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
	Addr() string
}

type realServer struct{ *http.Server }

func (r realServer) Addr() string { return r.Server.Addr }

// serverBuilder returns a ready server plus the cleanup for its backing resources.
type serverBuilder func() (httpServer, func(), error)

// Run serves until ctx is cancelled or the listener fails and returns the
// process exit code.
func Run(ctx context.Context, build serverBuilder, lg zerolog.Logger) int {
	srv, cleanup, err := build()
	if err != nil {
		lg.Error().Err(err).Msg("bootstrap failed")
		return 1
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", srv.Addr()).Msg("wellbot backend listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		lg.Info().Msg("shutdown requested")
	case err := <-errCh:
		lg.Error().Err(err).Msg("server crashed")
		return 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("graceful shutdown failed; forcing close")
		_ = srv.Close()
	}

	lg.Info().Msg("shutdown complete")
	return 0
}

// RunMigrate applies pending schema migrations and returns the exit code.
func RunMigrate(ctx context.Context, migrate func(context.Context) error, lg zerolog.Logger) int {
	if err := migrate(ctx); err != nil {
		lg.Error().Err(err).Msg("migration failed")
		return 1
	}
	lg.Info().Msg("migrations applied")
	return 0
}

func buildFromBootstrap() (httpServer, func(), error) {
	srv, cleanup, err := bootstrap.NewServer()
	if err != nil {
		return nil, nil, err
	}
	return realServer{srv}, cleanup, nil
}

func migrateFromConfig(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DBAddr == "" {
		return errors.New("DB_ADDR is required to run migrations")
	}

	db, err := config.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return err
	}
	defer db.Close()

	return postgres.Migrate(ctx, db)
}

// command returns the subcommand in args, defaulting to serve.
func command(args []string) string {
	if len(args) == 0 {
		return "serve"
	}
	return args[0]
}

func main() {
	logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var code int
	switch command(os.Args[1:]) {
	case "serve":
		code = Run(ctx, buildFromBootstrap, zlog.Logger)
	case "migrate":
		code = RunMigrate(ctx, migrateFromConfig, zlog.Logger)
	default:
		fmt.Fprintln(os.Stderr, usage)
		code = 2
	}

	stop()
	os.Exit(code)
}
