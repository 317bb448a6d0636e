package bootstrap

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wellbot/wellbot-backend/internal/application/auth"
	"github.com/wellbot/wellbot-backend/internal/application/profile"
	"github.com/wellbot/wellbot-backend/internal/config"
	"github.com/wellbot/wellbot-backend/internal/infrastructure/db/postgres"
	"github.com/wellbot/wellbot-backend/internal/infrastructure/memory"
	rabbitmq_pub "github.com/wellbot/wellbot-backend/internal/infrastructure/messaging/rabbitmq"
	"github.com/wellbot/wellbot-backend/internal/infrastructure/redis"
	"github.com/wellbot/wellbot-backend/internal/infrastructure/security"
	"github.com/wellbot/wellbot-backend/internal/logger"
	"github.com/wellbot/wellbot-backend/internal/metrics"
	http_handlers "github.com/wellbot/wellbot-backend/internal/transport/http/handlers"
	"github.com/wellbot/wellbot-backend/internal/transport/http/middleware"
	"github.com/wellbot/wellbot-backend/internal/transport/http/response"
	"github.com/wellbot/wellbot-backend/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (*sql.DB, error)

	Migrate func(ctx context.Context, db *sql.DB) error

	NewRedis func(addr, password string, db int) *redis.Client

	NewPublisher func(rabbitURL, exchange string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type Publisher interface {
	auth.EventPublisher
	Close() error
}

// stores groups the repositories backing the services.
type stores struct {
	users      auth.UserRepo
	identities auth.IdentityReader
	profiles   profile.ProfileRepo
	ready      http_handlers.ReadyCheck
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()

	// 1) hasher first: the seeder needs it
	hasher := security.NewBcryptHasher(cfg.BcryptCost)

	// 2) storage
	st, err := openStores(deps, cfg, hasher, &cleanupFns)
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 3) redis (best-effort)
	identities := st.identities
	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := c.Ping(ctx)
		cancel()

		if err != nil {
			logger.Logger.Warn().Err(err).Str("addr", c.Addr()).Msg("redis unavailable; identity cache disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Str("addr", c.Addr()).Msg("redis connected")
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			identities = redis.NewCachedIdentityReader(st.identities, c, cfg.UserCacheTTL)
		}
	}

	// 4) publisher
	pub, err := openPublisher(deps, cfg)
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}
	cleanupFns = append(cleanupFns, func() { _ = pub.Close() })

	// 5) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	// 6) services
	authSvc := auth.NewService(
		st.users,
		identities,
		hasher,
		signer,
		pub,
		auth.Config{AccessTTL: cfg.AccessTokenTTL},
	).WithEventHook(metrics.RecordAccountEvent)

	profileSvc := profile.NewService(st.profiles).
		WithUpdateHook(metrics.RecordProfileUpdate)

	// 7) handlers + middleware
	accountH := http_handlers.NewAccountHandler(authSvc)
	profileH := http_handlers.NewProfileHandler(profileSvc)
	healthH := http_handlers.NewHealthHandler(st.ready)

	authMW := middleware.Auth(authSvc, response.WriteError)

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health:      healthH,
		Account:     accountH,
		Profile:     profileH,
		AuthMW:      authMW,
		Metrics:     promhttp.Handler(),
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
		cleanupFns = nil
	}

	return srv, cleanup, nil
}

// openStores connects postgres, or falls back to the in-memory store when no
// DB_ADDR is configured (config.Load only allows that in dev).
func openStores(deps Deps, cfg *config.Config, hasher *security.BcryptHasher, cleanupFns *[]func()) (stores, error) {
	ctx := context.Background()

	if cfg.DBAddr == "" {
		logger.Logger.Warn().Msg("DB_ADDR not set; using in-memory store")
		mem := memory.NewStore()
		if cfg.IsDev() && cfg.SeedDemoUser {
			postgres.SeedDemoUser(ctx, mem, hasher)
		}
		return stores{users: mem, identities: mem, profiles: mem, ready: mem.Ping}, nil
	}

	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return stores{}, err
	}
	*cleanupFns = append(*cleanupFns, func() { _ = db.Close() })

	if cfg.DBMigrate && deps.Migrate != nil {
		if err := deps.Migrate(ctx, db); err != nil {
			return stores{}, err
		}
		logger.Logger.Info().Msg("database migrated")
	}

	users := postgres.NewUserRepo(db)
	if cfg.IsDev() && cfg.SeedDemoUser {
		postgres.SeedDemoUser(ctx, users, hasher)
	}

	return stores{
		users:      users,
		identities: users,
		profiles:   postgres.NewProfileRepo(db),
		ready:      db.PingContext,
	}, nil
}

// openPublisher returns the RabbitMQ publisher, or a noop one when RabbitMQ is
// not configured or, in dev, unreachable.
func openPublisher(deps Deps, cfg *config.Config) (Publisher, error) {
	if cfg.RabbitURL == "" || deps.NewPublisher == nil {
		logger.Logger.Info().Msg("RABBIT_URL not set; using noop publisher")
		return memory.NewNoopPublisher(), nil
	}

	pub, err := deps.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
	if err != nil {
		if cfg.IsDev() {
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
			return memory.NewNoopPublisher(), nil
		}
		return nil, err
	}
	return pub, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		Migrate:    postgres.Migrate,
		NewRedis:   redis.New,
		NewPublisher: func(url, exchange string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url, exchange)
		},
		NewRouter: router.New,
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
