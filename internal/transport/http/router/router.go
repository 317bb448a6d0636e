package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wellbot/wellbot-backend/internal/transport/http/middleware"
)

type HealthHandler interface {
	Root(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type ProfileHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Put(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health  HealthHandler
	Account AccountHandler
	Profile ProfileHandler

	AuthMW func(http.Handler) http.Handler

	// Optional
	Metrics     http.Handler
	CORSOrigins []string
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Account == nil {
		return nil, fmt.Errorf("nil Account handler")
	}
	if deps.Profile == nil {
		return nil, fmt.Errorf("nil Profile handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}

	r := chi.NewRouter()

	// RequestID first so every later layer (logs, errors, panics) can see it.
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(deps.CORSOrigins))

	r.Get("/", deps.Health.Root)
	r.Get("/ping", deps.Health.Ping)
	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	// --- Account ---
	r.Post("/register", deps.Account.Register)
	r.Post("/login", deps.Account.Login)

	// --- Profile (bearer token) ---
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMW)
		r.Get("/profile", deps.Profile.Get)
		r.Put("/profile", deps.Profile.Put)
	})

	return r, nil
}
