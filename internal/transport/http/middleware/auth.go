package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/wellbot/wellbot-backend/internal/domain"
	appCtx "github.com/wellbot/wellbot-backend/internal/pkg/context"
)

// Authenticator resolves a raw bearer token to the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Auth requires "Authorization: Bearer <access_token>" and stores the
// resolved identity in the request context.
func Auth(authn Authenticator, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearerToken(r.Header.Get("Authorization"))
			if err != nil {
				writeErr(w, r, err)
				return
			}

			id, err := authn.Authenticate(r.Context(), raw)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			ctx := WithIdentity(r.Context(), id)
			ctx = appCtx.WithUserID(ctx, id.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an Authorization header value.
// The scheme is case-insensitive.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.ErrTokenMissing()
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", domain.ErrTokenInvalid()
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrTokenInvalid()
	}
	return token, nil
}
