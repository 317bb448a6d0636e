package middleware

import (
	"net/http"
	"strings"
)

var (
	corsAllowedMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsAllowedHeaders = []string{"Accept", "Authorization", "Content-Type", HeaderXRequestID}
	corsExposedHeaders = []string{HeaderXRequestID}
)

// CORS lets the browser client call the API from the configured origins.
// An empty list allows any origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := isOriginAllowed(origin, allowedOrigins)

			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Expose-Headers", strings.Join(corsExposedHeaders, ", "))
			}

			// Preflight
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				if allowed {
					w.Header().Set("Access-Control-Allow-Methods", strings.Join(corsAllowedMethods, ", "))
					w.Header().Set("Access-Control-Allow-Headers", strings.Join(corsAllowedHeaders, ", "))
					w.Header().Set("Access-Control-Max-Age", "3600")
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isOriginAllowed supports exact matches, "*" and wildcard subdomains ("*.example.com").
func isOriginAllowed(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}

	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		if strings.HasPrefix(allowed, "*.") {
			suffix := strings.TrimPrefix(allowed, "*")
			if strings.HasSuffix(origin, suffix) && len(origin) > len(suffix) {
				return true
			}
		}
	}
	return false
}
