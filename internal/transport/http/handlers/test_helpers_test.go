package http_handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/wellbot/wellbot-backend/internal/application/auth"
	"github.com/wellbot/wellbot-backend/internal/application/profile"
	"github.com/wellbot/wellbot-backend/internal/infrastructure/memory"
	"github.com/wellbot/wellbot-backend/internal/infrastructure/security"
	"github.com/wellbot/wellbot-backend/internal/transport/http/middleware"
	"github.com/wellbot/wellbot-backend/internal/transport/http/response"
	"github.com/wellbot/wellbot-backend/internal/transport/http/router"
)

const testSecret = "test-secret-please-ignore"

type testApp struct {
	handler http.Handler
	store   *memory.Store
	signer  *security.JWTSigner
}

// newTestApp wires the real services over the in-memory store.
func newTestApp(t *testing.T, ttl time.Duration) *testApp {
	t.Helper()

	store := memory.NewStore()
	signer := security.NewJWTSigner(testSecret, "wellbot")
	hasher := security.NewBcryptHasher(bcrypt.MinCost)

	authSvc := auth.NewService(store, store, hasher, signer, memory.NewNoopPublisher(), auth.Config{AccessTTL: ttl})
	profileSvc := profile.NewService(store)

	h, err := router.New(router.Deps{
		Health:  NewHealthHandler(store.Ping),
		Account: NewAccountHandler(authSvc),
		Profile: NewProfileHandler(profileSvc),
		AuthMW:  middleware.Auth(authSvc, response.WriteError),
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return &testApp{handler: h, store: store, signer: signer}
}

// mustJSONBody marshals v to JSON and returns an io.Reader for request body.
func mustJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		rdr = mustJSONBody(t, body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

// mustReadJSON decodes the recorder body into a generic map.
func mustReadJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json failed; body=%s", rr.Body.String())
	}
	return out
}

func (a *testApp) registerAndLogin(t *testing.T, name, email, password string) string {
	t.Helper()

	rr := a.do(t, http.MethodPost, "/register", "", map[string]string{"name": name, "email": email, "password": password})
	if rr.Code != http.StatusOK {
		t.Fatalf("register: %d %s", rr.Code, rr.Body.String())
	}
	rr = a.do(t, http.MethodPost, "/login", "", map[string]string{"email": email, "password": password})
	if rr.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rr.Code, rr.Body.String())
	}
	return mustReadJSON(t, rr)["access_token"].(string)
}

func (a *testApp) doRaw(t *testing.T, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}
