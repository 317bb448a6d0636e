package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- fakes ----------

func write(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}

type fakeHealth struct{}

func (fakeHealth) Root(w http.ResponseWriter, r *http.Request)    { write(w, 200, "root") }
func (fakeHealth) Ping(w http.ResponseWriter, r *http.Request)    { write(w, 200, "ping") }
func (fakeHealth) Healthz(w http.ResponseWriter, r *http.Request) { write(w, 200, "healthz") }
func (fakeHealth) Readyz(w http.ResponseWriter, r *http.Request)  { write(w, 200, "readyz") }

type fakeAccount struct{}

func (fakeAccount) Register(w http.ResponseWriter, r *http.Request) { write(w, 200, "register") }
func (fakeAccount) Login(w http.ResponseWriter, r *http.Request)    { write(w, 200, "login") }

type fakeProfile struct{}

func (fakeProfile) Get(w http.ResponseWriter, r *http.Request) { write(w, 200, "profile_get") }
func (fakeProfile) Put(w http.ResponseWriter, r *http.Request) { write(w, 200, "profile_put") }

// denyMW rejects everything without an X-Test-Auth header.
func denyMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Test-Auth") == "" {
			write(w, http.StatusUnauthorized, "denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	h, err := New(Deps{
		Health:  fakeHealth{},
		Account: fakeAccount{},
		Profile: fakeProfile{},
		AuthMW:  denyMW,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { write(w, 200, "metrics") }),
	})
	require.NoError(t, err)
	return h
}

func do(h http.Handler, method, path string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// ---------- tests ----------

func TestNew_RequiresDeps(t *testing.T) {
	_, err := New(Deps{})
	assert.Error(t, err)

	_, err = New(Deps{Health: fakeHealth{}, Account: fakeAccount{}, Profile: fakeProfile{}})
	assert.EqualError(t, err, "nil Auth middleware")
}

func TestRoutes_Public(t *testing.T) {
	h := newTestRouter(t)

	cases := []struct{ method, path, body string }{
		{http.MethodGet, "/", "root"},
		{http.MethodGet, "/ping", "ping"},
		{http.MethodGet, "/healthz", "healthz"},
		{http.MethodGet, "/readyz", "readyz"},
		{http.MethodGet, "/metrics", "metrics"},
		{http.MethodPost, "/register", "register"},
		{http.MethodPost, "/login", "login"},
	}
	for _, tc := range cases {
		rr := do(h, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusOK, rr.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, tc.body, rr.Body.String(), "%s %s", tc.method, tc.path)
	}
}

func TestRoutes_ProfileIsGated(t *testing.T) {
	h := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/profile", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPut, "/profile", nil).Code)

	authed := map[string]string{"X-Test-Auth": "1"}
	assert.Equal(t, "profile_get", do(h, http.MethodGet, "/profile", authed).Body.String())
	assert.Equal(t, "profile_put", do(h, http.MethodPut, "/profile", authed).Body.String())
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	h := newTestRouter(t)

	assert.Equal(t, http.StatusMethodNotAllowed, do(h, http.MethodGet, "/register", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(h, http.MethodDelete, "/profile", nil).Code)
}

func TestRoutes_EveryResponseHasRequestID(t *testing.T) {
	h := newTestRouter(t)

	rr := do(h, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestRoutes_RecoversPanics(t *testing.T) {
	h, err := New(Deps{
		Health:  fakeHealth{},
		Account: panicAccount{},
		Profile: fakeProfile{},
		AuthMW:  denyMW,
	})
	require.NoError(t, err)

	rr := do(h, http.MethodPost, "/register", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

type panicAccount struct{ fakeAccount }

func (panicAccount) Register(w http.ResponseWriter, r *http.Request) { panic("boom") }
