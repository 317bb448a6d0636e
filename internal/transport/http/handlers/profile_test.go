package http_handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_AnnFlow(t *testing.T) {
	app := newTestApp(t, time.Hour)
	token := app.registerAndLogin(t, "Ann", "ann@x.com", "secret1")

	// fresh account: empty object
	rr := app.do(t, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{}`, rr.Body.String())

	rr = app.do(t, http.MethodPut, "/profile", token, map[string]string{
		"age_group": "18-25", "gender": "Female", "language": "English",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, map[string]any{"message": "Profile updated successfully"}, mustReadJSON(t, rr))

	rr = app.do(t, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"age_group":"18-25","gender":"Female","language":"English"}`, rr.Body.String())
}

func TestProfile_PutIsIdempotent(t *testing.T) {
	app := newTestApp(t, time.Hour)
	token := app.registerAndLogin(t, "Ann", "ann@x.com", "secret1")
	body := map[string]string{"age_group": "26-35", "gender": "Other", "language": "Hindi"}

	for i := 0; i < 2; i++ {
		rr := app.do(t, http.MethodPut, "/profile", token, body)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := app.do(t, http.MethodGet, "/profile", token, nil)
	assert.JSONEq(t, `{"age_group":"26-35","gender":"Other","language":"Hindi"}`, rr.Body.String())
}

func TestProfile_PutReplacesAllFields(t *testing.T) {
	app := newTestApp(t, time.Hour)
	token := app.registerAndLogin(t, "Ann", "ann@x.com", "secret1")

	app.do(t, http.MethodPut, "/profile", token, map[string]string{
		"age_group": "18-25", "gender": "Female", "language": "English",
	})
	rr := app.do(t, http.MethodPut, "/profile", token, map[string]string{"language": "Hindi"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = app.do(t, http.MethodGet, "/profile", token, nil)
	assert.JSONEq(t, `{"age_group":null,"gender":null,"language":"Hindi"}`, rr.Body.String())
}

func TestProfile_ClearingAllFieldsReturnsEmptyObject(t *testing.T) {
	app := newTestApp(t, time.Hour)
	token := app.registerAndLogin(t, "Ann", "ann@x.com", "secret1")

	app.do(t, http.MethodPut, "/profile", token, map[string]string{"gender": "Male"})
	rr := app.do(t, http.MethodPut, "/profile", token, map[string]any{})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = app.do(t, http.MethodGet, "/profile", token, nil)
	assert.JSONEq(t, `{}`, rr.Body.String())
}

func TestProfile_IsolatedPerUser(t *testing.T) {
	app := newTestApp(t, time.Hour)
	ann := app.registerAndLogin(t, "Ann", "ann@x.com", "secret1")
	bob := app.registerAndLogin(t, "Bob", "bob@x.com", "secret2")

	app.do(t, http.MethodPut, "/profile", ann, map[string]string{"gender": "Female"})

	rr := app.do(t, http.MethodGet, "/profile", bob, nil)
	assert.JSONEq(t, `{}`, rr.Body.String())
}

func TestProfile_FieldTooLong_Returns422(t *testing.T) {
	app := newTestApp(t, time.Hour)
	token := app.registerAndLogin(t, "Ann", "ann@x.com", "secret1")

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	rr := app.do(t, http.MethodPut, "/profile", token, map[string]string{"gender": string(long)})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestProfile_RequiresToken(t *testing.T) {
	app := newTestApp(t, time.Hour)

	cases := []struct {
		name   string
		method string
		token  string
	}{
		{"get without token", http.MethodGet, ""},
		{"put without token", http.MethodPut, ""},
		{"get with garbage", http.MethodGet, "not-a-jwt"},
		{"put with garbage", http.MethodPut, "not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := app.do(t, tc.method, "/profile", tc.token, map[string]string{"gender": "Male"})

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestProfile_ExpiredToken_Returns401(t *testing.T) {
	app := newTestApp(t, time.Hour)
	app.registerAndLogin(t, "Ann", "ann@x.com", "secret1")

	expired, err := app.signer.SignAccessToken("ann@x.com", -time.Minute)
	require.NoError(t, err)

	for _, method := range []string{http.MethodGet, http.MethodPut} {
		rr := app.do(t, method, "/profile", expired, map[string]string{"gender": "Male"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code, method)
		assert.Equal(t, "Invalid or expired token", mustReadJSON(t, rr)["detail"])
	}
}

func TestProfile_TokenForUnknownUser_Returns404(t *testing.T) {
	app := newTestApp(t, time.Hour)

	token, err := app.signer.SignAccessToken("ghost@x.com", time.Hour)
	require.NoError(t, err)

	rr := app.do(t, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "user_not_found", mustReadJSON(t, rr)["code"])
}
