package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

func TestJWTSigner_SignAndDecode_Success(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("secret", "wellbot")
	tok, err := s.SignAccessToken("ann@x.com", 2*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(tok, "."))

	email, err := s.DecodeAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", email)
}

func TestJWTSigner_Decode_Expired_ReturnsTokenExpired(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("secret", "wellbot")
	tok, err := s.SignAccessToken("ann@x.com", -1*time.Second) // already expired
	require.NoError(t, err)

	_, err = s.DecodeAccessToken(tok)
	assert.True(t, domain.Is(err, "token_expired"), "got %v", err)
	assert.Equal(t, domain.KindAuth, domain.KindOf(err))
}

func TestJWTSigner_Decode_ExpiresWithClock(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewJWTSigner("secret", "wellbot")
	s.now = func() time.Time { return now }

	tok, err := s.SignAccessToken("ann@x.com", 24*time.Hour)
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(23 * time.Hour) }
	_, err = s.DecodeAccessToken(tok)
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(25 * time.Hour) }
	_, err = s.DecodeAccessToken(tok)
	assert.True(t, domain.Is(err, "token_expired"), "got %v", err)
}

func TestJWTSigner_Decode_WrongSecret_ReturnsTokenInvalid(t *testing.T) {
	t.Parallel()

	s1 := NewJWTSigner("secret1", "wellbot")
	s2 := NewJWTSigner("secret2", "wellbot")

	tok, err := s1.SignAccessToken("ann@x.com", time.Minute)
	require.NoError(t, err)

	_, err = s2.DecodeAccessToken(tok)
	assert.True(t, domain.Is(err, "token_invalid"), "got %v", err)
}

func TestJWTSigner_Decode_WrongIssuer_ReturnsTokenInvalid(t *testing.T) {
	t.Parallel()

	tok, err := NewJWTSigner("secret", "someone-else").SignAccessToken("ann@x.com", time.Minute)
	require.NoError(t, err)

	_, err = NewJWTSigner("secret", "wellbot").DecodeAccessToken(tok)
	assert.True(t, domain.Is(err, "token_invalid"), "got %v", err)
}

func TestJWTSigner_Decode_AlgConfusion_Rejected(t *testing.T) {
	t.Parallel()

	claims := jwt.MapClaims{
		"iss": "wellbot",
		"sub": "ann@x.com",
		"exp": time.Now().Add(time.Minute).Unix(),
		"iat": time.Now().Unix(),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTSigner("secret", "wellbot").DecodeAccessToken(unsigned)
	assert.True(t, domain.Is(err, "token_invalid"), "got %v", err)
}

func TestJWTSigner_Decode_MissingSubjectOrExpiry_Rejected(t *testing.T) {
	t.Parallel()

	cases := map[string]jwt.MapClaims{
		"no subject": {"iss": "wellbot", "exp": time.Now().Add(time.Minute).Unix()},
		"no expiry":  {"iss": "wellbot", "sub": "ann@x.com"},
	}

	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
			require.NoError(t, err)

			_, err = NewJWTSigner("secret", "wellbot").DecodeAccessToken(tok)
			assert.True(t, domain.Is(err, "token_invalid"), "got %v", err)
		})
	}
}

func TestJWTSigner_Decode_Garbage_ReturnsTokenInvalid(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("secret", "wellbot")
	for _, raw := range []string{"", "   ", "not.a.jwt", "a.b", "....", "Bearer xyz"} {
		_, err := s.DecodeAccessToken(raw)
		assert.True(t, domain.Is(err, "token_invalid"), "raw=%q got %v", raw, err)
	}
}
