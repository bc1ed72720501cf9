package tokens_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	rperrors "github.com/jrsteele09/research-platform-client/internal/errors"
	"github.com/jrsteele09/research-platform-client/tokens"
)

func TestSession_SetAuthHeader(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://example.org/api/auth/users/me/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer stale")

	tokens.Session{AccessToken: "T1", RefreshToken: "R1"}.SetAuthHeader(req)
	require.Equal(t, []string{"Bearer T1"}, req.Header.Values("Authorization"))
}

func TestParseClaims(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": "access",
		"user_id":    42,
		"jti":        "abc",
		"iat":        now.Unix(),
		"exp":        now.Add(5 * time.Minute).Unix(),
	}).SignedString([]byte("not-known-to-the-client"))
	require.NoError(t, err)

	claims, err := tokens.ParseClaims(raw)
	require.NoError(t, err)
	require.Equal(t, "42", claims.UserID)
	require.Equal(t, "access", claims.TokenType)
	require.Equal(t, "abc", claims.JTI)
	require.True(t, claims.IssuedAt.Equal(now))
	require.True(t, claims.ExpiresAt.Equal(now.Add(5*time.Minute)))
	require.False(t, claims.Expired(now))
	require.True(t, claims.Expired(now.Add(time.Hour)))
}

func TestParseClaims_Errors(t *testing.T) {
	_, err := tokens.ParseClaims("")
	require.ErrorIs(t, err, rperrors.ErrNotAuthenticated)

	_, err = tokens.ParseClaims("opaque-token")
	require.Error(t, err)
}
