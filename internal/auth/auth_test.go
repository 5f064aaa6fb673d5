package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() TokenService {
	return TokenService{Secret: []byte("test-secret"), Issuer: "anilistbot", Duration: time.Minute}
}

func TestSignParseRoundTrip(t *testing.T) {
	ts := testTokens()
	tok, exp, err := ts.Sign("123456789", "rin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	claims, err := ts.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "123456789", claims.UserID)
	assert.Equal(t, "123456789", claims.Subject)
	assert.Equal(t, "rin", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

func TestParseRejects(t *testing.T) {
	ts := testTokens()

	other := ts
	other.Secret = []byte("other")
	tok, _, err := other.Sign("1", "x")
	require.NoError(t, err)
	_, err = ts.Parse(tok)
	assert.Error(t, err, "wrong secret")

	wrongIssuer := ts
	wrongIssuer.Issuer = "someone-else"
	tok, _, err = wrongIssuer.Sign("1", "x")
	require.NoError(t, err)
	_, err = ts.Parse(tok)
	assert.Error(t, err, "wrong issuer")

	expired := ts
	expired.Duration = -time.Minute
	tok, _, err = expired.Sign("1", "x")
	require.NoError(t, err)
	_, err = ts.Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "1"})
	s, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ts.Parse(s)
	assert.Error(t, err, "alg none")
}

func newRouter(ts TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(ts).RegisterRoutes(r.Group("/auth"))
	return r
}

func TestMiddleware(t *testing.T) {
	ts := testTokens()
	r := newRouter(ts)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"missing bearer token"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, w.Body.String())

	tok, _, err := ts.Sign("42", "rin")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "42", body["user_id"])
	assert.Equal(t, "rin", body["username"])
	assert.Contains(t, body, "expires_at")
}

func TestMiddlewareQueryToken(t *testing.T) {
	ts := testTokens()
	r := newRouter(ts)

	tok, _, err := ts.Sign("42", "rin")
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me?token="+tok, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me?token=garbage", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
