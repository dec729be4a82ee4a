package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsaci/backend/internal/domain/identity"
	"github.com/tsaci/backend/internal/infrastructure/auth"
	"github.com/tsaci/backend/internal/infrastructure/config"
	httpdto "github.com/tsaci/backend/internal/interfaces/http/dto"
)

func newTokenService(expiration time.Duration) *auth.TokenService {
	return auth.NewTokenService(config.JWTConfig{
		Secret:     "unit-test-secret-key-of-decent-length",
		Expiration: expiration,
		Issuer:     "tsaci-backend",
		Audience:   "tsaci-users",
	})
}

func newProtectedRouter(tokens *auth.TokenService, roles ...identity.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/", JWTAuth(tokens))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		userID, _ := GetJWTUserID(c)
		role, _ := GetJWTRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp httpdto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestJWTAuth(t *testing.T) {
	tokens := newTokenService(time.Hour)

	t.Run("valid token reaches the handler with claims set", func(t *testing.T) {
		router := newProtectedRouter(tokens)
		token, err := tokens.Issue(42, "op@plant.test", identity.RoleManager)
		require.NoError(t, err)

		rec := doRequest(router, "Bearer "+token)

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(42), body["user_id"])
		assert.Equal(t, "manager", body["role"])
	})

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(newProtectedRouter(tokens), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, httpdto.ErrCodeUnauthorized, errorCode(t, rec))
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		rec := doRequest(newProtectedRouter(tokens), "Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, httpdto.ErrCodeUnauthorized, errorCode(t, rec))
	})

	t.Run("garbage token is malformed", func(t *testing.T) {
		rec := doRequest(newProtectedRouter(tokens), "Bearer not.a.token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, httpdto.ErrCodeTokenMalformed, errorCode(t, rec))
	})

	t.Run("expired token", func(t *testing.T) {
		expiredTokens := newTokenService(-time.Minute)
		token, err := expiredTokens.Issue(42, "op@plant.test", identity.RoleManager)
		require.NoError(t, err)

		rec := doRequest(newProtectedRouter(expiredTokens), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, httpdto.ErrCodeTokenExpired, errorCode(t, rec))
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		otherTokens := auth.NewTokenService(config.JWTConfig{
			Secret:     "a-completely-different-signing-secret",
			Expiration: time.Hour,
			Issuer:     "tsaci-backend",
			Audience:   "tsaci-users",
		})
		token, err := otherTokens.Issue(42, "op@plant.test", identity.RoleManager)
		require.NoError(t, err)

		rec := doRequest(newProtectedRouter(tokens), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, httpdto.ErrCodeTokenSignature, errorCode(t, rec))
	})
}

func TestRequireRole(t *testing.T) {
	tokens := newTokenService(time.Hour)

	t.Run("role in the allowed set passes", func(t *testing.T) {
		router := newProtectedRouter(tokens, identity.RoleAdmin, identity.RoleOwner)
		token, err := tokens.Issue(1, "owner@plant.test", identity.RoleOwner)
		require.NoError(t, err)

		rec := doRequest(router, "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("role outside the allowed set is forbidden", func(t *testing.T) {
		router := newProtectedRouter(tokens, identity.RoleAdmin, identity.RoleOwner)
		token, err := tokens.Issue(2, "viewer@plant.test", identity.RoleViewer)
		require.NoError(t, err)

		rec := doRequest(router, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, httpdto.ErrCodeForbidden, errorCode(t, rec))
	})
}
