package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	auditapp "github.com/tsaci/backend/internal/application/audit"
	"github.com/tsaci/backend/internal/domain/audit"
	"github.com/tsaci/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// recordingLogRepository captures saved entries for assertions
type recordingLogRepository struct {
	saved []audit.Log
}

func (r *recordingLogRepository) Save(_ context.Context, log *audit.Log) error {
	r.saved = append(r.saved, *log)
	return nil
}

func (r *recordingLogRepository) FindAll(context.Context, audit.Filter) ([]audit.Entry, error) {
	return nil, nil
}

func (r *recordingLogRepository) GetStats(context.Context, time.Time, time.Time) (*audit.Stats, error) {
	return &audit.Stats{}, nil
}

func newAuditedRouter(repo *recordingLogRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := newTokenService(time.Hour)
	recorder := auditapp.NewService(repo, zap.NewNop())

	router := gin.New()
	api := router.Group("/api/v1", AuditTrail(recorder))

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	api.POST("/auth/login", ok)

	authed := api.Group("", JWTAuth(tokens))
	authed.GET("/products", ok)
	authed.POST("/products", func(c *gin.Context) { c.Status(http.StatusCreated) })
	authed.DELETE("/products/:id", ok)
	authed.POST("/withdrawals/:id/approve", ok)
	authed.POST("/products/invalid", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	return router
}

func auditRequest(t *testing.T, router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuditTrail(t *testing.T) {
	tokens := newTokenService(time.Hour)
	token, err := tokens.Issue(42, "op@plant.test", identity.RoleManager)
	require.NoError(t, err)

	t.Run("records successful mutation with user and entity", func(t *testing.T) {
		repo := &recordingLogRepository{}
		router := newAuditedRouter(repo)

		rec := auditRequest(t, router, http.MethodPost, "/api/v1/products", token)
		require.Equal(t, http.StatusCreated, rec.Code)

		require.Len(t, repo.saved, 1)
		entry := repo.saved[0]
		assert.Equal(t, audit.ActionCreate, entry.Action)
		assert.Equal(t, "products", entry.EntityType)
		require.NotNil(t, entry.UserID)
		assert.Equal(t, int64(42), *entry.UserID)
		assert.Nil(t, entry.EntityID)
		assert.Contains(t, entry.Details, `"method":"POST"`)
		assert.Contains(t, entry.Details, `"path":"/api/v1/products"`)
	})

	t.Run("captures entity id and delete action", func(t *testing.T) {
		repo := &recordingLogRepository{}
		router := newAuditedRouter(repo)

		auditRequest(t, router, http.MethodDelete, "/api/v1/products/17", token)

		require.Len(t, repo.saved, 1)
		entry := repo.saved[0]
		assert.Equal(t, audit.ActionDelete, entry.Action)
		require.NotNil(t, entry.EntityID)
		assert.Equal(t, int64(17), *entry.EntityID)
	})

	t.Run("maps action routes to their own verbs", func(t *testing.T) {
		repo := &recordingLogRepository{}
		router := newAuditedRouter(repo)

		auditRequest(t, router, http.MethodPost, "/api/v1/withdrawals/3/approve", token)

		require.Len(t, repo.saved, 1)
		entry := repo.saved[0]
		assert.Equal(t, audit.ActionApprove, entry.Action)
		assert.Equal(t, "withdrawals", entry.EntityType)
		require.NotNil(t, entry.EntityID)
		assert.Equal(t, int64(3), *entry.EntityID)
	})

	t.Run("records login without a user", func(t *testing.T) {
		repo := &recordingLogRepository{}
		router := newAuditedRouter(repo)

		auditRequest(t, router, http.MethodPost, "/api/v1/auth/login", "")

		require.Len(t, repo.saved, 1)
		entry := repo.saved[0]
		assert.Equal(t, audit.ActionLogin, entry.Action)
		assert.Equal(t, "auth", entry.EntityType)
		assert.Nil(t, entry.UserID)
	})

	t.Run("skips reads", func(t *testing.T) {
		repo := &recordingLogRepository{}
		router := newAuditedRouter(repo)

		auditRequest(t, router, http.MethodGet, "/api/v1/products", token)

		assert.Empty(t, repo.saved)
	})

	t.Run("skips failed requests", func(t *testing.T) {
		repo := &recordingLogRepository{}
		router := newAuditedRouter(repo)

		auditRequest(t, router, http.MethodPost, "/api/v1/products/invalid", token)

		assert.Empty(t, repo.saved)
	})

	t.Run("skips rejected auth", func(t *testing.T) {
		repo := &recordingLogRepository{}
		router := newAuditedRouter(repo)

		rec := auditRequest(t, router, http.MethodPost, "/api/v1/products", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, repo.saved)
	})
}
