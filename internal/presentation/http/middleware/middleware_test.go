package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	infraRepo "github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryKeys is an in-memory IdempotencyRepository
type memoryKeys struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func newMemoryKeys() *memoryKeys {
	return &memoryKeys{keys: make(map[string]*entity.IdempotencyKey)}
}

func (m *memoryKeys) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys[userID.String()+"/"+key], nil
}

func (m *memoryKeys) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[ikey.UserID.String()+"/"+ikey.Key] = ikey
	return nil
}

func (m *memoryKeys) DeleteExpired(context.Context) (int64, error) { return 0, nil }

func withUser(id uuid.UUID, role enum.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserID, id)
		c.Set(ContextUserRole, role)
		c.Next()
	}
}

func serve(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwt := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	r := gin.New()
	r.GET("/me", AuthMiddleware(jwt), func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		c.JSON(http.StatusOK, gin.H{
			"id":   c.MustGet(ContextUserID).(uuid.UUID).String(),
			"role": string(role.(enum.UserRole)),
			"code": c.GetString(ContextCustomerCode),
		})
	})

	t.Run("missing header", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		refresh, err := jwt.GenerateRefreshToken(userID)
		require.NoError(t, err)
		w := serve(r, http.MethodGet, "/me", "", map[string]string{"Authorization": "Bearer " + refresh})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid access token", func(t *testing.T) {
		token, err := jwt.GenerateAccessToken(userID, "ghulam@example.in", "customer", "CU104233")
		require.NoError(t, err)
		w := serve(r, http.MethodGet, "/me", "", map[string]string{"Authorization": "Bearer " + token})
		require.Equal(t, http.StatusOK, w.Code)

		var got map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, userID.String(), got["id"])
		assert.Equal(t, "customer", got["role"])
		assert.Equal(t, "CU104233", got["code"])
	})
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.GET("/owner", withUser(uuid.New(), enum.UserRoleCustomer), RequireRole(enum.UserRoleShopOwner), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/either", withUser(uuid.New(), enum.UserRoleCustomer), RequireRole(enum.UserRoleShopOwner, enum.UserRoleCustomer), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := serve(r, http.MethodGet, "/owner", "", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	var body struct {
		Data struct {
			Redirect string `json:"redirect"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/dashboard/customer", body.Data.Redirect)

	w = serve(r, http.MethodGet, "/either", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestShopOwnerScope(t *testing.T) {
	owner := uuid.New()
	scoped := func(c *gin.Context) {
		id, ok := infraRepo.GetShopOwnerID(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"scoped": ok, "id": id.String(), "gin": GetShopOwnerID(c).String()})
	}

	r := gin.New()
	r.GET("/owner", withUser(owner, enum.UserRoleShopOwner), ShopOwnerScope(), scoped)
	r.GET("/customer", withUser(uuid.New(), enum.UserRoleCustomer), ShopOwnerScope(), scoped)

	var got struct {
		Scoped bool   `json:"scoped"`
		ID     string `json:"id"`
		Gin    string `json:"gin"`
	}
	w := serve(r, http.MethodGet, "/owner", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Scoped)
	assert.Equal(t, owner.String(), got.ID)
	assert.Equal(t, owner.String(), got.Gin)

	w = serve(r, http.MethodGet, "/customer", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.Scoped)
	assert.Equal(t, uuid.Nil.String(), got.Gin)
}

func TestUserRateLimiter(t *testing.T) {
	rl := NewUserRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	busy, quiet := uuid.New(), uuid.New()

	r := gin.New()
	r.GET("/busy", withUser(busy, enum.UserRoleShopOwner), rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/quiet", withUser(quiet, enum.UserRoleShopOwner), rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/busy", "", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/busy", "", nil).Code)
	w := serve(r, http.MethodGet, "/busy", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/quiet", "", nil).Code)
	assert.Equal(t, 2, rl.active())

	rl.now = func() time.Time { return time.Now().Add(time.Hour) }
	rl.cleanup()
	assert.Equal(t, 0, rl.active())
}

func TestIdempotencyRequired(t *testing.T) {
	repo := newMemoryKeys()
	calls := 0

	r := gin.New()
	r.POST("/sales", withUser(uuid.New(), enum.UserRoleShopOwner), IdempotencyRequired(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		if strings.Contains(c.GetHeader("X-Fail"), "yes") {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	w := serve(r, http.MethodPost, "/sales", `{"a":1}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, calls)

	key := map[string]string{IdempotencyKeyHeader: "abc"}
	first := serve(r, http.MethodPost, "/sales", `{"a":1}`, key)
	require.Equal(t, http.StatusCreated, first.Code)

	replay := serve(r, http.MethodPost, "/sales", `{"a":1}`, key)
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get(IdempotencyReplayedHeader))
	assert.JSONEq(t, first.Body.String(), replay.Body.String())
	assert.Equal(t, 1, calls)

	conflict := serve(r, http.MethodPost, "/sales", `{"a":2}`, key)
	assert.Equal(t, http.StatusConflict, conflict.Code)
	assert.Equal(t, 1, calls)

	t.Run("failures are not stored", func(t *testing.T) {
		retry := map[string]string{IdempotencyKeyHeader: "retry", "X-Fail": "yes"}
		assert.Equal(t, http.StatusUnprocessableEntity, serve(r, http.MethodPost, "/sales", `{}`, retry).Code)
		retry["X-Fail"] = "no"
		assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/sales", `{}`, retry).Code)
	})
}

func TestIdempotencyOptional(t *testing.T) {
	repo := newMemoryKeys()
	calls := 0

	r := gin.New()
	r.PUT("/sales/:id", withUser(uuid.New(), enum.UserRoleShopOwner), Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"call": calls})
	})

	serve(r, http.MethodPut, "/sales/1", `{}`, nil)
	serve(r, http.MethodPut, "/sales/1", `{}`, nil)
	assert.Equal(t, 2, calls)

	key := map[string]string{IdempotencyKeyHeader: "edit-1"}
	serve(r, http.MethodPut, "/sales/1", `{}`, key)
	serve(r, http.MethodPut, "/sales/1", `{}`, key)
	assert.Equal(t, 3, calls)
}
