package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the key store
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a mutating request repeats a
// key it has already used. Requests without a key proceed normally.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		userID := contextUserID(c)
		if key == "" || userID == uuid.Nil {
			c.Next()
			return
		}

		replayOrRecord(c, config.Repo, key, userID)
	}
}

// IdempotencyRequired is the strict variant for POST requests that must never
// run twice, such as recording a sale
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			response.BadRequest(c, "Idempotency-Key header is required for this request")
			c.Abort()
			return
		}

		userID := contextUserID(c)
		if userID == uuid.Nil {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		replayOrRecord(c, config.Repo, key, userID)
	}
}

func replayOrRecord(c *gin.Context, repo repository.IdempotencyRepository, key string, userID uuid.UUID) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "Invalid request body")
		c.Abort()
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	hash := requestHash(c.Request.Method, c.FullPath(), body)

	existing, err := repo.GetByKey(ctx, key, userID)
	if err != nil {
		slog.ErrorContext(ctx, "idempotency lookup failed", "error", err)
		response.InternalServerError(c, "Failed to check idempotency key")
		c.Abort()
		return
	}

	if existing != nil && !existing.IsExpired() {
		if existing.RequestHash != "" && existing.RequestHash != hash {
			response.ErrorWithCode(c, http.StatusConflict, "Idempotency-Key was already used for a different request")
			c.Abort()
			return
		}
		c.Header(IdempotencyReplayedHeader, "true")
		c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
		c.Abort()
		return
	}

	// Capture the response
	blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
	c.Writer = blw

	c.Next()

	// Only successful responses are stored so a failed attempt can be retried
	status := c.Writer.Status()
	if status < 200 || status >= 300 {
		return
	}

	ikey := &entity.IdempotencyKey{
		Key:          key,
		UserID:       userID,
		Endpoint:     c.Request.Method + " " + c.FullPath(),
		RequestHash:  hash,
		ResponseCode: status,
		ResponseBody: blw.body.String(),
		ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
	}
	if err := repo.Create(ctx, ikey); err != nil {
		slog.WarnContext(ctx, "idempotency key not stored", "key", key, "error", err)
	}
}

func requestHash(method, route string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method + " " + route + "\n"))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func contextUserID(c *gin.Context) uuid.UUID {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
