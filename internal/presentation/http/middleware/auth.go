package middleware

import (
	"errors"
	"strings"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/response"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID       = "user_id"
	ContextUserEmail    = "user_email"
	ContextUserRole     = "user_role"
	ContextCustomerCode = "customer_code"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Unauthorized(c, "Token has expired")
			} else {
				response.Unauthorized(c, "Invalid or expired token")
			}
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, enum.UserRole(claims.Role))
		c.Set(ContextCustomerCode, claims.CustomerCode)

		c.Next()
	}
}

// RequireRole rejects callers whose role is not listed. The 403 carries the
// dashboard the caller should be sent to instead.
func RequireRole(roles ...enum.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextUserRole)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}
		userRole, _ := role.(enum.UserRole)

		for _, allowed := range roles {
			if userRole == allowed {
				c.Next()
				return
			}
		}

		response.ForbiddenRedirect(c, "This page is not available for your account type", userRole.DashboardPath())
		c.Abort()
	}
}
