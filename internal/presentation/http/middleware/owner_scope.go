package middleware

import (
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	infraRepo "github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextShopOwnerID is set for requests made by a shop owner
const ContextShopOwnerID = "shop_owner_id"

// ShopOwnerScope puts the authenticated shop owner into the request context so
// repositories only see that owner's sales, stock and notes. Customers pass
// through without a scope and therefore see no owner data.
func ShopOwnerScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		if role != enum.UserRoleShopOwner {
			c.Next()
			return
		}

		userID, ok := c.Get(ContextUserID)
		if !ok {
			c.Next()
			return
		}
		id, ok := userID.(uuid.UUID)
		if !ok || id == uuid.Nil {
			response.Unauthorized(c, "Invalid user context")
			c.Abort()
			return
		}

		c.Set(ContextShopOwnerID, id)
		ctx := infraRepo.WithShopOwner(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetShopOwnerID retrieves the shop owner scope from gin context
func GetShopOwnerID(c *gin.Context) uuid.UUID {
	ownerID, exists := c.Get(ContextShopOwnerID)
	if !exists {
		return uuid.Nil
	}
	id, ok := ownerID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
