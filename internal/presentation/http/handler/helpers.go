package handler

import (
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/service"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/request"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/response"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/middleware"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.UserRole {
	role, exists := c.Get(middleware.ContextUserRole)
	if !exists {
		return ""
	}
	r, _ := role.(enum.UserRole)
	return r
}

// GetCustomerCode extracts the caller's customer code from the Gin context
func GetCustomerCode(c *gin.Context) string {
	return c.GetString(middleware.ContextCustomerCode)
}

// parseID reads the :id path parameter, replying 400 when it is not a UUID
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(page, perPage int) *pagination.PaginationParams {
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}

// parseDate parses a YYYY-MM-DD query value, ignoring malformed input
func parseDate(raw string, loc *time.Location) *time.Time {
	if raw == "" {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return nil
	}
	return &t
}

func toLineInputs(items []request.LineItemRequest) []service.LineInput {
	if items == nil {
		return nil
	}
	out := make([]service.LineInput, len(items))
	for i, it := range items {
		out[i] = service.LineInput{
			Name:     it.Name,
			Quantity: string(it.Quantity),
			Unit:     it.Unit,
			Price:    string(it.Price),
			Category: it.Category,
		}
	}
	return out
}
