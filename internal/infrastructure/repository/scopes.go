package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// ShopOwnerIDKey is the context key for the owning shop owner
	ShopOwnerIDKey ctxKey = "shop_owner_id"
)

// OwnerScope restricts a query to rows owned by the shop owner in ctx.
// Without an owner in ctx nothing matches, so a missing middleware can never
// leak another shop's data.
func OwnerScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		ownerID, ok := GetShopOwnerID(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("shop_owner_id = ?", ownerID)
	}
}

// WithShopOwner adds the shop owner ID to ctx
func WithShopOwner(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, ShopOwnerIDKey, ownerID)
}

// GetShopOwnerID extracts the shop owner ID from ctx
func GetShopOwnerID(ctx context.Context) (uuid.UUID, bool) {
	ownerID, ok := ctx.Value(ShopOwnerIDKey).(uuid.UUID)
	if !ok || ownerID == uuid.Nil {
		return uuid.Nil, false
	}
	return ownerID, true
}

// containsPattern builds a LIKE pattern for case-insensitive substring search
// used with LOWER(column) LIKE ?
func containsPattern(search string) string {
	s := strings.ToLower(strings.TrimSpace(search))
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}

// orderClause whitelists a sort column and direction
func orderClause(sortBy, sortOrder string, allowed map[string]string, fallback string) string {
	column, ok := allowed[sortBy]
	if !ok {
		column = fallback
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}
