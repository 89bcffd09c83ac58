package repository

import (
	"context"
	"testing"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createOwner(t *testing.T, db *gorm.DB) (*entity.User, context.Context) {
	t.Helper()
	owner := &entity.User{
		Role:     enum.UserRoleShopOwner,
		FullName: "Owner " + uuid.NewString()[:6],
		Email:    uuid.NewString() + "@shop.in",
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), owner))
	return owner, WithShopOwner(context.Background(), owner.ID)
}
