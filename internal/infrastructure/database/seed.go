package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/utils"
	"gorm.io/gorm"
)

// SeedConfig describes the bootstrap shop owner account
type SeedConfig struct {
	OwnerEmail    string
	OwnerPassword string
	OwnerName     string
	BusinessName  string
}

// SeedDefaultData creates the bootstrap shop owner when credentials are
// configured and the account does not exist yet.
func SeedDefaultData(db *gorm.DB, cfg SeedConfig) error {
	if cfg.OwnerEmail == "" || cfg.OwnerPassword == "" {
		return nil
	}

	var existing entity.User
	err := db.Where("email = ?", cfg.OwnerEmail).First(&existing).Error
	if err == nil {
		slog.Debug("seed shop owner already exists", "email", cfg.OwnerEmail)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up seed shop owner: %w", err)
	}

	hashed, err := utils.HashPassword(cfg.OwnerPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	name := cfg.OwnerName
	if name == "" {
		name = "Shop Owner"
	}
	owner := &entity.User{
		Role:     enum.UserRoleShopOwner,
		FullName: name,
		Email:    cfg.OwnerEmail,
		Password: hashed,
	}
	if cfg.BusinessName != "" {
		owner.BusinessName = &cfg.BusinessName
	}
	if err := db.Create(owner).Error; err != nil {
		return fmt.Errorf("create seed shop owner: %w", err)
	}

	slog.Info("seed shop owner created", "email", owner.Email, "customer_id", owner.CustomerCode)
	return nil
}
