package entity

import (
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account holder. Shop owners bill customers; every user carries a
// customer code so that a shop owner can also be billed by another shop.
type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Role            enum.UserRole  `gorm:"size:20;not null;index" json:"role"`
	CustomerCode    string         `gorm:"size:20;uniqueIndex;not null" json:"customer_id"`
	FullName        string         `gorm:"size:255;not null" json:"full_name"`
	Email           string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone           string         `gorm:"size:50" json:"phone"`
	Password        string         `gorm:"size:255" json:"-"`
	BusinessName    *string        `gorm:"size:255" json:"business_name,omitempty"`
	BusinessAddress *string        `gorm:"type:text" json:"business_address,omitempty"`
	Location        *string        `gorm:"size:255" json:"location,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns the UUID and, when absent, a fresh customer code
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CustomerCode == "" {
		u.CustomerCode = utils.GenerateCustomerCode()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "profiles"
}

// IsShopOwner reports whether the user runs a shop
func (u *User) IsShopOwner() bool {
	return u.Role == enum.UserRoleShopOwner
}

// DisplayBusinessName falls back to the owner's name when no business name is set
func (u *User) DisplayBusinessName() string {
	if u.BusinessName != nil && *u.BusinessName != "" {
		return *u.BusinessName
	}
	return u.FullName
}
