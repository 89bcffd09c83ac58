package entity

import (
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Note is a free-form memo kept by a shop owner
type Note struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primary_key" json:"id"`
	ShopOwnerID uuid.UUID                   `gorm:"type:uuid;not null;index" json:"shop_owner_id"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Content     string                      `gorm:"type:text" json:"content"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Priority    enum.NotePriority           `gorm:"size:10;not null;default:'medium'" json:"priority"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
	DeletedAt   gorm.DeletedAt              `gorm:"index" json:"-"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Priority == "" {
		n.Priority = enum.NotePriorityMedium
	}
	return nil
}

func (Note) TableName() string {
	return "notes"
}
