package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockItem is an inventory line kept by a shop owner
type StockItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ShopOwnerID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"shop_owner_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Category     string         `gorm:"size:100;index" json:"category"`
	Unit         string         `gorm:"size:20" json:"unit"`
	CurrentStock int            `gorm:"not null;default:0" json:"current_stock"`
	MinStock     int            `gorm:"not null;default:0" json:"min_stock"`
	Price        float64        `gorm:"not null;default:0" json:"price"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *StockItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (StockItem) TableName() string {
	return "stock_items"
}

// IsLow reports whether the item has fallen to or below its minimum
func (s *StockItem) IsLow() bool {
	return s.CurrentStock <= s.MinStock
}

// Value is the stock on hand priced at the unit price
func (s *StockItem) Value() float64 {
	return float64(s.CurrentStock) * s.Price
}
