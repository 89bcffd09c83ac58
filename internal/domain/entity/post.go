package entity

import (
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Post is a community feed entry
type Post struct {
	ID         uuid.UUID                   `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID   uuid.UUID                   `gorm:"type:uuid;not null;index" json:"author_id"`
	AuthorName string                      `gorm:"size:255;not null" json:"author"`
	UserType   enum.UserRole               `gorm:"size:20;not null" json:"user_type"`
	Location   string                      `gorm:"size:255" json:"location"`
	Content    string                      `gorm:"type:text;not null" json:"content"`
	ImageURL   *string                     `gorm:"size:512" json:"image,omitempty"`
	Likes      int                         `gorm:"not null;default:0" json:"likes"`
	Comments   int                         `gorm:"not null;default:0" json:"comments"`
	Tags       datatypes.JSONSlice[string] `json:"tags"`
	CreatedAt  time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Post) TableName() string {
	return "posts"
}
