package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base gives a table a UUID primary key and timestamps. Rows are never
// soft-deleted: unique indexes must see every row.
type Base struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = NewID()
	}
	return nil
}

func NewID() string {
	return uuid.NewString()
}
