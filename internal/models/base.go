package models

import (
	"time"

	"playersbudget/internal/uuid"

	"gorm.io/gorm"
)

// Base contains the id, timestamps and soft-delete column shared by the
// editable budget tables.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUIDv7 unless the caller supplied an id, which
// restores do to bring captured rows back under their original ids.
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	assignID(&b.ID)
	return nil
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.New()
	}
}
