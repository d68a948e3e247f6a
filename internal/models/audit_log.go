package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// AuditChanges is the JSON detail attached to an audit entry.
type AuditChanges map[string]interface{}

// Value implements driver.Valuer. An empty set is stored as NULL.
func (c AuditChanges) Value() (driver.Value, error) {
	if len(c) == 0 {
		return nil, nil
	}
	return marshalColumn(c)
}

// Scan implements sql.Scanner.
func (c *AuditChanges) Scan(value interface{}) error {
	return unmarshalColumn(value, c)
}

// AuditLog is an append-only record of a mutating API call.
type AuditLog struct {
	ID           string       `gorm:"type:uuid;primaryKey" json:"id"`
	Action       string       `gorm:"not null" json:"action"`
	ResourceType string       `gorm:"not null" json:"resource_type"`
	ResourceID   string       `gorm:"type:uuid;index" json:"resource_id"`
	IPAddress    string       `json:"ip_address"`
	Changes      AuditChanges `gorm:"type:jsonb" json:"changes,omitempty"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
}

// BeforeCreate assigns a UUIDv7 to new entries.
func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	assignID(&a.ID)
	return nil
}
