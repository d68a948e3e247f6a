package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SnapshotScenarioTotal is one scenario's total as captured by a snapshot.
type SnapshotScenarioTotal struct {
	ScenarioID string          `json:"scenario_id"`
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
}

// SnapshotScenarioTotals is stored as a JSON column.
type SnapshotScenarioTotals []SnapshotScenarioTotal

// Value implements driver.Valuer.
func (s SnapshotScenarioTotals) Value() (driver.Value, error) {
	return marshalColumn(s)
}

// Scan implements sql.Scanner.
func (s *SnapshotScenarioTotals) Scan(value interface{}) error {
	return unmarshalColumn(value, s)
}

// SnapshotScenario is a scenario row captured for restore.
type SnapshotScenario struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

// SnapshotLineItem is a line item row captured for restore.
type SnapshotLineItem struct {
	ID         string              `json:"id"`
	ScenarioID string              `json:"scenario_id"`
	CategoryID *string             `json:"category_id,omitempty"`
	Label      string              `json:"label"`
	Quantity   decimal.NullDecimal `json:"quantity"`
	UnitCost   decimal.NullDecimal `json:"unit_cost"`
	Unit       LineItemUnit        `json:"unit"`
	Currency   string              `json:"currency"`
}

// SnapshotPayload holds the live rows a snapshot was computed from.
type SnapshotPayload struct {
	Scenarios []SnapshotScenario `json:"scenarios"`
	LineItems []SnapshotLineItem `json:"line_items"`
}

// Value implements driver.Valuer.
func (p SnapshotPayload) Value() (driver.Value, error) {
	return marshalColumn(p)
}

// Scan implements sql.Scanner.
func (p *SnapshotPayload) Scan(value interface{}) error {
	return unmarshalColumn(value, p)
}

// BudgetSnapshot is an immutable capture of a budget's totals.
// Only Note may change after creation. No Base embed, no soft deletes.
type BudgetSnapshot struct {
	ID             string                 `gorm:"type:uuid;primaryKey" json:"id"`
	BudgetID       string                 `gorm:"type:uuid;not null;index" json:"budget_id"`
	Note           *string                `json:"note,omitempty"`
	ScenarioTotals SnapshotScenarioTotals `gorm:"type:jsonb;not null" json:"scenario_totals"`
	SpendTotal     decimal.Decimal        `gorm:"type:numeric;not null" json:"spend_total"`
	IncomeTotal    decimal.Decimal        `gorm:"type:numeric;not null" json:"income_total"`
	Payload        SnapshotPayload        `gorm:"type:jsonb;not null" json:"-"`
	CreatedAt      time.Time              `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate assigns a UUIDv7 to new snapshots.
func (s *BudgetSnapshot) BeforeCreate(_ *gorm.DB) error {
	assignID(&s.ID)
	return nil
}

func marshalColumn(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func unmarshalColumn(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
}
