package models

import "github.com/shopspring/decimal"

// LineItemUnit is the billing cadence tag of a line item. It is informational
// only: the monthly amount is always quantity × unit cost.
type LineItemUnit string

const (
	LineItemUnitPerMonth  LineItemUnit = "per_month"
	LineItemUnitPerWeek   LineItemUnit = "per_week"
	LineItemUnitPerEvent  LineItemUnit = "per_event"
	LineItemUnitPerSeason LineItemUnit = "per_season"
	LineItemUnitOneTime   LineItemUnit = "one_time"
)

// LineItemUnits lists every accepted cadence tag.
var LineItemUnits = []LineItemUnit{
	LineItemUnitPerMonth,
	LineItemUnitPerWeek,
	LineItemUnitPerEvent,
	LineItemUnitPerSeason,
	LineItemUnitOneTime,
}

// LineItem is a single cost within a scenario.
// Quantity and UnitCost are nullable while the item is being filled in.
type LineItem struct {
	Base
	ScenarioID string              `gorm:"type:uuid;not null;index" json:"scenario_id"`
	CategoryID *string             `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Label      string              `gorm:"not null" json:"label"`
	Quantity   decimal.NullDecimal `gorm:"type:numeric" json:"quantity"`
	UnitCost   decimal.NullDecimal `gorm:"type:numeric" json:"unit_cost"`
	Unit       LineItemUnit        `gorm:"not null;default:'per_month'" json:"unit"`
	Currency   string              `gorm:"size:3;not null" json:"currency"`
}
