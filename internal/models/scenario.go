package models

// Scenario is one alternative plan for a budget (e.g. "Lean", "Premium").
// Its monthly total is always derived from its line items and never stored.
type Scenario struct {
	Base
	BudgetID  string `gorm:"type:uuid;not null;index" json:"budget_id"`
	Name      string `gorm:"not null" json:"name"`
	IsDefault bool   `gorm:"default:false" json:"is_default"`

	// Relationships
	LineItems []LineItem `gorm:"foreignKey:ScenarioID" json:"line_items,omitempty"`
}
