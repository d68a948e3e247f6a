package models

// Category groups line items within a budget (travel, coaching, equipment...).
type Category struct {
	Base
	BudgetID string `gorm:"type:uuid;not null;index" json:"budget_id"`
	Name     string `gorm:"not null" json:"name"`
	Color    string `json:"color,omitempty"`
}
