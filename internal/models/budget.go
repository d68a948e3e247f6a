package models

// DefaultBaseCurrency is used when a budget is created without a base currency.
const DefaultBaseCurrency = "USD"

// Budget is the top-level container for one athlete season.
type Budget struct {
	Base
	Title        string `gorm:"not null" json:"title"`
	BaseCurrency string `gorm:"size:3;not null;default:'USD'" json:"base_currency"`
	SeasonYear   int    `gorm:"not null" json:"season_year"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	// Relationships
	Scenarios     []Scenario     `gorm:"foreignKey:BudgetID" json:"scenarios,omitempty"`
	IncomeSources []IncomeSource `gorm:"foreignKey:BudgetID" json:"income_sources,omitempty"`
	Categories    []Category     `gorm:"foreignKey:BudgetID" json:"categories,omitempty"`
}
