package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeType categorizes an income source.
type IncomeType string

const (
	IncomeTypePrize    IncomeType = "prize"
	IncomeTypeSponsors IncomeType = "sponsors"
	IncomeTypeGifts    IncomeType = "gifts"
	IncomeTypeOther    IncomeType = "other"
)

// IncomeTypes lists the recognized income types in display order.
var IncomeTypes = []IncomeType{IncomeTypePrize, IncomeTypeSponsors, IncomeTypeGifts, IncomeTypeOther}

// NormalizeIncomeType maps any unrecognized value to IncomeTypeOther.
func NormalizeIncomeType(s string) IncomeType {
	t := IncomeType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case IncomeTypePrize, IncomeTypeSponsors, IncomeTypeGifts:
		return t
	}
	return IncomeTypeOther
}

// IncomeSource is a recurring monthly income stream for a budget.
type IncomeSource struct {
	Base
	BudgetID      string              `gorm:"type:uuid;not null;index" json:"budget_id"`
	Label         string              `gorm:"not null" json:"label"`
	AmountMonthly decimal.NullDecimal `gorm:"type:numeric" json:"amount_monthly"`
	Currency      string              `gorm:"size:3;not null" json:"currency"`
	Type          IncomeType          `gorm:"not null;default:'other'" json:"type"`
}

// BeforeSave keeps the stored type inside the recognized set.
func (i *IncomeSource) BeforeSave(_ *gorm.DB) error {
	i.Type = NormalizeIncomeType(string(i.Type))
	return nil
}
