package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "playersbudget/internal/errors"
	"playersbudget/internal/models"
)

// incomeSourceService handles income source business logic.
type incomeSourceService struct {
	db *gorm.DB
}

// NewIncomeSourceService creates a new IncomeSourceServicer.
func NewIncomeSourceService(db *gorm.DB) IncomeSourceServicer {
	return &incomeSourceService{db: db}
}

// CreateIncomeSource adds an income source to a budget. Unrecognized types
// are stored as other; the currency defaults to the budget's base currency.
func (s *incomeSourceService) CreateIncomeSource(
	budgetID, label string,
	amountMonthly decimal.NullDecimal,
	currency, incomeType string,
) (*models.IncomeSource, error) {
	budget, err := findBudget(s.db, budgetID)
	if err != nil {
		return nil, err
	}

	currency = strings.ToUpper(currency)
	if currency == "" {
		currency = budget.BaseCurrency
	}

	source := &models.IncomeSource{
		BudgetID:      budget.ID,
		Label:         label,
		AmountMonthly: amountMonthly,
		Currency:      currency,
		Type:          models.NormalizeIncomeType(incomeType),
	}
	if err := s.db.Create(source).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return source, nil
}

// GetBudgetIncomeSources returns a budget's income sources in creation order.
func (s *incomeSourceService) GetBudgetIncomeSources(budgetID string) ([]models.IncomeSource, error) {
	if _, err := findBudget(s.db, budgetID); err != nil {
		return nil, err
	}

	sources := []models.IncomeSource{}
	if err := s.db.Where("budget_id = ?", budgetID).Order("created_at ASC, id ASC").Find(&sources).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sources, nil
}

// GetIncomeSourceByID returns an income source by ID.
func (s *incomeSourceService) GetIncomeSourceByID(incomeSourceID string) (*models.IncomeSource, error) {
	var source models.IncomeSource
	if err := s.db.Where("id = ?", incomeSourceID).First(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeSourceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &source, nil
}

// UpdateIncomeSource applies a partial update to an income source.
func (s *incomeSourceService) UpdateIncomeSource(incomeSourceID string, update IncomeSourceUpdate) (*models.IncomeSource, error) {
	source, err := s.GetIncomeSourceByID(incomeSourceID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Label != nil {
		updates["label"] = *update.Label
	}
	switch {
	case update.ClearAmount:
		updates["amount_monthly"] = decimal.NullDecimal{}
	case update.AmountMonthly != nil:
		updates["amount_monthly"] = decimal.NewNullDecimal(*update.AmountMonthly)
	}
	if update.Currency != nil {
		updates["currency"] = strings.ToUpper(*update.Currency)
	}
	if update.Type != nil {
		updates["type"] = models.NormalizeIncomeType(*update.Type)
	}

	if len(updates) > 0 {
		if err := s.db.Model(source).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return s.GetIncomeSourceByID(incomeSourceID)
}

// DeleteIncomeSource soft-deletes an income source.
func (s *incomeSourceService) DeleteIncomeSource(incomeSourceID string) error {
	source, err := s.GetIncomeSourceByID(incomeSourceID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(source).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
