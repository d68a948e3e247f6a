package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "playersbudget/internal/errors"
	"playersbudget/internal/models"
)

// lineItemService handles line item business logic. Edits take effect
// immediately; totals are recomputed from the stored rows on every read.
type lineItemService struct {
	db *gorm.DB
}

// NewLineItemService creates a new LineItemServicer.
func NewLineItemService(db *gorm.DB) LineItemServicer {
	return &lineItemService{db: db}
}

// CreateLineItem adds a line item to a scenario. The currency defaults to the
// budget's base currency and the unit to per_month.
func (s *lineItemService) CreateLineItem(scenarioID string, input LineItemInput) (*models.LineItem, error) {
	scenario, err := findScenario(s.db, scenarioID)
	if err != nil {
		return nil, err
	}
	budget, err := findBudget(s.db, scenario.BudgetID)
	if err != nil {
		return nil, err
	}
	if input.CategoryID != nil {
		if err := s.checkCategory(budget.ID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	currency := strings.ToUpper(input.Currency)
	if currency == "" {
		currency = budget.BaseCurrency
	}
	unit := input.Unit
	if unit == "" {
		unit = models.LineItemUnitPerMonth
	}

	item := &models.LineItem{
		ScenarioID: scenario.ID,
		CategoryID: input.CategoryID,
		Label:      input.Label,
		Quantity:   input.Quantity,
		UnitCost:   input.UnitCost,
		Unit:       unit,
		Currency:   currency,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// GetScenarioLineItems returns a scenario's line items in creation order.
func (s *lineItemService) GetScenarioLineItems(scenarioID string) ([]models.LineItem, error) {
	if _, err := findScenario(s.db, scenarioID); err != nil {
		return nil, err
	}

	items := []models.LineItem{}
	if err := s.db.Where("scenario_id = ?", scenarioID).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return items, nil
}

// GetLineItemByID returns a line item by ID.
func (s *lineItemService) GetLineItemByID(lineItemID string) (*models.LineItem, error) {
	var item models.LineItem
	if err := s.db.Where("id = ?", lineItemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLineItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// UpdateLineItem applies a partial update. Quantity and unit cost can be
// cleared back to null, which the totals read as 1 and 0.
func (s *lineItemService) UpdateLineItem(lineItemID string, update LineItemUpdate) (*models.LineItem, error) {
	item, err := s.GetLineItemByID(lineItemID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	switch {
	case update.ClearCategory:
		updates["category_id"] = nil
	case update.CategoryID != nil:
		scenario, err := findScenario(s.db, item.ScenarioID)
		if err != nil {
			return nil, err
		}
		if err := s.checkCategory(scenario.BudgetID, *update.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *update.CategoryID
	}
	if update.Label != nil {
		updates["label"] = *update.Label
	}
	switch {
	case update.ClearQuantity:
		updates["quantity"] = decimal.NullDecimal{}
	case update.Quantity != nil:
		updates["quantity"] = decimal.NewNullDecimal(*update.Quantity)
	}
	switch {
	case update.ClearUnitCost:
		updates["unit_cost"] = decimal.NullDecimal{}
	case update.UnitCost != nil:
		updates["unit_cost"] = decimal.NewNullDecimal(*update.UnitCost)
	}
	if update.Unit != nil {
		updates["unit"] = *update.Unit
	}
	if update.Currency != nil {
		updates["currency"] = strings.ToUpper(*update.Currency)
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	// Reload so cleared columns come back as nulls.
	return s.GetLineItemByID(lineItemID)
}

// DeleteLineItem soft-deletes a line item.
func (s *lineItemService) DeleteLineItem(lineItemID string) error {
	item, err := s.GetLineItemByID(lineItemID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(item).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// checkCategory verifies that categoryID belongs to budgetID.
func (s *lineItemService) checkCategory(budgetID, categoryID string) error {
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("id = ? AND budget_id = ?", categoryID, budgetID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
