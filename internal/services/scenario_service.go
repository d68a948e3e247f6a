package services

import (
	"gorm.io/gorm"

	"playersbudget/internal/budgeting"
	apperrors "playersbudget/internal/errors"
	"playersbudget/internal/models"
)

// scenarioService handles scenario business logic.
type scenarioService struct {
	db *gorm.DB
}

// NewScenarioService creates a new ScenarioServicer.
func NewScenarioService(db *gorm.DB) ScenarioServicer {
	return &scenarioService{db: db}
}

// CreateScenario creates a scenario in a budget. Marking it as default
// clears the flag on the budget's other scenarios.
func (s *scenarioService) CreateScenario(budgetID, name string, isDefault bool) (*models.Scenario, error) {
	if _, err := findBudget(s.db, budgetID); err != nil {
		return nil, err
	}

	scenario := &models.Scenario{
		BudgetID:  budgetID,
		Name:      name,
		IsDefault: isDefault,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if isDefault {
			if err := clearDefaultScenario(tx, budgetID); err != nil {
				return err
			}
		}
		return tx.Create(scenario).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return scenario, nil
}

// GetBudgetScenarios returns a budget's scenarios in creation order.
func (s *scenarioService) GetBudgetScenarios(budgetID string) ([]models.Scenario, error) {
	if _, err := findBudget(s.db, budgetID); err != nil {
		return nil, err
	}

	scenarios := []models.Scenario{}
	if err := s.db.Where("budget_id = ?", budgetID).Order("created_at ASC, id ASC").Find(&scenarios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return scenarios, nil
}

// GetScenarioByID returns a scenario with its line items.
func (s *scenarioService) GetScenarioByID(scenarioID string) (*models.Scenario, error) {
	scenario, err := findScenario(s.db, scenarioID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Where("scenario_id = ?", scenarioID).Order("created_at ASC, id ASC").Find(&scenario.LineItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return scenario, nil
}

// UpdateScenario renames a scenario or changes its default flag.
func (s *scenarioService) UpdateScenario(scenarioID string, update ScenarioUpdate) (*models.Scenario, error) {
	scenario, err := findScenario(s.db, scenarioID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.IsDefault != nil {
		updates["is_default"] = *update.IsDefault
	}
	if len(updates) == 0 {
		return scenario, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if update.IsDefault != nil && *update.IsDefault {
			if err := clearDefaultScenario(tx, scenario.BudgetID); err != nil {
				return err
			}
		}
		return tx.Model(scenario).Updates(updates).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return scenario, nil
}

// DeleteScenario soft-deletes a scenario together with its line items.
func (s *scenarioService) DeleteScenario(scenarioID string) error {
	scenario, err := findScenario(s.db, scenarioID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scenario_id = ?", scenarioID).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(scenario).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CompareScenarios compares every scenario of a budget against baselineID.
// An empty or unknown baselineID falls back to the first scenario.
func (s *scenarioService) CompareScenarios(budgetID, baselineID string) (*ScenarioComparison, error) {
	if _, err := findBudget(s.db, budgetID); err != nil {
		return nil, err
	}
	st, err := loadBudgetState(s.db, budgetID)
	if err != nil {
		return nil, err
	}

	totals := budgeting.ComputeScenarioTotals(st.scenarios, st.items)
	result := &ScenarioComparison{
		BudgetID: budgetID,
		Rows:     budgeting.CompareScenarios(totals, baselineID),
	}
	for i := range result.Rows {
		if result.Rows[i].IsBaseline {
			result.BaselineID = result.Rows[i].ScenarioID
			break
		}
	}
	if lowest, ok := budgeting.LowestCost(totals); ok {
		result.LowestCost = &lowest
	}
	return result, nil
}

func clearDefaultScenario(tx *gorm.DB, budgetID string) error {
	return tx.Model(&models.Scenario{}).
		Where("budget_id = ? AND is_default = ?", budgetID, true).
		Update("is_default", false).Error
}
