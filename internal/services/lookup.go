package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "playersbudget/internal/errors"
	"playersbudget/internal/models"
)

// findBudget loads a budget or returns ErrBudgetNotFound.
func findBudget(db *gorm.DB, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := db.Where("id = ?", budgetID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// findScenario loads a scenario or returns ErrScenarioNotFound.
func findScenario(db *gorm.DB, scenarioID string) (*models.Scenario, error) {
	var scenario models.Scenario
	if err := db.Where("id = ?", scenarioID).First(&scenario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScenarioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &scenario, nil
}

// budgetState is the live data the budgeting core computes over.
type budgetState struct {
	scenarios  []models.Scenario
	items      []models.LineItem
	sources    []models.IncomeSource
	categories []models.Category
}

// loadBudgetState reads every live row of a budget. Scenarios, categories
// and income sources are returned in creation order.
func loadBudgetState(db *gorm.DB, budgetID string) (*budgetState, error) {
	var st budgetState
	if err := db.Where("budget_id = ?", budgetID).Order("created_at ASC, id ASC").Find(&st.scenarios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(st.scenarios) > 0 {
		ids := make([]string, 0, len(st.scenarios))
		for i := range st.scenarios {
			ids = append(ids, st.scenarios[i].ID)
		}
		if err := db.Where("scenario_id IN ?", ids).Order("created_at ASC, id ASC").Find(&st.items).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	if err := db.Where("budget_id = ?", budgetID).Order("created_at ASC, id ASC").Find(&st.sources).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := db.Where("budget_id = ?", budgetID).Order("created_at ASC, id ASC").Find(&st.categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &st, nil
}
