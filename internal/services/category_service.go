package services

import (
	"errors"

	"gorm.io/gorm"

	"playersbudget/internal/budgeting"
	apperrors "playersbudget/internal/errors"
	"playersbudget/internal/models"
)

// categoryService handles budget category business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a category within a budget.
func (s *categoryService) CreateCategory(budgetID, name, color string) (*models.Category, error) {
	if _, err := findBudget(s.db, budgetID); err != nil {
		return nil, err
	}

	category := &models.Category{
		BudgetID: budgetID,
		Name:     name,
		Color:    color,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetBudgetCategories returns a budget's categories in creation order.
func (s *categoryService) GetBudgetCategories(budgetID string) ([]models.Category, error) {
	if _, err := findBudget(s.db, budgetID); err != nil {
		return nil, err
	}

	categories := []models.Category{}
	if err := s.db.Where("budget_id = ?", budgetID).Order("created_at ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID returns a category by ID.
func (s *categoryService) GetCategoryByID(categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory renames or recolors a category.
func (s *categoryService) UpdateCategory(categoryID string, name, color *string) (*models.Category, error) {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil {
		updates["name"] = *name
	}
	if color != nil {
		updates["color"] = *color
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return category, nil
}

// DeleteCategory soft-deletes a category that no line item references.
func (s *categoryService) DeleteCategory(categoryID string) error {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return err
	}

	var inUse int64
	if err := s.db.Model(&models.LineItem{}).Where("category_id = ?", categoryID).Count(&inUse).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if inUse > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetCategoryBreakdown groups each scenario's total by category.
func (s *categoryService) GetCategoryBreakdown(budgetID string) ([]budgeting.ScenarioBreakdown, error) {
	if _, err := findBudget(s.db, budgetID); err != nil {
		return nil, err
	}
	st, err := loadBudgetState(s.db, budgetID)
	if err != nil {
		return nil, err
	}
	return budgeting.BreakdownByCategory(st.scenarios, st.categories, st.items), nil
}
