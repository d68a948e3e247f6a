package services

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"playersbudget/internal/budgeting"
	apperrors "playersbudget/internal/errors"
	"playersbudget/internal/models"
	"playersbudget/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db              *gorm.DB
	defaultCurrency string
}

// NewBudgetService creates a new BudgetServicer. defaultCurrency is used for
// budgets created without a base currency.
func NewBudgetService(db *gorm.DB, defaultCurrency string) BudgetServicer {
	if defaultCurrency == "" {
		defaultCurrency = models.DefaultBaseCurrency
	}
	return &budgetService{db: db, defaultCurrency: strings.ToUpper(defaultCurrency)}
}

// CreateBudget creates a new active budget.
func (s *budgetService) CreateBudget(title, baseCurrency string, seasonYear int) (*models.Budget, error) {
	if baseCurrency == "" {
		baseCurrency = s.defaultCurrency
	}

	budget := &models.Budget{
		Title:        title,
		BaseCurrency: strings.ToUpper(baseCurrency),
		SeasonYear:   seasonYear,
		IsActive:     true,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetBudgets returns a paginated list of budgets, newest season first.
func (s *budgetService) GetBudgets(page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{})
	if isActive != nil {
		base = base.Where("is_active = ?", *isActive)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Order("season_year DESC, created_at DESC").Scopes(pagination.Paginate(page)).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget with its scenarios, categories and income sources.
func (s *budgetService) GetBudgetByID(budgetID string) (*models.Budget, error) {
	budget, err := findBudget(s.db, budgetID)
	if err != nil {
		return nil, err
	}
	st, err := loadBudgetState(s.db, budgetID)
	if err != nil {
		return nil, err
	}
	budget.Scenarios = st.scenarios
	budget.Categories = st.categories
	budget.IncomeSources = st.sources
	return budget, nil
}

// UpdateBudget updates the provided fields of a budget.
func (s *budgetService) UpdateBudget(budgetID string, update BudgetUpdate) (*models.Budget, error) {
	budget, err := findBudget(s.db, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.BaseCurrency != nil {
		updates["base_currency"] = strings.ToUpper(*update.BaseCurrency)
	}
	if update.SeasonYear != nil {
		updates["season_year"] = *update.SeasonYear
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return budget, nil
}

// DeleteBudget soft-deletes a budget. Its children become unreachable
// through the API but are kept for history.
func (s *budgetService) DeleteBudget(budgetID string) error {
	budget, err := findBudget(s.db, budgetID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetSummary computes scenario totals, the comparison against
// baselineID, and spend and income totals for a budget.
func (s *budgetService) GetBudgetSummary(budgetID, baselineID string) (*BudgetSummary, error) {
	budget, err := findBudget(s.db, budgetID)
	if err != nil {
		return nil, err
	}
	st, err := loadBudgetState(s.db, budgetID)
	if err != nil {
		return nil, err
	}

	totals := budgeting.ComputeScenarioTotals(st.scenarios, st.items)
	rows := budgeting.CompareScenarios(totals, baselineID)
	spend := budgeting.SpendTotal(totals)
	income := budgeting.IncomeTotal(st.sources)

	summary := &BudgetSummary{
		BudgetID:         budget.ID,
		BaseCurrency:     budget.BaseCurrency,
		Scenarios:        rows,
		SpendTotal:       spend,
		IncomeTotal:      income,
		Net:              income.Sub(spend),
		IncomeByType:     budgeting.IncomeByType(st.sources),
		CurrencyWarnings: budgeting.MixedCurrencyScenarios(st.scenarios, st.items, budget.BaseCurrency),
	}
	if summary.CurrencyWarnings == nil {
		summary.CurrencyWarnings = []budgeting.CurrencyMix{}
	}
	for i := range rows {
		if rows[i].IsBaseline {
			summary.BaselineID = rows[i].ScenarioID
			break
		}
	}
	if lowest, ok := budgeting.LowestCost(totals); ok {
		summary.LowestCost = &lowest
	}

	display, err := formatSummary(budget.BaseCurrency, spend, income, totals)
	if err != nil {
		return nil, err
	}
	summary.Display = display
	return summary, nil
}

// formatSummary renders the summary amounts for display.
func formatSummary(code string, spend, income decimal.Decimal, totals []budgeting.ScenarioTotal) (SummaryDisplay, error) {
	format := func(amount decimal.Decimal) (string, error) {
		out, err := budgeting.FormatCurrency(amount, code)
		if err != nil {
			return "", apperrors.Wrap(apperrors.ErrInvalidCurrency, err)
		}
		return out, nil
	}

	var display SummaryDisplay
	var err error
	if display.SpendTotal, err = format(spend); err != nil {
		return SummaryDisplay{}, err
	}
	if display.IncomeTotal, err = format(income); err != nil {
		return SummaryDisplay{}, err
	}
	if display.Net, err = format(income.Sub(spend)); err != nil {
		return SummaryDisplay{}, err
	}

	display.Scenarios = make(map[string]string, len(totals))
	for i := range totals {
		out, err := format(totals[i].Total)
		if err != nil {
			return SummaryDisplay{}, err
		}
		display.Scenarios[totals[i].ScenarioID] = out
	}
	return display, nil
}
