package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"playersbudget/internal/budgeting"
	"playersbudget/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestBudget creates an active USD budget for the current season.
func CreateTestBudget(t *testing.T, db *gorm.DB) *models.Budget {
	t.Helper()
	return CreateTestBudgetWithCurrency(t, db, "USD")
}

// CreateTestBudgetWithCurrency creates an active budget in the given base currency.
func CreateTestBudgetWithCurrency(t *testing.T, db *gorm.DB, currency string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Title:        fmt.Sprintf("Test Season %d", nextID()),
		BaseCurrency: currency,
		SeasonYear:   time.Now().Year(),
		IsActive:     true,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestScenario creates a named scenario in the given budget.
func CreateTestScenario(t *testing.T, db *gorm.DB, budgetID, name string) *models.Scenario {
	t.Helper()

	if name == "" {
		name = fmt.Sprintf("Test Scenario %d", nextID())
	}
	scenario := &models.Scenario{
		BudgetID: budgetID,
		Name:     name,
	}
	if err := db.Create(scenario).Error; err != nil {
		t.Fatalf("failed to create test scenario: %v", err)
	}
	return scenario
}

// CreateTestCategory creates a category in the given budget.
func CreateTestCategory(t *testing.T, db *gorm.DB, budgetID string) *models.Category {
	t.Helper()

	category := &models.Category{
		BudgetID: budgetID,
		Name:     fmt.Sprintf("Test Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestLineItem creates a USD per_month line item of qty × unitCost.
// Empty strings leave quantity or unit cost null.
func CreateTestLineItem(t *testing.T, db *gorm.DB, scenarioID, qty, unitCost string) *models.LineItem {
	t.Helper()

	item := &models.LineItem{
		ScenarioID: scenarioID,
		Label:      fmt.Sprintf("Test Item %d", nextID()),
		Quantity:   nullDecimal(t, qty),
		UnitCost:   nullDecimal(t, unitCost),
		Unit:       models.LineItemUnitPerMonth,
		Currency:   "USD",
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test line item: %v", err)
	}
	return item
}

// CreateTestIncomeSource creates a USD income source of the given type and amount.
func CreateTestIncomeSource(t *testing.T, db *gorm.DB, budgetID string, incomeType models.IncomeType, amount string) *models.IncomeSource {
	t.Helper()

	source := &models.IncomeSource{
		BudgetID:      budgetID,
		Label:         fmt.Sprintf("Test Income %d", nextID()),
		AmountMonthly: nullDecimal(t, amount),
		Currency:      "USD",
		Type:          incomeType,
	}
	if err := db.Create(source).Error; err != nil {
		t.Fatalf("failed to create test income source: %v", err)
	}
	return source
}

// CreateTestSnapshot captures the budget's current live rows at createdAt.
func CreateTestSnapshot(t *testing.T, db *gorm.DB, budgetID string, createdAt time.Time) *models.BudgetSnapshot {
	t.Helper()

	var scenarios []models.Scenario
	var sources []models.IncomeSource
	var items []models.LineItem
	if err := db.Where("budget_id = ?", budgetID).Order("created_at ASC, id ASC").Find(&scenarios).Error; err != nil {
		t.Fatalf("failed to load scenarios: %v", err)
	}
	if err := db.Where("budget_id = ?", budgetID).Find(&sources).Error; err != nil {
		t.Fatalf("failed to load income sources: %v", err)
	}
	if len(scenarios) > 0 {
		ids := make([]string, 0, len(scenarios))
		for i := range scenarios {
			ids = append(ids, scenarios[i].ID)
		}
		if err := db.Where("scenario_id IN ?", ids).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
			t.Fatalf("failed to load line items: %v", err)
		}
	}

	snapshot := budgeting.Capture(scenarios, items, sources)
	snapshot.BudgetID = budgetID
	snapshot.CreatedAt = createdAt
	if err := db.Create(&snapshot).Error; err != nil {
		t.Fatalf("failed to create test snapshot: %v", err)
	}
	return &snapshot
}

func nullDecimal(t *testing.T, s string) decimal.NullDecimal {
	t.Helper()
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return decimal.NewNullDecimal(d)
}
