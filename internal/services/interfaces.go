package services

import (
	"time"

	"github.com/shopspring/decimal"

	"playersbudget/internal/budgeting"
	"playersbudget/internal/models"
	"playersbudget/internal/pagination"
)

// BudgetUpdate carries the optional fields of a budget update.
type BudgetUpdate struct {
	Title        *string
	BaseCurrency *string
	SeasonYear   *int
	IsActive     *bool
}

// SummaryDisplay holds summary amounts formatted in the budget's base currency.
type SummaryDisplay struct {
	SpendTotal  string            `json:"spend_total"`
	IncomeTotal string            `json:"income_total"`
	Net         string            `json:"net"`
	Scenarios   map[string]string `json:"scenarios"`
}

// BudgetSummary is the computed overview of a budget's scenarios and income.
type BudgetSummary struct {
	BudgetID         string                      `json:"budget_id"`
	BaseCurrency     string                      `json:"base_currency"`
	BaselineID       string                      `json:"baseline_id,omitempty"`
	Scenarios        []budgeting.ComparisonRow   `json:"scenarios"`
	LowestCost       *budgeting.ScenarioTotal    `json:"lowest_cost,omitempty"`
	SpendTotal       decimal.Decimal             `json:"spend_total"`
	IncomeTotal      decimal.Decimal             `json:"income_total"`
	Net              decimal.Decimal             `json:"net"`
	IncomeByType     []budgeting.IncomeTypeTotal `json:"income_by_type"`
	CurrencyWarnings []budgeting.CurrencyMix     `json:"currency_warnings"`
	Display          SummaryDisplay              `json:"display"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(title, baseCurrency string, seasonYear int) (*models.Budget, error)
	GetBudgets(page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(budgetID string) (*models.Budget, error)
	UpdateBudget(budgetID string, update BudgetUpdate) (*models.Budget, error)
	DeleteBudget(budgetID string) error
	GetBudgetSummary(budgetID, baselineID string) (*BudgetSummary, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(budgetID, name, color string) (*models.Category, error)
	GetBudgetCategories(budgetID string) ([]models.Category, error)
	GetCategoryByID(categoryID string) (*models.Category, error)
	UpdateCategory(categoryID string, name, color *string) (*models.Category, error)
	DeleteCategory(categoryID string) error
	GetCategoryBreakdown(budgetID string) ([]budgeting.ScenarioBreakdown, error)
}

// ScenarioUpdate carries the optional fields of a scenario update.
type ScenarioUpdate struct {
	Name      *string
	IsDefault *bool
}

// ScenarioComparison is the comparison of every scenario against a baseline.
type ScenarioComparison struct {
	BudgetID   string                    `json:"budget_id"`
	BaselineID string                    `json:"baseline_id,omitempty"`
	Rows       []budgeting.ComparisonRow `json:"rows"`
	LowestCost *budgeting.ScenarioTotal  `json:"lowest_cost,omitempty"`
}

// ScenarioServicer defines the contract for scenario-related business logic.
type ScenarioServicer interface {
	CreateScenario(budgetID, name string, isDefault bool) (*models.Scenario, error)
	GetBudgetScenarios(budgetID string) ([]models.Scenario, error)
	GetScenarioByID(scenarioID string) (*models.Scenario, error)
	UpdateScenario(scenarioID string, update ScenarioUpdate) (*models.Scenario, error)
	DeleteScenario(scenarioID string) error
	CompareScenarios(budgetID, baselineID string) (*ScenarioComparison, error)
}

// LineItemInput carries the fields of a new line item.
type LineItemInput struct {
	CategoryID *string
	Label      string
	Quantity   decimal.NullDecimal
	UnitCost   decimal.NullDecimal
	Unit       models.LineItemUnit
	Currency   string
}

// LineItemUpdate carries the optional fields of a line item update.
// The Clear flags null out quantity and unit cost.
type LineItemUpdate struct {
	CategoryID    *string
	ClearCategory bool
	Label         *string
	Quantity      *decimal.Decimal
	ClearQuantity bool
	UnitCost      *decimal.Decimal
	ClearUnitCost bool
	Unit          *models.LineItemUnit
	Currency      *string
}

// LineItemServicer defines the contract for line-item-related business logic.
type LineItemServicer interface {
	CreateLineItem(scenarioID string, input LineItemInput) (*models.LineItem, error)
	GetScenarioLineItems(scenarioID string) ([]models.LineItem, error)
	GetLineItemByID(lineItemID string) (*models.LineItem, error)
	UpdateLineItem(lineItemID string, update LineItemUpdate) (*models.LineItem, error)
	DeleteLineItem(lineItemID string) error
}

// IncomeSourceUpdate carries the optional fields of an income source update.
type IncomeSourceUpdate struct {
	Label         *string
	AmountMonthly *decimal.Decimal
	ClearAmount   bool
	Currency      *string
	Type          *string
}

// IncomeSourceServicer defines the contract for income-source-related business logic.
type IncomeSourceServicer interface {
	CreateIncomeSource(budgetID, label string, amountMonthly decimal.NullDecimal, currency, incomeType string) (*models.IncomeSource, error)
	GetBudgetIncomeSources(budgetID string) ([]models.IncomeSource, error)
	GetIncomeSourceByID(incomeSourceID string) (*models.IncomeSource, error)
	UpdateIncomeSource(incomeSourceID string, update IncomeSourceUpdate) (*models.IncomeSource, error)
	DeleteIncomeSource(incomeSourceID string) error
}

// SnapshotComparison is a budget's live state diffed against one snapshot.
// Snapshot is nil when the budget has no history.
type SnapshotComparison struct {
	BudgetID string                      `json:"budget_id"`
	Snapshot *models.BudgetSnapshot      `json:"snapshot"`
	Period   *budgeting.PeriodComparison `json:"period,omitempty"`
	Rows     []budgeting.DiffRow         `json:"rows"`
}

// SnapshotServicer defines the contract for budget snapshot operations.
type SnapshotServicer interface {
	CreateSnapshot(budgetID string, note *string, takenAt time.Time) (*models.BudgetSnapshot, error)
	GetBudgetSnapshots(budgetID string, page pagination.PageRequest) (*pagination.PageResponse[models.BudgetSnapshot], error)
	GetSnapshotByID(snapshotID string) (*models.BudgetSnapshot, error)
	UpdateSnapshotNote(snapshotID string, note *string) (*models.BudgetSnapshot, error)
	DeleteSnapshot(snapshotID string) error
	CompareWithSnapshot(budgetID, snapshotID string, now time.Time) (*SnapshotComparison, error)
	PreviewRestore(snapshotID string) (*budgeting.RestorePlan, error)
	ApplyRestore(snapshotID string) (*budgeting.RestorePlan, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
