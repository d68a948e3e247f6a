package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"playersbudget/internal/models"
	"playersbudget/internal/testutil"
)

func TestCreateLineItem(t *testing.T) {
	t.Run("defaults_from_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLineItemService(db)
		budget := testutil.CreateTestBudgetWithCurrency(t, db, "EUR")
		scenario := testutil.CreateTestScenario(t, db, budget.ID, "Lean")

		item, err := svc.CreateLineItem(scenario.ID, LineItemInput{Label: "Coach"})
		testutil.AssertNoError(t, err)

		if item.Currency != "EUR" {
			t.Errorf("expected currency EUR, got %s", item.Currency)
		}
		if item.Unit != models.LineItemUnitPerMonth {
			t.Errorf("expected unit per_month, got %s", item.Unit)
		}
		if item.Quantity.Valid || item.UnitCost.Valid {
			t.Error("expected null quantity and unit cost")
		}
	})

	t.Run("with_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLineItemService(db)
		budget := testutil.CreateTestBudget(t, db)
		scenario := testutil.CreateTestScenario(t, db, budget.ID, "Lean")
		category := testutil.CreateTestCategory(t, db, budget.ID)

		item, err := svc.CreateLineItem(scenario.ID, LineItemInput{
			CategoryID: &category.ID,
			Label:      "Flights",
			Quantity:   decimal.NewNullDecimal(decimal.NewFromInt(4)),
			UnitCost:   decimal.NewNullDecimal(decimal.RequireFromString("320.50")),
			Unit:       models.LineItemUnitPerEvent,
			Currency:   "usd",
		})
		testutil.AssertNoError(t, err)
		if item.CategoryID == nil || *item.CategoryID != category.ID {
			t.Errorf("expected category %s, got %v", category.ID, item.CategoryID)
		}
		if item.Currency != "USD" {
			t.Errorf("expected currency USD, got %s", item.Currency)
		}
	})

	t.Run("category_from_other_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLineItemService(db)
		budget := testutil.CreateTestBudget(t, db)
		other := testutil.CreateTestBudget(t, db)
		scenario := testutil.CreateTestScenario(t, db, budget.ID, "Lean")
		foreign := testutil.CreateTestCategory(t, db, other.ID)

		_, err := svc.CreateLineItem(scenario.ID, LineItemInput{CategoryID: &foreign.ID, Label: "Flights"})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("unknown_scenario", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLineItemService(db)

		_, err := svc.CreateLineItem("0190a000-0000-7000-8000-000000000000", LineItemInput{Label: "Coach"})
		testutil.AssertAppError(t, err, "SCENARIO_NOT_FOUND")
	})
}

func TestGetScenarioLineItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewLineItemService(db)
	budget := testutil.CreateTestBudget(t, db)
	scenario := testutil.CreateTestScenario(t, db, budget.ID, "Lean")
	other := testutil.CreateTestScenario(t, db, budget.ID, "Premium")
	testutil.CreateTestLineItem(t, db, scenario.ID, "1", "10")
	testutil.CreateTestLineItem(t, db, other.ID, "1", "10")

	items, err := svc.GetScenarioLineItems(scenario.ID)
	testutil.AssertNoError(t, err)
	if len(items) != 1 {
		t.Errorf("expected 1 line item, got %d", len(items))
	}
}

func TestUpdateLineItem(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLineItemService(db)
		budget := testutil.CreateTestBudget(t, db)
		scenario := testutil.CreateTestScenario(t, db, budget.ID, "Lean")
		item := testutil.CreateTestLineItem(t, db, scenario.ID, "2", "50")

		cost := decimal.NewFromInt(75)
		label := "Physio"
		updated, err := svc.UpdateLineItem(item.ID, LineItemUpdate{UnitCost: &cost, Label: &label})
		testutil.AssertNoError(t, err)

		if !updated.UnitCost.Valid || !updated.UnitCost.Decimal.Equal(cost) {
			t.Errorf("expected unit cost 75, got %v", updated.UnitCost)
		}
		if !updated.Quantity.Valid || updated.Quantity.Decimal.String() != "2" {
			t.Errorf("expected quantity to stay 2, got %v", updated.Quantity)
		}
		if updated.Label != "Physio" {
			t.Errorf("expected label Physio, got %s", updated.Label)
		}
	})

	t.Run("clear_quantity_and_cost", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLineItemService(db)
		budget := testutil.CreateTestBudget(t, db)
		scenario := testutil.CreateTestScenario(t, db, budget.ID, "Lean")
		item := testutil.CreateTestLineItem(t, db, scenario.ID, "2", "50")

		updated, err := svc.UpdateLineItem(item.ID, LineItemUpdate{ClearQuantity: true, ClearUnitCost: true})
		testutil.AssertNoError(t, err)

		if updated.Quantity.Valid || updated.UnitCost.Valid {
			t.Errorf("expected cleared values, got qty=%v cost=%v", updated.Quantity, updated.UnitCost)
		}
	})

	t.Run("clear_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLineItemService(db)
		budget := testutil.CreateTestBudget(t, db)
		scenario := testutil.CreateTestScenario(t, db, budget.ID, "Lean")
		category := testutil.CreateTestCategory(t, db, budget.ID)
		item := testutil.CreateTestLineItem(t, db, scenario.ID, "1", "10")

		updated, err := svc.UpdateLineItem(item.ID, LineItemUpdate{CategoryID: &category.ID})
		testutil.AssertNoError(t, err)
		if updated.CategoryID == nil {
			t.Fatal("expected category to be set")
		}

		updated, err = svc.UpdateLineItem(item.ID, LineItemUpdate{ClearCategory: true})
		testutil.AssertNoError(t, err)
		if updated.CategoryID != nil {
			t.Errorf("expected category to be cleared, got %s", *updated.CategoryID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLineItemService(db)

		_, err := svc.UpdateLineItem("0190a000-0000-7000-8000-000000000000", LineItemUpdate{})
		testutil.AssertAppError(t, err, "LINE_ITEM_NOT_FOUND")
	})
}

func TestDeleteLineItem(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewLineItemService(db)
	budget := testutil.CreateTestBudget(t, db)
	scenario := testutil.CreateTestScenario(t, db, budget.ID, "Lean")
	item := testutil.CreateTestLineItem(t, db, scenario.ID, "1", "10")

	testutil.AssertNoError(t, svc.DeleteLineItem(item.ID))

	_, err := svc.GetLineItemByID(item.ID)
	testutil.AssertAppError(t, err, "LINE_ITEM_NOT_FOUND")
}
