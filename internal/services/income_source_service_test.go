package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"playersbudget/internal/models"
	"playersbudget/internal/testutil"
)

func TestCreateIncomeSource(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType models.IncomeType
	}{
		{"prize", "prize", models.IncomeTypePrize},
		{"mixed_case", " Sponsors ", models.IncomeTypeSponsors},
		{"unknown_normalizes", "crowdfunding", models.IncomeTypeOther},
		{"empty_normalizes", "", models.IncomeTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer testutil.TeardownTestDB(t, db)
			svc := NewIncomeSourceService(db)
			budget := testutil.CreateTestBudgetWithCurrency(t, db, "AUD")

			source, err := svc.CreateIncomeSource(budget.ID, "Income", decimal.NewNullDecimal(decimal.NewFromInt(500)), "", tt.input)
			testutil.AssertNoError(t, err)

			if source.Type != tt.wantType {
				t.Errorf("expected type %s, got %s", tt.wantType, source.Type)
			}
			if source.Currency != "AUD" {
				t.Errorf("expected currency AUD, got %s", source.Currency)
			}
		})
	}
}

func TestUpdateIncomeSource(t *testing.T) {
	t.Run("normalizes_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeSourceService(db)
		budget := testutil.CreateTestBudget(t, db)
		source := testutil.CreateTestIncomeSource(t, db, budget.ID, models.IncomeTypePrize, "100")

		kind := "lottery"
		updated, err := svc.UpdateIncomeSource(source.ID, IncomeSourceUpdate{Type: &kind})
		testutil.AssertNoError(t, err)
		if updated.Type != models.IncomeTypeOther {
			t.Errorf("expected type other, got %s", updated.Type)
		}
	})

	t.Run("clear_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeSourceService(db)
		budget := testutil.CreateTestBudget(t, db)
		source := testutil.CreateTestIncomeSource(t, db, budget.ID, models.IncomeTypePrize, "100")

		updated, err := svc.UpdateIncomeSource(source.ID, IncomeSourceUpdate{ClearAmount: true})
		testutil.AssertNoError(t, err)
		if updated.AmountMonthly.Valid {
			t.Errorf("expected amount to be cleared, got %v", updated.AmountMonthly)
		}
	})
}

func TestDeleteIncomeSource(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewIncomeSourceService(db)
	budget := testutil.CreateTestBudget(t, db)
	source := testutil.CreateTestIncomeSource(t, db, budget.ID, models.IncomeTypeGifts, "40")

	testutil.AssertNoError(t, svc.DeleteIncomeSource(source.ID))

	sources, err := svc.GetBudgetIncomeSources(budget.ID)
	testutil.AssertNoError(t, err)
	if len(sources) != 0 {
		t.Errorf("expected no income sources, got %d", len(sources))
	}

	err = svc.DeleteIncomeSource(source.ID)
	testutil.AssertAppError(t, err, "INCOME_SOURCE_NOT_FOUND")
}
