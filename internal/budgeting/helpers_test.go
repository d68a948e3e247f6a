package budgeting

import (
	"testing"

	"github.com/shopspring/decimal"

	"playersbudget/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func scenario(id, name string) models.Scenario {
	return models.Scenario{Base: models.Base{ID: id}, Name: name}
}

func item(scenarioID, qty, cost string) models.LineItem {
	li := models.LineItem{ScenarioID: scenarioID, Currency: "USD"}
	if qty != "" {
		li.Quantity = nullDec(qty)
	}
	if cost != "" {
		li.UnitCost = nullDec(cost)
	}
	return li
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}
