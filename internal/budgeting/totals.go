// Package budgeting computes scenario totals, baseline comparisons and
// snapshot diffs for a season budget.
//
// Every function here is pure: no I/O, no caching, no shared state. Callers
// re-run them whenever their inputs change and decide any memoisation policy
// at the call site.
package budgeting

import (
	"sort"

	"github.com/shopspring/decimal"

	"playersbudget/internal/models"
)

// ScenarioTotal is the derived monthly total of one scenario.
type ScenarioTotal struct {
	ScenarioID string          `json:"scenario_id"`
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
}

var one = decimal.NewFromInt(1)

// LineItemAmount returns quantity × unit cost for one line item.
// A missing quantity counts as 1 and a missing unit cost as 0.
func LineItemAmount(item models.LineItem) decimal.Decimal {
	qty := one
	if item.Quantity.Valid {
		qty = item.Quantity.Decimal
	}
	cost := decimal.Zero
	if item.UnitCost.Valid {
		cost = item.UnitCost.Decimal
	}
	return qty.Mul(cost)
}

// ComputeScenarioTotals sums the line items of every scenario.
//
// The result has one entry per scenario, in input order. Line items whose
// scenario is not in scenarios are ignored. Amounts are summed as raw numbers
// regardless of each item's currency; see MixedCurrencyScenarios.
func ComputeScenarioTotals(scenarios []models.Scenario, items []models.LineItem) []ScenarioTotal {
	sums := make(map[string]decimal.Decimal, len(scenarios))
	for i := range scenarios {
		sums[scenarios[i].ID] = decimal.Zero
	}
	for i := range items {
		sum, ok := sums[items[i].ScenarioID]
		if !ok {
			continue
		}
		sums[items[i].ScenarioID] = sum.Add(LineItemAmount(items[i]))
	}

	totals := make([]ScenarioTotal, 0, len(scenarios))
	for i := range scenarios {
		totals = append(totals, ScenarioTotal{
			ScenarioID: scenarios[i].ID,
			Name:       scenarios[i].Name,
			Total:      sums[scenarios[i].ID],
		})
	}
	return totals
}

// SpendTotal is the aggregate of all scenario totals.
func SpendTotal(totals []ScenarioTotal) decimal.Decimal {
	sum := decimal.Zero
	for i := range totals {
		sum = sum.Add(totals[i].Total)
	}
	return sum
}

// IncomeTotal sums the monthly amount of every income source.
// A missing amount counts as 0.
func IncomeTotal(sources []models.IncomeSource) decimal.Decimal {
	sum := decimal.Zero
	for i := range sources {
		if sources[i].AmountMonthly.Valid {
			sum = sum.Add(sources[i].AmountMonthly.Decimal)
		}
	}
	return sum
}

// IncomeTypeTotal is the monthly income of one income type.
type IncomeTypeTotal struct {
	Type  models.IncomeType `json:"type"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

// IncomeByType groups income sources by normalized type. Every known type is
// present in the result, in models.IncomeTypes order.
func IncomeByType(sources []models.IncomeSource) []IncomeTypeTotal {
	idx := make(map[models.IncomeType]int, len(models.IncomeTypes))
	out := make([]IncomeTypeTotal, len(models.IncomeTypes))
	for i, t := range models.IncomeTypes {
		idx[t] = i
		out[i] = IncomeTypeTotal{Type: t, Total: decimal.Zero}
	}
	for i := range sources {
		row := &out[idx[models.NormalizeIncomeType(string(sources[i].Type))]]
		row.Count++
		if sources[i].AmountMonthly.Valid {
			row.Total = row.Total.Add(sources[i].AmountMonthly.Decimal)
		}
	}
	return out
}

// CurrencyMix reports a scenario whose line items use more than one currency.
type CurrencyMix struct {
	ScenarioID string   `json:"scenario_id"`
	Name       string   `json:"name"`
	Currencies []string `json:"currencies"`
}

// MixedCurrencyScenarios lists the scenarios whose totals add amounts in
// different currencies. Items without a currency count as baseCurrency.
func MixedCurrencyScenarios(scenarios []models.Scenario, items []models.LineItem, baseCurrency string) []CurrencyMix {
	seen := make(map[string]map[string]struct{}, len(scenarios))
	for i := range scenarios {
		seen[scenarios[i].ID] = make(map[string]struct{})
	}
	for i := range items {
		set, ok := seen[items[i].ScenarioID]
		if !ok {
			continue
		}
		code := items[i].Currency
		if code == "" {
			code = baseCurrency
		}
		set[code] = struct{}{}
	}

	var mixes []CurrencyMix
	for i := range scenarios {
		set := seen[scenarios[i].ID]
		if len(set) < 2 {
			continue
		}
		codes := make([]string, 0, len(set))
		for code := range set {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		mixes = append(mixes, CurrencyMix{
			ScenarioID: scenarios[i].ID,
			Name:       scenarios[i].Name,
			Currencies: codes,
		})
	}
	return mixes
}
