package budgeting

import "github.com/shopspring/decimal"

// ComparisonRow is a scenario total relative to the chosen baseline.
type ComparisonRow struct {
	ScenarioTotal
	Variance    decimal.Decimal `json:"variance"`
	VariancePct decimal.Decimal `json:"variance_pct"`
	IsBaseline  bool            `json:"is_baseline"`
}

var hundred = decimal.NewFromInt(100)

// CompareScenarios computes every scenario's variance against a baseline.
//
// The baseline is the first entry whose id equals baselineID, or totals[0]
// when baselineID is empty or matches nothing. VariancePct is 0 when the
// baseline total is 0. Rows keep input order; empty input yields an empty,
// non-nil slice.
func CompareScenarios(totals []ScenarioTotal, baselineID string) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(totals))
	if len(totals) == 0 {
		return rows
	}

	baseIdx := 0
	if baselineID != "" {
		for i := range totals {
			if totals[i].ScenarioID == baselineID {
				baseIdx = i
				break
			}
		}
	}
	base := totals[baseIdx].Total

	for i := range totals {
		variance := totals[i].Total.Sub(base)
		if i == baseIdx {
			variance = decimal.Zero
		}
		pct := decimal.Zero
		if !base.IsZero() {
			pct = variance.Div(base).Mul(hundred)
		}
		rows = append(rows, ComparisonRow{
			ScenarioTotal: totals[i],
			Variance:      variance,
			VariancePct:   pct,
			IsBaseline:    i == baseIdx,
		})
	}
	return rows
}

// LowestCost returns the scenario with the smallest total. Ties go to the
// earliest entry. ok is false for empty input.
func LowestCost(totals []ScenarioTotal) (lowest ScenarioTotal, ok bool) {
	for i := range totals {
		if !ok || totals[i].Total.LessThan(lowest.Total) {
			lowest = totals[i]
			ok = true
		}
	}
	return lowest, ok
}
