package budgeting

import (
	"github.com/shopspring/decimal"

	"playersbudget/internal/models"
)

// UncategorizedName labels line items without a known category.
const UncategorizedName = "Uncategorized"

// CategoryTotal is the total of one category within a scenario.
type CategoryTotal struct {
	CategoryID *string         `json:"category_id"`
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
	Items      int             `json:"items"`
}

// ScenarioBreakdown groups one scenario's total by category.
type ScenarioBreakdown struct {
	ScenarioTotal
	Categories []CategoryTotal `json:"categories"`
}

// BreakdownByCategory groups each scenario's line items by category.
// Categories appear in input order and only when they have items; items with
// no or an unknown category land in a trailing Uncategorized bucket.
func BreakdownByCategory(scenarios []models.Scenario, categories []models.Category, items []models.LineItem) []ScenarioBreakdown {
	totals := ComputeScenarioTotals(scenarios, items)

	catIdx := make(map[string]int, len(categories))
	for i := range categories {
		catIdx[categories[i].ID] = i
	}
	uncategorized := len(categories)

	// per scenario: bucket index -> running total
	buckets := make(map[string][]CategoryTotal, len(scenarios))
	for i := range scenarios {
		row := make([]CategoryTotal, len(categories)+1)
		for j := range categories {
			id := categories[j].ID
			row[j] = CategoryTotal{CategoryID: &id, Name: categories[j].Name, Total: decimal.Zero}
		}
		row[uncategorized] = CategoryTotal{Name: UncategorizedName, Total: decimal.Zero}
		buckets[scenarios[i].ID] = row
	}

	for i := range items {
		row, ok := buckets[items[i].ScenarioID]
		if !ok {
			continue
		}
		b := uncategorized
		if items[i].CategoryID != nil {
			if j, found := catIdx[*items[i].CategoryID]; found {
				b = j
			}
		}
		row[b].Total = row[b].Total.Add(LineItemAmount(items[i]))
		row[b].Items++
	}

	out := make([]ScenarioBreakdown, 0, len(totals))
	for i := range totals {
		row := buckets[totals[i].ScenarioID]
		cats := make([]CategoryTotal, 0, len(row))
		for _, c := range row {
			if c.Items > 0 {
				cats = append(cats, c)
			}
		}
		out = append(out, ScenarioBreakdown{ScenarioTotal: totals[i], Categories: cats})
	}
	return out
}
