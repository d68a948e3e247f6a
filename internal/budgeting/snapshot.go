package budgeting

import (
	"time"

	"github.com/shopspring/decimal"

	"playersbudget/internal/models"
)

// StartOfMonth returns midnight on the first day of t's month, in t's location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// SelectDefaultSnapshot picks the snapshot a budget is compared against when
// the user has not chosen one. snapshots is expected newest first.
//
// In order of preference: the first snapshot taken last month, the first
// snapshot taken before the current month, the last snapshot in the list.
// Returns nil when there is no history. The result points into snapshots.
func SelectDefaultSnapshot(snapshots []models.BudgetSnapshot, now time.Time) *models.BudgetSnapshot {
	if len(snapshots) == 0 {
		return nil
	}

	currentMonth := StartOfMonth(now)
	lastMonth := currentMonth.AddDate(0, -1, 0)

	for i := range snapshots {
		created := snapshots[i].CreatedAt
		if !created.Before(lastMonth) && created.Before(currentMonth) {
			return &snapshots[i]
		}
	}
	for i := range snapshots {
		if snapshots[i].CreatedAt.Before(currentMonth) {
			return &snapshots[i]
		}
	}
	return &snapshots[len(snapshots)-1]
}

// DiffRow compares one scenario's captured total with its live total.
type DiffRow struct {
	ScenarioID    string          `json:"scenario_id"`
	Name          string          `json:"name"`
	SnapshotTotal decimal.Decimal `json:"snapshot_total"`
	CurrentTotal  decimal.Decimal `json:"current_total"`
	Delta         decimal.Decimal `json:"delta"`
	InSnapshot    bool            `json:"in_snapshot"`
	InCurrent     bool            `json:"in_current"`
}

// DiffAgainstSnapshot diffs live totals against a snapshot's captured totals.
//
// Rows cover the union of scenario ids: live scenarios first in live order,
// then scenarios that only exist in the snapshot in captured order. The
// missing side of a one-sided scenario is 0. The live name wins over the
// captured name.
func DiffAgainstSnapshot(snapshot models.BudgetSnapshot, current []ScenarioTotal) []DiffRow {
	captured := make(map[string]models.SnapshotScenarioTotal, len(snapshot.ScenarioTotals))
	for _, st := range snapshot.ScenarioTotals {
		if _, dup := captured[st.ScenarioID]; !dup {
			captured[st.ScenarioID] = st
		}
	}

	rows := make([]DiffRow, 0, len(current)+len(snapshot.ScenarioTotals))
	emitted := make(map[string]bool, len(current)+len(snapshot.ScenarioTotals))

	for i := range current {
		id := current[i].ScenarioID
		if emitted[id] {
			continue
		}
		emitted[id] = true

		row := DiffRow{
			ScenarioID:    id,
			Name:          current[i].Name,
			SnapshotTotal: decimal.Zero,
			CurrentTotal:  current[i].Total,
			InCurrent:     true,
		}
		if st, ok := captured[id]; ok {
			row.SnapshotTotal = st.Total
			row.InSnapshot = true
			if row.Name == "" {
				row.Name = st.Name
			}
		}
		row.Delta = row.CurrentTotal.Sub(row.SnapshotTotal)
		rows = append(rows, row)
	}

	for _, st := range snapshot.ScenarioTotals {
		if emitted[st.ScenarioID] {
			continue
		}
		emitted[st.ScenarioID] = true
		rows = append(rows, DiffRow{
			ScenarioID:    st.ScenarioID,
			Name:          st.Name,
			SnapshotTotal: st.Total,
			CurrentTotal:  decimal.Zero,
			Delta:         st.Total.Neg(),
			InSnapshot:    true,
		})
	}
	return rows
}

// Tone tells presentation layers how to color a delta.
type Tone string

const (
	ToneWarning  Tone = "warning"
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
)

// PeriodComparison is the aggregate spend and income movement since a snapshot.
//
// A positive SpendDelta means spending went up and is a warning. A positive
// IncomeDelta means income went up and is positive.
type PeriodComparison struct {
	SnapshotID        string          `json:"snapshot_id"`
	SnapshotCreatedAt time.Time       `json:"snapshot_created_at"`
	CurrentSpend      decimal.Decimal `json:"current_spend"`
	SnapshotSpend     decimal.Decimal `json:"snapshot_spend"`
	SpendDelta        decimal.Decimal `json:"spend_delta"`
	SpendTone         Tone            `json:"spend_tone"`
	CurrentIncome     decimal.Decimal `json:"current_income"`
	SnapshotIncome    decimal.Decimal `json:"snapshot_income"`
	IncomeDelta       decimal.Decimal `json:"income_delta"`
	IncomeTone        Tone            `json:"income_tone"`
}

// ComparePeriod computes spend and income deltas against a snapshot.
func ComparePeriod(snapshot models.BudgetSnapshot, currentSpend, currentIncome decimal.Decimal) PeriodComparison {
	spendDelta := currentSpend.Sub(snapshot.SpendTotal)
	incomeDelta := currentIncome.Sub(snapshot.IncomeTotal)

	return PeriodComparison{
		SnapshotID:        snapshot.ID,
		SnapshotCreatedAt: snapshot.CreatedAt,
		CurrentSpend:      currentSpend,
		SnapshotSpend:     snapshot.SpendTotal,
		SpendDelta:        spendDelta,
		SpendTone:         toneFor(spendDelta.Neg()),
		CurrentIncome:     currentIncome,
		SnapshotIncome:    snapshot.IncomeTotal,
		IncomeDelta:       incomeDelta,
		IncomeTone:        toneFor(incomeDelta),
	}
}

// toneFor maps a delta where higher is better to a Tone.
func toneFor(d decimal.Decimal) Tone {
	switch d.Sign() {
	case 1:
		return TonePositive
	case -1:
		return ToneWarning
	default:
		return ToneNeutral
	}
}

// Capture builds the immutable part of a new snapshot from live rows.
// The caller sets BudgetID, Note and CreatedAt.
func Capture(scenarios []models.Scenario, items []models.LineItem, sources []models.IncomeSource) models.BudgetSnapshot {
	totals := ComputeScenarioTotals(scenarios, items)

	captured := make(models.SnapshotScenarioTotals, 0, len(totals))
	for i := range totals {
		captured = append(captured, models.SnapshotScenarioTotal{
			ScenarioID: totals[i].ScenarioID,
			Name:       totals[i].Name,
			Total:      totals[i].Total,
		})
	}

	payload := models.SnapshotPayload{
		Scenarios: make([]models.SnapshotScenario, 0, len(scenarios)),
		LineItems: make([]models.SnapshotLineItem, 0, len(items)),
	}
	known := make(map[string]bool, len(scenarios))
	for i := range scenarios {
		known[scenarios[i].ID] = true
		payload.Scenarios = append(payload.Scenarios, models.SnapshotScenario{
			ID:        scenarios[i].ID,
			Name:      scenarios[i].Name,
			IsDefault: scenarios[i].IsDefault,
		})
	}
	for i := range items {
		if !known[items[i].ScenarioID] {
			continue
		}
		payload.LineItems = append(payload.LineItems, models.SnapshotLineItem{
			ID:         items[i].ID,
			ScenarioID: items[i].ScenarioID,
			CategoryID: items[i].CategoryID,
			Label:      items[i].Label,
			Quantity:   items[i].Quantity,
			UnitCost:   items[i].UnitCost,
			Unit:       items[i].Unit,
			Currency:   items[i].Currency,
		})
	}

	return models.BudgetSnapshot{
		ScenarioTotals: captured,
		SpendTotal:     SpendTotal(totals),
		IncomeTotal:    IncomeTotal(sources),
		Payload:        payload,
	}
}
