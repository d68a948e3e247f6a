package budgeting

import "playersbudget/internal/models"

// RestorePlan lists the writes that make a budget's live scenarios and line
// items match a snapshot. Building a plan never changes anything; applying it
// is a separate, explicit step in the service layer.
type RestorePlan struct {
	SnapshotID        string                    `json:"snapshot_id"`
	ScenariosToCreate []models.SnapshotScenario `json:"scenarios_to_create"`
	ScenariosToUpdate []models.SnapshotScenario `json:"scenarios_to_update"`
	ScenariosToDelete []string                  `json:"scenarios_to_delete"`
	LineItemsToDelete []string                  `json:"line_items_to_delete"`
	LineItemsToCreate []models.SnapshotLineItem `json:"line_items_to_create"`
	// DetachedCategories counts captured line items whose category no longer
	// exists; they are restored uncategorized.
	DetachedCategories int `json:"detached_categories"`
}

// IsNoop reports whether applying the plan would write nothing.
func (p RestorePlan) IsNoop() bool {
	return len(p.ScenariosToCreate) == 0 &&
		len(p.ScenariosToUpdate) == 0 &&
		len(p.ScenariosToDelete) == 0 &&
		len(p.LineItemsToDelete) == 0 &&
		len(p.LineItemsToCreate) == 0
}

// PlanRestore computes the overwrite of live state with a snapshot's payload.
//
// Every live line item is replaced by the captured line items. Captured
// scenarios are re-created when missing and renamed when present; live
// scenarios absent from the snapshot are deleted.
func PlanRestore(snapshot models.BudgetSnapshot, scenarios []models.Scenario, items []models.LineItem, categories []models.Category) RestorePlan {
	plan := RestorePlan{
		SnapshotID:        snapshot.ID,
		ScenariosToCreate: []models.SnapshotScenario{},
		ScenariosToUpdate: []models.SnapshotScenario{},
		ScenariosToDelete: []string{},
		LineItemsToDelete: make([]string, 0, len(items)),
		LineItemsToCreate: make([]models.SnapshotLineItem, 0, len(snapshot.Payload.LineItems)),
	}

	live := make(map[string]models.Scenario, len(scenarios))
	for i := range scenarios {
		live[scenarios[i].ID] = scenarios[i]
	}
	capturedIDs := make(map[string]bool, len(snapshot.Payload.Scenarios))
	for _, s := range snapshot.Payload.Scenarios {
		capturedIDs[s.ID] = true
		cur, ok := live[s.ID]
		switch {
		case !ok:
			plan.ScenariosToCreate = append(plan.ScenariosToCreate, s)
		case cur.Name != s.Name || cur.IsDefault != s.IsDefault:
			plan.ScenariosToUpdate = append(plan.ScenariosToUpdate, s)
		}
	}
	for i := range scenarios {
		if !capturedIDs[scenarios[i].ID] {
			plan.ScenariosToDelete = append(plan.ScenariosToDelete, scenarios[i].ID)
		}
	}

	for i := range items {
		plan.LineItemsToDelete = append(plan.LineItemsToDelete, items[i].ID)
	}

	knownCategory := make(map[string]bool, len(categories))
	for i := range categories {
		knownCategory[categories[i].ID] = true
	}
	for _, li := range snapshot.Payload.LineItems {
		if li.CategoryID != nil && !knownCategory[*li.CategoryID] {
			li.CategoryID = nil
			plan.DetachedCategories++
		}
		plan.LineItemsToCreate = append(plan.LineItemsToCreate, li)
	}

	return plan
}
