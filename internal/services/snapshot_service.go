package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"playersbudget/internal/budgeting"
	apperrors "playersbudget/internal/errors"
	"playersbudget/internal/logger"
	"playersbudget/internal/models"
	"playersbudget/internal/pagination"
)

// snapshotService handles budget snapshot operations. Snapshots are
// immutable apart from their note and are never expired automatically.
type snapshotService struct {
	db *gorm.DB
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(db *gorm.DB) SnapshotServicer {
	return &snapshotService{db: db}
}

// CreateSnapshot captures a budget's current scenario totals, spend and
// income totals, and the rows needed to restore them later.
func (s *snapshotService) CreateSnapshot(budgetID string, note *string, takenAt time.Time) (*models.BudgetSnapshot, error) {
	if _, err := findBudget(s.db, budgetID); err != nil {
		return nil, err
	}
	st, err := loadBudgetState(s.db, budgetID)
	if err != nil {
		return nil, err
	}

	snapshot := budgeting.Capture(st.scenarios, st.items, st.sources)
	snapshot.BudgetID = budgetID
	snapshot.Note = note
	snapshot.CreatedAt = takenAt.UTC()

	if err := s.db.Create(&snapshot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &snapshot, nil
}

// GetBudgetSnapshots returns a budget's snapshots, newest first.
func (s *snapshotService) GetBudgetSnapshots(budgetID string, page pagination.PageRequest) (*pagination.PageResponse[models.BudgetSnapshot], error) {
	page.Defaults()

	if _, err := findBudget(s.db, budgetID); err != nil {
		return nil, err
	}

	base := s.db.Model(&models.BudgetSnapshot{}).Where("budget_id = ?", budgetID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.BudgetSnapshot
	if err := base.Order("created_at DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetSnapshotByID returns a snapshot by ID.
func (s *snapshotService) GetSnapshotByID(snapshotID string) (*models.BudgetSnapshot, error) {
	return findSnapshot(s.db, snapshotID)
}

// UpdateSnapshotNote replaces a snapshot's note. A nil note clears it.
// No other column of a snapshot is ever written after creation.
func (s *snapshotService) UpdateSnapshotNote(snapshotID string, note *string) (*models.BudgetSnapshot, error) {
	snapshot, err := findSnapshot(s.db, snapshotID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(snapshot).Update("note", note).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	snapshot.Note = note
	return snapshot, nil
}

// DeleteSnapshot permanently removes a snapshot.
func (s *snapshotService) DeleteSnapshot(snapshotID string) error {
	snapshot, err := findSnapshot(s.db, snapshotID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(snapshot).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	logger.Get().Infow("snapshot deleted", "snapshot_id", snapshot.ID, "budget_id", snapshot.BudgetID)
	return nil
}

// CompareWithSnapshot diffs a budget's live totals against snapshotID, or
// against the default selection for now when snapshotID is empty. A budget
// without snapshots yields a comparison with a nil Snapshot.
func (s *snapshotService) CompareWithSnapshot(budgetID, snapshotID string, now time.Time) (*SnapshotComparison, error) {
	if _, err := findBudget(s.db, budgetID); err != nil {
		return nil, err
	}

	var selected *models.BudgetSnapshot
	if snapshotID != "" {
		snapshot, err := findSnapshot(s.db, snapshotID)
		if err != nil {
			return nil, err
		}
		if snapshot.BudgetID != budgetID {
			return nil, apperrors.ErrSnapshotNotFound
		}
		selected = snapshot
	} else {
		var history []models.BudgetSnapshot
		if err := s.db.Where("budget_id = ?", budgetID).Order("created_at DESC, id DESC").Find(&history).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		selected = budgeting.SelectDefaultSnapshot(history, now)
	}

	result := &SnapshotComparison{BudgetID: budgetID, Rows: []budgeting.DiffRow{}}
	if selected == nil {
		return result, nil
	}

	st, err := loadBudgetState(s.db, budgetID)
	if err != nil {
		return nil, err
	}
	totals := budgeting.ComputeScenarioTotals(st.scenarios, st.items)
	period := budgeting.ComparePeriod(*selected, budgeting.SpendTotal(totals), budgeting.IncomeTotal(st.sources))

	result.Snapshot = selected
	result.Period = &period
	result.Rows = budgeting.DiffAgainstSnapshot(*selected, totals)
	return result, nil
}

// PreviewRestore returns the writes ApplyRestore would perform without
// performing them.
func (s *snapshotService) PreviewRestore(snapshotID string) (*budgeting.RestorePlan, error) {
	snapshot, err := findSnapshot(s.db, snapshotID)
	if err != nil {
		return nil, err
	}
	if _, err := findBudget(s.db, snapshot.BudgetID); err != nil {
		return nil, err
	}
	st, err := loadBudgetState(s.db, snapshot.BudgetID)
	if err != nil {
		return nil, err
	}

	plan := budgeting.PlanRestore(*snapshot, st.scenarios, st.items, st.categories)
	return &plan, nil
}

// ApplyRestore overwrites a budget's live scenarios and line items with a
// snapshot's captured rows in one transaction. Income sources, categories
// and the snapshot itself are left untouched.
func (s *snapshotService) ApplyRestore(snapshotID string) (*budgeting.RestorePlan, error) {
	snapshot, err := findSnapshot(s.db, snapshotID)
	if err != nil {
		return nil, err
	}
	budget, err := findBudget(s.db, snapshot.BudgetID)
	if err != nil {
		return nil, err
	}

	var plan budgeting.RestorePlan
	err = s.db.Transaction(func(tx *gorm.DB) error {
		st, err := loadBudgetState(tx, budget.ID)
		if err != nil {
			return err
		}
		plan = budgeting.PlanRestore(*snapshot, st.scenarios, st.items, st.categories)
		return applyRestorePlan(tx, budget, plan)
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("snapshot restored",
		"snapshot_id", snapshot.ID,
		"budget_id", budget.ID,
		"scenarios_created", len(plan.ScenariosToCreate),
		"scenarios_updated", len(plan.ScenariosToUpdate),
		"scenarios_deleted", len(plan.ScenariosToDelete),
		"line_items_replaced", len(plan.LineItemsToCreate),
		"detached_categories", plan.DetachedCategories,
	)
	return &plan, nil
}

// applyRestorePlan writes a plan. Line items are hard-deleted so captured
// ids can be inserted again.
func applyRestorePlan(tx *gorm.DB, budget *models.Budget, plan budgeting.RestorePlan) error {
	itemIDs := make([]string, 0, len(plan.LineItemsToDelete)+len(plan.LineItemsToCreate))
	itemIDs = append(itemIDs, plan.LineItemsToDelete...)
	for _, li := range plan.LineItemsToCreate {
		itemIDs = append(itemIDs, li.ID)
	}
	if len(itemIDs) > 0 {
		if err := tx.Unscoped().Where("id IN ?", itemIDs).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
	}

	if len(plan.ScenariosToDelete) > 0 {
		if err := tx.Where("id IN ?", plan.ScenariosToDelete).Delete(&models.Scenario{}).Error; err != nil {
			return err
		}
	}

	if len(plan.ScenariosToCreate) > 0 {
		ids := make([]string, 0, len(plan.ScenariosToCreate))
		for _, sc := range plan.ScenariosToCreate {
			ids = append(ids, sc.ID)
		}
		// Scenarios deleted since the capture may still exist soft-deleted.
		if err := tx.Unscoped().Where("id IN ?", ids).Delete(&models.Scenario{}).Error; err != nil {
			return err
		}
		for _, sc := range plan.ScenariosToCreate {
			scenario := &models.Scenario{
				Base:      models.Base{ID: sc.ID},
				BudgetID:  budget.ID,
				Name:      sc.Name,
				IsDefault: sc.IsDefault,
			}
			if err := tx.Create(scenario).Error; err != nil {
				return err
			}
		}
	}

	for _, sc := range plan.ScenariosToUpdate {
		if err := tx.Model(&models.Scenario{}).Where("id = ?", sc.ID).Updates(map[string]interface{}{
			"name":       sc.Name,
			"is_default": sc.IsDefault,
		}).Error; err != nil {
			return err
		}
	}

	for _, li := range plan.LineItemsToCreate {
		currency := li.Currency
		if currency == "" {
			currency = budget.BaseCurrency
		}
		unit := li.Unit
		if unit == "" {
			unit = models.LineItemUnitPerMonth
		}
		item := &models.LineItem{
			Base:       models.Base{ID: li.ID},
			ScenarioID: li.ScenarioID,
			CategoryID: li.CategoryID,
			Label:      li.Label,
			Quantity:   li.Quantity,
			UnitCost:   li.UnitCost,
			Unit:       unit,
			Currency:   currency,
		}
		if err := tx.Create(item).Error; err != nil {
			return err
		}
	}
	return nil
}

// findSnapshot loads a snapshot or returns ErrSnapshotNotFound.
func findSnapshot(db *gorm.DB, snapshotID string) (*models.BudgetSnapshot, error) {
	var snapshot models.BudgetSnapshot
	if err := db.Where("id = ?", snapshotID).First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSnapshotNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &snapshot, nil
}
