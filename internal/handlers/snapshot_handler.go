package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "playersbudget/internal/errors"
	"playersbudget/internal/pagination"
	"playersbudget/internal/services"
)

// SnapshotHandler handles budget snapshot requests.
type SnapshotHandler struct {
	snapshotService services.SnapshotServicer
	auditService    services.AuditServicer
	now             func() time.Time
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(snapshotService services.SnapshotServicer, auditService services.AuditServicer) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService, auditService: auditService, now: time.Now}
}

// CreateSnapshotRequest represents the request payload for taking a snapshot.
type CreateSnapshotRequest struct {
	Note *string `json:"note" binding:"omitempty,max=500"`
}

// UpdateSnapshotNoteRequest represents the request payload for editing a snapshot note.
// A null or missing note clears it.
type UpdateSnapshotNoteRequest struct {
	Note *string `json:"note" binding:"omitempty,max=500"`
}

// RestoreSnapshotRequest represents the request payload for applying a restore.
type RestoreSnapshotRequest struct {
	Confirm bool `json:"confirm"`
}

// CreateSnapshot handles capturing a budget's current totals.
// @Summary     Create snapshot
// @Description Capture scenario totals, spend and income totals of a budget
// @Tags        snapshots
// @Accept      json
// @Produce     json
// @Param       id      path string                true  "Budget ID"
// @Param       request body CreateSnapshotRequest false "Optional note"
// @Success     201 {object} models.BudgetSnapshot "Snapshot created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/snapshots [post]
func (h *SnapshotHandler) CreateSnapshot(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSnapshotRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	snapshot, err := h.snapshotService.CreateSnapshot(budgetID, req.Note, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_SNAPSHOT", "budget_snapshot", snapshot.ID, c.ClientIP(),
		map[string]interface{}{"budget_id": budgetID, "spend_total": snapshot.SpendTotal, "income_total": snapshot.IncomeTotal})

	c.JSON(http.StatusCreated, gin.H{"snapshot": snapshot})
}

// GetSnapshots handles listing a budget's snapshots.
// @Summary     Get snapshots
// @Description List a budget's snapshots, newest first
// @Tags        snapshots
// @Produce     json
// @Param       id        path  string true  "Budget ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.BudgetSnapshot] "Paginated snapshots"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/snapshots [get]
func (h *SnapshotHandler) GetSnapshots(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.snapshotService.GetBudgetSnapshots(budgetID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CompareWithSnapshot handles diffing live totals against a snapshot.
// @Summary     Compare with snapshot
// @Description Diff live scenario totals against a snapshot. Without snapshot_id the
// @Description first snapshot from last month is used, falling back to older history.
// @Tags        snapshots
// @Produce     json
// @Param       id          path  string true  "Budget ID"
// @Param       snapshot_id query string false "Snapshot ID"
// @Success     200 {object} services.SnapshotComparison "Comparison; snapshot is null without history"
// @Failure     400 {object} ErrorResponse "Invalid budget or snapshot ID"
// @Failure     404 {object} ErrorResponse "Budget or snapshot not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/snapshots/compare [get]
func (h *SnapshotHandler) CompareWithSnapshot(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	snapshotID, err := parseOptionalQueryID(c, "snapshot_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	comparison, err := h.snapshotService.CompareWithSnapshot(budgetID, snapshotID, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, comparison)
}

// GetSnapshot handles retrieving a snapshot.
// @Summary     Get snapshot by ID
// @Tags        snapshots
// @Produce     json
// @Param       id path string true "Snapshot ID"
// @Success     200 {object} models.BudgetSnapshot "Snapshot details"
// @Failure     400 {object} ErrorResponse "Invalid snapshot ID"
// @Failure     404 {object} ErrorResponse "Snapshot not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /snapshots/{id} [get]
func (h *SnapshotHandler) GetSnapshot(c *gin.Context) {
	snapshotID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.snapshotService.GetSnapshotByID(snapshotID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshot": snapshot})
}

// UpdateSnapshotNote handles editing a snapshot's note.
// @Summary     Update snapshot note
// @Description Replace or clear a snapshot's note. Captured totals never change.
// @Tags        snapshots
// @Accept      json
// @Produce     json
// @Param       id      path string                    true "Snapshot ID"
// @Param       request body UpdateSnapshotNoteRequest true "New note"
// @Success     200 {object} models.BudgetSnapshot "Updated snapshot"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Snapshot not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /snapshots/{id} [patch]
func (h *SnapshotHandler) UpdateSnapshotNote(c *gin.Context) {
	snapshotID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSnapshotNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	snapshot, err := h.snapshotService.UpdateSnapshotNote(snapshotID, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_SNAPSHOT_NOTE", "budget_snapshot", snapshotID, c.ClientIP(),
		map[string]interface{}{"note": req.Note})

	c.JSON(http.StatusOK, gin.H{"snapshot": snapshot})
}

// DeleteSnapshot handles deleting a snapshot.
// @Summary     Delete snapshot
// @Tags        snapshots
// @Produce     json
// @Param       id path string true "Snapshot ID"
// @Success     200 {object} MessageResponse "Snapshot deleted"
// @Failure     400 {object} ErrorResponse "Invalid snapshot ID"
// @Failure     404 {object} ErrorResponse "Snapshot not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /snapshots/{id} [delete]
func (h *SnapshotHandler) DeleteSnapshot(c *gin.Context) {
	snapshotID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.snapshotService.DeleteSnapshot(snapshotID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_SNAPSHOT", "budget_snapshot", snapshotID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Snapshot deleted successfully"})
}

// PreviewRestore handles showing what restoring a snapshot would change.
// @Summary     Preview restore
// @Description List the scenario and line item writes a restore would perform. Nothing is changed.
// @Tags        snapshots
// @Produce     json
// @Param       id path string true "Snapshot ID"
// @Success     200 {object} budgeting.RestorePlan "Restore plan"
// @Failure     400 {object} ErrorResponse "Invalid snapshot ID"
// @Failure     404 {object} ErrorResponse "Snapshot or budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /snapshots/{id}/restore [get]
func (h *SnapshotHandler) PreviewRestore(c *gin.Context) {
	snapshotID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.snapshotService.PreviewRestore(snapshotID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan, "noop": plan.IsNoop()})
}

// ApplyRestore handles overwriting live scenarios and line items with a snapshot.
// @Summary     Apply restore
// @Description Overwrite the budget's scenarios and line items with the snapshot's. Requires {"confirm": true}.
// @Tags        snapshots
// @Accept      json
// @Produce     json
// @Param       id      path string                 true "Snapshot ID"
// @Param       request body RestoreSnapshotRequest true "Confirmation"
// @Success     200 {object} budgeting.RestorePlan "Applied plan"
// @Failure     400 {object} ErrorResponse "Invalid input or not confirmed"
// @Failure     404 {object} ErrorResponse "Snapshot or budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /snapshots/{id}/restore [post]
func (h *SnapshotHandler) ApplyRestore(c *gin.Context) {
	snapshotID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RestoreSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if !req.Confirm {
		respondWithError(c, apperrors.ErrRestoreNotConfirmed)
		return
	}

	plan, err := h.snapshotService.ApplyRestore(snapshotID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("RESTORE_SNAPSHOT", "budget_snapshot", snapshotID, c.ClientIP(),
		map[string]interface{}{
			"scenarios_created":   len(plan.ScenariosToCreate),
			"scenarios_deleted":   len(plan.ScenariosToDelete),
			"line_items_restored": len(plan.LineItemsToCreate),
		})

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
