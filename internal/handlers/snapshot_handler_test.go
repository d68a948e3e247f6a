package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"playersbudget/internal/budgeting"
	apperrors "playersbudget/internal/errors"
	"playersbudget/internal/models"
	"playersbudget/internal/pagination"
	"playersbudget/internal/services"
)

// --- mock snapshot service ---

type mockSnapshotService struct {
	createSnapshotFn      func(budgetID string, note *string, takenAt time.Time) (*models.BudgetSnapshot, error)
	getBudgetSnapshotsFn  func(budgetID string, page pagination.PageRequest) (*pagination.PageResponse[models.BudgetSnapshot], error)
	getSnapshotByIDFn     func(snapshotID string) (*models.BudgetSnapshot, error)
	updateSnapshotNoteFn  func(snapshotID string, note *string) (*models.BudgetSnapshot, error)
	deleteSnapshotFn      func(snapshotID string) error
	compareWithSnapshotFn func(budgetID, snapshotID string, now time.Time) (*services.SnapshotComparison, error)
	previewRestoreFn      func(snapshotID string) (*budgeting.RestorePlan, error)
	applyRestoreFn        func(snapshotID string) (*budgeting.RestorePlan, error)
}

func (m *mockSnapshotService) CreateSnapshot(budgetID string, note *string, takenAt time.Time) (*models.BudgetSnapshot, error) {
	if m.createSnapshotFn != nil {
		return m.createSnapshotFn(budgetID, note, takenAt)
	}
	return &models.BudgetSnapshot{}, nil
}

func (m *mockSnapshotService) GetBudgetSnapshots(budgetID string, page pagination.PageRequest) (*pagination.PageResponse[models.BudgetSnapshot], error) {
	if m.getBudgetSnapshotsFn != nil {
		return m.getBudgetSnapshotsFn(budgetID, page)
	}
	resp := pagination.NewPageResponse([]models.BudgetSnapshot{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockSnapshotService) GetSnapshotByID(snapshotID string) (*models.BudgetSnapshot, error) {
	if m.getSnapshotByIDFn != nil {
		return m.getSnapshotByIDFn(snapshotID)
	}
	return &models.BudgetSnapshot{}, nil
}

func (m *mockSnapshotService) UpdateSnapshotNote(snapshotID string, note *string) (*models.BudgetSnapshot, error) {
	if m.updateSnapshotNoteFn != nil {
		return m.updateSnapshotNoteFn(snapshotID, note)
	}
	return &models.BudgetSnapshot{}, nil
}

func (m *mockSnapshotService) DeleteSnapshot(snapshotID string) error {
	if m.deleteSnapshotFn != nil {
		return m.deleteSnapshotFn(snapshotID)
	}
	return nil
}

func (m *mockSnapshotService) CompareWithSnapshot(budgetID, snapshotID string, now time.Time) (*services.SnapshotComparison, error) {
	if m.compareWithSnapshotFn != nil {
		return m.compareWithSnapshotFn(budgetID, snapshotID, now)
	}
	return &services.SnapshotComparison{BudgetID: budgetID, Rows: []budgeting.DiffRow{}}, nil
}

func (m *mockSnapshotService) PreviewRestore(snapshotID string) (*budgeting.RestorePlan, error) {
	if m.previewRestoreFn != nil {
		return m.previewRestoreFn(snapshotID)
	}
	return &budgeting.RestorePlan{SnapshotID: snapshotID}, nil
}

func (m *mockSnapshotService) ApplyRestore(snapshotID string) (*budgeting.RestorePlan, error) {
	if m.applyRestoreFn != nil {
		return m.applyRestoreFn(snapshotID)
	}
	return &budgeting.RestorePlan{SnapshotID: snapshotID}, nil
}

var _ services.SnapshotServicer = (*mockSnapshotService)(nil)

var fixedNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func setupSnapshotRouter(svc services.SnapshotServicer, audit services.AuditServicer) *gin.Engine {
	handler := NewSnapshotHandler(svc, audit)
	handler.now = func() time.Time { return fixedNow }

	r := gin.New()
	r.POST("/budgets/:id/snapshots", handler.CreateSnapshot)
	r.GET("/budgets/:id/snapshots", handler.GetSnapshots)
	r.GET("/budgets/:id/snapshots/compare", handler.CompareWithSnapshot)
	r.GET("/snapshots/:id", handler.GetSnapshot)
	r.PATCH("/snapshots/:id", handler.UpdateSnapshotNote)
	r.DELETE("/snapshots/:id", handler.DeleteSnapshot)
	r.GET("/snapshots/:id/restore", handler.PreviewRestore)
	r.POST("/snapshots/:id/restore", handler.ApplyRestore)
	return r
}

func TestSnapshotHandler_CreateSnapshot(t *testing.T) {
	t.Run("accepts an empty body", func(t *testing.T) {
		var gotNote *string
		var gotTakenAt time.Time
		svc := &mockSnapshotService{
			createSnapshotFn: func(budgetID string, note *string, takenAt time.Time) (*models.BudgetSnapshot, error) {
				gotNote, gotTakenAt = note, takenAt
				return &models.BudgetSnapshot{ID: testSnapshotID, BudgetID: budgetID, CreatedAt: takenAt}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupSnapshotRouter(svc, audit)

		rec := doRequest(r, "POST", "/budgets/"+testBudgetID+"/snapshots", "")

		assertStatus(t, rec, http.StatusCreated)
		if gotNote != nil {
			t.Errorf("expected nil note, got %q", *gotNote)
		}
		if !gotTakenAt.Equal(fixedNow) {
			t.Errorf("expected takenAt %v, got %v", fixedNow, gotTakenAt)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "CREATE_SNAPSHOT" {
			t.Errorf("expected CREATE_SNAPSHOT audit entry, got %+v", audit.entries)
		}
	})

	t.Run("passes the note through", func(t *testing.T) {
		var gotNote *string
		svc := &mockSnapshotService{
			createSnapshotFn: func(_ string, note *string, _ time.Time) (*models.BudgetSnapshot, error) {
				gotNote = note
				return &models.BudgetSnapshot{}, nil
			},
		}
		r := setupSnapshotRouter(svc, &mockAuditService{})

		rec := doRequest(r, "POST", "/budgets/"+testBudgetID+"/snapshots", `{"note":"before the clay swing"}`)

		assertStatus(t, rec, http.StatusCreated)
		if gotNote == nil || *gotNote != "before the clay swing" {
			t.Errorf("unexpected note: %v", gotNote)
		}
	})
}

func TestSnapshotHandler_CompareWithSnapshot(t *testing.T) {
	t.Run("returns null snapshot when there is no history", func(t *testing.T) {
		var gotSnapshotID string
		var gotNow time.Time
		svc := &mockSnapshotService{
			compareWithSnapshotFn: func(budgetID, snapshotID string, now time.Time) (*services.SnapshotComparison, error) {
				gotSnapshotID, gotNow = snapshotID, now
				return &services.SnapshotComparison{BudgetID: budgetID, Rows: []budgeting.DiffRow{}}, nil
			},
		}
		r := setupSnapshotRouter(svc, &mockAuditService{})

		rec := doRequest(r, "GET", "/budgets/"+testBudgetID+"/snapshots/compare", "")

		assertStatus(t, rec, http.StatusOK)
		body := parseJSON(t, rec)
		if v, ok := body["snapshot"]; !ok || v != nil {
			t.Errorf("expected snapshot: null, got %v (present=%v)", v, ok)
		}
		if rows, ok := body["rows"].([]interface{}); !ok || len(rows) != 0 {
			t.Errorf("expected empty rows, got %v", body["rows"])
		}
		if gotSnapshotID != "" {
			t.Errorf("expected default selection, got snapshot id %s", gotSnapshotID)
		}
		if !gotNow.Equal(fixedNow) {
			t.Errorf("expected now %v, got %v", fixedNow, gotNow)
		}
	})

	t.Run("renders signed deltas", func(t *testing.T) {
		svc := &mockSnapshotService{
			compareWithSnapshotFn: func(budgetID, snapshotID string, _ time.Time) (*services.SnapshotComparison, error) {
				return &services.SnapshotComparison{
					BudgetID: budgetID,
					Snapshot: &models.BudgetSnapshot{ID: snapshotID},
					Rows: []budgeting.DiffRow{
						{ScenarioID: "a", Delta: decimal.NewFromInt(200)},
						{ScenarioID: "b", Delta: decimal.NewFromInt(-200)},
					},
				}, nil
			},
		}
		r := setupSnapshotRouter(svc, &mockAuditService{})

		rec := doRequest(r, "GET", "/budgets/"+testBudgetID+"/snapshots/compare?snapshot_id="+testSnapshotID, "")

		assertStatus(t, rec, http.StatusOK)
		rows := parseJSON(t, rec)["rows"].([]interface{})
		if rows[0].(map[string]interface{})["delta"] != "200" || rows[1].(map[string]interface{})["delta"] != "-200" {
			t.Errorf("unexpected deltas: %v", rows)
		}
	})

	t.Run("returns 400 on malformed snapshot id", func(t *testing.T) {
		r := setupSnapshotRouter(&mockSnapshotService{}, &mockAuditService{})

		rec := doRequest(r, "GET", "/budgets/"+testBudgetID+"/snapshots/compare?snapshot_id=last", "")

		assertStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("returns 404 on snapshot from another budget", func(t *testing.T) {
		svc := &mockSnapshotService{
			compareWithSnapshotFn: func(string, string, time.Time) (*services.SnapshotComparison, error) {
				return nil, apperrors.ErrSnapshotNotFound
			},
		}
		r := setupSnapshotRouter(svc, &mockAuditService{})

		rec := doRequest(r, "GET", "/budgets/"+testBudgetID+"/snapshots/compare?snapshot_id="+testSnapshotID, "")

		assertStatus(t, rec, http.StatusNotFound)
		assertErrorCode(t, parseJSON(t, rec), "SNAPSHOT_NOT_FOUND")
	})
}

func TestSnapshotHandler_UpdateSnapshotNote(t *testing.T) {
	var gotNote *string
	svc := &mockSnapshotService{
		updateSnapshotNoteFn: func(snapshotID string, note *string) (*models.BudgetSnapshot, error) {
			gotNote = note
			return &models.BudgetSnapshot{ID: snapshotID, Note: note}, nil
		},
	}
	r := setupSnapshotRouter(svc, &mockAuditService{})

	rec := doRequest(r, "PATCH", "/snapshots/"+testSnapshotID, `{"note":null}`)

	assertStatus(t, rec, http.StatusOK)
	if gotNote != nil {
		t.Errorf("expected note cleared, got %q", *gotNote)
	}
}

func TestSnapshotHandler_PreviewRestore(t *testing.T) {
	applied := false
	svc := &mockSnapshotService{
		applyRestoreFn: func(string) (*budgeting.RestorePlan, error) {
			applied = true
			return nil, nil
		},
	}
	r := setupSnapshotRouter(svc, &mockAuditService{})

	rec := doRequest(r, "GET", "/snapshots/"+testSnapshotID+"/restore", "")

	assertStatus(t, rec, http.StatusOK)
	if parseJSON(t, rec)["noop"] != true {
		t.Error("expected noop plan")
	}
	if applied {
		t.Error("preview must not apply the restore")
	}
}

func TestSnapshotHandler_ApplyRestore(t *testing.T) {
	t.Run("requires confirmation", func(t *testing.T) {
		for _, body := range []string{`{}`, `{"confirm":false}`} {
			svc := &mockSnapshotService{
				applyRestoreFn: func(string) (*budgeting.RestorePlan, error) {
					t.Error("service should not be called")
					return nil, nil
				},
			}
			audit := &mockAuditService{}
			r := setupSnapshotRouter(svc, audit)

			rec := doRequest(r, "POST", "/snapshots/"+testSnapshotID+"/restore", body)

			assertStatus(t, rec, http.StatusBadRequest)
			assertErrorCode(t, parseJSON(t, rec), "RESTORE_NOT_CONFIRMED")
			if len(audit.entries) != 0 {
				t.Errorf("expected no audit entries, got %+v", audit.entries)
			}
		}
	})

	t.Run("applies when confirmed", func(t *testing.T) {
		svc := &mockSnapshotService{
			applyRestoreFn: func(snapshotID string) (*budgeting.RestorePlan, error) {
				return &budgeting.RestorePlan{
					SnapshotID:        snapshotID,
					ScenariosToCreate: []models.SnapshotScenario{{ID: testScenarioID, Name: "Lean"}},
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupSnapshotRouter(svc, audit)

		rec := doRequest(r, "POST", "/snapshots/"+testSnapshotID+"/restore", `{"confirm":true}`)

		assertStatus(t, rec, http.StatusOK)
		plan := parseJSON(t, rec)["plan"].(map[string]interface{})
		if plan["snapshot_id"] != testSnapshotID {
			t.Errorf("expected snapshot_id %s, got %v", testSnapshotID, plan["snapshot_id"])
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "RESTORE_SNAPSHOT" {
			t.Errorf("expected RESTORE_SNAPSHOT audit entry, got %+v", audit.entries)
		}
	})
}

func TestSnapshotHandler_DeleteSnapshot(t *testing.T) {
	svc := &mockSnapshotService{
		deleteSnapshotFn: func(string) error { return apperrors.ErrSnapshotNotFound },
	}
	r := setupSnapshotRouter(svc, &mockAuditService{})

	rec := doRequest(r, "DELETE", "/snapshots/"+testSnapshotID, "")

	assertStatus(t, rec, http.StatusNotFound)
}
