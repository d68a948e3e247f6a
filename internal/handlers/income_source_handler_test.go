package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "playersbudget/internal/errors"
	"playersbudget/internal/models"
	"playersbudget/internal/services"
)

// --- mock income source service ---

type mockIncomeSourceService struct {
	createIncomeSourceFn     func(budgetID, label string, amountMonthly decimal.NullDecimal, currency, incomeType string) (*models.IncomeSource, error)
	getBudgetIncomeSourcesFn func(budgetID string) ([]models.IncomeSource, error)
	getIncomeSourceByIDFn    func(incomeSourceID string) (*models.IncomeSource, error)
	updateIncomeSourceFn     func(incomeSourceID string, update services.IncomeSourceUpdate) (*models.IncomeSource, error)
	deleteIncomeSourceFn     func(incomeSourceID string) error
}

func (m *mockIncomeSourceService) CreateIncomeSource(budgetID, label string, amountMonthly decimal.NullDecimal, currency, incomeType string) (*models.IncomeSource, error) {
	if m.createIncomeSourceFn != nil {
		return m.createIncomeSourceFn(budgetID, label, amountMonthly, currency, incomeType)
	}
	return &models.IncomeSource{}, nil
}

func (m *mockIncomeSourceService) GetBudgetIncomeSources(budgetID string) ([]models.IncomeSource, error) {
	if m.getBudgetIncomeSourcesFn != nil {
		return m.getBudgetIncomeSourcesFn(budgetID)
	}
	return []models.IncomeSource{}, nil
}

func (m *mockIncomeSourceService) GetIncomeSourceByID(incomeSourceID string) (*models.IncomeSource, error) {
	if m.getIncomeSourceByIDFn != nil {
		return m.getIncomeSourceByIDFn(incomeSourceID)
	}
	return &models.IncomeSource{}, nil
}

func (m *mockIncomeSourceService) UpdateIncomeSource(incomeSourceID string, update services.IncomeSourceUpdate) (*models.IncomeSource, error) {
	if m.updateIncomeSourceFn != nil {
		return m.updateIncomeSourceFn(incomeSourceID, update)
	}
	return &models.IncomeSource{}, nil
}

func (m *mockIncomeSourceService) DeleteIncomeSource(incomeSourceID string) error {
	if m.deleteIncomeSourceFn != nil {
		return m.deleteIncomeSourceFn(incomeSourceID)
	}
	return nil
}

var _ services.IncomeSourceServicer = (*mockIncomeSourceService)(nil)

func setupIncomeSourceRouter(handler *IncomeSourceHandler) *gin.Engine {
	r := gin.New()
	r.POST("/budgets/:id/income-sources", handler.CreateIncomeSource)
	r.GET("/budgets/:id/income-sources", handler.GetIncomeSources)
	r.GET("/income-sources/:id", handler.GetIncomeSource)
	r.PUT("/income-sources/:id", handler.UpdateIncomeSource)
	r.DELETE("/income-sources/:id", handler.DeleteIncomeSource)
	return r
}

func TestIncomeSourceHandler_CreateIncomeSource(t *testing.T) {
	t.Run("returns 201 with normalized type", func(t *testing.T) {
		var gotType string
		svc := &mockIncomeSourceService{
			createIncomeSourceFn: func(budgetID, label string, amount decimal.NullDecimal, currency, incomeType string) (*models.IncomeSource, error) {
				gotType = incomeType
				return &models.IncomeSource{
					Base:          models.Base{ID: testSourceID},
					BudgetID:      budgetID,
					Label:         label,
					AmountMonthly: amount,
					Type:          models.NormalizeIncomeType(incomeType),
				}, nil
			},
		}
		r := setupIncomeSourceRouter(NewIncomeSourceHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/budgets/"+testBudgetID+"/income-sources",
			`{"label":"Club stipend","amount_monthly":"500","type":"stipend"}`)

		assertStatus(t, rec, http.StatusCreated)
		if gotType != "stipend" {
			t.Errorf("expected raw type passed to service, got %s", gotType)
		}
		source := parseJSON(t, rec)["income_source"].(map[string]interface{})
		if source["type"] != "other" {
			t.Errorf("expected type other, got %v", source["type"])
		}
		if source["amount_monthly"] != "500" {
			t.Errorf("expected amount_monthly \"500\", got %v", source["amount_monthly"])
		}
	})

	t.Run("returns 400 on negative amount", func(t *testing.T) {
		r := setupIncomeSourceRouter(NewIncomeSourceHandler(&mockIncomeSourceService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/budgets/"+testBudgetID+"/income-sources",
			`{"label":"Prize","amount_monthly":"-10"}`)

		assertStatus(t, rec, http.StatusBadRequest)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestIncomeSourceHandler_UpdateIncomeSource(t *testing.T) {
	var got services.IncomeSourceUpdate
	svc := &mockIncomeSourceService{
		updateIncomeSourceFn: func(_ string, update services.IncomeSourceUpdate) (*models.IncomeSource, error) {
			got = update
			return &models.IncomeSource{Label: "Prize money"}, nil
		},
	}
	r := setupIncomeSourceRouter(NewIncomeSourceHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "PUT", "/income-sources/"+testSourceID, `{"clear_amount":true,"type":"prize"}`)

	assertStatus(t, rec, http.StatusOK)
	if !got.ClearAmount || got.AmountMonthly != nil {
		t.Errorf("expected clear_amount only, got %+v", got)
	}
	if got.Type == nil || *got.Type != "prize" {
		t.Errorf("expected type prize, got %v", got.Type)
	}
}

func TestIncomeSourceHandler_GetIncomeSource(t *testing.T) {
	svc := &mockIncomeSourceService{
		getIncomeSourceByIDFn: func(string) (*models.IncomeSource, error) {
			return nil, apperrors.ErrIncomeSourceNotFound
		},
	}
	r := setupIncomeSourceRouter(NewIncomeSourceHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/income-sources/"+testSourceID, "")

	assertStatus(t, rec, http.StatusNotFound)
	assertErrorCode(t, parseJSON(t, rec), "INCOME_SOURCE_NOT_FOUND")
}

func TestIncomeSourceHandler_DeleteIncomeSource(t *testing.T) {
	audit := &mockAuditService{}
	r := setupIncomeSourceRouter(NewIncomeSourceHandler(&mockIncomeSourceService{}, audit))

	rec := doRequest(r, "DELETE", "/income-sources/"+testSourceID, "")

	assertStatus(t, rec, http.StatusOK)
	if len(audit.entries) != 1 || audit.entries[0].action != "DELETE_INCOME_SOURCE" {
		t.Errorf("expected DELETE_INCOME_SOURCE audit entry, got %+v", audit.entries)
	}
}
