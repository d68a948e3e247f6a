package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "playersbudget/internal/errors"
	"playersbudget/internal/services"
)

// IncomeSourceHandler handles income source requests.
type IncomeSourceHandler struct {
	incomeSourceService services.IncomeSourceServicer
	auditService        services.AuditServicer
}

// NewIncomeSourceHandler creates a new IncomeSourceHandler.
func NewIncomeSourceHandler(incomeSourceService services.IncomeSourceServicer, auditService services.AuditServicer) *IncomeSourceHandler {
	return &IncomeSourceHandler{incomeSourceService: incomeSourceService, auditService: auditService}
}

// CreateIncomeSourceRequest represents the request payload for creating an income source.
// Unrecognized types are stored as "other".
type CreateIncomeSourceRequest struct {
	Label         string              `json:"label" binding:"required,min=1,max=200"`
	AmountMonthly decimal.NullDecimal `json:"amount_monthly" swaggertype:"string" binding:"omitempty,gte=0"`
	Currency      string              `json:"currency" binding:"omitempty,iso4217"`
	Type          string              `json:"type" binding:"omitempty,max=50"`
}

// UpdateIncomeSourceRequest represents the request payload for updating an income source.
type UpdateIncomeSourceRequest struct {
	Label         *string          `json:"label" binding:"omitempty,min=1,max=200"`
	AmountMonthly *decimal.Decimal `json:"amount_monthly" swaggertype:"string" binding:"omitempty,gte=0"`
	ClearAmount   bool             `json:"clear_amount"`
	Currency      *string          `json:"currency" binding:"omitempty,iso4217"`
	Type          *string          `json:"type" binding:"omitempty,max=50"`
}

// CreateIncomeSource handles adding an income source to a budget.
// @Summary     Create income source
// @Description Add a monthly income stream (prize, sponsors, gifts, other) to a budget
// @Tags        income-sources
// @Accept      json
// @Produce     json
// @Param       id      path string                    true "Budget ID"
// @Param       request body CreateIncomeSourceRequest true "Income source details"
// @Success     201 {object} models.IncomeSource "Income source created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/income-sources [post]
func (h *IncomeSourceHandler) CreateIncomeSource(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIncomeSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	source, err := h.incomeSourceService.CreateIncomeSource(budgetID, req.Label, req.AmountMonthly, req.Currency, req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_INCOME_SOURCE", "income_source", source.ID, c.ClientIP(),
		map[string]interface{}{"budget_id": budgetID, "label": req.Label, "type": source.Type})

	c.JSON(http.StatusCreated, gin.H{"income_source": source})
}

// GetIncomeSources handles listing a budget's income sources.
// @Summary     Get income sources
// @Tags        income-sources
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {array}  models.IncomeSource "Income sources"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/income-sources [get]
func (h *IncomeSourceHandler) GetIncomeSources(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	sources, err := h.incomeSourceService.GetBudgetIncomeSources(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income_sources": sources})
}

// GetIncomeSource handles retrieving an income source.
// @Summary     Get income source by ID
// @Tags        income-sources
// @Produce     json
// @Param       id path string true "Income source ID"
// @Success     200 {object} models.IncomeSource "Income source details"
// @Failure     400 {object} ErrorResponse "Invalid income source ID"
// @Failure     404 {object} ErrorResponse "Income source not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income-sources/{id} [get]
func (h *IncomeSourceHandler) GetIncomeSource(c *gin.Context) {
	sourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	source, err := h.incomeSourceService.GetIncomeSourceByID(sourceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income_source": source})
}

// UpdateIncomeSource handles a partial update of an income source.
// @Summary     Update income source
// @Tags        income-sources
// @Accept      json
// @Produce     json
// @Param       id      path string                    true "Income source ID"
// @Param       request body UpdateIncomeSourceRequest true "Updated income source fields"
// @Success     200 {object} models.IncomeSource "Updated income source"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Income source not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income-sources/{id} [put]
func (h *IncomeSourceHandler) UpdateIncomeSource(c *gin.Context) {
	sourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	source, err := h.incomeSourceService.UpdateIncomeSource(sourceID, services.IncomeSourceUpdate{
		Label:         req.Label,
		AmountMonthly: req.AmountMonthly,
		ClearAmount:   req.ClearAmount,
		Currency:      req.Currency,
		Type:          req.Type,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_INCOME_SOURCE", "income_source", sourceID, c.ClientIP(),
		map[string]interface{}{"label": source.Label, "type": source.Type})

	c.JSON(http.StatusOK, gin.H{"income_source": source})
}

// DeleteIncomeSource handles deleting an income source.
// @Summary     Delete income source
// @Tags        income-sources
// @Produce     json
// @Param       id path string true "Income source ID"
// @Success     200 {object} MessageResponse "Income source deleted"
// @Failure     400 {object} ErrorResponse "Invalid income source ID"
// @Failure     404 {object} ErrorResponse "Income source not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income-sources/{id} [delete]
func (h *IncomeSourceHandler) DeleteIncomeSource(c *gin.Context) {
	sourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeSourceService.DeleteIncomeSource(sourceID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_INCOME_SOURCE", "income_source", sourceID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Income source deleted successfully"})
}
