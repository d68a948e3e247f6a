package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "playersbudget/internal/errors"
	"playersbudget/internal/models"
	"playersbudget/internal/services"
)

// LineItemHandler handles line item requests.
type LineItemHandler struct {
	lineItemService services.LineItemServicer
	auditService    services.AuditServicer
}

// NewLineItemHandler creates a new LineItemHandler.
func NewLineItemHandler(lineItemService services.LineItemServicer, auditService services.AuditServicer) *LineItemHandler {
	return &LineItemHandler{lineItemService: lineItemService, auditService: auditService}
}

// CreateLineItemRequest represents the request payload for creating a line item.
// Quantity and unit cost may be omitted or null; totals then read them as 1 and 0.
type CreateLineItemRequest struct {
	CategoryID *string             `json:"category_id" binding:"omitempty,uuid"`
	Label      string              `json:"label" binding:"required,min=1,max=200"`
	Quantity   decimal.NullDecimal `json:"quantity" swaggertype:"string" binding:"omitempty,gte=0"`
	UnitCost   decimal.NullDecimal `json:"unit_cost" swaggertype:"string"`
	Unit       string              `json:"unit" binding:"omitempty,line_item_unit"`
	Currency   string              `json:"currency" binding:"omitempty,iso4217"`
}

// UpdateLineItemRequest represents the request payload for updating a line item.
// The clear flags reset the matching column to null.
type UpdateLineItemRequest struct {
	CategoryID    *string          `json:"category_id" binding:"omitempty,uuid"`
	ClearCategory bool             `json:"clear_category"`
	Label         *string          `json:"label" binding:"omitempty,min=1,max=200"`
	Quantity      *decimal.Decimal `json:"quantity" swaggertype:"string" binding:"omitempty,gte=0"`
	ClearQuantity bool             `json:"clear_quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost" swaggertype:"string"`
	ClearUnitCost bool             `json:"clear_unit_cost"`
	Unit          *string          `json:"unit" binding:"omitempty,line_item_unit"`
	Currency      *string          `json:"currency" binding:"omitempty,iso4217"`
}

// CreateLineItem handles adding a line item to a scenario.
// @Summary     Create line item
// @Description Add a cost line to a scenario
// @Tags        line-items
// @Accept      json
// @Produce     json
// @Param       id      path string                true "Scenario ID"
// @Param       request body CreateLineItemRequest true "Line item details"
// @Success     201 {object} models.LineItem "Line item created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Scenario or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios/{id}/line-items [post]
func (h *LineItemHandler) CreateLineItem(c *gin.Context) {
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.lineItemService.CreateLineItem(scenarioID, services.LineItemInput{
		CategoryID: req.CategoryID,
		Label:      req.Label,
		Quantity:   req.Quantity,
		UnitCost:   req.UnitCost,
		Unit:       models.LineItemUnit(req.Unit),
		Currency:   req.Currency,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_LINE_ITEM", "line_item", item.ID, c.ClientIP(),
		map[string]interface{}{"scenario_id": scenarioID, "label": req.Label})

	c.JSON(http.StatusCreated, gin.H{"line_item": item})
}

// GetLineItems handles listing a scenario's line items.
// @Summary     Get line items
// @Description List a scenario's line items in creation order
// @Tags        line-items
// @Produce     json
// @Param       id path string true "Scenario ID"
// @Success     200 {array}  models.LineItem "Line items"
// @Failure     400 {object} ErrorResponse "Invalid scenario ID"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios/{id}/line-items [get]
func (h *LineItemHandler) GetLineItems(c *gin.Context) {
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	items, err := h.lineItemService.GetScenarioLineItems(scenarioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"line_items": items})
}

// GetLineItem handles retrieving a line item.
// @Summary     Get line item by ID
// @Tags        line-items
// @Produce     json
// @Param       id path string true "Line item ID"
// @Success     200 {object} models.LineItem "Line item details"
// @Failure     400 {object} ErrorResponse "Invalid line item ID"
// @Failure     404 {object} ErrorResponse "Line item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /line-items/{id} [get]
func (h *LineItemHandler) GetLineItem(c *gin.Context) {
	lineItemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.lineItemService.GetLineItemByID(lineItemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"line_item": item})
}

// UpdateLineItem handles a partial update of a line item.
// @Summary     Update line item
// @Description Partially update a line item; clear flags reset quantity, unit cost or category
// @Tags        line-items
// @Accept      json
// @Produce     json
// @Param       id      path string                true "Line item ID"
// @Param       request body UpdateLineItemRequest true "Updated line item fields"
// @Success     200 {object} models.LineItem "Updated line item"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Line item or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /line-items/{id} [put]
func (h *LineItemHandler) UpdateLineItem(c *gin.Context) {
	lineItemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.LineItemUpdate{
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
		Label:         req.Label,
		Quantity:      req.Quantity,
		ClearQuantity: req.ClearQuantity,
		UnitCost:      req.UnitCost,
		ClearUnitCost: req.ClearUnitCost,
		Currency:      req.Currency,
	}
	if req.Unit != nil {
		unit := models.LineItemUnit(*req.Unit)
		update.Unit = &unit
	}

	item, err := h.lineItemService.UpdateLineItem(lineItemID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_LINE_ITEM", "line_item", lineItemID, c.ClientIP(),
		map[string]interface{}{"label": item.Label, "quantity": item.Quantity, "unit_cost": item.UnitCost})

	c.JSON(http.StatusOK, gin.H{"line_item": item})
}

// DeleteLineItem handles deleting a line item.
// @Summary     Delete line item
// @Tags        line-items
// @Produce     json
// @Param       id path string true "Line item ID"
// @Success     200 {object} MessageResponse "Line item deleted"
// @Failure     400 {object} ErrorResponse "Invalid line item ID"
// @Failure     404 {object} ErrorResponse "Line item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /line-items/{id} [delete]
func (h *LineItemHandler) DeleteLineItem(c *gin.Context) {
	lineItemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.lineItemService.DeleteLineItem(lineItemID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_LINE_ITEM", "line_item", lineItemID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Line item deleted successfully"})
}
