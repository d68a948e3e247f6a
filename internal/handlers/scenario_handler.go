package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "playersbudget/internal/errors"
	"playersbudget/internal/services"
)

// ScenarioHandler handles scenario requests.
type ScenarioHandler struct {
	scenarioService services.ScenarioServicer
	auditService    services.AuditServicer
}

// NewScenarioHandler creates a new ScenarioHandler.
func NewScenarioHandler(scenarioService services.ScenarioServicer, auditService services.AuditServicer) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService, auditService: auditService}
}

// CreateScenarioRequest represents the request payload for creating a scenario.
type CreateScenarioRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	IsDefault bool   `json:"is_default"`
}

// UpdateScenarioRequest represents the request payload for updating a scenario.
type UpdateScenarioRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	IsDefault *bool   `json:"is_default"`
}

// CreateScenario handles creating a scenario in a budget.
// @Summary     Create scenario
// @Description Create an alternative plan in a budget
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Param       id      path string                true "Budget ID"
// @Param       request body CreateScenarioRequest true "Scenario details"
// @Success     201 {object} models.Scenario "Scenario created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/scenarios [post]
func (h *ScenarioHandler) CreateScenario(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	scenario, err := h.scenarioService.CreateScenario(budgetID, req.Name, req.IsDefault)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_SCENARIO", "scenario", scenario.ID, c.ClientIP(),
		map[string]interface{}{"budget_id": budgetID, "name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"scenario": scenario})
}

// GetScenarios handles listing a budget's scenarios.
// @Summary     Get scenarios
// @Description List a budget's scenarios in creation order
// @Tags        scenarios
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {array}  models.Scenario "Scenarios"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/scenarios [get]
func (h *ScenarioHandler) GetScenarios(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	scenarios, err := h.scenarioService.GetBudgetScenarios(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

// CompareScenarios handles comparing a budget's scenarios against a baseline.
// @Summary     Compare scenarios
// @Description Variance of every scenario against the baseline scenario
// @Tags        scenarios
// @Produce     json
// @Param       id       path  string true  "Budget ID"
// @Param       baseline query string false "Baseline scenario ID (defaults to the first scenario)"
// @Success     200 {object} services.ScenarioComparison "Comparison"
// @Failure     400 {object} ErrorResponse "Invalid budget or baseline ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/compare [get]
func (h *ScenarioHandler) CompareScenarios(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	baselineID, err := parseOptionalQueryID(c, "baseline")
	if err != nil {
		respondWithError(c, err)
		return
	}

	comparison, err := h.scenarioService.CompareScenarios(budgetID, baselineID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparison": comparison})
}

// GetScenario handles retrieving a scenario with its line items.
// @Summary     Get scenario by ID
// @Description Get a scenario with its line items
// @Tags        scenarios
// @Produce     json
// @Param       id path string true "Scenario ID"
// @Success     200 {object} models.Scenario "Scenario details"
// @Failure     400 {object} ErrorResponse "Invalid scenario ID"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios/{id} [get]
func (h *ScenarioHandler) GetScenario(c *gin.Context) {
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	scenario, err := h.scenarioService.GetScenarioByID(scenarioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scenario": scenario})
}

// UpdateScenario handles renaming a scenario or changing its default flag.
// @Summary     Update scenario
// @Description Update a scenario's name or default flag
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Param       id      path string                true "Scenario ID"
// @Param       request body UpdateScenarioRequest true "Updated scenario details"
// @Success     200 {object} models.Scenario "Updated scenario"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios/{id} [put]
func (h *ScenarioHandler) UpdateScenario(c *gin.Context) {
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	scenario, err := h.scenarioService.UpdateScenario(scenarioID, services.ScenarioUpdate{
		Name:      req.Name,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_SCENARIO", "scenario", scenarioID, c.ClientIP(),
		map[string]interface{}{"name": scenario.Name, "is_default": scenario.IsDefault})

	c.JSON(http.StatusOK, gin.H{"scenario": scenario})
}

// DeleteScenario handles deleting a scenario and its line items.
// @Summary     Delete scenario
// @Description Delete a scenario together with its line items
// @Tags        scenarios
// @Produce     json
// @Param       id path string true "Scenario ID"
// @Success     200 {object} MessageResponse "Scenario deleted"
// @Failure     400 {object} ErrorResponse "Invalid scenario ID"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios/{id} [delete]
func (h *ScenarioHandler) DeleteScenario(c *gin.Context) {
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.scenarioService.DeleteScenario(scenarioID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_SCENARIO", "scenario", scenarioID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Scenario deleted successfully"})
}
