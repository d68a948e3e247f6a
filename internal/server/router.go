// Package server assembles the HTTP router: services, handlers, middleware and
// API documentation.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"playersbudget/internal/config"
	_ "playersbudget/internal/docs" // registers the swagger document
	apperrors "playersbudget/internal/errors"
	"playersbudget/internal/handlers"
	"playersbudget/internal/middleware"
	"playersbudget/internal/services"
)

// NewRouter wires every service and handler against db and returns the
// configured engine.
func NewRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	auditService := services.NewAuditService(db)
	budgetService := services.NewBudgetService(db, cfg.DefaultCurrency)
	categoryService := services.NewCategoryService(db)
	scenarioService := services.NewScenarioService(db)
	lineItemService := services.NewLineItemService(db)
	incomeSourceService := services.NewIncomeSourceService(db)
	snapshotService := services.NewSnapshotService(db)

	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	scenarioHandler := handlers.NewScenarioHandler(scenarioService, auditService)
	lineItemHandler := handlers.NewLineItemHandler(lineItemService, auditService)
	incomeSourceHandler := handlers.NewIncomeSourceHandler(incomeSourceService, auditService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService, auditService)

	router := gin.New()
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigin))

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.ErrNotFound)
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Budget routes
	budgets := v1.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.GET("/:id/summary", budgetHandler.GetBudgetSummary)
	budgets.POST("/:id/categories", categoryHandler.CreateCategory)
	budgets.GET("/:id/categories", categoryHandler.GetCategories)
	budgets.GET("/:id/categories/breakdown", categoryHandler.GetCategoryBreakdown)
	budgets.POST("/:id/scenarios", scenarioHandler.CreateScenario)
	budgets.GET("/:id/scenarios", scenarioHandler.GetScenarios)
	budgets.GET("/:id/compare", scenarioHandler.CompareScenarios)
	budgets.POST("/:id/income-sources", incomeSourceHandler.CreateIncomeSource)
	budgets.GET("/:id/income-sources", incomeSourceHandler.GetIncomeSources)
	budgets.POST("/:id/snapshots", snapshotHandler.CreateSnapshot)
	budgets.GET("/:id/snapshots", snapshotHandler.GetSnapshots)
	budgets.GET("/:id/snapshots/compare", snapshotHandler.CompareWithSnapshot)

	// Category routes
	categories := v1.Group("/categories")
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Scenario routes
	scenarios := v1.Group("/scenarios")
	scenarios.GET("/:id", scenarioHandler.GetScenario)
	scenarios.PUT("/:id", scenarioHandler.UpdateScenario)
	scenarios.DELETE("/:id", scenarioHandler.DeleteScenario)
	scenarios.POST("/:id/line-items", lineItemHandler.CreateLineItem)
	scenarios.GET("/:id/line-items", lineItemHandler.GetLineItems)

	// Line item routes
	lineItems := v1.Group("/line-items")
	lineItems.GET("/:id", lineItemHandler.GetLineItem)
	lineItems.PUT("/:id", lineItemHandler.UpdateLineItem)
	lineItems.DELETE("/:id", lineItemHandler.DeleteLineItem)

	// Income source routes
	incomeSources := v1.Group("/income-sources")
	incomeSources.GET("/:id", incomeSourceHandler.GetIncomeSource)
	incomeSources.PUT("/:id", incomeSourceHandler.UpdateIncomeSource)
	incomeSources.DELETE("/:id", incomeSourceHandler.DeleteIncomeSource)

	// Snapshot routes
	snapshots := v1.Group("/snapshots")
	snapshots.GET("/:id", snapshotHandler.GetSnapshot)
	snapshots.PATCH("/:id", snapshotHandler.UpdateSnapshotNote)
	snapshots.DELETE("/:id", snapshotHandler.DeleteSnapshot)
	snapshots.GET("/:id/restore", snapshotHandler.PreviewRestore)
	snapshots.POST("/:id/restore", snapshotHandler.ApplyRestore)

	return router
}
