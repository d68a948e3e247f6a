package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"playersbudget/internal/config"
	"playersbudget/internal/database"
	"playersbudget/internal/logger"
	"playersbudget/internal/server"
	"playersbudget/internal/validator"
)

// @title           Players Budget API
// @version         1.0
// @description     Season budgeting for traveling athletes: scenarios, line items, income sources and historical snapshots.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if !validator.IsCurrency(appConfig.DefaultCurrency) {
		return fmt.Errorf("DEFAULT_CURRENCY %q is not a supported ISO 4217 code", appConfig.DefaultCurrency)
	}
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	router := server.NewRouter(dbManager.DB(), appConfig)

	log.Infof("Starting Players Budget API on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
