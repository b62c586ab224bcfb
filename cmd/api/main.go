package main

import (
	"fmt"
	"net/http"
	"os"

	"budgetbook/internal/config"
	"budgetbook/internal/database"
	"budgetbook/internal/handlers"
	"budgetbook/internal/logger"
	"budgetbook/internal/middleware"
	"budgetbook/internal/services"
	"budgetbook/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Open database and ensure the schema exists
	dbManager, err := database.NewManager(appConfig.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db)
	budgetService := services.NewBudgetService(db)
	reportService := services.NewReportService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(accountService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/export", categoryHandler.ExportCategoriesCSV)
	categories.PUT("", categoryHandler.BatchUpdateCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetHistory)
	transactions.GET("/export", transactionHandler.ExportTransactionsCSV)
	transactions.PUT("", transactionHandler.BatchUpdateTransactions)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.PUT("", budgetHandler.SetBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/spent", budgetHandler.GetSpentPerCategory)

	// Dashboard routes
	dashboard := protected.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)

	log.Infof("Starting Budgetbook server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
