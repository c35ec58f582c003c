package main

import (
	"fmt"
	"net/http"
	"os"

	"debttrack/internal/config"
	"debttrack/internal/database"
	"debttrack/internal/handlers"
	"debttrack/internal/logger"
	"debttrack/internal/middleware"
	"debttrack/internal/services"
	"debttrack/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "debttrack/internal/docs" // Import swagger docs
)

// @title           DebtTrack API
// @version         1.0
// @description     DebtTrack is a personal debt and finance tracker. Account balances, debt progress, and goal funding are derived from an append-only payment and revenue ledger, and multi-year payoff and savings outcomes are projected with snowball or avalanche strategies.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	recomputeService := services.NewRecomputeService(db)
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db, recomputeService)
	debtService := services.NewDebtService(db, accountService, recomputeService)
	paymentService := services.NewPaymentService(db, recomputeService)
	revenueService := services.NewRevenueService(db, recomputeService)
	goalService := services.NewGoalService(db, accountService, recomputeService)
	categoryService := services.NewCategoryService(db)
	projectionService := services.NewProjectionService(db, recomputeService)
	summaryService := services.NewSummaryService(db, recomputeService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService)
	debtHandler := handlers.NewDebtHandler(debtService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	revenueHandler := handlers.NewRevenueHandler(revenueService)
	goalHandler := handlers.NewGoalHandler(goalService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	projectionHandler := handlers.NewProjectionHandler(projectionService, recomputeService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

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

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

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
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Account routes
	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetUserAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	// Debt routes
	debts := protected.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.GetUserDebts)
	debts.GET("/:id", debtHandler.GetDebtByID)
	debts.PUT("/:id", debtHandler.UpdateDebt)
	debts.DELETE("/:id", debtHandler.DeleteDebt)

	// Payment routes (append-only, no update)
	payments := protected.Group("/payments")
	payments.POST("", paymentHandler.RecordPayment)
	payments.GET("", paymentHandler.GetUserPayments)
	payments.GET("/:id", paymentHandler.GetPaymentByID)
	payments.DELETE("/:id", paymentHandler.DeletePayment)

	// Revenue routes (append-only, no update)
	revenues := protected.Group("/revenues")
	revenues.POST("", revenueHandler.RecordRevenue)
	revenues.GET("", revenueHandler.GetUserRevenues)
	revenues.GET("/:id", revenueHandler.GetRevenueByID)
	revenues.DELETE("/:id", revenueHandler.DeleteRevenue)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetUserGoals)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/accounts", goalHandler.LinkAccount)
	goals.DELETE("/:id/accounts/:account_id", goalHandler.UnlinkAccount)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetUserCategories)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Projection and recomputation routes
	protected.POST("/projection", projectionHandler.Project)
	protected.GET("/projection/export", projectionHandler.ExportCSV)
	protected.POST("/recompute", projectionHandler.Recompute)

	// Dashboard summary
	protected.GET("/summary", summaryHandler.GetSummary)

	log.Infof("Starting DebtTrack backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
