package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"hearth/internal/config"
	"hearth/internal/database"
	"hearth/internal/handlers"
	"hearth/internal/logger"
	"hearth/internal/middleware"
	"hearth/internal/moneycodec"
	"hearth/internal/services"
	"hearth/internal/validator"

	_ "hearth/internal/docs" // Import swagger docs
)

// @title           Hearth API
// @version         1.0
// @description     Hearth is the backend of a household-coordination application: shared homes, member invitations, and a collaborative finance ledger with recurring entries, installment plans, and per-member visibility.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @BasePath /api/v1
func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Server error: %v", err)
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

	// Build the at-rest amount codec from configuration
	codec, err := moneycodec.New(moneycodec.Strategy(appConfig.AmountCodec), appConfig.AmountFactor, appConfig.AmountKey)
	if err != nil {
		return fmt.Errorf("failed to build amount codec: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	homeService := services.NewHomeService(db)
	financeService := services.NewFinanceService(db, homeService, codec)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	homeHandler := handlers.NewHomeHandler(homeService, auditService)
	financeHandler := handlers.NewFinanceHandler(financeService, auditService)

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

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Home routes
	homes := protected.Group("/homes")
	homes.POST("", homeHandler.CreateHome)
	homes.GET("", homeHandler.GetUserHomes)
	homes.POST("/:id/members", homeHandler.InviteMember)
	homes.POST("/:id/members/respond", homeHandler.RespondToInvite)

	// Finance routes
	homes.POST("/:id/finances", financeHandler.CreateFinanceRecord)
	homes.GET("/:id/finances", financeHandler.ListFinanceRecords)
	homes.GET("/:id/finances/balance", financeHandler.GetMonthlyBalance)
	finances := protected.Group("/finances")
	finances.PUT("/:id", financeHandler.UpdateFinanceRecord)
	finances.DELETE("/:id", financeHandler.DeleteFinanceRecord)

	log.Infof("Starting Hearth backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
