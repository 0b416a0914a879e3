package main

import (
	"log"

	_ "crossborder/api/swagger" // swagger docs
	"crossborder/internal/config"
	"crossborder/internal/database"
	"crossborder/internal/handler"
	"crossborder/internal/middleware"
	"crossborder/internal/repository"
	"crossborder/internal/service"
	"crossborder/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Cross-Border Pricing Engine API
// @version         1.0
// @description     Tariff classification, shipping policy selection, margin-aware price calculation and verification sweeps over the catalog snapshot.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration load failed: %v", err)
	}
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.NewConnection(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	opts := cfg.Engine.EngineOptions()
	tariffRepo := repository.NewTariffRepository(db)
	policyRepo := repository.NewShippingPolicyRepository(db)
	rateRepo := repository.NewExchangeRateRepository(db)
	marginRepo := repository.NewMarginSettingRepository(db)
	feeRepo := repository.NewMarketplaceFeeRepository(db)
	hintRepo := repository.NewCategoryHintRepository(db)

	catalogService := service.NewCatalogService(tariffRepo, policyRepo, rateRepo, marginRepo, feeRepo, hintRepo, opts, logger)
	pricingService := service.NewPricingService(catalogService, opts, wsHub, logger)

	pricingHandler := handler.NewPricingHandler(pricingService)
	catalogHandler := handler.NewCatalogHandler(tariffRepo, policyRepo, rateRepo)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"} // Dashboard URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint for the sweep progress feed
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	pricingHandler.RegisterRoutes(router.Group(""))
	catalogHandler.RegisterRoutes(router.Group(""))

	log.Printf("Server listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
