package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"goldvault/internal/api"        // Custom package for API handlers
	"goldvault/internal/config"     // Custom package for configuration
	"goldvault/internal/ledger"     // Ledger engine
	"goldvault/internal/middleware" // Custom package for middleware
	"goldvault/internal/store"      // GORM store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// The engine owns every wallet mutation; handlers never write balances
	engine := ledger.NewEngine(store.New(db))

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/auth/signup", api.RegisterHandler(db))              // Registration endpoint
	r.POST("/auth/login", api.LoginHandler(db, cfg.JWTSecret))   // Login endpoint

	// Public market data routes
	r.GET("/gold/prices", api.ListGoldPricesHandler(db))                       // Price series endpoint
	r.GET("/gold/price", api.GetCurrentPriceHandler(engine, redisClient))      // Current price endpoint
	r.GET("/market/news", api.ListMarketNewsHandler(db, redisClient))          // Market news endpoint

	// User routes (protected by JWT)
	userGroup := r.Group("/api")
	userGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	userGroup.GET("/profile", api.ProfileHandler(db))                                    // Profile endpoint
	userGroup.GET("/wallet", api.GetWalletHandler(db, redisClient))                      // Wallet endpoint
	userGroup.POST("/transactions", api.PlaceOrderHandler(engine, redisClient))          // Order placement endpoint
	userGroup.GET("/transactions", api.GetTransactionHistoryHandler(db, redisClient))    // Order history endpoint
	userGroup.POST("/deposits", api.CreateDepositHandler(db))                            // Deposit request endpoint
	userGroup.GET("/deposits", api.ListDepositsHandler(db))                              // Deposit list endpoint
	userGroup.POST("/withdrawals", api.CreateWithdrawalHandler(db))                      // Withdrawal request endpoint
	userGroup.GET("/withdrawals", api.ListWithdrawalsHandler(db))                        // Withdrawal list endpoint
	userGroup.POST("/gold-locks", api.CreateGoldLockHandler(db))                         // Gold lock endpoint
	userGroup.GET("/gold-locks", api.ListGoldLocksHandler(db))                           // Gold lock list endpoint
	userGroup.POST("/portfolio", api.CreateSnapshotHandler(engine))                      // Portfolio snapshot endpoint
	userGroup.GET("/portfolio", api.ListSnapshotsHandler(db))                            // Snapshot list endpoint
	userGroup.POST("/price-alerts", api.CreatePriceAlertHandler(db))                     // Alert creation endpoint
	userGroup.GET("/price-alerts", api.ListPriceAlertsHandler(db))                       // Alert list endpoint
	userGroup.DELETE("/price-alerts/:id", api.DeletePriceAlertHandler(db))               // Alert soft-delete endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/users", api.ListUsersHandler(db, redisClient))                      // List users endpoint
	adminGroup.GET("/transactions", api.ListAllTransactionsHandler(db, redisClient))     // List transactions endpoint
	adminGroup.GET("/deposits", api.ListAllDepositsHandler(db))                          // List deposits endpoint
	adminGroup.GET("/withdrawals", api.ListAllWithdrawalsHandler(db))                    // List withdrawals endpoint
	adminGroup.GET("/gold-locks", api.ListAllGoldLocksHandler(db))                       // List gold locks endpoint
	adminGroup.POST("/gold/prices", api.RecordGoldPriceHandler(engine, redisClient))     // Price publication endpoint
	adminGroup.PUT("/deposits/:id", api.DecideDepositHandler(engine, redisClient))       // Deposit decision endpoint
	adminGroup.PUT("/withdrawals/:id", api.DecideWithdrawalHandler(engine, redisClient)) // Withdrawal decision endpoint
	adminGroup.PUT("/gold-locks/:id", api.DecideGoldLockHandler(engine, redisClient))    // Gold lock decision endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
