package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"valora.backend/internal/config"
	"valora.backend/internal/infrastructure/explorer"
	"valora.backend/internal/infrastructure/jobs"
	"valora.backend/internal/infrastructure/notifications"
	"valora.backend/internal/infrastructure/pricefeed"
	"valora.backend/internal/infrastructure/repositories"
	"valora.backend/internal/interfaces/http/handlers"
	"valora.backend/internal/interfaces/http/middleware"
	"valora.backend/internal/usecases"
	"valora.backend/pkg/jwt"
	"valora.backend/pkg/logger"
	"valora.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	walletRepo := repositories.NewCompanyWalletRepository(db)
	trackingRepo := repositories.NewPaymentTrackingRepository(db)
	requestRepo := repositories.NewPaymentRequestRepository(db)
	planRepo := repositories.NewInvestmentPlanRepository(db)
	investmentRepo := repositories.NewInvestmentRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	balanceRepo := repositories.NewBalanceRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)

	// Initialize external services
	rateService := pricefeed.NewService(cfg.PriceFeed.BaseURL, cfg.PriceFeed.Timeout)
	observers := explorer.NewRegistry(cfg.Explorer)

	var notifier notifications.Notifier = notifications.NopNotifier{}
	if cfg.Email.ServiceID != "" {
		notifier = notifications.NewRelayNotifier(cfg.Email)
	} else {
		log.Println("⚠️ Email relay not configured, notifications disabled")
	}

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, notifier)
	depositUsecase := usecases.NewDepositUsecase(trackingRepo, requestRepo, walletRepo, userRepo, txRepo, balanceRepo, rateService, notifier, cfg.Monitor.SweepLimit)
	walletUsecase := usecases.NewWalletUsecase(walletRepo)
	investmentUsecase := usecases.NewInvestmentUsecase(planRepo, investmentRepo, userRepo, txRepo, balanceRepo, notifier)
	withdrawalUsecase := usecases.NewWithdrawalUsecase(withdrawalRepo, userRepo, txRepo, balanceRepo, notifier)
	userUsecase := usecases.NewUserUsecase(userRepo, balanceRepo, txRepo)
	reconciler := usecases.NewReconciler(walletRepo, trackingRepo, userRepo, txRepo, balanceRepo, observers, notifier)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	depositHandler := handlers.NewDepositHandler(depositUsecase)
	walletHandler := handlers.NewWalletHandler(walletUsecase)
	investmentHandler := handlers.NewInvestmentHandler(investmentUsecase)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalUsecase)
	userHandler := handlers.NewUserHandler(userUsecase)
	contactHandler := handlers.NewContactHandler(notifier)
	adminHandler := handlers.NewAdminHandler(userUsecase, depositUsecase, walletUsecase, withdrawalUsecase, reconciler)

	// Create auth middleware
	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitorJob := jobs.NewDepositMonitorJob(reconciler, depositUsecase, cfg.Monitor.Interval)
	if cfg.Monitor.AutoStart {
		go monitorJob.Start(ctx)
	} else {
		log.Println("⚠️ Deposit monitor auto-start disabled")
	}

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	registerAPIV1Routes(r, routeDeps{
		authHandler:       authHandler,
		depositHandler:    depositHandler,
		walletHandler:     walletHandler,
		investmentHandler: investmentHandler,
		withdrawalHandler: withdrawalHandler,
		userHandler:       userHandler,
		contactHandler:    contactHandler,
		adminHandler:      adminHandler,
		authMiddleware:    authMiddleware,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		monitorJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Valora Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "valora-backend",
			"version": "0.1.0",
		})
	})
}
