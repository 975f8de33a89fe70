package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"smartPricer/app/echo-server/router"
	"smartPricer/business/pricing"
	productService "smartPricer/business/product"
	"smartPricer/business/simulation"
	userService "smartPricer/business/user"
	"smartPricer/internal/middleware"
	"smartPricer/internal/repository/artifact"
	psqlRepo "smartPricer/internal/repository/postgres"
	redisRepo "smartPricer/internal/repository/redis"
	"smartPricer/internal/rest"
	"smartPricer/pkg/config"
	"smartPricer/pkg/database"
	redisdb "smartPricer/pkg/database/redis"
	"smartPricer/pkg/logger"
	"smartPricer/pkg/metrics"
	"smartPricer/pkg/utils"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting SmartPricer", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Load serving artifacts; the server refuses to start without them.
	scaler, err := artifact.LoadScaler(cfg.Artifact.ScalerPath)
	if err != nil {
		logger.Fatal("Failed to load scaler artifact", "path", cfg.Artifact.ScalerPath, "error", err)
	}
	policy, err := artifact.LoadPolicy(cfg.Artifact.PolicyPath, time.Now().UnixNano())
	if err != nil {
		logger.Fatal("Failed to load policy artifact", "path", cfg.Artifact.PolicyPath, "error", err)
	}
	adapter := pricing.NewDecisionAdapter(policy.Decide)

	logger.Info("Artifacts loaded", "scaler", cfg.Artifact.ScalerPath, "policy", cfg.Artifact.PolicyPath)

	metrics.Init()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productsRepo := psqlRepo.NewProductRepository(db)
	pricingConfigRepo := psqlRepo.NewPricingConfigRepository(db)
	priceDecisionRepo := psqlRepo.NewPriceDecisionRepository(db)

	// Optional prediction cache
	var predictionCache productService.PredictionCache
	if cfg.Redis.RedisHost != "" {
		redisClient, err := redisdb.InitRedis(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		predictionCache = redisRepo.NewPredictionCache(redisClient)
		logger.Info("Redis connected successfully")
	}

	// Init service
	pricingSvc := pricing.NewService(scaler, adapter, pricingConfigRepo, priceDecisionRepo, pricing.DefaultEngineConfig())
	productSvc := productService.NewProductService(productsRepo, pricingSvc, predictionCache)
	simulationSvc := simulation.NewService(productsRepo, pricingSvc)
	userSvc := userService.NewUserService(userRepo)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	productHandler := rest.NewProductHandler(productSvc)
	pricingHandler := rest.NewPricingHandler(pricingSvc)
	pricingAdminHandler := rest.NewPricingAdminHandler(pricingConfigRepo, priceDecisionRepo)
	simulationHandler := rest.NewSimulationHandler(simulationSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupPricingRoutes(api, pricingHandler)
	router.SetupPricingAdminRoutes(api, pricingAdminHandler)
	router.SetupSimulationRoutes(api, simulationHandler, authRequired)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
