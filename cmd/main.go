package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitprofile/database"
	"fitprofile/docs"
	"fitprofile/internal/cache"
	"fitprofile/internal/config"
	"fitprofile/internal/controllers"
	"fitprofile/internal/events"
	"fitprofile/internal/healthstore"
	"fitprofile/internal/logger"
	"fitprofile/internal/middleware"
	"fitprofile/internal/profile"
	"fitprofile/internal/repository"
	"fitprofile/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load(".env", "../.env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY must be set")
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	docs.SwaggerInfo.Title = "Fitness Profile API"
	docs.SwaggerInfo.Description = "Age, height, weight and BMI of a user, read from recorded health samples."
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	sampleRepo := repository.NewSampleRepository(db)
	authorizationRepo := repository.NewAuthorizationRepository(db)
	characteristicRepo := repository.NewCharacteristicRepository(db)
	store := healthstore.NewStore(sampleRepo, authorizationRepo, characteristicRepo)

	checks := map[string]controllers.HealthCheck{
		"database": func(context.Context) error { return database.Ping(db) },
	}

	var stateCache profile.StateCache = cache.Nop{}
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL, cfg.CacheTTL)
		cancel()
		if err != nil {
			logger.Logger.Warn("Redis unavailable, profile cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			stateCache = redisClient
			checks["redis"] = func(ctx context.Context) error {
				_, err := redisClient.Status(ctx)
				return err
			}
			logger.Logger.Info("Profile cache enabled", zap.Duration("ttl", cfg.CacheTTL))
		}
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.RabbitMQURL, cfg.EventExchange)
		if err != nil {
			logger.Logger.Warn("RabbitMQ unavailable, refresh events disabled", zap.Error(err))
		} else {
			publisher = amqpPublisher
			logger.Logger.Info("Publishing refresh events", zap.String("exchange", cfg.EventExchange))
		}
	}
	defer publisher.Close()

	service := profile.NewService(store, stateCache, publisher)

	profileController := controllers.NewProfileController(service, profile.Units(cfg.DefaultUnits))
	sampleController := controllers.NewSampleController(sampleRepo, characteristicRepo, service)
	authorizationController := controllers.NewAuthorizationController(authorizationRepo, service)
	healthController := controllers.NewHealthController(checks)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":  "Fitness profile API is running",
			"version":  "1.0.0",
			"database": cfg.DBDriver,
			"units":    cfg.DefaultUnits,
		})
	})

	routes.RegisterProfileRoutes(router, cfg.JWTSecret, profileController)
	routes.RegisterSampleRoutes(router, cfg.JWTSecret, sampleController)
	routes.RegisterAuthorizationRoutes(router, cfg.JWTSecret, authorizationController)
	routes.RegisterHealthRoutes(router, healthController)
	routes.RegisterSwaggerRoutes(router)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Logger.Info("Server starting", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}
}
