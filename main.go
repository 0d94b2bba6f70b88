package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/yashrajoria/atelier-backend/cache"
	"github.com/yashrajoria/atelier-backend/common/auth"
	"github.com/yashrajoria/atelier-backend/common/logger"
	commonmw "github.com/yashrajoria/atelier-backend/common/middleware"
	"github.com/yashrajoria/atelier-backend/consumer"
	"github.com/yashrajoria/atelier-backend/controllers"
	"github.com/yashrajoria/atelier-backend/database"
	aws_pkg "github.com/yashrajoria/atelier-backend/pkg/aws"
	"github.com/yashrajoria/atelier-backend/repository"
	"github.com/yashrajoria/atelier-backend/routes"
	"github.com/yashrajoria/atelier-backend/services"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	decimal.MarshalJSONWithoutQuotes = true
	controllers.RegisterValidators()

	cfg, err := LoadConfig()
	if err != nil {
		_, _ = logger.Initialize(os.Getenv("APP_ENV"))
		logger.Log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// --- 1. AWS (optional in development) ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	awsCfg, awsErr := aws_pkg.LoadAWSConfig(ctx)
	log := initLogger(ctx, cfg, awsCfg, awsErr)
	defer log.Sync()
	if awsErr != nil {
		log.Warn("AWS config unavailable, AWS integrations disabled", zap.Error(awsErr))
	}

	// --- 2. Storage ---
	db, err := database.Connect(cfg.Postgres, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("Redis unavailable, product cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	// --- 3. Dependency Injection ---
	metricsClient := aws_pkg.NewMetricsClient(awsCfg, cfg.MetricsNamespace, cfg.MetricsEnabled && awsErr == nil)

	var snsPublisher aws_pkg.SNSPublisher
	if awsErr == nil && cfg.SNSTopicArn != "" {
		snsPublisher = aws_pkg.NewSNSClient(awsCfg)
	}
	var presigner services.ImagePresigner
	if awsErr == nil && cfg.ImageBucket != "" {
		presigner = aws_pkg.NewS3Presigner(awsCfg, cfg.ImageBucket, cfg.ImageUploadExpiry)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret)
	events := services.NewEventPublisher(snsPublisher, cfg.SNSTopicArn, log)

	categoryRepo := repository.NewGormCategoryRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	cartRepo := repository.NewGormCartRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	activityRepo := repository.NewGormActivityRepository(db)
	sessionRepo := repository.NewGormAdminSessionRepository(db)
	statsRepo := repository.NewGormStatsRepository(db)

	activityService := services.NewActivityService(activityRepo, log)
	productCache := cache.NewProductCache(redisClient, cache.DefaultCacheTTL, log)
	productService := services.NewProductService(productRepo, categoryRepo, productCache, presigner, metricsClient, log)
	categoryService := services.NewCategoryService(categoryRepo, log)
	cartService := services.NewCartService(cartRepo, productRepo, log)
	orderService := services.NewOrderService(orderRepo, activityService, events, metricsClient, log)
	authService := services.NewAuthService(userRepo, tokens, activityService, events, metricsClient, log)
	adminAuthService := services.NewAdminAuthService(services.AdminCredentials{
		Username:   cfg.AdminUsername,
		Password:   cfg.AdminPassword,
		SessionTTL: cfg.AdminSessionTTL,
	}, sessionRepo, tokens, log)
	customerService := services.NewCustomerService(userRepo, log)
	dashboardService := services.NewDashboardService(statsRepo, categoryRepo, log)

	ctrl := routes.Controllers{
		Cart:      controllers.NewCartController(cartService),
		Order:     controllers.NewOrderController(orderService),
		Product:   controllers.NewProductController(productService),
		Category:  controllers.NewCategoryController(categoryService),
		Auth:      controllers.NewAuthController(authService, adminAuthService),
		Customer:  controllers.NewCustomerController(customerService),
		Dashboard: controllers.NewDashboardController(dashboardService),
		Activity:  controllers.NewActivityController(activityService),
	}

	if awsErr == nil && cfg.ActivityQueueURL != "" {
		activityConsumer := consumer.NewActivityConsumer(activityService, log)
		sqsConsumer := aws_pkg.NewSQSConsumer(awsCfg, cfg.ActivityQueueURL, log)
		go func() {
			if err := sqsConsumer.StartPolling(ctx, activityConsumer.Handle); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("Activity consumer stopped", zap.Error(err))
			}
		}()
	}

	// --- 4. HTTP Server & Middleware ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := commonmw.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, 10*time.Minute)
	go limiter.Run(ctx.Done())

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(commonmw.RequestLogger(log))
	r.Use(commonmw.Timeout(30 * time.Second))
	r.Use(commonmw.SecurityHeaders())
	r.Use(commonmw.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(commonmw.RateLimitMiddleware(limiter))
	r.Use(commonmw.MetricsMiddleware(metricsClient, cfg.ServiceName))

	r.GET("/health", controllers.Health(cfg.ServiceName))
	routes.RegisterRoutes(r, ctrl, adminAuthService)

	// --- 5. Graceful Shutdown ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Atelier backend starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down Atelier backend...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}
	if err := database.Close(db); err != nil {
		log.Error("Failed to close database", zap.Error(err))
	}
	log.Info("Atelier backend stopped gracefully")
}

// initLogger builds the process logger, shipping JSON lines to CloudWatch
// Logs when a log group is configured and AWS is reachable.
func initLogger(ctx context.Context, cfg *Config, awsCfg sdkaws.Config, awsErr error) *zap.Logger {
	if awsErr == nil && cfg.CloudWatchLogGroup != "" {
		cw, err := aws_pkg.NewCloudWatchLogsClient(ctx, awsCfg, cfg.CloudWatchLogGroup, cfg.ServiceName)
		if err == nil {
			if log, err := logger.InitializeWithWriter(cfg.Env, cw); err == nil {
				return log
			}
		}
	}
	log, err := logger.Initialize(cfg.Env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return log
}
