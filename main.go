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

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"venue-booking-service/config"
	"venue-booking-service/controllers"
	"venue-booking-service/database"
	"venue-booking-service/kafka"
	"venue-booking-service/logger"
	"venue-booking-service/middleware"
	"venue-booking-service/models"
	aws_pkg "venue-booking-service/pkg/aws"
	"venue-booking-service/providers"
	"venue-booking-service/repository"
	"venue-booking-service/routes"
	servicepkg "venue-booking-service/services"
)

const serviceName = "venue-booking-service"

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// AWS is optional; without it SNS, CloudWatch and Secrets Manager are off.
	awsCfg, awsErr := aws_pkg.LoadAWSConfig(ctx, cfg.AWSRegion, cfg.AWSEndpoint)

	var cwWriter *aws_pkg.CloudWatchLogsClient
	if cfg.CloudWatchEnabled && awsErr == nil {
		if cwWriter, err = aws_pkg.NewCloudWatchLogsClient(ctx, awsCfg, cfg.CloudWatchLogGroup, serviceName); err != nil {
			log.Printf("CloudWatch Logs unavailable: %v", err)
			cwWriter = nil
		}
	}
	var zapLogger *zap.Logger
	if cwWriter != nil {
		zapLogger, err = logger.New(cfg.AppEnv, cwWriter)
	} else {
		zapLogger, err = logger.New(cfg.AppEnv, nil)
	}
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	if awsErr != nil {
		zapLogger.Warn("AWS config unavailable, SNS and CloudWatch disabled", zap.Error(awsErr))
	}

	metrics := aws_pkg.NewDisabledMetricsClient()
	if cfg.CloudWatchEnabled && awsErr == nil {
		metrics = aws_pkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, true)
	}

	db, err := database.ConnectPostgres(zapLogger, cfg.DatabaseURL, &models.Booking{}, &models.PaymentNotification{})
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db) //nolint:errcheck

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zapLogger.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			zapLogger.Warn("Redis unreachable, venue cache will fall back to the database", zap.Error(err))
		}
		defer redisClient.Close() //nolint:errcheck
	}

	var publisher servicepkg.EventPublisher
	switch cfg.EventsBackend {
	case config.EventsBackendKafka:
		producer := kafka.NewBookingEventProducer(cfg.KafkaBrokers, cfg.KafkaTopic, zapLogger)
		defer producer.Close() //nolint:errcheck
		publisher = producer
	case config.EventsBackendSNS:
		if awsErr != nil {
			zapLogger.Fatal("EVENTS_BACKEND=sns requires AWS config", zap.Error(awsErr))
		}
		publisher = servicepkg.NewSNSEventPublisher(aws_pkg.NewSNSTopic(awsCfg, cfg.BookingSNSTopicARN))
	}

	gateway := providers.NewYooKassaProvider(cfg.YooKassaShopID, cfg.YooKassaSecretKey, cfg.YooKassaAPIURL, cfg.GatewayTimeout)
	if !cfg.GatewayCredentialsConfigured() {
		zapLogger.Warn("YooKassa credentials not configured, payment creation will fail")
	}

	bookingRepo := repository.NewGormBookingRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)
	venueRepo := repository.NewCachedVenueRepository(
		repository.NewGormVenueRepository(db), redisClient, cfg.VenueCacheTTL, metrics, zapLogger,
	)

	bookingService := servicepkg.NewBookingService(bookingRepo, venueRepo, publisher, metrics, zapLogger)
	paymentService := servicepkg.NewPaymentService(gateway, servicepkg.PaymentDefaults{
		Description: cfg.PaymentDescription,
		ReturnURL:   cfg.PaymentReturnURL,
	}, metrics, zapLogger)
	reconciler := servicepkg.NewWebhookReconciler(bookingRepo, notificationRepo, publisher, metrics, zapLogger)
	venueService := servicepkg.NewVenueService(venueRepo, zapLogger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(zapLogger))
	r.Use(middleware.Metrics(metrics, serviceName))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.Timeout(30 * time.Second))

	limiter := middleware.PerMinute(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	stopCleanup := make(chan struct{})
	go limiter.RunCleanup(stopCleanup)
	defer close(stopCleanup)

	routes.Register(r, routes.Controllers{
		Bookings: controllers.NewBookingController(bookingService),
		Payments: controllers.NewPaymentController(paymentService),
		Webhooks: controllers.NewWebhookController(reconciler),
		Venues:   controllers.NewVenueController(venueService),
	}, limiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	zapLogger.Info("Venue booking service started",
		zap.String("port", cfg.Port),
		zap.String("events_backend", cfg.EventsBackend),
		zap.Bool("venue_cache", redisClient != nil),
	)
	<-quit
	zapLogger.Info("Shutting down venue booking service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	zapLogger.Info("Server exited cleanly")
}
