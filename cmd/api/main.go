package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/kioskpos/bundle_service/internal/adapter/handler"
	"github.com/kioskpos/bundle_service/internal/adapter/payment"
	"github.com/kioskpos/bundle_service/internal/adapter/queue/rabbitmq"
	"github.com/kioskpos/bundle_service/internal/adapter/repository/postgres"
	"github.com/kioskpos/bundle_service/internal/config"
	"github.com/kioskpos/bundle_service/internal/core/ports"
	"github.com/kioskpos/bundle_service/internal/core/services"
	"github.com/kioskpos/bundle_service/internal/platform/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using OS environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	})
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}
	defer db.Close()

	log.Printf("Connecting to Redis at %s:%s...", cfg.RedisHost, cfg.RedisPort)

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		DB:   0,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully!")

	var compensations ports.CompensationPublisher
	producer, err := rabbitmq.NewProducer(cfg.RabbitMQURL, cfg.CompensationQueue)
	if err != nil {
		log.Printf("WARN: RabbitMQ unavailable (%v), compensation events will be logged only", err)
		compensations = &rabbitmq.FallbackProducer{}
	} else {
		defer producer.Close()
		compensations = producer
	}

	catalogRepo := postgres.NewCatalogRepository(db)
	bundleRepo := postgres.NewBundleRepository(db)
	ledgerRepo := postgres.NewLedgerRepository(db)
	consumerRepo := postgres.NewConsumerRepository(db)

	paymentClient := payment.NewClient(cfg.PaymentAPIBaseURL, cfg.PaymentAPIKey)

	resolver := services.NewConsumerResolver(consumerRepo)
	purchaseService := services.NewPurchaseService(catalogRepo, bundleRepo, resolver, paymentClient, compensations, redisClient)
	lifecycleService := services.NewLifecycleService(bundleRepo, ledgerRepo)

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()

	go func() {
		lifecycleService.RunExpirySweeper(sweeperCtx, cfg.ExpirySweepInterval)
	}()

	purchaseHandler := handler.NewPurchaseHandler(purchaseService, resolver)
	bundleHandler := handler.NewBundleHandler(lifecycleService)

	router := handler.NewRouter(purchaseHandler, bundleHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
