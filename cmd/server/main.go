package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/internal/infrastructure/config"
	"flightwatch-service/internal/infrastructure/persistence"
	"flightwatch-service/internal/interface/flightapi"
	storeRepo "flightwatch-service/internal/interface/repository"
	"flightwatch-service/internal/interface/telegram"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Flightwatch Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up the subscription store
	var subscriptionRepo repository.SubscriptionRepository
	var mongoClient *mongo.Client
	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoClient = client
		subscriptionRepo = storeRepo.NewMongoSubscriptionRepository(db)
	} else {
		log.Warn("MONGODB_DSN not set, subscriptions will not survive a restart")
		subscriptionRepo = storeRepo.NewMemorySubscriptionRepository()
	}

	// Set up airline master data (optional enrichment)
	var airlineRepo repository.AirlineRepository
	if cfg.PostgresURI != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airlineRepo = storeRepo.NewGormAirlineRepository(gormDB)
	} else {
		log.Warn("POSTGRES_DSN not set, airline names will not be normalized")
	}

	// Set up metrics
	m := metrics.NewMetrics("flightwatch")

	// Set up Telegram transport
	teleBot, err := telegram.NewTelebot(cfg.TelegramToken)
	if err != nil {
		log.Fatal("Failed to create Telegram bot", "error", err)
	}
	messenger := telegram.NewMessenger(teleBot, log)

	// Set up the core engine
	fetcher := flightapi.NewClient(cfg.FlightAPIBaseURL, cfg.FlightAPIKey, cfg.FlightAPITimeout, log)
	notifier := usecase.NewNotifier(messenger, m, log)
	tracker := usecase.NewTracker(subscriptionRepo, airlineRepo, fetcher, notifier, log)
	poller := usecase.NewPoller(subscriptionRepo, fetcher, notifier, cfg.PollInterval, cfg.PollInitialDelay, m, log)

	// Set up the front-end conversation and start polling Telegram
	front := telegram.NewBot(teleBot, tracker, log)
	go front.Start()

	// Start the recurring status check cycle
	go poller.Run(ctx)

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig.String())

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	front.Stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop the poller

	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Flightwatch Service stopped")
}
