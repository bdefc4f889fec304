package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/ignite/newsletter-service/internal/api"
	"github.com/ignite/newsletter-service/internal/config"
	"github.com/ignite/newsletter-service/internal/email"
	"github.com/ignite/newsletter-service/internal/repository/postgres"
	"github.com/ignite/newsletter-service/internal/service/newsletter"
	"github.com/ignite/newsletter-service/internal/service/subscription"
	"github.com/ignite/newsletter-service/internal/tokenstore"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// PostgreSQL
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancelPing()
		log.Fatalf("Failed to ping database: %v", err)
	}
	cancelPing()
	log.Println("Connected to PostgreSQL")

	// Redis (confirmation token store)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancelPing = context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		log.Fatalf("Failed to ping redis: %v", err)
	}
	cancelPing()
	log.Println("Connected to Redis")

	// Outbound email
	emailClient, err := email.NewClient(cfg.Email)
	if err != nil {
		log.Fatalf("Failed to build email client: %v", err)
	}

	// Wiring
	subscriberRepo := postgres.NewSubscriberRepo(db)
	tokenStore := tokenstore.NewRedisStore(redisClient, time.Duration(cfg.Subscription.TokenTTLHours)*time.Hour)

	subscriptionSvc := subscription.NewService(subscriberRepo, tokenStore, emailClient, cfg.Application.BaseURL)
	newsletterSvc := newsletter.NewService(subscriberRepo, emailClient)
	feedBuilder := newsletter.NewFeedBuilder(time.Duration(cfg.Feed.TimeoutSeconds)*time.Second, cfg.Feed.MaxItems)

	handlers := api.NewHandlers(subscriptionSvc, newsletterSvc, feedBuilder)
	healthChecker := api.NewHealthChecker(db, redisClient)
	server := api.NewServer(cfg.Server, handlers, healthChecker)

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
