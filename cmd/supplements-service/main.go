package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/vitalmarket/supplements-service/internal/clients"
	"github.com/vitalmarket/supplements-service/internal/database"
	"github.com/vitalmarket/supplements-service/internal/logs"
	"github.com/vitalmarket/supplements-service/internal/middlewares"
	"github.com/vitalmarket/supplements-service/internal/repository"
	"github.com/vitalmarket/supplements-service/internal/router"
	"github.com/vitalmarket/supplements-service/internal/service"
	"github.com/vitalmarket/supplements-service/internal/web"
	"golang.org/x/time/rate"
)

const (
	defaultRateLimitRPS   = 50
	defaultRateLimitBurst = 100
)

func main() {
	logger := logs.NewSlogLogger()
	err := godotenv.Load()
	if err == nil {
		logger.Info("loaded environment variables from .env file")
	} else {
		logger.Info("no .env file found, using environment variables")
	}

	pgDb, err := database.InitializePostgresDB()
	if err != nil {
		logger.Error("error connecting to database", "error", err)
		os.Exit(1)
	}
	logger.Info("database connected successfully")
	defer pgDb.Close()

	assetLink := mustGetenv("ASSET_LINK", logger)
	tagsURL := mustGetenv("TAGS_SERVICE_URL", logger)
	productsURL := mustGetenv("PRODUCTS_SERVICE_URL", logger)

	queries := repository.New(pgDb, logger, assetLink)
	tagsClient := clients.NewTagsClient(tagsURL, logger)
	productsClient := clients.NewProductsClient(productsURL, logger)
	svc := service.NewSupplementsService(queries, tagsClient, productsClient, logger)

	rateLimiter, err := initializeRateLimiter(logger)
	if err != nil {
		logger.Error("error initializing rate limiter", "error", err)
		os.Exit(1)
	}

	mux := router.ConfigRoutes(pgDb, svc, rateLimiter, logger)

	srv, err := web.InitializeServer(os.Getenv("PORT"), mux, logger)
	if err != nil {
		logger.Error("error initializing server", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
	logger.Info("shutdown complete")
}

func mustGetenv(key string, logger logs.Logger) string {
	value := os.Getenv(key)
	if value == "" {
		logger.Error(key + " is not set")
		os.Exit(1)
	}
	return value
}

func initializeRateLimiter(logger logs.Logger) (*middlewares.RateLimiterMiddleware, error) {
	config := middlewares.RateLimitConfig{
		Rate:  rate.Limit(envInt("RATE_LIMIT_RPS", defaultRateLimitRPS)),
		Burst: envInt("RATE_LIMIT_BURST", defaultRateLimitBurst),
	}

	if os.Getenv("RATE_LIMIT_ENABLED") != "true" {
		logger.Info("rate limiting disabled")
		return middlewares.NewRateLimiterMiddleware(logger, config, nil, false), nil
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is not set")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("could not parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("could not ping redis: %w", err)
	}
	logger.Info("redis connected successfully")

	return middlewares.NewRateLimiterMiddleware(logger, config, redis_rate.NewLimiter(client), true), nil
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
