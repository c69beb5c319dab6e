// cmd/api/main.go

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"showscout/internal/adapter/cache"
	"showscout/internal/adapter/geocode"
	"showscout/internal/adapter/source"
	"showscout/internal/adapter/storage"
	"showscout/internal/analytics"
	"showscout/internal/config"
	"showscout/internal/domain/event"
	"showscout/internal/domain/favorite"
	"showscout/internal/server"
	"showscout/internal/service/aggregator"
	"showscout/internal/service/ai"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	initLogger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Favorites need a database; everything else runs without one
	var favoriteStore favorite.Store
	if cfg.Database.Host != "" {
		db, err := initDatabase(ctx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()
		favoriteStore = storage.NewFavoriteStore(db)
	} else {
		log.Info().Msg("DB_HOST not set, favorites disabled")
	}

	searchCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer searchCache.Close()
	if !searchCache.Enabled() {
		log.Info().Msg("REDIS_HOST not set, search caching disabled")
	}

	publisher, err := analytics.NewPublisher(cfg.NATS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to NATS")
	}
	defer publisher.Close()
	if publisher == nil {
		log.Info().Msg("NATS_URL not set, search analytics disabled")
	}

	// Initialize source adapters
	adapters := []event.SourceAdapter{
		source.NewTicketmasterClient(cfg.Sources.TicketmasterAPIKey),
		source.NewSeatgeekClient(cfg.Sources.SeatgeekClientID),
	}

	// Initialize services
	agg := aggregator.NewAggregator(adapters...)
	searcher := ai.NewSearcher(cfg.AI.AnthropicAPIKey, agg)
	geocoder := geocode.NewClient()

	// Initialize HTTP server
	httpServer := server.NewServer(cfg, server.Deps{
		Aggregator: agg,
		Searcher:   searcher,
		Geocoder:   geocoder,
		Favorites:  favoriteStore,
		Cache:      searchCache,
		Publisher:  publisher,
	})

	// Start HTTP server
	go func() {
		log.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Info().Msg("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

func initLogger() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}
