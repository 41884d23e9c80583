package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/ArowuTest/rsu-vesting/api/routes"
	"github.com/ArowuTest/rsu-vesting/internal/config"
	"github.com/ArowuTest/rsu-vesting/internal/logging"
	"github.com/ArowuTest/rsu-vesting/internal/metrics"
	"github.com/ArowuTest/rsu-vesting/internal/repositories"
	"github.com/ArowuTest/rsu-vesting/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/rsu-vesting/internal/repositories/mongodb"
	"github.com/ArowuTest/rsu-vesting/internal/repositories/redisstore"
	"github.com/ArowuTest/rsu-vesting/internal/services"
	"github.com/ArowuTest/rsu-vesting/pkg/jwt"
	mongodb "github.com/ArowuTest/rsu-vesting/pkg/mongodb"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()
	awardRepo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("Failed to open award store")
	}
	defer closeStore()

	m := metrics.NewRegistry()
	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		AwardService:   services.NewAwardService(awardRepo, m),
		SessionService: services.NewSessionService(jwt.NewSessionTokenService(cfg.Session.Secret, cfg.Session.TTL)),
		Metrics:        m,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Str("port", cfg.Server.Port).Str("store", cfg.Store.Driver).Msg("Server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// openStore builds the award store selected by store.driver. The returned
// func releases its connections.
func openStore(ctx context.Context, cfg *config.Config) (repositories.AwardRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverMongoDB:
		client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("Error disconnecting from MongoDB")
			}
		}
		repo := mongorepo.NewAwardRepository(client.Database(cfg.MongoDB.Database), cfg.Session.TTL)
		if err := repo.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("ensure award indexes: %w", err)
		}
		return repo, closeFn, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing Redis client")
			}
		}
		return redisstore.NewAwardRepository(client, cfg.Session.TTL), closeFn, nil

	default:
		return memory.NewAwardRepository(cfg.Session.TTL), func() {}, nil
	}
}
