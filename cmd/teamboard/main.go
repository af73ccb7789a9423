package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/teamboard/internal/auth"
	"github.com/gosuda/teamboard/internal/config"
	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/server"
	"github.com/gosuda/teamboard/internal/service"
	"github.com/gosuda/teamboard/internal/store/memory"
	"github.com/gosuda/teamboard/internal/store/postgres"
	redisstore "github.com/gosuda/teamboard/internal/store/redis"
	"github.com/gosuda/teamboard/internal/store/seed"
)

// closableStore is what both store drivers hand to the service.
type closableStore interface {
	service.Store
	Close()
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	setupLogging(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Seed.Enabled {
		if err := applySeed(ctx, store, cfg.Seed.File); err != nil {
			return err
		}
	}

	var opts []service.Option

	// Redis is optional: without it the board works but nothing is streamed.
	var pubsub *redisstore.PubSub
	if cfg.Redis.Enabled() {
		pubsub, err = redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer pubsub.Close()
		opts = append(opts, service.WithPublisher(pubsub))
	} else {
		log.Info().Msg("TEAMBOARD_REDIS_ADDR not set, board events disabled")
	}

	svc := service.New(store, opts...)
	if err := ensureTenant(ctx, svc, cfg.DefaultTenant); err != nil {
		return err
	}

	authSvc := auth.NewService(store.Tenants(), cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, cfg.DefaultTenant)

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, svc, authSvc, pubsub)

	// Start server in background goroutine.
	go func() {
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
			cancel()
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}

func setupLogging(c config.LogConfig) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil || c.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.Format == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}

func openStore(ctx context.Context, cfg *config.Config) (closableStore, error) {
	if cfg.Store == config.StoreMemory {
		log.Info().Msg("using in-memory store")
		return memory.New(), nil
	}

	if cfg.Database.MaxConns > math.MaxInt32 {
		return nil, fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	if cfg.Database.Migrate {
		if err := postgres.Migrate(cfg.Database.URL()); err != nil {
			return nil, err
		}
	}

	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return nil, err
	}
	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("using postgres store")
	return store, nil
}

func applySeed(ctx context.Context, store service.Store, path string) error {
	data, err := seed.LoadFile(path)
	if err != nil {
		return err
	}
	return seed.Apply(ctx, store, data, civil.DateOf(time.Now()))
}

// ensureTenant creates the default tenant when neither the seed nor an
// earlier run did.
func ensureTenant(ctx context.Context, svc *service.Service, slug string) error {
	_, err := svc.Tenant(ctx, slug)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	_, err = svc.CreateTenant(ctx, slug, slug)
	if errors.Is(err, domain.ErrConflict) {
		return nil
	}
	return err
}
