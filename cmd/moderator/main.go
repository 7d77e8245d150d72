package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiagod/internal/common/clock"
	"github.com/KirkDiggler/mafiagod/internal/common/uuid"
	"github.com/KirkDiggler/mafiagod/internal/config"
	"github.com/KirkDiggler/mafiagod/internal/handlers/console"
	"github.com/KirkDiggler/mafiagod/internal/repositories/session"
	gameService "github.com/KirkDiggler/mafiagod/internal/services/game"
	"github.com/KirkDiggler/mafiagod/internal/services/messaging"
	nightService "github.com/KirkDiggler/mafiagod/internal/services/night"
	"github.com/KirkDiggler/mafiagod/internal/shuffle"
)

func main() {
	sessionID := flag.String("session", "console", "session ID to load or create")
	flag.Parse()

	cfg := config.Load()

	// Logs go to stderr so they never interleave with the REPL output
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(cfg.LogLevel).
		With().Timestamp().Str("app", "mafiagod-moderator").Logger()

	sessionRepo, closeRepo := newSessionRepo(cfg, logger)
	defer closeRepo()

	shuffler := shuffle.New(&shuffle.Config{Seed: cfg.RandomSeed})
	clk := &clock.DefaultClock{}
	uuidGen := uuid.New()

	gameSvc, err := gameService.New(&gameService.Config{
		MaxChallenges: cfg.MaxChallenges,
		SessionRepo:   sessionRepo,
		Shuffler:      shuffler,
		Clock:         clk,
		UUIDGenerator: uuidGen,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create game service")
	}

	nightSvc, err := nightService.New(&nightService.Config{
		MaxChallenges: cfg.MaxChallenges,
		SessionRepo:   sessionRepo,
		Clock:         clk,
		UUIDGenerator: uuidGen,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create night service")
	}

	msgSvc, err := messaging.NewService(&messaging.ServiceConfig{Shuffler: shuffler})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create messaging service")
	}

	con, err := console.New(&console.Config{
		SessionID:          *sessionID,
		DefaultPlayerCount: cfg.DefaultPlayerCount,
		SpeakingTime:       cfg.SpeakingTime,
		ChallengeTime:      cfg.ChallengeTime,
		GameService:        gameSvc,
		NightService:       nightSvc,
		Messaging:          msgSvc,
		Out:                os.Stdout,
		Logger:             logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create console")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := con.Run(ctx); err != nil && !errors.Is(err, console.ErrQuit) && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Console stopped")
	}
}

// newSessionRepo picks the storage backend. The returned func releases it.
func newSessionRepo(cfg *config.Config, logger zerolog.Logger) (session.Repository, func()) {
	if cfg.Storage != config.StorageRedis {
		return session.NewMemory(), func() {}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	repo, err := session.NewRedis(&session.Config{
		RedisClient: redisClient,
		TTL:         cfg.SessionTTL,
	})
	if err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
	}

	return repo, func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close Redis client")
		}
	}
}
