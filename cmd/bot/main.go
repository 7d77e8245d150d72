package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiagod/internal/common/clock"
	"github.com/KirkDiggler/mafiagod/internal/common/uuid"
	"github.com/KirkDiggler/mafiagod/internal/config"
	"github.com/KirkDiggler/mafiagod/internal/handlers/discord"
	"github.com/KirkDiggler/mafiagod/internal/repositories/session"
	gameService "github.com/KirkDiggler/mafiagod/internal/services/game"
	"github.com/KirkDiggler/mafiagod/internal/services/messaging"
	nightService "github.com/KirkDiggler/mafiagod/internal/services/night"
	"github.com/KirkDiggler/mafiagod/internal/shuffle"
)

func main() {
	cfg := config.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(cfg.LogLevel).
		With().Timestamp().Str("app", "mafiagod-bot").Logger()

	if cfg.DiscordToken == "" {
		logger.Fatal().Msg("DISCORD_TOKEN environment variable is required")
	}

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

	bot, err := discord.New(&discord.Config{
		Token:              cfg.DiscordToken,
		ApplicationID:      cfg.ApplicationID,
		GuildID:            cfg.GuildID,
		DefaultPlayerCount: cfg.DefaultPlayerCount,
		GameService:        gameSvc,
		NightService:       nightSvc,
		Messaging:          msgSvc,
		Logger:             logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Discord bot")
	}

	if err := bot.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start Discord bot")
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := bot.Stop(); err != nil {
		logger.Error().Err(err).Msg("Error stopping bot")
	}

	logger.Info().Msg("Bot has been shut down")
}

// newSessionRepo picks the storage backend. The returned func releases it.
func newSessionRepo(cfg *config.Config, logger zerolog.Logger) (session.Repository, func()) {
	if cfg.Storage != config.StorageRedis {
		logger.Info().Msg("Using in-memory session storage")
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

	logger.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.SessionTTL).Msg("Using Redis session storage")
	return repo, func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close Redis client")
		}
	}
}
