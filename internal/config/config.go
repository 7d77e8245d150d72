// Package config reads runtime settings from the environment. A .env file in
// the working directory is loaded first when present.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/mafiagod/internal/roles"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds every setting the binaries read from the environment
type Config struct {
	// Storage is memory or redis
	Storage       string
	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration

	LogLevel zerolog.Level

	DefaultPlayerCount int
	MaxChallenges      int

	// SpeakingTime and ChallengeTime are the console countdown defaults
	SpeakingTime  time.Duration
	ChallengeTime time.Duration

	// RandomSeed fixes role shuffling, 0 means time-seeded
	RandomSeed int64

	DiscordToken  string
	ApplicationID string
	GuildID       string
}

// Load reads the configuration, falling back to defaults for missing or
// malformed values
func Load() *Config {
	_ = godotenv.Load()

	storage := strings.ToLower(getEnv("STORAGE", StorageMemory))
	if storage != StorageRedis {
		storage = StorageMemory
	}

	players := getInt("DEFAULT_PLAYER_COUNT", roles.DefaultPlayers)
	if !roles.ValidCount(players) {
		players = roles.DefaultPlayers
	}

	return &Config{
		Storage:            storage,
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		SessionTTL:         getDuration("SESSION_TTL", 12*time.Hour),
		LogLevel:           getLevel("LOG_LEVEL", zerolog.InfoLevel),
		DefaultPlayerCount: players,
		MaxChallenges:      getInt("MAX_CHALLENGES", 2),
		SpeakingTime:       getDuration("SPEAKING_TIME", 6*time.Second),
		ChallengeTime:      getDuration("CHALLENGE_TIME", 3*time.Second),
		RandomSeed:         int64(getInt("RANDOM_SEED", 0)),
		DiscordToken:       getEnv("DISCORD_TOKEN", ""),
		ApplicationID:      getEnv("APPLICATION_ID", ""),
		GuildID:            getEnv("GUILD_ID", ""),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

// getDuration accepts Go durations ("6s") or a bare number of seconds
func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return defaultValue
}

func getLevel(key string, defaultValue zerolog.Level) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(getEnv(key, "")))
	if err != nil || level == zerolog.NoLevel {
		return defaultValue
	}
	return level
}
