package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds environment configuration for the quizden binaries
type Config struct {
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8080"`

	// IdentityPath is where the host client persists its participant id
	IdentityPath string `env:"IDENTITY_PATH" envDefault:".quizden/identity.json"`

	// Room settings for the host runner
	RoundSeconds int    `env:"ROUND_SECONDS" envDefault:"30"`
	MaxPlayers   int    `env:"MAX_PLAYERS" envDefault:"8"`
	Bots         int    `env:"BOTS" envDefault:"3"`
	Mode         string `env:"MODE" envDefault:"classic"`
	Category     string `env:"CATEGORY"`
	HostName     string `env:"HOST_NAME" envDefault:"Host"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env when present, then the process environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
