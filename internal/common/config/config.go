package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// MinSessionSecretLength is the shortest session secret the server accepts.
// Anything shorter makes the derived cookie keys guessable, so startup
// refuses it outright.
const MinSessionSecretLength = 32

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Database struct {
		URL string `env:"DATABASE_URL,required"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:""`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Telegram struct {
		BotToken string `env:"BOT_TOKEN,required"`

		// BotUsername is used to build t.me deep links in notification
		// messages. Optional: without it links are omitted.
		BotUsername string `env:"BOT_USERNAME" envDefault:""`

		// AuthExpiry bounds the age of accepted init data. Zero disables
		// the expiration check.
		AuthExpiry time.Duration `env:"AUTH_EXPIRY" envDefault:"0s"`
	}

	Session struct {
		Secret string        `env:"SESSION_SECRET,required"`
		MaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"720h"`
	}

	Notify struct {
		WebhookSecret string `env:"WEBHOOK_SECRET" envDefault:""`
	}
}

// Load reads configuration from the environment (and .env when present)
// and validates required secrets. Components receive the result by
// reference; nothing reads the environment after startup.
func Load() (*Config, error) {
	// Missing .env is fine: in production variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if len(cfg.Session.Secret) < MinSessionSecretLength {
		return nil, fmt.Errorf("SESSION_SECRET must be at least %d characters long", MinSessionSecretLength)
	}

	return cfg, nil
}
