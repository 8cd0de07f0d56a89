package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisURL    string `env:"REDIS_URL,required"`
	APIKey      string `env:"API_KEY,required"`

	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"spotthespy"`

	MinPlayerAmount int    `env:"MIN_PLAYER_AMOUNT" envDefault:"3"`
	MaxPlayerAmount int    `env:"MAX_PLAYER_AMOUNT" envDefault:"8"`
	SpyCount        string `env:"SPY_COUNT" envDefault:"single"`

	GuaranteedUniqueWords int `env:"GUARANTEED_UNIQUE_WORDS" envDefault:"30"`

	SoloGameTTLSeconds int `env:"SOLO_GAME_TTL_SECONDS" envDefault:"86400"`

	AssetURLSecret     string `env:"ASSET_URL_SECRET,required"`
	AssetURLTTLSeconds int    `env:"ASSET_URL_TTL_SECONDS" envDefault:"300"`
	AssetBaseURL       string `env:"ASSET_BASE_URL" envDefault:"/v1/assets"`

	RateLimitPerMin int    `env:"RATE_LIMIT_PER_MIN" envDefault:"60"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) SoloGameTTL() time.Duration {
	return time.Duration(c.SoloGameTTLSeconds) * time.Second
}

func (c *Config) AssetURLTTL() time.Duration {
	return time.Duration(c.AssetURLTTLSeconds) * time.Second
}

func (c *Config) Validate() error {
	if c.MinPlayerAmount < 2 {
		return fmt.Errorf("MIN_PLAYER_AMOUNT must be at least 2")
	}
	if c.MaxPlayerAmount < c.MinPlayerAmount {
		return fmt.Errorf("MAX_PLAYER_AMOUNT must be >= MIN_PLAYER_AMOUNT")
	}
	if c.GuaranteedUniqueWords < 1 {
		return fmt.Errorf("GUARANTEED_UNIQUE_WORDS must be positive")
	}
	switch c.SpyCount {
	case "single", "double", "random":
	default:
		return fmt.Errorf("SPY_COUNT must be one of: single, double, random")
	}
	if len(c.APIKey) < 16 {
		return fmt.Errorf("API_KEY must be at least 16 characters")
	}
	if len(c.AssetURLSecret) < 32 {
		return fmt.Errorf("ASSET_URL_SECRET must be at least 32 characters (generate with: openssl rand -base64 32)")
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
