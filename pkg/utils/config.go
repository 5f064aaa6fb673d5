package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultAniListURL = "https://graphql.anilist.co"

type DiscordConfig struct {
	Token   string `yaml:"token"`
	AppID   string `yaml:"app_id"`
	GuildID string `yaml:"guild_id"` // empty registers commands globally
}

type StoreConfig struct {
	Backend  string `yaml:"backend"` // "sqlite" or "redis"
	RedisURL string `yaml:"redis_url"`
}

type AuthConfig struct {
	JWTSecret   string        `yaml:"jwt_secret"`
	JWTIssuer   string        `yaml:"jwt_issuer"`
	JWTDuration time.Duration `yaml:"jwt_duration"`

	// set when JWTSecret was generated at startup; tokens then die with the process
	GeneratedSecret bool `yaml:"-"`
}

type Config struct {
	Discord    DiscordConfig `yaml:"discord"`
	AniListURL string        `yaml:"anilist_url"`
	Store      StoreConfig   `yaml:"store"`
	Auth       AuthConfig    `yaml:"auth"`
	HTTPAddr   string        `yaml:"http_addr"`
	GRPCAddr   string        `yaml:"grpc_addr"` // empty disables the health server
	LogLevel   string        `yaml:"log_level"`
}

func defaults() Config {
	return Config{
		AniListURL: DefaultAniListURL,
		Store:      StoreConfig{Backend: "sqlite"},
		Auth: AuthConfig{
			JWTIssuer:   "anilistbot",
			JWTDuration: 30 * time.Minute,
		},
		HTTPAddr: ":8080",
		LogLevel: "info",
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// ANILISTBOT_CONFIG (if any), then environment variables. A .env file in the
// working directory is loaded first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("ANILISTBOT_CONFIG"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg, os.Getenv)

	if cfg.Auth.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, err
		}
		cfg.Auth.JWTSecret = secret
		cfg.Auth.GeneratedSecret = true
	}

	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	switch cfg.Store.Backend {
	case "sqlite":
	case "redis":
		if cfg.Store.RedisURL == "" {
			return Config{}, fmt.Errorf("store backend redis requires REDIS_URL")
		}
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	set(&cfg.Discord.Token, "DISCORD_TOKEN")
	set(&cfg.Discord.AppID, "DISCORD_APP_ID")
	set(&cfg.Discord.GuildID, "DISCORD_GUILD_ID")
	set(&cfg.AniListURL, "ANILIST_URL")
	set(&cfg.Store.Backend, "STORE_BACKEND")
	set(&cfg.Store.RedisURL, "REDIS_URL")
	set(&cfg.Auth.JWTSecret, "JWT_SECRET")
	set(&cfg.Auth.JWTIssuer, "JWT_ISSUER")
	set(&cfg.HTTPAddr, "HTTP_ADDR")
	set(&cfg.GRPCAddr, "GRPC_ADDR")
	set(&cfg.LogLevel, "LOG_LEVEL")

	// minutes; a bad value keeps the previous duration
	if ttl := strings.TrimSpace(getenv("JWT_TTL_MINUTES")); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil && n > 0 {
			cfg.Auth.JWTDuration = time.Duration(n) * time.Minute
		}
	}
}

// RequireDiscord reports whether the Discord credentials needed to connect
// and register commands are present.
func (c Config) RequireDiscord() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is not set")
	}
	if c.Discord.AppID == "" {
		return fmt.Errorf("DISCORD_APP_ID is not set")
	}
	return nil
}
