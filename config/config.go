package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting. All required values are
// read once at process start; a missing one is fatal.
type Config struct {
	Port string

	MongoURI string
	MongoDB  string
	RedisURL string

	JWTSecret []byte
	JWTExpiry time.Duration

	StripeSecretKey     string
	StripePublicKey     string
	StripeWebhookSecret string

	MediaRoot string
	// MediaBaseURL prefixes the URLs returned from uploads. It must match
	// the route the media root is mounted at.
	MediaBaseURL string

	CORSOrigins []string

	RateLimitWindow time.Duration
	RateLimitMax    int

	MaxFileSize int64
	MaxFiles    int

	BcryptCost int

	// When set, manual order-status edits must follow the fulfillment
	// transition table instead of force-setting any value.
	StrictStatusTransitions bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg := &Config{
		Port:                    withDefault("PORT", "8080"),
		MongoURI:                require("DATABASE_URL"),
		MongoDB:                 withDefault("DATABASE_NAME", "storefront"),
		RedisURL:                withDefault("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:               []byte(require("JWT_SECRET")),
		JWTExpiry:               durationVar("JWT_EXPIRES_IN", 7*24*time.Hour),
		StripeSecretKey:         require("STRIPE_SECRET_KEY"),
		StripePublicKey:         os.Getenv("STRIPE_PUBLIC_KEY"),
		StripeWebhookSecret:     require("STRIPE_WEBHOOK_SECRET"),
		MediaRoot:               withDefault("MEDIA_ROOT", "static/uploads"),
		MediaBaseURL:            withDefault("MEDIA_BASE_URL", "/media"),
		RateLimitWindow:         durationVar("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitMax:            intVar("RATE_LIMIT_MAX_REQUESTS", 100),
		MaxFileSize:             int64(intVar("MAX_FILE_SIZE", 5242880)),
		MaxFiles:                intVar("MAX_FILES", 10),
		BcryptCost:              intVar("BCRYPT_COST", 12),
		StrictStatusTransitions: os.Getenv("STRICT_STATUS_TRANSITIONS") == "true",
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			cfg.CORSOrigins = append(cfg.CORSOrigins, strings.TrimSpace(o))
		}
	} else {
		cfg.CORSOrigins = []string{"*"}
	}

	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}

	return cfg
}

func require(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("environment variable %s is required but not set", key)
	}
	return v
}

func withDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intVar(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("environment variable %s must be an integer, got %q", key, v)
	}
	return n
}

func durationVar(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("environment variable %s must be a duration, got %q", key, v)
	}
	return d
}
