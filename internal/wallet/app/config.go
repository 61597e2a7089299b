package app

import (
	"os"
	"strconv"
	"time"

	"github.com/chillarlabs/chillar/pkg/httpx"
)

type Config struct {
	Issuer string // Required: issuer claim for session tokens

	DatabaseFile  string        // Optional: path to SQLite database file (default: ./wallet.db)
	SettlementURL string        // Optional: base URL of the settlement service; empty runs the in-memory fake
	SessionTTL    time.Duration // Optional: session token lifetime (default: 15m)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired enrollment sweep interval (default: 10m)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:               os.Getenv("WALLET_ISSUER"),
		DatabaseFile:         getEnvOrDefault("WALLET_DATABASE_FILE", "wallet.db"),
		SettlementURL:        os.Getenv("WALLET_SETTLEMENT_URL"),
		SessionTTL:           getEnvDurationOrDefault("WALLET_SESSION_TTL", 15*time.Minute),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 10*time.Minute),
	}

	if cfg.Issuer == "" {
		cfg.Issuer = "chillar-wallet"
	}

	return cfg
}

// applyRateLimitOverrides lets deployments (and the e2e suite) relax the
// built-in rate limit profiles without a rebuild.
func applyRateLimitOverrides() {
	overrideProfile("RATELIMIT_STRICT", &httpx.StrictLimit)
	overrideProfile("RATELIMIT_MODERATE", &httpx.ModerateLimit)
	overrideProfile("RATELIMIT_LENIENT", &httpx.LenientLimit)
}

func overrideProfile(prefix string, cfg *httpx.RateLimitConfig) {
	cfg.RequestsPerWindow = getEnvIntOrDefault(prefix+"_REQUESTS", cfg.RequestsPerWindow)
	cfg.Burst = getEnvIntOrDefault(prefix+"_BURST", cfg.Burst)
	if sec := getEnvIntOrDefault(prefix+"_WINDOW_SEC", 0); sec > 0 {
		cfg.Window = time.Duration(sec) * time.Second
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
