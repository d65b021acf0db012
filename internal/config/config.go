package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-client/internal/common"
	"github.com/i474232898/weather-client/internal/weather"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type AppConfig struct {
	// APIBaseURL is the root of the weather API, e.g. http://localhost:7105/api.
	APIBaseURL  string
	Environment string

	// Defaults are the request options applied when a call does not override them.
	Defaults weather.RequestOptions

	BackoffInitial time.Duration
	BackoffMax     time.Duration // 0 = uncapped

	CircuitBreaker bool

	CacheTTL time.Duration

	// Cache warming.
	WarmInterval time.Duration
	WarmCities   []string

	BatchConcurrency int // 0 = unlimited

	GeocoderAPIKey string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.APIBaseURL = strings.TrimRight(getenvDefault("WEATHER_API_BASE_URL", "http://localhost:7105/api"), "/")
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid WEATHER_API_BASE_URL %q: must be an absolute url", cfg.APIBaseURL)
	}

	cfg.Environment = strings.ToLower(getenvDefault("APP_ENV", EnvProduction))
	cfg.Defaults = profile(cfg.Environment)

	units, err := weather.ParseUnits(os.Getenv("DEFAULT_UNITS"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_UNITS: %w", err)
	}
	cfg.Defaults.Units = units

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q", v)
		}
		cfg.Defaults.Timeout = d
	}
	cfg.Defaults.MaxRetries = getenvInt("REQUEST_RETRIES", cfg.Defaults.MaxRetries)
	if cfg.Defaults.MaxRetries < 0 {
		return nil, fmt.Errorf("invalid REQUEST_RETRIES: must not be negative")
	}

	if cfg.BackoffInitial, err = getenvDuration("BACKOFF_INITIAL", "1s"); err != nil {
		return nil, err
	}
	if cfg.BackoffInitial <= 0 {
		return nil, fmt.Errorf("invalid BACKOFF_INITIAL: must be positive")
	}
	if cfg.BackoffMax, err = getenvDuration("BACKOFF_MAX", "0s"); err != nil {
		return nil, err
	}

	cfg.CircuitBreaker = getenvBool("CIRCUIT_BREAKER_ENABLED", false)

	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "15m"); err != nil {
		return nil, err
	}
	if cfg.WarmInterval, err = getenvDuration("WARM_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	cfg.WarmCities = common.SplitList(os.Getenv("WARM_CITIES"))

	cfg.BatchConcurrency = getenvInt("BATCH_CONCURRENCY", 0)
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// profile returns the request defaults for an environment. Development allows
// more time per attempt and retries less.
func profile(env string) weather.RequestOptions {
	opts := weather.DefaultRequestOptions()
	if env == EnvDevelopment {
		opts.Timeout = 15 * time.Second
		opts.MaxRetries = 1
	}
	return opts
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	s := getenvDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
