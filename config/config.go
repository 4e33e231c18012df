package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string

	// Storefront endpoints. Paths are server-defined constants, the same
	// values the backend injects into its pages.
	BaseURL              string
	CartAPIPath          string
	ReviewAPIPath        string
	ComparisonAddPath    string
	ComparisonRemovePath string

	// Session
	CSRFCookieName string
	Cookies        string // raw cookie string, document.cookie format
	CookieFile     string // optional file holding the cookie string

	// Network behavior
	RequestTimeout time.Duration
	MutationRate   float64 // mutating calls per second
	MutationBurst  int

	// Cache
	SummaryTTL time.Duration

	// Business Rules
	MaxCartQuantity int
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: Try loading .env (standard local dev)
		// We don't error here because in CI the session usually comes in
		// through plain env vars.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		BaseURL:              getEnv("BASE_URL", ""),
		CartAPIPath:          getEnv("CART_API_PATH", "/api/cart/"),
		ReviewAPIPath:        getEnv("REVIEW_API_PATH", "/api/reviews/"),
		ComparisonAddPath:    getEnv("COMPARISON_ADD_PATH", "/api/comparison/add/"),
		ComparisonRemovePath: getEnv("COMPARISON_REMOVE_PATH", "/api/comparison/delete/"),

		CSRFCookieName: getEnv("CSRF_COOKIE_NAME", "csrftoken"),
		Cookies:        getEnv("COOKIES", ""),
		CookieFile:     getEnv("COOKIE_FILE", ""),

		// Network defaults: 10s per call, 5 mutations/s with a burst of 3
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 10*time.Second),
		MutationRate:   getFloatEnv("MUTATION_RATE", 5),
		MutationBurst:  getIntEnv("MUTATION_BURST", 3),

		// Cache default: a fetched summary stays fresh for 5s
		SummaryTTL: getDurationEnv("CACHE_SUMMARY_TTL", 5*time.Second),

		// Business rules: 1000 max cart quantity
		MaxCartQuantity: getIntEnv("MAX_CART_QUANTITY", 1000),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.BaseURL == "" {
		log.Fatal("CRITICAL: BASE_URL environment variable is required")
	}
	if c.Cookies == "" && c.CookieFile == "" {
		log.Println("WARNING: No COOKIES or COOKIE_FILE set. Mutating calls will fail without an anti-forgery token.")
	}
	if c.MutationRate <= 0 {
		log.Fatal("CRITICAL: MUTATION_RATE must be positive")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}
