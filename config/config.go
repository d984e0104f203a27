package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultState is crawled when no state list is configured anywhere.
	DefaultState = "VA"
	// DefaultMaxPages caps pagination per state.
	DefaultMaxPages = 250
)

// Config holds all application configuration loaded from environment
// variables. Individual fields may be overridden by CLI flags after Load.
type Config struct {
	States    []string
	MaxPages  int
	OutputDir string

	MaxConcurrency   int
	RateLimitMs      int
	MaxRetries       int
	RequestTimeoutMs int

	RenderJS  bool
	ChromeBin string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	ServerAddr string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	rawStates := getEnv("VRM_STATES", "")
	if rawStates == "" {
		log.Printf("[config] VRM_STATES not set, defaulting to %s", DefaultState)
	}

	return &Config{
		States:    ParseStates(rawStates),
		MaxPages:  getEnvInt("VRM_MAX_PAGES", DefaultMaxPages),
		OutputDir: getEnv("OUTPUT_DIR", "./output"),

		MaxConcurrency:   getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:      getEnvInt("RATE_LIMIT_MS", 2000),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),
		RequestTimeoutMs: getEnvInt("REQUEST_TIMEOUT_MS", 30000),

		RenderJS:  getEnvBool("RENDER_JS", false),
		ChromeBin: getEnv("CHROME_BIN", ""),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "crawler"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "crawler123"),
		PostgresDB:       getEnv("POSTGRES_DB", "vrm_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		ServerAddr: getEnv("SERVER_ADDR", "127.0.0.1:5000"),
	}
}

// ParseStates splits a comma-separated state list, trimming and
// upper-casing each code. An empty result falls back to DefaultState.
func ParseStates(raw string) []string {
	var states []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			states = append(states, s)
		}
	}
	if len(states) == 0 {
		return []string{DefaultState}
	}
	return states
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
