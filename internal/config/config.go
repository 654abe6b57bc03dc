package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port          string
	DBPath        string
	TemplatesGlob string
	StaticDir     string

	// ResultCap bounds how many events one query may return for rendering.
	ResultCap int

	// DebounceWindow is applied to continuous inputs (slider drag, map
	// pan). Discrete inputs bypass it. Tunable because the slider's change
	// granularity varies by browser.
	DebounceWindow time.Duration

	// QueryTimeout bounds one filter-query-render cycle.
	QueryTimeout time.Duration

	// SessionTTL evicts idle interaction sessions.
	SessionTTL time.Duration
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		Port:           getEnv("PORT", ":8080"),
		DBPath:         getEnv("DB_PATH", "./data/earthquakes.db"),
		TemplatesGlob:  getEnv("TEMPLATES_GLOB", "./web/templates/**/*.html"),
		StaticDir:      getEnv("STATIC_DIR", "./web/static"),
		ResultCap:      getEnvInt("QUAKE_RESULT_CAP", 500),
		DebounceWindow: getEnvMillis("QUAKE_DEBOUNCE_MS", 300),
		QueryTimeout:   getEnvMillis("QUAKE_QUERY_TIMEOUT_MS", 3000),
		SessionTTL:     getEnvMillis("QUAKE_SESSION_TTL_MS", 30*60*1000),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvMillis(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Millisecond
}
