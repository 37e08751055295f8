package config

import (
	"os"
	"strings"
)

// Config carries the server's environment-driven settings.
type Config struct {
	// Port the HTTP server listens on.
	Port string
	// StorePath enables the JSON-file store when non-empty; otherwise
	// records live in memory only.
	StorePath string
	// RedisURL enables the analytics response cache when non-empty.
	RedisURL string
	// Env is "local" or "production"; local mode logs at debug level.
	Env string
	// AllowedOrigins for CORS, comma separated in LEDGERDASH_ORIGINS.
	AllowedOrigins []string
}

// Load reads configuration from the environment with local-development
// defaults.
func Load() Config {
	cfg := Config{
		Port:      getenv("PORT", "8112"),
		StorePath: os.Getenv("STORE_PATH"),
		RedisURL:  os.Getenv("REDIS_URL"),
		Env:       getenv("ENV", "local"),
	}

	origins := getenv("LEDGERDASH_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
