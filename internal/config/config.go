package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all process-wide settings. It is read once at startup and
// passed explicitly to the components that need it.
type Config struct {
	DatabaseURL    string
	JWTSecret      string
	AccessTokenTTL time.Duration
	Port           string
	AllowedOrigins []string
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: 30 * time.Minute,
		Port:           "3000",
		AllowedOrigins: allowedOrigins(),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	if minutes := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); minutes != "" {
		n, err := strconv.Atoi(minutes)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %q", minutes)
		}
		cfg.AccessTokenTTL = time.Duration(n) * time.Minute
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	return cfg, nil
}

func allowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowed := os.Getenv("ALLOWED_ORIGINS"); allowed != "" {
		for _, origin := range strings.Split(allowed, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
