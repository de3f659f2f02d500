// Package main is the entry point for the restaurant directory server.
//
// MAIN PACKAGE IN GO:
// The main package should be kept minimal. Its job is to:
// 1. Read configuration from environment variables
// 2. Create the logger
// 3. Build and start the server
//
// All actual logic lives in the internal/ packages.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sakif/restaurant-directory/internal/server"
)

func main() {
	// === 1. SET UP LOGGING ===
	// Log levels (from least to most severe): Debug → Info → Warn → Error
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Tokens without an exp claim stay valid until the secret changes.
	if cfg.TokenTTL == 0 {
		logger.Warn("TOKEN_TTL not set: session tokens are issued without expiry")
	}

	// === 2. PREPARE STORAGE ===
	// SQLite needs its directory to exist; MongoDB needs nothing local.
	if cfg.MongoURI == "" && cfg.DBPath != ":memory:" {
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// === 3. CREATE AND START THE SERVER ===
	// Connecting to MongoDB gets a bounded wait; SQLite opens immediately.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	srv, err := server.New(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// loadConfig reads the environment:
//
//	PORT             listen port (default 4000)
//	DB_PATH          SQLite file (default data/restaurants.db)
//	MONGO_URI        use MongoDB instead of SQLite when set
//	MONGO_DATABASE   MongoDB database name (default restaurants)
//	JWT_SECRET       token signing key, at least 16 characters (required)
//	TOKEN_TTL        token lifetime as a Go duration, e.g. 24h (default 0: no expiry)
//	SESSION_BACKEND  "store" (default) or "memory"
//	SECURE_COOKIES   "true" to mark the session cookie HTTPS-only
//	BCRYPT_COST      password hashing work factor (default 12)
func loadConfig() (server.Config, error) {
	cfg := server.Config{
		Port:           4000,
		DBPath:         getenv("DB_PATH", "data/restaurants.db"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDatabase:  getenv("MONGO_DATABASE", "restaurants"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		SessionBackend: getenv("SESSION_BACKEND", server.SessionsInStore),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr) // Atoi = ASCII to Integer
		if err != nil {
			return cfg, fmt.Errorf("PORT %q is not a number", portStr)
		}
		cfg.Port = port
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return cfg, fmt.Errorf("TOKEN_TTL %q: %w", ttl, err)
		}
		cfg.TokenTTL = d
	}

	if secure := os.Getenv("SECURE_COOKIES"); secure != "" {
		b, err := strconv.ParseBool(secure)
		if err != nil {
			return cfg, fmt.Errorf("SECURE_COOKIES %q: %w", secure, err)
		}
		cfg.SecureCookies = b
	}

	if cost := os.Getenv("BCRYPT_COST"); cost != "" {
		n, err := strconv.Atoi(cost)
		if err != nil {
			return cfg, fmt.Errorf("BCRYPT_COST %q is not a number", cost)
		}
		cfg.BcryptCost = n
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
