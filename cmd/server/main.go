// Package main is the entry point for the hackhub server.
//
// main stays minimal: load configuration, build the logger, hand both to
// server.New and block in Start. All actual behavior lives in internal/.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sakif/hackhub/internal/server"
)

func main() {
	// .env is a development convenience; in production the variables come
	// from the process environment and the file simply is not there.
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env not loaded", slog.String("error", err.Error()))
	}

	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Fail fast on store connectivity: a server that cannot reach its
	// stores should not report healthy.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	srv, err := server.New(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// loadConfig reads the environment into a server.Config, applying defaults
// where a sane one exists and failing where it does not (JWT_SECRET).
func loadConfig() (server.Config, error) {
	cfg := server.Config{
		Port:     8080,
		DBPath:   "data/hackhub.db",
		MongoURI: "mongodb://localhost:27017",
		MongoDB:  "hackhub",
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return cfg, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return cfg, fmt.Errorf("creating database directory: %w", err)
	}

	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.MongoURI = v
	}
	if v := os.Getenv("MONGO_DB"); v != "" {
		cfg.MongoDB = v
	}

	// Generate with: openssl rand -hex 32
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET must be set")
	}

	cfg.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	cfg.GoogleCallbackURL = os.Getenv("GOOGLE_CALLBACK_URL")
	if cfg.GoogleCallbackURL == "" {
		cfg.GoogleCallbackURL = fmt.Sprintf("http://localhost:%d/auth/google/callback", cfg.Port)
	}

	cfg.GithubClientID = os.Getenv("GITHUB_CLIENT_ID")
	cfg.GithubClientSecret = os.Getenv("GITHUB_CLIENT_SECRET")
	cfg.GithubCallbackURL = os.Getenv("GITHUB_CALLBACK_URL")
	if cfg.GithubCallbackURL == "" {
		cfg.GithubCallbackURL = fmt.Sprintf("http://localhost:%d/auth/github/callback", cfg.Port)
	}

	// The countdown target. RFC 3339, e.g. 2026-10-15T09:00:00Z.
	// Defaults to 30 days out so a fresh checkout shows a live countdown.
	cfg.NextEventAt = time.Now().Add(30 * 24 * time.Hour).Truncate(time.Hour)
	if v := os.Getenv("NEXT_EVENT_AT"); v != "" {
		at, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return cfg, fmt.Errorf("invalid NEXT_EVENT_AT %q: %w", v, err)
		}
		cfg.NextEventAt = at
	}

	return cfg, nil
}
