// Package main is the entry point for the orderdesk server. It reads
// configuration from the environment, builds the logger, and hands off to
// internal/server; all real logic lives in the imported packages.
package main

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/sakif/orderdesk/internal/repository/memory"
	"github.com/sakif/orderdesk/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// PORT: where to listen, default 8080.
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// BACKEND: "memory" (seeded, simulated latency) or "sqlite".
	backend := os.Getenv("BACKEND")

	// DB_PATH: sqlite database location; empty keeps it in memory.
	dbPath := os.Getenv("DB_PATH")

	// LATENCY_MS: simulated backend latency for the memory backend.
	latency := memory.DefaultLatency
	if msStr := os.Getenv("LATENCY_MS"); msStr != "" {
		ms, err := strconv.Atoi(msStr)
		if err != nil || ms < 0 {
			logger.Error("invalid LATENCY_MS value", slog.String("value", msStr))
			os.Exit(1)
		}
		latency = time.Duration(ms) * time.Millisecond
	}

	srv, err := server.New(server.Config{
		Port:    port,
		Backend: backend,
		DBPath:  dbPath,
		Latency: latency,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
