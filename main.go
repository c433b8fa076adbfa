package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"qbgen/cmd"
	"qbgen/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Logger configuration comes from the environment; path
	// configuration is resolved per-command from the --root flag.
	cfg := logger.DefaultConfig()
	if level := envOr("LOG_LEVEL", ""); level != "" {
		cfg.Level = level
	}
	if format := envOr("LOG_FORMAT", ""); format != "" {
		cfg.Format = format
	}
	if output := envOr("LOG_OUTPUT", ""); output != "" {
		cfg.Output = output
	}
	if err := logger.Setup(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cmd.Execute()
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
