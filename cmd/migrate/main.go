package main

import (
	"context"
	"log"
	"os"
	"strings"

	"titanic/internal/config"
	"titanic/internal/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <postgres_url|sqlite_path>")
	}

	target := os.Args[1]
	cfg := config.DatabaseConfig{SQLitePath: target}
	if strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://") {
		cfg = config.DatabaseConfig{URL: target}
	}

	log.Printf("Running theme store migrations against %s database", cfg.Driver())

	ctx := context.Background()
	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	defer db.Close()

	var stored int
	if err := db.GetContext(ctx, &stored, "SELECT COUNT(*) FROM theme_preferences"); err != nil {
		log.Fatalf("Failed to count theme preferences: %v", err)
	}

	log.Printf("Migration complete: %d stored theme preferences", stored)
}
