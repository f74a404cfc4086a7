package main

import (
	"context"
	"log"
	"os"

	"gocorr/adapters/db/postgres/migrations"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if len(os.Args) < 2 || (os.Args[1] != "up" && os.Args[1] != "status") {
		log.Fatal("Usage: migrate <up|status> [database_url]")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if len(os.Args) > 2 {
		databaseURL = os.Args[2]
	}
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	migrator := migrations.NewMigrator(db.DB)

	switch os.Args[1] {
	case "up":
		applied, err := migrator.Up(ctx)
		if err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Printf("Applied %d migrations", len(applied))
	case "status":
		status, err := migrator.Status(ctx)
		if err != nil {
			log.Fatalf("Failed to read migration status: %v", err)
		}
		appliedCount := 0
		for _, s := range status {
			state := "pending"
			if s.Applied {
				state = "applied"
				appliedCount++
			}
			log.Printf("  %s: %s", s.Version, state)
		}
		log.Printf("Summary: %d/%d migrations applied", appliedCount, len(status))
	}
}
