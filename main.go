package main

import (
	"context"
	"log"

	"boothpulse/adapters/postgres"
	"boothpulse/adapters/spreadsheet"
	"boothpulse/app"
	"boothpulse/internal"
	"boothpulse/internal/config"
	"boothpulse/internal/errors"
	"boothpulse/internal/migration"
	"boothpulse/ports"
	"boothpulse/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	if appConfig.Database.URL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	// Run migrations
	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	// Wire the record sinks, one per import kind
	boothRepo := postgres.NewBoothRepository(db)
	sinks := []ports.RecordSink{
		postgres.NewWardRepository(db),
		postgres.NewConstituencyRepository(db),
		boothRepo,
	}

	batchRepo := postgres.NewBatchRepository(db)
	parser := spreadsheet.NewParser()

	importService := app.NewImportService(parser, sinks, batchRepo, appConfig.Import.MaxConcurrentSubmits)
	summaryService := app.NewSummaryService(boothRepo)

	logger := internal.NewDefaultLogger()

	// Initialize web server
	server := ui.NewServer(importService, summaryService, appConfig.Import, logger)

	// Start the server
	log.Printf("Starting boothpulse server on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
