package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"weather-testdata/internal/config"
	"weather-testdata/internal/repository"
	"weather-testdata/internal/services"
	"weather-testdata/pkg/database"
	"weather-testdata/pkg/logging"
	"weather-testdata/pkg/metrics"
)

const version = "1.0.0"

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	seed := flag.Bool("seed", false, "After migrating up, load the station CSV into the catalogue")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if *direction != "up" && *direction != "down" {
		fmt.Fprintf(os.Stderr, "Unknown migration direction %q\n", *direction)
		os.Exit(1)
	}

	logger := logging.NewStructuredLogger("station-catalog-migrate", version, logging.ParseLevel(cfg.Logging.Level))
	metricsCollector := metrics.NewCollector("weather_testdata")
	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, cfg.Database.PostgresConfig(), logger, metricsCollector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Println("Connected to database successfully")

	migrationFile := fmt.Sprintf("migrations/001_create_station_catalog.%s.sql", *direction)
	content, err := os.ReadFile(filepath.Join(".", migrationFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read migration file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Running migration: %s\n", migrationFile)

	if _, err := db.ExecContext(ctx, "migrate_"+*direction, string(content)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to execute migration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migration completed successfully")

	if !*seed || *direction != "up" {
		return
	}

	source := services.FileStationSource{Path: cfg.Generator.StationsPath()}
	names, err := services.NewStationLoader(source, logger, metricsCollector).Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load station names: %v\n", err)
		os.Exit(1)
	}

	repo := repository.NewStationRepository(db, logger, metricsCollector)
	inserted, err := repo.CreateStationsBatch(ctx, names)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed station catalogue: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d of %d stations from %s\n", inserted, len(names), source.Path)
}
