package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"weather-testdata/internal/config"
	"weather-testdata/internal/services"
	"weather-testdata/pkg/logging"
	"weather-testdata/pkg/metrics"
)

const version = "1.0.0"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	root := flag.String("root", cfg.Generator.Root, "Project root containing the data directory")
	file := flag.String("file", "", "Measurements file to check (default <root>/data/measurements.txt)")
	expect := flag.Int64("expect", 0, "Expected number of lines (0 skips the check)")
	skipStations := flag.Bool("skip-stations", false, "Do not check station names against the station list")
	showStats := flag.Bool("stats", false, "Print per-station min/mean/max after verifying")
	flag.Parse()

	cfg.Generator.Root = *root
	path := *file
	if path == "" {
		path = cfg.Generator.MeasurementsPath()
	}

	logger := logging.NewStructuredLogger("measurements-verifier", version, logging.ParseLevel(cfg.Logging.Level))
	metricsCollector := metrics.NewCollector("weather_testdata")
	ctx := logging.WithRunID(context.Background(), uuid.NewString())

	var names []string
	if !*skipStations {
		source := services.FileStationSource{Path: cfg.Generator.StationsPath()}
		names, err = services.NewStationLoader(source, logger, metricsCollector).Load(ctx)
		if err != nil {
			logger.Fatal(ctx, "[VERIFIER_ERROR] Failed to load station names", logging.Fields{
				"path": source.Path,
			}, err)
		}
	}

	svc := services.NewVerificationService(logger, metricsCollector)
	result, err := verifyFile(ctx, svc, path, names)
	if err != nil {
		logger.Fatal(ctx, "[VERIFIER_ERROR] Verification could not complete", logging.Fields{
			"path": path,
		}, err)
	}

	ok := printSummary(os.Stdout, path, result, *expect)

	if *showStats {
		summary, err := summarizeFile(ctx, services.NewStatisticsService(logger, metricsCollector), path)
		if err != nil {
			logger.Fatal(ctx, "[VERIFIER_ERROR] Statistics could not complete", logging.Fields{
				"path": path,
			}, err)
		}
		fmt.Println(summary)
	}

	if !ok {
		os.Exit(1)
	}
}
