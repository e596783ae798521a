package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"weather-testdata/internal/config"
	"weather-testdata/internal/handlers"
	"weather-testdata/internal/repository"
	"weather-testdata/internal/services"
	"weather-testdata/pkg/compress"
	"weather-testdata/pkg/database"
	"weather-testdata/pkg/logging"
	"weather-testdata/pkg/metrics"
	"weather-testdata/pkg/progress"
)

const version = "1.0.0"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	rows, ok := parseInvocation(os.Args[1:], cfg, os.Stdout)
	if !ok {
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	codec, err := compress.ParseCodec(cfg.Generator.Compression)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewStructuredLogger("measurements-generator", version, logging.ParseLevel(cfg.Logging.Level))

	runID := uuid.NewString()
	ctx := logging.WithRunID(context.Background(), runID)

	if cfg.Generator.Seed == 0 {
		cfg.Generator.Seed = rand.Uint64()
	}

	logger.Info(ctx, "[GENERATOR_START] Starting test data build", logging.Fields{
		"version":        version,
		"rows":           rows,
		"root":           cfg.Generator.Root,
		"seed":           cfg.Generator.Seed,
		"compression":    string(codec),
		"station_source": cfg.Generator.StationSource,
	})

	metricsCollector := metrics.NewCollector("weather_testdata")

	var (
		stationSource services.StationSource
		health        handlers.HealthChecker
	)
	switch cfg.Generator.StationSource {
	case config.SourceCatalog:
		db, err := database.NewPostgresDB(ctx, cfg.Database.PostgresConfig(), logger, metricsCollector)
		if err != nil {
			logger.Fatal(ctx, "[GENERATOR_ERROR] Failed to connect to station catalogue", logging.Fields{}, err)
		}
		defer db.Close()

		repo := repository.NewStationRepository(db, logger, metricsCollector)
		stationSource = services.CatalogStationSource{Repo: repo}
		health = repo
	default:
		stationSource = services.FileStationSource{Path: cfg.Generator.StationsPath()}
	}

	names, err := services.NewStationLoader(stationSource, logger, metricsCollector).Load(ctx)
	if err != nil {
		logger.Fatal(ctx, "[GENERATOR_ERROR] Failed to load station names", logging.Fields{}, err)
	}

	fmt.Println(services.EstimateFileSize(names, rows))

	tracker := progress.NewTracker()

	var server *http.Server
	if cfg.Generator.StatusAddr != "" {
		server = startStatusServer(ctx, cfg.Generator.StatusAddr, handlers.NewStatusHandler(tracker, health, runID, logger, metricsCollector), logger)
	}

	rng := rand.New(rand.NewPCG(cfg.Generator.Seed, cfg.Generator.Seed^0x9e3779b97f4a7c15))
	generator := services.NewGeneratorService(rng, logger, metricsCollector, tracker, os.Stdout)

	outputPath := cfg.Generator.MeasurementsPath() + codec.Extension()
	result, err := buildTestData(ctx, generator, names, rows, outputPath, codec, os.Stdout)
	if err != nil {
		logger.Fatal(ctx, "[GENERATOR_ERROR] Test data build failed", logging.Fields{
			"output_path": outputPath,
		}, err)
	}

	fmt.Println("Test data build complete.")

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "[SHUTDOWN_ERROR] Status server forced to shutdown", logging.Fields{}, err)
		}
	}

	logger.Info(ctx, "[GENERATOR_COMPLETE] Test data build completed", logging.Fields{
		"rows":             result.Rows,
		"batches":          result.Batches,
		"bytes_written":    result.BytesWritten,
		"duration_seconds": result.Duration.Seconds(),
		"output_path":      outputPath,
	})
}

func startStatusServer(ctx context.Context, addr string, handler *handlers.StatusHandler, logger *logging.StructuredLogger) *http.Server {
	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info(ctx, "[STATUS_SERVER_START] Status server listening", logging.Fields{
			"address": server.Addr,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "[STATUS_SERVER_ERROR] Status server failed", logging.Fields{}, err)
		}
	}()

	return server
}
