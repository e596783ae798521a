package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"weather-testdata/internal/repository"
	"weather-testdata/pkg/logging"
	"weather-testdata/pkg/metrics"
)

// CommentMarker flags a reference line to be skipped entirely, wherever it appears
const CommentMarker = "#"

// StationSource yields raw station names
type StationSource interface {
	StationNames(ctx context.Context) ([]string, error)
}

// ParseStationNames reads "name;..." lines and returns the distinct names in
// ascending byte order. Blank lines and lines containing CommentMarker are skipped.
func ParseStationNames(r io.Reader) ([]string, error) {
	var names []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" || strings.Contains(line, CommentMarker) {
			continue
		}
		name, _, _ := strings.Cut(line, ";")
		names = append(names, name)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading station list: %w", err)
	}

	return sortUnique(names), nil
}

func sortUnique(names []string) []string {
	slices.Sort(names)
	return slices.Compact(names)
}

// FileStationSource reads the semicolon-delimited reference file
type FileStationSource struct {
	Path string
}

// StationNames opens Path and parses it
func (f FileStationSource) StationNames(ctx context.Context) ([]string, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open station list: %w", err)
	}
	defer file.Close()

	return ParseStationNames(file)
}

// CatalogStationSource reads names from the Postgres station catalogue
type CatalogStationSource struct {
	Repo repository.StationRepository
}

// StationNames lists the catalogue and normalizes it like the file source
func (c CatalogStationSource) StationNames(ctx context.Context) ([]string, error) {
	names, err := c.Repo.ListStationNames(ctx)
	if err != nil {
		return nil, err
	}
	return sortUnique(slices.Clone(names)), nil
}

// StationLoader loads the Station Name List for a run
type StationLoader struct {
	source  StationSource
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewStationLoader creates a new station loader
func NewStationLoader(source StationSource, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *StationLoader {
	return &StationLoader{
		source:  source,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// Load returns the sorted, deduplicated station names. An empty list is not
// an error here; the generator rejects it.
func (l *StationLoader) Load(ctx context.Context) ([]string, error) {
	names, err := l.source.StationNames(ctx)
	if err != nil {
		l.logger.Error(ctx, "[STATIONS_LOAD_ERROR] Failed to load station names", logging.Fields{
			"source": fmt.Sprintf("%T", l.source),
		}, err)
		return nil, err
	}

	l.metrics.StationsLoaded.Set(float64(len(names)))

	fields := logging.Fields{
		"source":        fmt.Sprintf("%T", l.source),
		"station_count": len(names),
	}
	if len(names) == 0 {
		l.logger.Warn(ctx, "[STATIONS_EMPTY] Station list is empty after filtering", fields)
	} else {
		l.logger.Info(ctx, "[STATIONS_LOADED] Station names loaded", fields)
	}

	return names, nil
}
