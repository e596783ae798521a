package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"weather-testdata/internal/models"
	"weather-testdata/pkg/logging"
	"weather-testdata/pkg/metrics"
)

// maxReportedErrors caps the messages kept in a VerificationResult
const maxReportedErrors = 10

// VerificationResult contains verification statistics
type VerificationResult struct {
	TotalLines      int64
	ValidLines      int64
	InvalidLines    int64
	UnknownStations int64
	OutOfRange      int64
	Duration        time.Duration
	Errors          []string
}

// OK reports whether every line passed
func (r *VerificationResult) OK() bool {
	return r.InvalidLines == 0
}

// VerificationService checks generated measurement files
type VerificationService struct {
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewVerificationService creates a new verification service
func NewVerificationService(logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *VerificationService {
	return &VerificationService{
		logger:  logger,
		metrics: metricsCollector,
	}
}

// Verify scans r line by line. Each line must parse as a measurement with a
// temperature in range, and when names is non-empty its station must be one
// of them.
func (s *VerificationService) Verify(ctx context.Context, r io.Reader, names []string) (*VerificationResult, error) {
	startTime := time.Now()

	known := make(map[string]struct{}, len(names))
	for _, name := range names {
		known[name] = struct{}{}
	}

	s.logger.Info(ctx, "[VERIFY_START] Starting measurement verification", logging.Fields{
		"station_count": len(names),
		"stage":         "INITIALIZATION",
	})

	result := &VerificationResult{
		Errors: make([]string, 0),
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		result.TotalLines++
		if result.TotalLines%1_000_000 == 0 {
			if err := ctx.Err(); err != nil {
				return result, err
			}
		}

		line := scanner.Text()
		m, err := models.ParseMeasurement(line)
		if err != nil {
			if models.IsOutOfRange(err) {
				result.OutOfRange++
				s.metrics.RecordVerifiedLine("out_of_range")
			} else {
				s.metrics.RecordVerifiedLine("malformed")
			}
			s.reject(result, fmt.Sprintf("line %d: %v: %q", result.TotalLines, err, line))
			continue
		}

		if len(known) > 0 {
			if _, ok := known[m.Station]; !ok {
				result.UnknownStations++
				s.metrics.RecordVerifiedLine("unknown_station")
				s.reject(result, fmt.Sprintf("line %d: unknown station %q", result.TotalLines, m.Station))
				continue
			}
		}

		result.ValidLines++
		s.metrics.RecordVerifiedLine("valid")
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("error reading measurements: %w", err)
	}

	result.Duration = time.Since(startTime)

	s.logger.Info(ctx, "[VERIFY_COMPLETE] Measurement verification completed", logging.Fields{
		"total_lines":      result.TotalLines,
		"valid_lines":      result.ValidLines,
		"invalid_lines":    result.InvalidLines,
		"unknown_stations": result.UnknownStations,
		"out_of_range":     result.OutOfRange,
		"duration_seconds": result.Duration.Seconds(),
		"stage":            "COMPLETE",
	})

	return result, nil
}

func (s *VerificationService) reject(result *VerificationResult, msg string) {
	result.InvalidLines++
	if len(result.Errors) < maxReportedErrors {
		result.Errors = append(result.Errors, msg)
	}
}
