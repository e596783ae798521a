package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"weather-testdata/internal/models"
	"weather-testdata/pkg/logging"
	"weather-testdata/pkg/metrics"
)

// StationStatistics aggregates every reading of one station.
// Values are kept in tenths of a degree so sums stay exact.
type StationStatistics struct {
	Station     string
	Count       int64
	minTenths   int64
	maxTenths   int64
	totalTenths int64
}

// Min returns the lowest reading
func (s *StationStatistics) Min() float64 { return float64(s.minTenths) / 10 }

// Max returns the highest reading
func (s *StationStatistics) Max() float64 { return float64(s.maxTenths) / 10 }

// Mean returns the average reading rounded to one decimal
func (s *StationStatistics) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return roundTenth(float64(s.totalTenths) / float64(s.Count) / 10)
}

func (s *StationStatistics) add(tenths int64) {
	if s.Count == 0 || tenths < s.minTenths {
		s.minTenths = tenths
	}
	if s.Count == 0 || tenths > s.maxTenths {
		s.maxTenths = tenths
	}
	s.totalTenths += tenths
	s.Count++
}

// StatisticsService computes per-station min/mean/max over a measurements file
type StatisticsService struct {
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *StatisticsService {
	return &StatisticsService{
		logger:  logger,
		metrics: metricsCollector,
	}
}

// Summarize reads r to the end and returns statistics sorted by station name.
// Lines that do not parse are skipped and counted in the second return value.
func (s *StatisticsService) Summarize(ctx context.Context, r io.Reader) ([]*StationStatistics, int64, error) {
	startTime := time.Now()

	s.logger.Info(ctx, "[STATS_CALC_START] Starting statistics calculation", logging.Fields{
		"stage": "INITIALIZATION",
	})

	byStation := make(map[string]*StationStatistics)
	var lines, skipped int64

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines++
		if lines%1_000_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, skipped, err
			}
		}

		m, err := models.ParseMeasurement(scanner.Text())
		if err != nil {
			skipped++
			continue
		}

		st, ok := byStation[m.Station]
		if !ok {
			st = &StationStatistics{Station: m.Station}
			byStation[m.Station] = st
		}
		st.add(int64(math.Round(m.Temperature * 10)))
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("error reading measurements: %w", err)
	}

	stats := make([]*StationStatistics, 0, len(byStation))
	for _, st := range byStation {
		stats = append(stats, st)
	}
	slices.SortFunc(stats, func(a, b *StationStatistics) int {
		return strings.Compare(a.Station, b.Station)
	})

	s.logger.Info(ctx, "[STATS_CALC_COMPLETE] Statistics calculation completed", logging.Fields{
		"total_stations":   len(stats),
		"total_lines":      lines,
		"skipped_lines":    skipped,
		"duration_seconds": time.Since(startTime).Seconds(),
		"stage":            "COMPLETE",
	})

	return stats, skipped, nil
}

// FormatStatistics renders stats as {name=min/mean/max, ...}
func FormatStatistics(stats []*StationStatistics) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, st := range stats {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(st.Station)
		sb.WriteByte('=')
		sb.WriteString(formatTenth(st.Min()))
		sb.WriteByte('/')
		sb.WriteString(formatTenth(st.Mean()))
		sb.WriteByte('/')
		sb.WriteString(formatTenth(st.Max()))
	}
	sb.WriteByte('}')
	return sb.String()
}

func roundTenth(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0
	}
	return r
}

func formatTenth(v float64) string {
	return strconv.FormatFloat(roundTenth(v), 'f', 1, 64)
}
