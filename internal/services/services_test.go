package services

import (
	"context"
	"io"
	"math/rand/v2"

	"weather-testdata/pkg/logging"
	"weather-testdata/pkg/metrics"
)

func newTestLogger() *logging.StructuredLogger {
	logger := logging.NewStructuredLogger("test", "0.0.0", logging.DebugLevel)
	logger.SetOutput(io.Discard)
	return logger
}

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newTestCollector() *metrics.Collector {
	return metrics.NewCollector("test")
}

// fakeStationRepository is an in-memory repository.StationRepository
type fakeStationRepository struct {
	names []string
	err   error
}

func (f *fakeStationRepository) ListStationNames(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.names, nil
}

func (f *fakeStationRepository) CreateStationsBatch(ctx context.Context, names []string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.names = append(f.names, names...)
	return len(names), nil
}

func (f *fakeStationRepository) HealthCheck(ctx context.Context) error {
	return f.err
}
