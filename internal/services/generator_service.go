package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"weather-testdata/internal/models"
	"weather-testdata/pkg/logging"
	"weather-testdata/pkg/metrics"
	"weather-testdata/pkg/progress"
)

const (
	// BatchSize is the number of records built and written per Write call.
	BatchSize = 10_000
	// SampleSize is the size of the Working Sample drawn from the full list.
	SampleSize = 10_000
)

// ErrNoStations is returned when generation is asked to sample from an empty list
var ErrNoStations = errors.New("station list is empty: reference data must yield at least one station")

// GenerationResult contains generation statistics
type GenerationResult struct {
	Rows         int64
	Batches      int64
	BytesWritten int64
	Duration     time.Duration
}

// GeneratorService produces measurement records from a station list
type GeneratorService struct {
	rng         *rand.Rand
	log         *logging.ContextLogger
	metrics     *metrics.Collector
	tracker     *progress.Tracker
	progressOut io.Writer
}

// NewGeneratorService creates a generator drawing from rng. Progress bars go
// to progressOut; nil discards them. tracker may be nil.
func NewGeneratorService(
	rng *rand.Rand,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
	tracker *progress.Tracker,
	progressOut io.Writer,
) *GeneratorService {
	if progressOut == nil {
		progressOut = io.Discard
	}
	if tracker == nil {
		tracker = progress.NewTracker()
	}
	return &GeneratorService{
		rng:         rng,
		log:         logger.WithFields(logging.Fields{"component": "generator"}),
		metrics:     metricsCollector,
		tracker:     tracker,
		progressOut: progressOut,
	}
}

// Sample draws SampleSize names uniformly with replacement
func (s *GeneratorService) Sample(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, ErrNoStations
	}

	sample := make([]string, SampleSize)
	for i := range sample {
		sample[i] = names[s.rng.IntN(len(names))]
	}
	return sample, nil
}

// Temperature draws a reading uniformly from [MinTemperature, MaxTemperature)
func (s *GeneratorService) Temperature() float64 {
	return models.MinTemperature + s.rng.Float64()*(models.MaxTemperature-models.MinTemperature)
}

// AppendBatch appends BatchSize serialized records drawn from sample to buf
func (s *GeneratorService) AppendBatch(buf []byte, sample []string) []byte {
	for i := 0; i < BatchSize; i++ {
		m := models.Measurement{
			Station:     sample[s.rng.IntN(len(sample))],
			Temperature: s.Temperature(),
		}
		buf = m.AppendTo(buf)
	}
	return buf
}

// Generate writes rows/BatchSize full batches to w. A remainder smaller than
// one batch is dropped. The progress bar is redrawn about 100 times per run.
func (s *GeneratorService) Generate(ctx context.Context, names []string, rows int64, w io.Writer) (*GenerationResult, error) {
	start := time.Now()

	sample, err := s.Sample(names)
	if err != nil {
		s.metrics.RecordGenerationError("empty_station_list")
		return nil, err
	}

	numBatches := rows / BatchSize
	progressStep := max(1, numBatches/100)

	s.log.Info(ctx, "[GEN_START] Starting measurement generation", logging.Fields{
		"requested_rows": rows,
		"rows":           numBatches * BatchSize,
		"batches":        numBatches,
		"station_count":  len(names),
		"stage":          "INITIALIZATION",
	})
	if dropped := rows - numBatches*BatchSize; dropped > 0 {
		s.log.Debug(ctx, "[GEN_TRUNCATE] Row count is not a multiple of the batch size", logging.Fields{
			"dropped_rows": dropped,
		})
	}

	s.tracker.Start(numBatches)
	result := &GenerationResult{}

	// room for the longest name plus ";-99.9\n" on every line
	buf := make([]byte, 0, BatchSize*(maxNameLen(sample)+recordOverhead))

	for b := int64(0); b < numBatches; b++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("generation stopped after %d batches: %w", b, err)
		}

		timer := s.metrics.NewTimer(s.metrics.BatchDuration)
		buf = s.AppendBatch(buf[:0], sample)

		n, err := w.Write(buf)
		result.BytesWritten += int64(n)
		if err != nil {
			s.metrics.RecordGenerationError("write_error")
			s.log.Error(ctx, "[GEN_WRITE_ERROR] Failed to write batch", logging.Fields{
				"batch": b,
				"stage": "WRITE",
			}, err)
			return result, fmt.Errorf("failed to write batch %d: %w", b, err)
		}
		timer.ObserveDuration()

		result.Batches++
		result.Rows += BatchSize
		s.metrics.RecordBatch(BatchSize, n)
		s.tracker.Advance(b + 1)

		if b%progressStep == 0 || b == numBatches-1 {
			io.WriteString(s.progressOut, progress.Render(b+1, numBatches))
		}
	}
	io.WriteString(s.progressOut, "\n")

	s.tracker.Finish()
	result.Duration = time.Since(start)
	s.metrics.GenerationDuration.Observe(result.Duration.Seconds())

	s.log.Info(ctx, "[GEN_COMPLETE] Measurement generation completed", logging.Fields{
		"rows":             result.Rows,
		"batches":          result.Batches,
		"bytes_written":    result.BytesWritten,
		"duration_seconds": result.Duration.Seconds(),
		"stage":            "COMPLETE",
	})

	return result, nil
}

func maxNameLen(names []string) int {
	n := 0
	for _, name := range names {
		n = max(n, len(name))
	}
	return n
}
