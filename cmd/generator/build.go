package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"weather-testdata/internal/services"
	"weather-testdata/pkg/compress"
	"weather-testdata/pkg/humanize"
)

// buildTestData creates or truncates path and fills it with generated records,
// then reports the location, actual size and elapsed time on stdout.
func buildTestData(
	ctx context.Context,
	gen *services.GeneratorService,
	names []string,
	rows int64,
	path string,
	codec compress.Codec,
	stdout io.Writer,
) (*services.GenerationResult, error) {
	start := time.Now()

	// leave any previous output untouched when nothing can be generated
	if len(names) == 0 {
		return nil, services.ErrNoStations
	}

	fmt.Fprintln(stdout, "Building test data...")

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	w, err := codec.NewWriter(file)
	if err != nil {
		return nil, err
	}

	result, err := gen.Generate(ctx, names, rows, w)
	if err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush %s output: %w", codec, err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close output file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read output file size: %w", err)
	}

	fmt.Fprintf(stdout, "Test data successfully written to %s\n", path)
	fmt.Fprintf(stdout, "Actual file size:  %s\n", humanize.Bytes(float64(info.Size())))
	fmt.Fprintf(stdout, "Elapsed time: %s\n", humanize.Elapsed(uint64(time.Since(start).Seconds())))

	return result, nil
}
