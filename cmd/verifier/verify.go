package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"weather-testdata/internal/services"
	"weather-testdata/pkg/compress"
)

// verifyFile decodes path according to its suffix and checks every record
func verifyFile(ctx context.Context, svc *services.VerificationService, path string, names []string) (*services.VerificationResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open measurements file: %w", err)
	}
	defer file.Close()

	r, err := compress.FromPath(path).NewReader(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return svc.Verify(ctx, r, names)
}

// summarizeFile computes per-station statistics for path
func summarizeFile(ctx context.Context, svc *services.StatisticsService, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open measurements file: %w", err)
	}
	defer file.Close()

	r, err := compress.FromPath(path).NewReader(file)
	if err != nil {
		return "", err
	}
	defer r.Close()

	stats, _, err := svc.Summarize(ctx, r)
	if err != nil {
		return "", err
	}
	return services.FormatStatistics(stats), nil
}

// printSummary writes the verification report and returns whether the run passed
func printSummary(w io.Writer, path string, result *services.VerificationResult, expect int64) bool {
	fmt.Fprintf(w, "Verified %s in %s\n", path, result.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "  lines:            %d\n", result.TotalLines)
	fmt.Fprintf(w, "  valid:            %d\n", result.ValidLines)
	fmt.Fprintf(w, "  invalid:          %d\n", result.InvalidLines)
	fmt.Fprintf(w, "  unknown stations: %d\n", result.UnknownStations)
	fmt.Fprintf(w, "  out of range:     %d\n", result.OutOfRange)

	for _, msg := range result.Errors {
		fmt.Fprintf(w, "  %s\n", msg)
	}

	ok := result.OK()
	if expect > 0 && result.TotalLines != expect {
		fmt.Fprintf(w, "Expected %d lines, found %d\n", expect, result.TotalLines)
		ok = false
	}

	if ok {
		fmt.Fprintln(w, "Verification passed.")
	} else {
		fmt.Fprintln(w, "Verification failed.")
	}
	return ok
}
