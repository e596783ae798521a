package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	input := strings.Join([]string{
		"Oslo;-3.4",
		"Hamburg;12.0",
		"Oslo;1.0",
		"not a record",
		"Hamburg;8.0",
		"Oslo;0.1",
		"Hamburg;10.0",
	}, "\n") + "\n"

	svc := NewStatisticsService(newTestLogger(), newTestCollector())
	stats, skipped, err := svc.Summarize(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}

	hamburg, oslo := stats[0], stats[1]
	if hamburg.Station != "Hamburg" || oslo.Station != "Oslo" {
		t.Fatalf("stations not sorted: %q, %q", hamburg.Station, oslo.Station)
	}
	if hamburg.Count != 3 || hamburg.Min() != 8.0 || hamburg.Max() != 12.0 || hamburg.Mean() != 10.0 {
		t.Errorf("Hamburg = count %d min %v mean %v max %v", hamburg.Count, hamburg.Min(), hamburg.Mean(), hamburg.Max())
	}
	// (-3.4 + 1.0 + 0.1) / 3 = -0.7666...
	if oslo.Mean() != -0.8 {
		t.Errorf("Oslo mean = %v, want -0.8", oslo.Mean())
	}

	want := "{Hamburg=8.0/10.0/12.0, Oslo=-3.4/-0.8/1.0}"
	if got := FormatStatistics(stats); got != want {
		t.Errorf("FormatStatistics() = %q, want %q", got, want)
	}
}

func TestFormatStatistics_NoNegativeZero(t *testing.T) {
	svc := NewStatisticsService(newTestLogger(), newTestCollector())
	stats, _, err := svc.Summarize(context.Background(), strings.NewReader("Oslo;-0.1\nOslo;0.1\nOslo;0.0\n"))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if got, want := FormatStatistics(stats), "{Oslo=-0.1/0.0/0.1}"; got != want {
		t.Errorf("FormatStatistics() = %q, want %q", got, want)
	}
}

func TestSummarize_GeneratedData(t *testing.T) {
	var out bytes.Buffer
	if _, err := newTestGenerator(21, nil).Generate(context.Background(), testStations, 20_000, &out); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	stats, skipped, err := NewStatisticsService(newTestLogger(), newTestCollector()).Summarize(context.Background(), &out)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}

	var total int64
	for _, st := range stats {
		total += st.Count
		if st.Min() > st.Mean() || st.Mean() > st.Max() {
			t.Errorf("%s: min %v mean %v max %v not ordered", st.Station, st.Min(), st.Mean(), st.Max())
		}
	}
	if total != 20_000 {
		t.Errorf("total count = %d, want 20000", total)
	}
	if FormatStatistics(nil) != "{}" {
		t.Errorf("FormatStatistics(nil) = %q", FormatStatistics(nil))
	}
}
