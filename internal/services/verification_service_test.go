package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestVerify(t *testing.T) {
	stations := []string{"Hamburg", "Oslo"}

	tests := []struct {
		name           string
		input          string
		names          []string
		wantTotal      int64
		wantValid      int64
		wantInvalid    int64
		wantUnknown    int64
		wantOutOfRange int64
	}{
		{
			name:      "all valid",
			input:     "Hamburg;12.0\nOslo;-3.4\nOslo;99.9\nHamburg;-99.9\n",
			names:     stations,
			wantTotal: 4, wantValid: 4,
		},
		{
			name:      "unknown station",
			input:     "Hamburg;12.0\nBergen;1.0\n",
			names:     stations,
			wantTotal: 2, wantValid: 1, wantInvalid: 1, wantUnknown: 1,
		},
		{
			name:      "membership check disabled without names",
			input:     "Hamburg;12.0\nBergen;1.0\n",
			names:     nil,
			wantTotal: 2, wantValid: 2,
		},
		{
			name:      "out of range",
			input:     "Oslo;100.0\nOslo;-100.0\n",
			names:     stations,
			wantTotal: 2, wantInvalid: 2, wantOutOfRange: 2,
		},
		{
			name:      "malformed",
			input:     "Oslo;1.25\nOslo\n;1.0\n",
			names:     stations,
			wantTotal: 3, wantInvalid: 3,
		},
		{
			name:  "empty input",
			input: "",
			names: stations,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewVerificationService(newTestLogger(), newTestCollector())

			result, err := svc.Verify(context.Background(), strings.NewReader(tt.input), tt.names)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}

			if result.TotalLines != tt.wantTotal {
				t.Errorf("TotalLines = %d, want %d", result.TotalLines, tt.wantTotal)
			}
			if result.ValidLines != tt.wantValid {
				t.Errorf("ValidLines = %d, want %d", result.ValidLines, tt.wantValid)
			}
			if result.InvalidLines != tt.wantInvalid {
				t.Errorf("InvalidLines = %d, want %d", result.InvalidLines, tt.wantInvalid)
			}
			if result.UnknownStations != tt.wantUnknown {
				t.Errorf("UnknownStations = %d, want %d", result.UnknownStations, tt.wantUnknown)
			}
			if result.OutOfRange != tt.wantOutOfRange {
				t.Errorf("OutOfRange = %d, want %d", result.OutOfRange, tt.wantOutOfRange)
			}
			if result.OK() != (tt.wantInvalid == 0) {
				t.Errorf("OK() = %v with %d invalid lines", result.OK(), tt.wantInvalid)
			}
			if int64(len(result.Errors)) != tt.wantInvalid {
				t.Errorf("len(Errors) = %d, want %d", len(result.Errors), tt.wantInvalid)
			}
		})
	}
}

func TestVerify_CapsReportedErrors(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&sb, "Oslo;%d\n", i)
	}

	collector := newTestCollector()
	svc := NewVerificationService(newTestLogger(), collector)

	result, err := svc.Verify(context.Background(), strings.NewReader(sb.String()), []string{"Oslo"})
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if result.InvalidLines != 25 {
		t.Errorf("InvalidLines = %d, want 25", result.InvalidLines)
	}
	if len(result.Errors) != maxReportedErrors {
		t.Errorf("len(Errors) = %d, want %d", len(result.Errors), maxReportedErrors)
	}
	if !strings.HasPrefix(result.Errors[0], "line 1:") {
		t.Errorf("first error = %q", result.Errors[0])
	}
	if got := testutil.ToFloat64(collector.LinesVerifiedTotal.WithLabelValues("malformed")); got != 25 {
		t.Errorf("malformed counter = %v, want 25", got)
	}
}
