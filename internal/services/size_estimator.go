package services

import (
	"fmt"

	"weather-testdata/pkg/humanize"
)

// recordOverhead covers ';', sign, up to four characters of digits and point, and '\n'
const recordOverhead = 7

// PerRecordSize is the worst-case bytes per line: the longest name plus twice
// the shortest name plus fixed overhead. Zero for an empty list.
func PerRecordSize(names []string) int64 {
	if len(names) == 0 {
		return 0
	}

	maxLen, minLen := len(names[0]), len(names[0])
	for _, name := range names[1:] {
		maxLen = max(maxLen, len(name))
		minLen = min(minLen, len(name))
	}

	return int64(maxLen + 2*minLen + recordOverhead)
}

// EstimateBytes is the upper-bound output size for rows records. It is a
// float so row counts near MaxInt64 cannot wrap negative.
func EstimateBytes(names []string, rows int64) float64 {
	return float64(rows) * float64(PerRecordSize(names))
}

// EstimateFileSize renders the two-line size estimate shown before generation
func EstimateFileSize(names []string, rows int64) string {
	return fmt.Sprintf(
		"Estimated max file size is:  %s.\nTrue size is probably much smaller (around half).",
		humanize.Bytes(EstimateBytes(names, rows)),
	)
}
