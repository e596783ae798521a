// Package humanize formats byte counts and durations for the run report.
package humanize

import "fmt"

var byteUnits = []string{"bytes", "KiB", "MiB", "GiB"}

// Bytes renders num in the largest binary unit that keeps it below 1024,
// with one decimal place. Anything past GiB is reported in TiB.
func Bytes(num float64) string {
	for _, unit := range byteUnits {
		if num < 1024.0 {
			return fmt.Sprintf("%.1f %s", num, unit)
		}
		num /= 1024.0
	}
	return fmt.Sprintf("%.1f TiB", num)
}

// Elapsed renders whole seconds as hours/minutes/seconds, omitting leading zero units.
func Elapsed(seconds uint64) string {
	minutes := seconds / 60
	seconds %= 60
	hours := minutes / 60
	minutes %= 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%d hours %d minutes %d seconds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%d minutes %d seconds", minutes, seconds)
	default:
		return fmt.Sprintf("%d seconds", seconds)
	}
}
