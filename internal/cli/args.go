// Package cli validates the generator's positional arguments.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// UsageText is printed whenever the row count argument is missing or invalid
const UsageText = `Usage:  create_measurements.sh <positive integer number of records to create>
        You can use underscore notation for large number of records.
        For example:  1_000_000_000 for one billion
`

// UsageError reports an invalid invocation
type UsageError struct {
	Args   []string
	Reason string
}

func (e *UsageError) Error() string {
	return "invalid arguments: " + e.Reason
}

// IsTransient returns false as usage errors are permanent
func (e *UsageError) IsTransient() bool {
	return false
}

// PrintUsage writes the usage text to w
func PrintUsage(w io.Writer) {
	io.WriteString(w, UsageText)
}

// ParseRowCount requires exactly one positional argument holding a positive
// base-10 integer. Underscores are accepted between digits.
func ParseRowCount(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, &UsageError{Args: args, Reason: fmt.Sprintf("expected 1 argument, got %d", len(args))}
	}

	raw := args[0]
	digits, ok := stripDigitSeparators(raw)
	if !ok {
		return 0, &UsageError{Args: args, Reason: fmt.Sprintf("%q is not a number", raw)}
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, &UsageError{Args: args, Reason: fmt.Sprintf("%q is not a number", raw)}
	}
	if n <= 0 {
		return 0, &UsageError{Args: args, Reason: fmt.Sprintf("%d is not positive", n)}
	}

	return n, nil
}

// stripDigitSeparators removes '_' that sit between two digits. Any other
// placement makes the value invalid.
func stripDigitSeparators(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '_' {
			sb.WriteByte(c)
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return sb.String(), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
