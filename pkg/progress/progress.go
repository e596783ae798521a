// Package progress renders the in-place batch progress bar and tracks
// completion for readers on other goroutines.
package progress

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// BarWidth is the number of cells between the brackets.
const BarWidth = 50

// Render returns the carriage-return prefixed bar line for done out of total
// units. total must be positive.
func Render(done, total int64) string {
	filled := int(done * BarWidth / total)
	if filled > BarWidth {
		filled = BarWidth
	}
	percent := done * 100 / total

	var sb strings.Builder
	sb.Grow(BarWidth + 8)
	sb.WriteString("\r[")
	sb.WriteString(strings.Repeat("=", filled))
	sb.WriteString(strings.Repeat(" ", BarWidth-filled))
	sb.WriteString("] ")
	sb.WriteString(strconv.FormatInt(percent, 10))
	sb.WriteByte('%')
	return sb.String()
}

// Snapshot is a point-in-time view of a Tracker
type Snapshot struct {
	Completed int64   `json:"completed_batches"`
	Total     int64   `json:"total_batches"`
	Percent   float64 `json:"percent"`
	Done      bool    `json:"done"`
}

// Tracker records batch completion. Safe for concurrent use.
type Tracker struct {
	completed atomic.Int64
	total     atomic.Int64
	done      atomic.Bool
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// Start resets the tracker for a run of total units
func (t *Tracker) Start(total int64) {
	t.total.Store(total)
	t.completed.Store(0)
	t.done.Store(false)
}

// Advance sets the number of completed units
func (t *Tracker) Advance(completed int64) {
	t.completed.Store(completed)
}

// Finish marks the run complete
func (t *Tracker) Finish() {
	t.done.Store(true)
}

// Snapshot returns the current state
func (t *Tracker) Snapshot() Snapshot {
	s := Snapshot{
		Completed: t.completed.Load(),
		Total:     t.total.Load(),
		Done:      t.done.Load(),
	}
	if s.Total > 0 {
		s.Percent = float64(s.Completed) * 100 / float64(s.Total)
	} else if s.Done {
		s.Percent = 100
	}
	return s
}
