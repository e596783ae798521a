package progress

import (
	"strings"
	"sync"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name        string
		done, total int64
		wantFilled  int
		wantPercent string
	}{
		{"first of many", 1, 100, 0, "1%"},
		{"half", 50, 100, 25, "50%"},
		{"complete", 100, 100, 50, "100%"},
		{"single batch", 1, 1, 50, "100%"},
		{"thirds", 1, 3, 16, "33%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.done, tt.total)

			if !strings.HasPrefix(got, "\r[") {
				t.Fatalf("bar should start with carriage return and bracket: %q", got)
			}
			closing := strings.Index(got, "]")
			if closing != 2+BarWidth {
				t.Fatalf("bar body width = %d, want %d: %q", closing-2, BarWidth, got)
			}
			body := got[2:closing]
			if n := strings.Count(body, "="); n != tt.wantFilled {
				t.Errorf("filled cells = %d, want %d", n, tt.wantFilled)
			}
			if !strings.HasSuffix(got, "] "+tt.wantPercent) {
				t.Errorf("percent suffix: got %q, want %q", got, tt.wantPercent)
			}
		})
	}
}

func TestTracker(t *testing.T) {
	tr := NewTracker()

	if s := tr.Snapshot(); s.Total != 0 || s.Percent != 0 || s.Done {
		t.Errorf("fresh tracker = %+v", s)
	}

	tr.Start(4)
	tr.Advance(1)
	if s := tr.Snapshot(); s.Completed != 1 || s.Percent != 25 {
		t.Errorf("after one of four = %+v", s)
	}

	tr.Advance(4)
	tr.Finish()
	if s := tr.Snapshot(); !s.Done || s.Percent != 100 {
		t.Errorf("finished = %+v", s)
	}

	// An empty run reports complete once finished.
	tr.Start(0)
	tr.Finish()
	if s := tr.Snapshot(); s.Percent != 100 {
		t.Errorf("empty finished run percent = %v, want 100", s.Percent)
	}
}

func TestTracker_ConcurrentReaders(t *testing.T) {
	tr := NewTracker()
	tr.Start(1000)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = tr.Snapshot()
			}
		}()
	}
	for i := int64(1); i <= 1000; i++ {
		tr.Advance(i)
	}
	wg.Wait()

	if s := tr.Snapshot(); s.Completed != 1000 {
		t.Errorf("completed = %d, want 1000", s.Completed)
	}
}
