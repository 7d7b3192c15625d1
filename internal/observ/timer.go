package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Timer collects wall-clock durations of the audit phases
// (discover, scan, global, render). A nil *Timer records nothing,
// so callers never need to check whether --timings is on.
type Timer struct {
	mu     sync.Mutex
	phases []phase
	now    func() time.Time
}

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
	open  bool
}

func NewTimer() *Timer {
	return &Timer{now: time.Now}
}

// Track opens a phase and returns the function that closes it:
//
//	done := timer.Track("scan")
//	defer done("")
//
// Calling the returned function twice keeps the first duration.
func (t *Timer) Track(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, phase{name: name, start: t.now(), open: true})
	t.mu.Unlock()

	return func(note string) {
		t.mu.Lock()
		defer t.mu.Unlock()
		p := &t.phases[idx]
		if !p.open {
			return
		}
		p.dur = t.now().Sub(p.start)
		p.note = note
		p.open = false
	}
}

// PhaseReport is one closed phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report суммирует закрытые фазы; незакрытые не попадают в отчёт.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var rep Report
	if t == nil {
		return rep
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var total time.Duration
	for _, p := range t.phases {
		if p.open {
			continue
		}
		total += p.dur
		rep.Phases = append(rep.Phases, PhaseReport{Name: p.name, DurationMS: millis(p.dur), Note: p.note})
	}
	rep.TotalMS = millis(total)
	return rep
}

// Summary renders the report for stderr.
func (t *Timer) Summary() string {
	rep := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range rep.Phases {
		fmt.Fprintf(&b, "  %-10s %9.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  (" + p.Note + ")")
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-10s %9.2f ms\n", "total", rep.TotalMS)
	return b.String()
}

// Log writes one debug entry per closed phase.
func (t *Timer) Log(logger *zap.Logger) {
	if logger == nil {
		return
	}
	for _, p := range t.Report().Phases {
		logger.Debug("phase finished",
			zap.String("phase", p.Name),
			zap.Float64("ms", p.DurationMS),
			zap.String("note", p.Note))
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
