package ui

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"contentaudit/internal/driver"
)

func sampleFound() []driver.CourseFiles {
	return []driver.CourseFiles{
		{Course: "cpa", Files: []string{"cpa/a.ts", "cpa/b.ts"}},
		{Course: "ea", Files: []string{"ea/c.ts"}},
	}
}

func TestApplyEventTracksCourses(t *testing.T) {
	m := newProgressModel("auditing", sampleFound(), nil)

	m.applyEvent(driver.Event{File: "cpa/a.ts", Stage: driver.StageExtract, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "cpa/b.ts", Stage: driver.StageLoad, Status: driver.StatusSkipped})
	m.applyEvent(driver.Event{File: "ea/c.ts", Stage: driver.StageLoad, Status: driver.StatusError, Err: errors.New("denied")})
	m.applyEvent(driver.Event{File: "unknown.ts", Stage: driver.StageCheck, Status: driver.StatusDone})

	if diff := cmp.Diff([]string{"cpa/a.ts"}, m.active); diff != "" {
		t.Fatalf("active (-want +got):\n%s", diff)
	}
	done, total, _ := m.totals()
	if done != 2 || total != 3 {
		t.Fatalf("totals = %d/%d, want 2/3", done, total)
	}
	if m.courses[1].failed != 1 {
		t.Fatalf("ea failed = %d", m.courses[1].failed)
	}
	want := (0.4 + 1 + 1) / 3
	if got := m.percent(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("percent = %v, want %v", got, want)
	}

	m.applyEvent(driver.Event{File: "cpa/a.ts", Stage: driver.StageCheck, Status: driver.StatusDone, Records: 7})
	if m.courses[0].records != 7 || len(m.active) != 0 || math.Abs(m.percent()-1) > 1e-9 {
		t.Fatalf("records=%d active=%v percent=%v", m.courses[0].records, m.active, m.percent())
	}
}

func TestFinalStateIsSticky(t *testing.T) {
	m := newProgressModel("auditing", sampleFound(), nil)
	m.applyEvent(driver.Event{File: "ea/c.ts", Stage: driver.StageCheck, Status: driver.StatusDone, Records: 3})
	m.applyEvent(driver.Event{File: "ea/c.ts", Stage: driver.StageCheck, Status: driver.StatusDone, Records: 3})
	m.applyEvent(driver.Event{File: "ea/c.ts", Stage: driver.StageLoad, Status: driver.StatusWorking})
	if c := m.courses[1]; c.done != 1 || c.records != 3 {
		t.Fatalf("course row = %+v", c)
	}
	if len(m.active) != 0 {
		t.Fatalf("finished file must not become active again: %v", m.active)
	}
}

func TestViewShowsPhaseAndCourses(t *testing.T) {
	m := newProgressModel("auditing", sampleFound(), nil)
	m.applyEvent(driver.Event{Stage: driver.StageGlobal, Status: driver.StatusWorking})
	view := m.View()
	for _, part := range []string{"(cross-checks)", "CPA", "EA", "0/3 files"} {
		if !strings.Contains(view, part) {
			t.Fatalf("view missing %q:\n%s", part, view)
		}
	}
}

func TestViewCapsActiveList(t *testing.T) {
	files := make([]string, maxActive+3)
	for i := range files {
		files[i] = strings.Repeat("x", i+1) + ".ts"
	}
	m := newProgressModel("auditing", []driver.CourseFiles{{Course: "cpa", Files: files}}, nil)
	for _, f := range files {
		m.applyEvent(driver.Event{File: f, Stage: driver.StageCheck, Status: driver.StatusWorking})
	}
	if !strings.Contains(m.View(), "3 more") {
		t.Fatalf("expected overflow line:\n%s", m.View())
	}
}

func TestUpdateQuitsWhenEventsClose(t *testing.T) {
	ch := make(chan driver.Event, 1)
	m := newProgressModel("auditing", sampleFound(), ch)
	ch <- driver.Event{File: "ea/c.ts", Stage: driver.StageCheck, Status: driver.StatusDone}
	close(ch)

	msg := m.next()()
	if _, ok := msg.(eventMsg); !ok {
		t.Fatalf("want eventMsg, got %T", msg)
	}
	m.Update(msg)
	msg = m.next()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("want doneMsg, got %T", msg)
	}
	_, cmd := m.Update(msg)
	if !m.finished || cmd == nil {
		t.Fatalf("model must finish and quit")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("a-rather-long-path.ts", 10); !strings.HasSuffix(got, "...") || len(got) > 10 {
		t.Fatalf("got %q", got)
	}
}
