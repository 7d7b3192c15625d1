package diag

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sample(sev Severity, cat Category, course string) Issue {
	return Issue{Severity: sev, Category: cat, Subject: "q", Course: course, Message: "m"}
}

func TestCollectorFloorDropsBeforeCounting(t *testing.T) {
	c := NewCollector(SevHigh)
	c.Add(sample(SevLow, CatUppercaseID, "cpa"))
	c.Add(sample(SevMedium, CatMissingTopic, "cpa"))
	c.Add(sample(SevHigh, CatMissingExplanation, "cpa"))
	c.Add(sample(SevCritical, CatMissingOptions, "cpa"))

	if c.Len() != 2 {
		t.Fatalf("want 2 accepted issues, got %d", c.Len())
	}
	st := c.Stats()
	want := map[Severity]int{SevLow: 0, SevMedium: 0, SevHigh: 1, SevCritical: 1}
	if diff := cmp.Diff(want, st.BySeverity); diff != "" {
		t.Fatalf("bySeverity (-want +got):\n%s", diff)
	}
	if _, ok := st.ByCategory[CatUppercaseID]; ok {
		t.Fatalf("filtered category leaked into stats")
	}
	if st.ByCourse["cpa"].Issues != 2 {
		t.Fatalf("course issues: want 2, got %d", st.ByCourse["cpa"].Issues)
	}
	if !c.HasCritical() {
		t.Fatalf("expected critical")
	}
}

func TestCollectorMergeKeepsOrder(t *testing.T) {
	a := NewCollector(SevLow)
	a.CountFile("cpa", 3)
	a.Add(Issue{Severity: SevLow, Category: CatUppercaseID, Subject: "a1", Course: "cpa"})

	b := NewCollector(SevLow)
	b.CountFile("ea", 2)
	b.CountSkipped()
	b.Add(Issue{Severity: SevHigh, Category: CatMissingSection, Subject: "b1", Course: "ea"})

	a.Merge(b)
	var subjects []string
	for _, is := range a.Items() {
		subjects = append(subjects, is.Subject)
	}
	if diff := cmp.Diff([]string{"a1", "b1"}, subjects); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	st := a.Stats()
	if st.TotalFiles != 2 || st.TotalRecords != 5 || st.SkippedFiles != 1 {
		t.Fatalf("unexpected totals: %+v", st)
	}
	if diff := cmp.Diff(&CourseStats{Files: 1, Records: 2, Issues: 1}, st.ByCourse["ea"]); diff != "" {
		t.Fatalf("ea stats (-want +got):\n%s", diff)
	}
}

func TestCollectorMergeRefilters(t *testing.T) {
	strict := NewCollector(SevCritical)
	loose := NewCollector(SevLow)
	loose.Add(sample(SevLow, CatUppercaseID, "cpa"))
	loose.Add(sample(SevCritical, CatMissingOptions, "cpa"))

	strict.Merge(loose)
	if strict.Len() != 1 || strict.Stats().BySeverity[SevLow] != 0 {
		t.Fatalf("merge must apply the receiver floor: %+v", strict.Items())
	}
}

func TestStatsSnapshotIsIndependent(t *testing.T) {
	c := NewCollector(SevLow)
	c.CountFile("cpa", 1)
	snap := c.Stats()
	c.CountFile("cpa", 1)
	if snap.ByCourse["cpa"].Files != 1 {
		t.Fatalf("snapshot mutated by later updates")
	}
}

func TestIssueJSON(t *testing.T) {
	r := &SliceReporter{}
	ReportCritical(r, CatDuplicateOptions, "Q1", "Duplicate option at index 1: \"A\"").
		At("cpa/far.ts", 4).
		With("index", 1).
		With("value", "A").
		Emit()
	b, err := json.Marshal(r.Issues[0])
	if err != nil {
		t.Fatal(err)
	}
	want := `{"severity":"CRITICAL","category":"duplicate-options","questionId":"Q1","file":"cpa/far.ts","line":4,` +
		`"message":"Duplicate option at index 1: \"A\"","details":{"index":1,"value":"A"}}`
	if string(b) != want {
		t.Fatalf("want %s\ngot  %s", want, b)
	}
}

func TestCourseReporterStamps(t *testing.T) {
	c := NewCollector(SevLow)
	cr := CourseReporter{Next: c, Course: "cma"}
	ReportLow(cr, CatUppercaseID, "X", "upper").Emit()
	if c.Items()[0].Course != "cma" || c.Stats().ByCourse["cma"].Issues != 1 {
		t.Fatalf("course not stamped: %+v", c.Items()[0])
	}
}

func TestBuilderEmitsOnce(t *testing.T) {
	r := &SliceReporter{}
	b := ReportHigh(r, CatMissingSection, "q", "m")
	b.Emit()
	b.Emit()
	if len(r.Issues) != 1 {
		t.Fatalf("want 1 issue, got %d", len(r.Issues))
	}
}
