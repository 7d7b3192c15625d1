package rules

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"contentaudit/internal/diag"
	"contentaudit/internal/record"
)

// answers builds one record per entry; -1 means no correctAnswer.
func answers(vals ...int) []record.Record {
	recs := make([]record.Record, len(vals))
	for i, v := range vals {
		recs[i] = record.Record{ID: "q"}
		if v >= 0 {
			recs[i].CorrectAnswer = record.Some(v)
		}
	}
	return recs
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func checkFile(t *testing.T, recs []record.Record) []diag.Issue {
	t.Helper()
	r := &diag.SliceReporter{}
	newTestEngine(t).CheckFile("src/data/cpa/far/leases.ts", recs, r)
	return r.Issues
}

func TestBiasMedium(t *testing.T) {
	vals := append(repeat(0, 11), 1, 1, 1, 2, 2, 2, 3, 3, 3)
	issues := checkFile(t, answers(vals...))
	if len(issues) != 1 {
		t.Fatalf("want 1 issue, got %d", len(issues))
	}
	is := issues[0]
	if is.Severity != diag.SevMedium || is.Subject != "file:leases.ts" || is.Line != 0 {
		t.Fatalf("unexpected issue: %+v", is)
	}
	want := map[string]any{"answer": 0, "count": 11, "total": 20, "percentage": 55}
	if diff := cmp.Diff(want, is.Details); diff != "" {
		t.Fatalf("details (-want +got):\n%s", diff)
	}
	if is.Message != "55% of correct answers are option 0 (11/20)" {
		t.Fatalf("message: %q", is.Message)
	}
}

func TestBiasHigh(t *testing.T) {
	vals := append(repeat(2, 7), 0, 1, 3)
	issues := checkFile(t, answers(vals...))
	if len(issues) != 1 || issues[0].Severity != diag.SevHigh || issues[0].Details["percentage"] != 70 {
		t.Fatalf("want HIGH 70%%, got %+v", issues)
	}
}

func TestBiasSampleSize(t *testing.T) {
	tests := []struct {
		name string
		vals []int
	}{
		{"below minimum", repeat(0, 4)},
		{"too small for high", repeat(0, 9)},
		{"too small for medium", append(repeat(0, 10), 1, 2, 3, 1, 2, 3, 1, 2, 3)},
		{"exactly half", append(repeat(0, 10), repeat(1, 10)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if issues := checkFile(t, answers(tt.vals...)); len(issues) != 0 {
				t.Fatalf("want no issues, got %+v", issues)
			}
		})
	}
}

func TestBiasCountsUnansweredInTotal(t *testing.T) {
	// 7 of 10 answered as 1, 3 without an answer: 70% of all records.
	vals := append(repeat(1, 7), -1, -1, -1)
	issues := checkFile(t, answers(vals...))
	if len(issues) != 1 || issues[0].Details["total"] != 10 {
		t.Fatalf("unexpected: %+v", issues)
	}
}
