package rules

import (
	"testing"

	"contentaudit/internal/diag"
	"contentaudit/internal/project"
	"contentaudit/internal/record"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := project.Defaults()
	e, err := NewEngine(&cfg)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}

// clean returns a record that passes every rule.
func clean() record.Record {
	return record.Record{
		ID:            "far-lease-001",
		File:          "src/data/cpa/far/leases.ts",
		Line:          3,
		CourseID:      record.Some("cpa"),
		Section:       record.Some("FAR"),
		BlueprintArea: record.Some("FAR-III"),
		Topic:         record.Some("Leases"),
		Difficulty:    record.Some("medium"),
		SkillLevel:    record.Some("Application"),
		Question:      record.Some("Which criterion classifies a lease as a finance lease for the lessee?"),
		Explanation:   record.Some("Transfer of ownership at the end of the term is one of the five criteria."),
		Options: record.Some([]string{
			"Transfer of ownership",
			"Variable payments",
			"Short lease term",
			"Lessor maintenance",
		}),
		CorrectAnswer: record.Some(0),
	}
}

func run(t *testing.T, rec record.Record) []diag.Issue {
	t.Helper()
	r := &diag.SliceReporter{}
	newTestEngine(t).CheckRecord(&rec, "cpa", r)
	return r.Issues
}

func byCategory(issues []diag.Issue, cat diag.Category) []diag.Issue {
	var out []diag.Issue
	for _, is := range issues {
		if is.Category == cat {
			out = append(out, is)
		}
	}
	return out
}

func categories(issues []diag.Issue) []diag.Category {
	out := make([]diag.Category, len(issues))
	for i, is := range issues {
		out[i] = is.Category
	}
	return out
}
