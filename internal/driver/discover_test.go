package driver

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiscoverSkipsMissingCourses(t *testing.T) {
	cfg := corpusTree(t)
	found, err := Discover(DiscoverOptions{
		Root:            cfg.DataRoot,
		Courses:         []string{"cpa", "cma", "ea"},
		Extensions:      cfg.Extensions,
		ExcludeSuffixes: cfg.ExcludeSuffixes,
	})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	var courses []string
	for _, cf := range found {
		courses = append(courses, cf.Course)
	}
	if diff := cmp.Diff([]string{"cpa", "ea"}, courses); diff != "" {
		t.Fatalf("courses (-want +got):\n%s", diff)
	}

	var rel []string
	for _, f := range found[0].Files {
		r, _ := filepath.Rel(found[0].Dir, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	want := []string{"aud/sampling.ts", "far/leases-copy.ts", "far/leases.ts", "reg/ethics.ts", "tbs/sim.ts"}
	if diff := cmp.Diff(want, rel); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}
}

func TestDiscoverNoCourses(t *testing.T) {
	_, err := Discover(DiscoverOptions{Root: t.TempDir(), Courses: []string{"cpa"}, Extensions: []string{".ts"}})
	if !errors.Is(err, ErrNoCourses) {
		t.Fatalf("want ErrNoCourses, got %v", err)
	}
}

func TestIsCandidate(t *testing.T) {
	exts := []string{".ts"}
	excl := []string{"index.ts", ".d.ts"}
	tests := map[string]bool{
		"questions.ts":   true,
		"index.ts":       false,
		"types.d.ts":     false,
		"farindex.ts":    false,
		"questions.tsx":  false,
		"questions.json": false,
	}
	for name, want := range tests {
		if got := IsCandidate(name, exts, excl); got != want {
			t.Fatalf("%s: want %v, got %v", name, want, got)
		}
	}
}

func TestQualify(t *testing.T) {
	tests := []struct {
		content string
		want    Exclusion
	}{
		{"{ id: 'a', correctAnswer: 1 }", NotExcluded},
		{"{ id: 'a' }", ExcludedNoAnswers},
		{"const TBS = { scenario: '', correctAnswer: 1 }", ExcludedTBS},
		{"const TBS = { requirements: [], correctAnswer: 1 }", ExcludedTBS},
		{"// TBS later\n{ correctAnswer: 1 }", NotExcluded},
		{"type CaseStudy = {}; correctAnswer", ExcludedCaseStudy},
		{"case_study correctAnswer", ExcludedCaseStudy},
		{"WCTask correctAnswer", ExcludedWrittenCommunication},
		{"writtenCommunication correctAnswer", ExcludedWrittenCommunication},
		{"CBQScenario { scenario: '', correctAnswer: 0 }", ExcludedCBQ},
		{"CBQ correctAnswer", NotExcluded},
	}
	for _, tt := range tests {
		if got := Qualify([]byte(tt.content)); got != tt.want {
			t.Fatalf("%q: want %s, got %s", tt.content, tt.want, got)
		}
	}
}
