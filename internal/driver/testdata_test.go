package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"contentaudit/internal/project"
)

// questionFile renders a question bank with n records in course/section.
// answer(i) picks correctAnswer for record i.
func questionFile(course, section string, n int, answer func(i int) int) string {
	var b strings.Builder
	b.WriteString("export const questions: Question[] = [\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `  {
    id: '%s-%s-%03d',
    courseId: '%s',
    section: '%s',
    blueprintArea: '%s-I',
    topic: 'Topic %d',
    difficulty: 'medium',
    skillLevel: 'Application',
    question: 'In %s scenario number %d, which treatment is correct under the current standard?',
    options: ['Treatment alpha %d', 'Treatment bravo %d', 'Treatment charlie %d', 'Treatment delta %d'],
    correctAnswer: %d,
    explanation: 'The standard requires treatment for case %d as described in the guidance.',
  },
`, strings.ToLower(section), course, i, course, section, section, i, section, i, i, i, i, i, answer(i), i)
	}
	b.WriteString("];\n")
	return b.String()
}

func roundRobin(i int) int { return i % 4 }

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// corpusTree builds a small two-course tree and returns a config pointing at it.
func corpusTree(t *testing.T) *project.Config {
	t.Helper()
	root := t.TempDir()
	data := filepath.Join(root, "src", "data")

	write(t, filepath.Join(data, "cpa", "far", "leases.ts"), questionFile("cpa", "FAR", 6, roundRobin))
	write(t, filepath.Join(data, "cpa", "aud", "sampling.ts"), questionFile("cpa", "AUD", 5, roundRobin))
	// biased file: 8 of 10 answers are 0
	write(t, filepath.Join(data, "cpa", "reg", "ethics.ts"), questionFile("cpa", "REG", 10, func(i int) int {
		if i < 8 {
			return 0
		}
		return 1
	}))
	// same ids as far/leases.ts -> duplicate ids and duplicate text
	write(t, filepath.Join(data, "cpa", "far", "leases-copy.ts"), questionFile("cpa", "FAR", 2, roundRobin))
	write(t, filepath.Join(data, "cpa", "index.ts"), "export * from './far/leases';\n")
	write(t, filepath.Join(data, "cpa", "tbs", "sim.ts"), "export const TBS = [{ scenario: 'x', correctAnswer: 1 }];\n")
	write(t, filepath.Join(data, "ea", "see1", "basics.ts"), questionFile("ea", "SEE1", 5, roundRobin))

	cfg := project.Defaults()
	cfg.DataRoot = data
	return &cfg
}
