package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

type goldenIssue struct {
	Severity string
	Category string
	Location string
	Subject  string
	Message  string
}

// FormatGoldenIssues renders issues into a stable, single-line-per-entry
// representation suitable for golden files. Entries are sorted by location,
// severity (highest first) and category; the result is empty when nothing is given.
func FormatGoldenIssues(issues []Issue) string {
	return formatIssues(issues, true)
}

// FormatShortIssues renders issues one per line in insertion order, for CLI
// short output.
func FormatShortIssues(issues []Issue) string {
	return formatIssues(issues, false)
}

func formatIssues(issues []Issue, sorted bool) string {
	if len(issues) == 0 {
		return ""
	}
	rendered := make([]goldenIssue, 0, len(issues))
	sevs := make([]Severity, 0, len(issues))
	for i := range issues {
		is := &issues[i]
		loc := normalizePath(is.File)
		if is.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, is.Line)
		}
		rendered = append(rendered, goldenIssue{
			Severity: is.Severity.String(),
			Category: string(is.Category),
			Location: loc,
			Subject:  is.Subject,
			Message:  sanitizeMessage(is.Message),
		})
		sevs = append(sevs, is.Severity)
	}

	if sorted {
		idx := make([]int, len(rendered))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			di, dj := rendered[idx[a]], rendered[idx[b]]
			if di.Location != dj.Location {
				return di.Location < dj.Location
			}
			if sevs[idx[a]] != sevs[idx[b]] {
				return sevs[idx[a]] > sevs[idx[b]]
			}
			if di.Category != dj.Category {
				return di.Category < dj.Category
			}
			if di.Subject != dj.Subject {
				return di.Subject < dj.Subject
			}
			return di.Message < dj.Message
		})
		out := make([]goldenIssue, len(rendered))
		for i, j := range idx {
			out[i] = rendered[j]
		}
		rendered = out
	}

	var b strings.Builder
	for i, d := range rendered {
		loc := d.Location
		if loc == "" {
			loc = "-"
		}
		fmt.Fprintf(&b, "%s %s %s %s %s", d.Severity, d.Category, loc, d.Subject, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
