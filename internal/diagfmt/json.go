package diagfmt

import (
	"encoding/json"
	"io"

	"contentaudit/internal/diag"
)

// StatsJSON is Stats with the derived issue total.
type StatsJSON struct {
	diag.Stats
	TotalIssues int `json:"totalIssues"`
}

// ReportJSON is the root of the JSON output.
type ReportJSON struct {
	Stats  StatsJSON    `json:"stats"`
	Issues []diag.Issue `json:"issues"`
}

// BuildReport assembles the JSON document without serializing it.
// Issues keep insertion order; the limit truncates the list only.
func BuildReport(issues []diag.Issue, stats diag.Stats, opts JSONOpts) ReportJSON {
	n := len(issues)
	if opts.Limit > 0 && opts.Limit < n {
		n = opts.Limit
	}
	out := make([]diag.Issue, n)
	copy(out, issues[:n])
	return ReportJSON{
		Stats:  StatsJSON{Stats: stats, TotalIssues: stats.TotalIssues()},
		Issues: out,
	}
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, issues []diag.Issue, stats diag.Stats, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildReport(issues, stats, opts))
}
