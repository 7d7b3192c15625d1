package diagfmt

import (
	"io"

	"contentaudit/internal/diag"
)

// Short writes one line per issue: "SEV category file:line subject message".
func Short(w io.Writer, issues []diag.Issue, limit int) error {
	if limit > 0 && limit < len(issues) {
		issues = issues[:limit]
	}
	if len(issues) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, diag.FormatShortIssues(issues)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
