package diag

import "fmt"

// Issue is one content finding. Issues are append-only: once accepted by a
// Collector they are never mutated.
type Issue struct {
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	// Subject is a record id or a synthetic subject such as "file:<name>".
	Subject string         `json:"questionId"`
	File    string         `json:"file,omitempty"`
	Line    uint32         `json:"line,omitempty"`
	Course  string         `json:"course,omitempty"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Location renders "file:line", or just the file when the line is unknown.
func (i *Issue) Location() string {
	if i.Line == 0 {
		return i.File
	}
	return fmt.Sprintf("%s:%d", i.File, i.Line)
}

// FileSubject is the subject used for file-level findings.
func FileSubject(base string) string {
	return "file:" + base
}
