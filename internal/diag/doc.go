// Package diag defines the issue model shared by every audit phase.
//
// # Data model
//
// Issue is the central record. It contains:
//
//   - Severity – ordered enum LOW < MEDIUM < HIGH < CRITICAL (severity.go).
//   - Category – fixed kebab-case tag such as "duplicate-options" (category.go).
//   - Subject – the record id, or "file:<name>" for file-level findings.
//   - File / Line – where the subject lives; Line is 0 for file and corpus subjects.
//   - Course – the course directory the file was scanned under, if any.
//   - Message – short human text.
//   - Details – structured values (indices, counts, percentages) for JSON consumers.
//
// # Emitting issues
//
// Rules never append to shared state directly. They receive a Reporter and
// build issues with NewReportBuilder (or ReportCritical / ReportHigh / ...),
// chaining At and With before Emit. The *Collector is the usual Reporter.
//
// # Collecting
//
// Collector applies the minimum-severity floor at Add time: an issue below the
// floor is never stored and never counted. Stats are updated incrementally on
// every accepted issue. Per-file collectors can be combined with Merge, which
// keeps insertion order (receiver first).
//
// Package diag does no formatting beyond the golden/short one-liners;
// rendering lives in internal/diagfmt.
package diag
