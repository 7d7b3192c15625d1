// Package rules implements the per-record validator and the file-level
// answer-bias check.
//
// Every record rule is a function of one record (plus the expected course and
// the configured thresholds) that emits zero or more issues through a
// diag.Reporter. Rules never read each other's output and run in a fixed
// order, so a record accumulates every issue that applies to it in one pass.
//
// Lengths are measured in runes.
package rules
