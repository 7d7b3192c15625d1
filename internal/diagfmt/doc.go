// Package diagfmt renders audit results: a pretty report for terminals, JSON,
// a one-line-per-issue short form and SARIF 2.1.0.
package diagfmt
