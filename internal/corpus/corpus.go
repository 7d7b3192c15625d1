// Package corpus runs the cross-file checks once every file has been scanned:
// duplicate ids, identical question text and near-duplicate question prefixes.
//
// The three checks are independent of each other and of the per-record rules.
// Groups are reported in first-seen order so output is stable for a stable input order.
package corpus

import (
	"fmt"

	"contentaudit/internal/diag"
	"contentaudit/internal/project"
	"contentaudit/internal/record"
	"contentaudit/internal/textnorm"
)

// UnknownSection buckets records without a section for prefix grouping.
const UnknownSection = "unknown"

// maxListedIDs caps the ids attached to a near-duplicate issue.
const maxListedIDs = 5

// Auditor holds the thresholds of the global checks.
type Auditor struct {
	t project.Thresholds
}

// New returns an Auditor using t.
func New(t project.Thresholds) *Auditor {
	return &Auditor{t: t}
}

// Audit runs every global check over recs.
func (a *Auditor) Audit(recs []record.Record, r diag.Reporter) {
	a.DuplicateIDs(recs, r)
	a.DuplicateText(recs, r)
	a.NearDuplicates(recs, r)
}

// DuplicateIDs emits one CRITICAL issue per id that occurs more than once.
func (a *Auditor) DuplicateIDs(recs []record.Record, r diag.Reporter) {
	groups := newGrouping[*record.Record]()
	for i := range recs {
		groups.add(recs[i].ID, &recs[i])
	}
	for _, g := range groups.ordered() {
		if len(g.items) < 2 {
			continue
		}
		files := uniqueFiles(g.items)
		first := g.items[0]
		diag.ReportCritical(r, diag.CatDuplicateID, g.key,
			fmt.Sprintf("ID %q appears %d times in %d file(s)", g.key, len(g.items), len(files))).
			At(first.File, first.Line).
			With("count", len(g.items)).
			With("files", files).
			Emit()
	}
}

// DuplicateText emits one CRITICAL issue per normalised question text shared
// by more than one record. Very short texts are ignored.
func (a *Auditor) DuplicateText(recs []record.Record, r diag.Reporter) {
	groups := newGrouping[*record.Record]()
	for i := range recs {
		q, ok := recs[i].Question.Get()
		if !ok || q == "" {
			continue
		}
		key := textnorm.Collapse(q)
		if textnorm.Len(key) < a.t.DuplicateTextMin {
			continue
		}
		groups.add(key, &recs[i])
	}
	for _, g := range groups.ordered() {
		if len(g.items) < 2 {
			continue
		}
		first := g.items[0]
		ids := make([]string, len(g.items))
		for i, rec := range g.items {
			ids[i] = rec.ID
		}
		diag.ReportCritical(r, diag.CatDuplicateQuestionText, first.ID,
			fmt.Sprintf("Identical question text found in %d questions: %q...", len(g.items), textnorm.Prefix(g.key, 80))).
			At(first.File, first.Line).
			With("duplicateIds", ids).
			With("count", len(g.items)).
			Emit()
	}
}

// NearDuplicates groups long questions by their normalised prefix and then by
// section. Only same-section groups are reported; the same opening reused
// across sections is expected.
func (a *Auditor) NearDuplicates(recs []record.Record, r diag.Reporter) {
	prefixes := newGrouping[*record.Record]()
	for i := range recs {
		q, ok := recs[i].Question.Get()
		if !ok || textnorm.Len(q) < a.t.PrefixLen {
			continue
		}
		prefixes.add(textnorm.Prefix(textnorm.Collapse(q), a.t.PrefixLen), &recs[i])
	}
	for _, pg := range prefixes.ordered() {
		if len(pg.items) < a.t.PrefixMinGroup {
			continue
		}
		sections := newGrouping[*record.Record]()
		for _, rec := range pg.items {
			sec := rec.Section.Or("")
			if sec == "" {
				sec = UnknownSection
			}
			sections.add(sec, rec)
		}
		for _, sg := range sections.ordered() {
			if len(sg.items) < a.t.PrefixMinGroup {
				continue
			}
			first := sg.items[0]
			ids := make([]string, 0, maxListedIDs)
			for _, rec := range sg.items {
				if len(ids) == maxListedIDs {
					break
				}
				ids = append(ids, rec.ID)
			}
			diag.ReportHigh(r, diag.CatNearDuplicateQuestion, first.ID,
				fmt.Sprintf("%d questions in section %s start with: %q...", len(sg.items), sg.key, pg.key)).
				At(first.File, first.Line).
				With("count", len(sg.items)).
				With("ids", ids).
				With("section", sg.key).
				Emit()
		}
	}
}

func uniqueFiles(recs []*record.Record) []string {
	seen := make(map[string]struct{}, len(recs))
	files := make([]string, 0, len(recs))
	for _, rec := range recs {
		if _, ok := seen[rec.File]; ok {
			continue
		}
		seen[rec.File] = struct{}{}
		files = append(files, rec.File)
	}
	return files
}
