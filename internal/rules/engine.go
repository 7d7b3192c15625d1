package rules

import (
	"fmt"
	"regexp"
	"strings"

	"contentaudit/internal/diag"
	"contentaudit/internal/project"
	"contentaudit/internal/record"
)

// Engine holds the compiled rule configuration. It is immutable after
// NewEngine and safe for concurrent use.
type Engine struct {
	t project.Thresholds

	difficulties map[string]struct{}
	skillLevels  map[string]struct{}
	sections     map[string]map[string]struct{}

	placeholders         []string
	questionPlaceholders []string
	aiArtifacts          []*regexp.Regexp
}

// NewEngine compiles cfg into an Engine.
func NewEngine(cfg *project.Config) (*Engine, error) {
	e := &Engine{
		t:            cfg.Thresholds,
		difficulties: toSet(cfg.Difficulties),
		skillLevels:  toSet(cfg.SkillLevels),
		sections:     make(map[string]map[string]struct{}, len(cfg.Sections)),
	}
	for course, secs := range cfg.Sections {
		if len(secs) > 0 {
			e.sections[course] = toSet(secs)
		}
	}
	for _, p := range cfg.Placeholders {
		e.placeholders = append(e.placeholders, strings.ToLower(p))
	}
	for _, p := range cfg.QuestionPlaceholders {
		e.questionPlaceholders = append(e.questionPlaceholders, strings.ToLower(p))
	}
	for _, pat := range cfg.AIArtifacts {
		re, err := regexp.Compile("(?i)" + pat)
		if err != nil {
			return nil, fmt.Errorf("ai artifact pattern %q: %w", pat, err)
		}
		e.aiArtifacts = append(e.aiArtifacts, re)
	}
	return e, nil
}

// Thresholds returns the constants the engine was built with.
func (e *Engine) Thresholds() project.Thresholds {
	return e.t
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

type recordRule struct {
	name  string
	check func(c *recordCtx)
}

// recordRules run in this order for every record.
var recordRules = []recordRule{
	{"duplicate-options", checkDuplicateOptions},
	{"answer-bounds", checkAnswerBounds},
	{"options-count", checkOptionCount},
	{"question-length", checkQuestionLength},
	{"explanation", checkExplanation},
	{"option-text", checkOptionText},
	{"aota-nota", checkAOTAPosition},
	{"standout-length", checkStandoutLength},
	{"metadata", checkMetadata},
	{"section", checkSection},
	{"course", checkCourse},
	{"option-punctuation", checkOptionPunctuation},
	{"question-punctuation", checkQuestionPunctuation},
	{"identifier", checkIdentifier},
	{"very-long", checkVeryLong},
	{"placeholders", checkPlaceholders},
	{"ai-artifacts", checkAIArtifacts},
	{"legacy-fields", checkLegacyFields},
	{"true-false", checkMixedTrueFalse},
	{"near-duplicate-options", checkNearDuplicateOptions},
}

// RuleNames lists the record rules in execution order.
func RuleNames() []string {
	names := make([]string, len(recordRules))
	for i, r := range recordRules {
		names[i] = r.name
	}
	return names
}

// CheckRecord runs every record rule against rec. expectedCourse is the course
// directory the record was found under; empty disables the course match rule.
func (e *Engine) CheckRecord(rec *record.Record, expectedCourse string, r diag.Reporter) {
	c := &recordCtx{Engine: e, rec: rec, course: expectedCourse, r: r}
	for _, rule := range recordRules {
		rule.check(c)
	}
}

// CheckRecords runs CheckRecord over recs in order.
func (e *Engine) CheckRecords(recs []record.Record, expectedCourse string, r diag.Reporter) {
	for i := range recs {
		e.CheckRecord(&recs[i], expectedCourse, r)
	}
}

// recordCtx is what a record rule sees.
type recordCtx struct {
	*Engine
	rec    *record.Record
	course string
	r      diag.Reporter
}

func (c *recordCtx) at(b *diag.ReportBuilder) *diag.ReportBuilder {
	return b.At(c.rec.File, c.rec.Line)
}

func msgf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func (c *recordCtx) critical(cat diag.Category, format string, args ...any) *diag.ReportBuilder {
	return c.at(diag.ReportCritical(c.r, cat, c.rec.ID, msgf(format, args...)))
}

func (c *recordCtx) high(cat diag.Category, format string, args ...any) *diag.ReportBuilder {
	return c.at(diag.ReportHigh(c.r, cat, c.rec.ID, msgf(format, args...)))
}

func (c *recordCtx) medium(cat diag.Category, format string, args ...any) *diag.ReportBuilder {
	return c.at(diag.ReportMedium(c.r, cat, c.rec.ID, msgf(format, args...)))
}

func (c *recordCtx) low(cat diag.Category, format string, args ...any) *diag.ReportBuilder {
	return c.at(diag.ReportLow(c.r, cat, c.rec.ID, msgf(format, args...)))
}

// present reports a string field that exists and is not empty. A field made
// only of whitespace counts as present; the length rules deal with it.
func present(o record.Opt[string]) bool {
	return o.Valid && o.V != ""
}
