package rules

import (
	"regexp"
	"strings"

	"contentaudit/internal/diag"
	"contentaudit/internal/textnorm"
)

func checkOptionPunctuation(c *recordCtx) {
	opts := c.rec.Options.V
	if len(opts) < c.t.MinOptions {
		return
	}
	periods := 0
	for _, opt := range opts {
		if textnorm.Len(opt) <= c.t.OptionPunctMin {
			return
		}
		if strings.HasSuffix(strings.TrimSpace(opt), ".") {
			periods++
		}
	}
	if periods > 0 && periods < len(opts) {
		c.low(diag.CatOptionPunctuation, "%d/%d options end with period", periods, len(opts)).
			With("periodCount", periods).
			Emit()
	}
}

// instructionStem matches prompts that are instructions rather than questions.
var instructionStem = regexp.MustCompile(`(?i)select the|choose the|identify`)

func checkQuestionPunctuation(c *recordCtx) {
	if !present(c.rec.Question) {
		return
	}
	q := strings.TrimSpace(c.rec.Question.V)
	if textnorm.Len(q) <= c.t.QuestionPunctMin || strings.HasSuffix(q, "___") {
		return
	}
	last := lastRune(q)
	if last == '?' || last == ':' || last == '.' {
		return
	}
	if instructionStem.MatchString(q) {
		return
	}
	c.low(diag.CatQuestionNoPunctuation, "Question doesn't end with ? or : (ends with %q)", string(last)).
		With("lastChar", string(last)).
		Emit()
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

func checkVeryLong(c *recordCtx) {
	if present(c.rec.Question) {
		if n := textnorm.Len(c.rec.Question.V); n > c.t.QuestionLong {
			c.low(diag.CatQuestionVeryLong, "Question is %d chars", n).
				With("length", n).
				Emit()
		}
	}
	if present(c.rec.Explanation) {
		if n := textnorm.Len(c.rec.Explanation.V); n > c.t.ExplanationLong {
			c.low(diag.CatExplanationVeryLong, "Explanation is %d chars", n).
				With("length", n).
				Emit()
		}
	}
}

var trueFalse = regexp.MustCompile(`(?i)^(true|false)$`)

// checkMixedTrueFalse flags four-option records where some, but not all,
// options are literally True or False.
func checkMixedTrueFalse(c *recordCtx) {
	opts := c.rec.Options.V
	if len(opts) != 4 {
		return
	}
	tf := 0
	for _, opt := range opts {
		if trueFalse.MatchString(strings.TrimSpace(opt)) {
			tf++
		}
	}
	if tf < 2 || tf == len(opts) {
		return
	}
	short := make([]string, len(opts))
	for i, opt := range opts {
		short[i] = textnorm.Prefix(opt, 30)
	}
	c.low(diag.CatMixedTrueFalse, "Options mix True/False with other choices").
		With("options", short).
		Emit()
}
