package rules

import (
	"strings"

	"contentaudit/internal/diag"
	"contentaudit/internal/textnorm"
)

func checkAnswerBounds(c *recordCtx) {
	ca, ok := c.rec.CorrectAnswer.Get()
	if !ok {
		c.critical(diag.CatMissingCorrectAnswer, "No correctAnswer field found").Emit()
		return
	}
	if !c.rec.Options.Valid {
		return
	}
	n := c.rec.OptionCount()
	if ca < 0 || ca >= n {
		c.critical(diag.CatAnswerOutOfBounds, "correctAnswer %d out of bounds (%d options)", ca, n).
			With("correctAnswer", ca).
			With("optionCount", n).
			Emit()
	}
}

// checkOptionCount: too few is CRITICAL, too many only HIGH.
func checkOptionCount(c *recordCtx) {
	n := c.rec.OptionCount()
	switch {
	case !c.rec.HasOptions():
		c.critical(diag.CatMissingOptions, "No options found").Emit()
	case n < c.t.MinOptions:
		c.critical(diag.CatTooFewOptions, "Only %d options (need %d)", n, c.t.MinOptions).
			With("optionCount", n).
			Emit()
	case n > c.t.MaxOptions:
		c.high(diag.CatTooManyOptions, "%d options (expected %d-%d)", n, c.t.MinOptions, c.t.MaxOptions).
			With("optionCount", n).
			Emit()
	}
}

func checkQuestionLength(c *recordCtx) {
	if !present(c.rec.Question) {
		c.critical(diag.CatMissingQuestionText, "No question text found").Emit()
		return
	}
	q := strings.TrimSpace(c.rec.Question.V)
	n := textnorm.Len(q)
	switch {
	case n < c.t.QuestionTooShort:
		c.critical(diag.CatQuestionTooShort, "Question only %d chars: %q", n, q).
			With("length", n).
			Emit()
	case n < c.t.QuestionShort:
		c.high(diag.CatQuestionShort, "Question only %d chars: %q", n, textnorm.Prefix(c.rec.Question.V, 60)).
			With("length", n).
			Emit()
	}
}

func checkOptionText(c *recordCtx) {
	for i, raw := range c.rec.Options.V {
		opt := strings.TrimSpace(raw)
		switch textnorm.Len(opt) {
		case 0:
			c.critical(diag.CatEmptyOption, "Option %d is empty", i).
				With("optionIndex", i).
				Emit()
		case 1:
			if opt[0] >= '0' && opt[0] <= '9' {
				continue
			}
			c.high(diag.CatSingleCharOption, "Option %d is single character: %q", i, opt).
				With("optionIndex", i).
				Emit()
		}
	}
}
