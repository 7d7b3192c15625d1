package rules

import (
	"math"
	"strings"

	"contentaudit/internal/diag"
	"contentaudit/internal/textnorm"
)

func checkExplanation(c *recordCtx) {
	if !present(c.rec.Explanation) {
		c.high(diag.CatMissingExplanation, "No explanation provided").Emit()
		return
	}
	if n := textnorm.TrimmedLen(c.rec.Explanation.V); n < c.t.ExplanationMin {
		c.high(diag.CatExplanationTooShort, "Explanation only %d chars", n).
			With("length", n).
			Emit()
	}
}

// checkAOTAPosition wants "all/none of the above" as the last option.
// Only answerable records are checked.
func checkAOTAPosition(c *recordCtx) {
	if !c.rec.CorrectAnswer.Valid {
		return
	}
	opts := c.rec.Options.V
	for i, opt := range opts {
		if i == len(opts)-1 {
			break
		}
		lower := textnorm.Key(opt)
		if strings.Contains(lower, "all of the above") || strings.Contains(lower, "none of the above") {
			c.medium(diag.CatAOTANOTANotLast, "%q should be last option (currently option %d)", textnorm.Prefix(opt, 40), i).
				With("optionIndex", i).
				Emit()
		}
	}
}

// checkStandoutLength flags a correct option that is much longer than the
// distractors, which gives the answer away.
func checkStandoutLength(c *recordCtx) {
	opts := c.rec.Options.V
	if len(opts) < c.t.MinOptions || !c.rec.AnswerInBounds() {
		return
	}
	ca := c.rec.CorrectAnswer.V
	correctLen := 0
	otherSum := 0
	for i, opt := range opts {
		n := textnorm.TrimmedLen(opt)
		if i == ca {
			correctLen = n
			continue
		}
		otherSum += n
	}
	avgOther := float64(otherSum) / float64(len(opts)-1)
	if correctLen == 0 || avgOther == 0 {
		return
	}
	if float64(correctLen) > avgOther*c.t.StandoutRatio && correctLen > c.t.StandoutMinLen {
		avg := int(math.Round(avgOther))
		c.medium(diag.CatStandoutLength, "Correct option (%d chars) is %.1fx longer than average distractor (%d chars)",
			correctLen, float64(correctLen)/avgOther, avg).
			With("correctLen", correctLen).
			With("avgOtherLen", avg).
			Emit()
	}
}

func checkPlaceholders(c *recordCtx) {
	if present(c.rec.Question) {
		lower := strings.ToLower(c.rec.Question.V)
		if m, ok := containsAny(lower, c.placeholders, c.questionPlaceholders); ok {
			c.critical(diag.CatPlaceholderText, "Question appears to contain placeholder text").
				With("marker", m).
				Emit()
		}
	}
	if present(c.rec.Explanation) {
		lower := strings.ToLower(c.rec.Explanation.V)
		if m, ok := containsAny(lower, c.placeholders); ok {
			c.critical(diag.CatPlaceholderExplanation, "Explanation appears to contain placeholder text").
				With("marker", m).
				Emit()
		}
	}
}

func containsAny(s string, lists ...[]string) (string, bool) {
	for _, list := range lists {
		for _, marker := range list {
			if marker != "" && strings.Contains(s, marker) {
				return marker, true
			}
		}
	}
	return "", false
}

// checkAIArtifacts looks for drafting residue ("let me reconsider", "wait, ...")
// left in explanations. One issue per record, for the first pattern that hits.
func checkAIArtifacts(c *recordCtx) {
	if !present(c.rec.Explanation) {
		return
	}
	for _, re := range c.aiArtifacts {
		if loc := re.FindStringIndex(c.rec.Explanation.V); loc != nil {
			match := c.rec.Explanation.V[loc[0]:loc[1]]
			c.high(diag.CatAIArtifact, "Explanation contains drafting artifact: %q", match).
				With("match", match).
				With("offset", loc[0]).
				Emit()
			return
		}
	}
}
