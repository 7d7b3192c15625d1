package rules

import (
	"fmt"
	"math"
	"sort"

	"contentaudit/internal/diag"
	"contentaudit/internal/record"
	"contentaudit/internal/source"
)

// CheckFile runs the file-level checks over all records extracted from path.
// Records without a correctAnswer still count towards the sample size.
func (e *Engine) CheckFile(path string, recs []record.Record, r diag.Reporter) {
	total := len(recs)
	if total == 0 || total < e.t.BiasMinSample {
		return
	}

	counts := make(map[int]int)
	for i := range recs {
		if ca, ok := recs[i].CorrectAnswer.Get(); ok {
			counts[ca]++
		}
	}
	answers := make([]int, 0, len(counts))
	for ans := range counts {
		answers = append(answers, ans)
	}
	sort.Ints(answers)

	subject := diag.FileSubject(source.BaseName(path))
	for _, ans := range answers {
		count := counts[ans]
		pct := float64(count) / float64(total)
		var sev diag.Severity
		switch {
		case pct > e.t.BiasHighRatio && total >= e.t.BiasHighMinFile:
			sev = diag.SevHigh
		case pct > e.t.BiasMediumRatio && total >= e.t.BiasMediumMinFile:
			sev = diag.SevMedium
		default:
			continue
		}
		percentage := roundHalfUp(pct * 100)
		msg := fmt.Sprintf("%d%% of correct answers are option %d (%d/%d)", percentage, ans, count, total)
		diag.NewReportBuilder(r, sev, diag.CatAnswerPatternBias, subject, msg).
			At(path, 0).
			With("answer", ans).
			With("count", count).
			With("total", total).
			With("percentage", percentage).
			Emit()
	}
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
