package rules

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"contentaudit/internal/diag"
	"contentaudit/internal/record"
)

func TestCleanRecordHasNoIssues(t *testing.T) {
	if issues := run(t, clean()); len(issues) != 0 {
		t.Fatalf("clean record produced issues: %v", categories(issues))
	}
}

func TestDuplicateOptionAtRepeatIndex(t *testing.T) {
	rec := record.Record{
		ID:            "Q1",
		Options:       record.Some([]string{"A", "A", "B", "C"}),
		CorrectAnswer: record.Some(0),
	}
	dups := byCategory(run(t, rec), diag.CatDuplicateOptions)
	if len(dups) != 1 {
		t.Fatalf("want 1 duplicate-options, got %d", len(dups))
	}
	is := dups[0]
	if is.Severity != diag.SevCritical || is.Details["optionIndex"] != 1 || is.Details["value"] != "A" {
		t.Fatalf("unexpected issue: %+v", is)
	}
}

func TestDuplicateOptionsCaseAndSpace(t *testing.T) {
	rec := clean()
	rec.Options = record.Some([]string{"Cash basis", " cash BASIS ", "Accrual basis", "cash basis"})
	dups := byCategory(run(t, rec), diag.CatDuplicateOptions)
	if len(dups) != 2 {
		t.Fatalf("want a finding per repeat, got %d", len(dups))
	}
	if dups[0].Details["optionIndex"] != 1 || dups[1].Details["optionIndex"] != 3 {
		t.Fatalf("unexpected indices: %v, %v", dups[0].Details, dups[1].Details)
	}
}

func TestOptionCount(t *testing.T) {
	tests := []struct {
		name string
		opts record.Opt[[]string]
		want []diag.Category
	}{
		{"absent", record.Opt[[]string]{}, []diag.Category{diag.CatMissingOptions}},
		{"empty", record.Some([]string{}), []diag.Category{diag.CatMissingOptions}},
		{"three", record.Some([]string{"alpha", "bravo", "charlie"}), []diag.Category{diag.CatTooFewOptions}},
		{"seven", record.Some([]string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf"}), []diag.Category{diag.CatTooManyOptions}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := clean()
			rec.Options = tt.opts
			rec.CorrectAnswer = record.Opt[int]{}
			var got []diag.Category
			for _, is := range run(t, rec) {
				switch is.Category {
				case diag.CatMissingOptions, diag.CatTooFewOptions, diag.CatTooManyOptions:
					got = append(got, is.Category)
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestTooFewOptionsIndependentOfOtherFields(t *testing.T) {
	bare := record.Record{ID: "x", Options: record.Some([]string{"a"})}
	full := clean()
	full.Options = record.Some([]string{"one", "two"})
	for _, rec := range []record.Record{bare, full} {
		got := byCategory(run(t, rec), diag.CatTooFewOptions)
		if len(got) != 1 || got[0].Severity != diag.SevCritical {
			t.Fatalf("want exactly one CRITICAL too-few-options for %s, got %v", rec.ID, got)
		}
	}
}

func TestAnswerOutOfBounds(t *testing.T) {
	for _, ca := range []int{-1, 4, 9} {
		rec := clean()
		rec.CorrectAnswer = record.Some(ca)
		got := byCategory(run(t, rec), diag.CatAnswerOutOfBounds)
		if len(got) != 1 {
			t.Fatalf("ca=%d: want 1 issue, got %d", ca, len(got))
		}
		if got[0].Details["correctAnswer"] != ca || got[0].Details["optionCount"] != 4 {
			t.Fatalf("ca=%d: details %v", ca, got[0].Details)
		}
	}
	rec := clean()
	rec.CorrectAnswer = record.Some(3)
	if got := byCategory(run(t, rec), diag.CatAnswerOutOfBounds); len(got) != 0 {
		t.Fatalf("last index is in bounds")
	}
}

func TestMissingCorrectAnswerSkipsBounds(t *testing.T) {
	rec := clean()
	rec.CorrectAnswer = record.Opt[int]{}
	issues := run(t, rec)
	if len(byCategory(issues, diag.CatMissingCorrectAnswer)) != 1 {
		t.Fatalf("missing-correct-answer expected")
	}
	if len(byCategory(issues, diag.CatAnswerOutOfBounds)) != 0 {
		t.Fatalf("bounds must not fire without an answer")
	}
}

func TestQuestionLength(t *testing.T) {
	tests := []struct {
		question record.Opt[string]
		want     diag.Category
		sev      diag.Severity
		length   int
	}{
		{record.Opt[string]{}, diag.CatMissingQuestionText, diag.SevCritical, -1},
		{record.Some(""), diag.CatMissingQuestionText, diag.SevCritical, -1},
		{record.Some("0123456789"), diag.CatQuestionTooShort, diag.SevCritical, 10},
		{record.Some("   short one?   "), diag.CatQuestionTooShort, diag.SevCritical, 10},
		{record.Some("What is a finance lease?"), diag.CatQuestionShort, diag.SevHigh, 24},
	}
	for _, tt := range tests {
		rec := clean()
		rec.Question = tt.question
		got := byCategory(run(t, rec), tt.want)
		if len(got) != 1 || got[0].Severity != tt.sev {
			t.Fatalf("%q: want one %s %s, got %v", tt.question.V, tt.sev, tt.want, got)
		}
		if tt.length >= 0 && got[0].Details["length"] != tt.length {
			t.Fatalf("%q: length %v", tt.question.V, got[0].Details["length"])
		}
	}
}

func TestExplanation(t *testing.T) {
	rec := clean()
	rec.Explanation = record.Opt[string]{}
	if len(byCategory(run(t, rec), diag.CatMissingExplanation)) != 1 {
		t.Fatalf("missing-explanation expected")
	}
	rec.Explanation = record.Some("  Too brief.  ")
	got := byCategory(run(t, rec), diag.CatExplanationTooShort)
	if len(got) != 1 || got[0].Details["length"] != 10 {
		t.Fatalf("explanation-too-short expected with length 10, got %v", got)
	}
}

func TestOptionText(t *testing.T) {
	rec := clean()
	rec.Options = record.Some([]string{"  ", "B", "7", "A real option"})
	issues := run(t, rec)
	empty := byCategory(issues, diag.CatEmptyOption)
	single := byCategory(issues, diag.CatSingleCharOption)
	if len(empty) != 1 || empty[0].Details["optionIndex"] != 0 {
		t.Fatalf("empty-option: %v", empty)
	}
	if len(single) != 1 || single[0].Details["optionIndex"] != 1 {
		t.Fatalf("single-char-option must skip digits: %v", single)
	}
}

func TestAOTAPosition(t *testing.T) {
	rec := clean()
	rec.Options = record.Some([]string{"All of the above", "Cash", "Accrual", "Modified cash"})
	got := byCategory(run(t, rec), diag.CatAOTANOTANotLast)
	if len(got) != 1 || got[0].Severity != diag.SevMedium || got[0].Details["optionIndex"] != 0 {
		t.Fatalf("aota-nota-not-last: %v", got)
	}

	rec.Options = record.Some([]string{"Cash", "Accrual", "Modified cash", "None of the above"})
	if got := byCategory(run(t, rec), diag.CatAOTANOTANotLast); len(got) != 0 {
		t.Fatalf("last position is fine: %v", got)
	}

	rec.Options = record.Some([]string{"All of the above", "Cash", "Accrual", "Modified cash"})
	rec.CorrectAnswer = record.Opt[int]{}
	if got := byCategory(run(t, rec), diag.CatAOTANOTANotLast); len(got) != 0 {
		t.Fatalf("unanswerable records are not checked: %v", got)
	}
}

func TestStandoutLength(t *testing.T) {
	rec := clean()
	rec.Options = record.Some([]string{
		"The lease transfers ownership of the underlying asset to the lessee by the end of the lease term",
		"Cash",
		"Equity",
		"Debt",
	})
	got := byCategory(run(t, rec), diag.CatStandoutLength)
	if len(got) != 1 {
		t.Fatalf("want standout issue, got %v", got)
	}
	if got[0].Details["correctLen"] != 96 || got[0].Details["avgOtherLen"] != 5 {
		t.Fatalf("details: %v", got[0].Details)
	}

	rec.CorrectAnswer = record.Some(1)
	if got := byCategory(run(t, rec), diag.CatStandoutLength); len(got) != 0 {
		t.Fatalf("short correct option is fine: %v", got)
	}
}

func TestMetadata(t *testing.T) {
	rec := clean()
	rec.Topic = record.Opt[string]{}
	rec.BlueprintArea = record.Some("")
	rec.Difficulty = record.Some("impossible")
	rec.SkillLevel = record.Some("Guessing")
	rec.Section = record.Some("XYZ")
	rec.CourseID = record.Some("ea")
	rec.ID = "FAR-1"

	want := []diag.Category{
		diag.CatMissingTopic,
		diag.CatInvalidDifficulty,
		diag.CatMissingBlueprint,
		diag.CatInvalidSkillLevel,
		diag.CatInvalidSection,
		diag.CatCourseIDMismatch,
		diag.CatUppercaseID,
	}
	if diff := cmp.Diff(want, categories(run(t, rec))); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestMissingMetadata(t *testing.T) {
	rec := clean()
	rec.Difficulty = record.Opt[string]{}
	rec.SkillLevel = record.Opt[string]{}
	rec.Section = record.Opt[string]{}
	rec.CourseID = record.Opt[string]{}

	got := map[diag.Category]diag.Severity{}
	for _, is := range run(t, rec) {
		got[is.Category] = is.Severity
	}
	want := map[diag.Category]diag.Severity{
		diag.CatMissingDifficulty: diag.SevHigh,
		diag.CatMissingSkillLevel: diag.SevMedium,
		diag.CatMissingSection:    diag.SevHigh,
		diag.CatMissingCourseID:   diag.SevMedium,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestCourseMismatchNeedsExpectedCourse(t *testing.T) {
	rec := clean()
	rec.CourseID = record.Some("ea")
	r := &diag.SliceReporter{}
	newTestEngine(t).CheckRecord(&rec, "", r)
	if got := byCategory(r.Issues, diag.CatCourseIDMismatch); len(got) != 0 {
		t.Fatalf("no expected course, no mismatch: %v", got)
	}
}

func TestStyleRules(t *testing.T) {
	rec := clean()
	rec.Options = record.Some([]string{
		"Transfer of ownership.",
		"Variable lease payments",
		"Short lease term.",
		"Lessor maintenance",
	})
	rec.Question = record.Some("The lessee should classify the arrangement as a finance lease when")
	issues := run(t, rec)

	punct := byCategory(issues, diag.CatOptionPunctuation)
	if len(punct) != 1 || punct[0].Details["periodCount"] != 2 {
		t.Fatalf("option punctuation: %v", punct)
	}
	qp := byCategory(issues, diag.CatQuestionNoPunctuation)
	if len(qp) != 1 || qp[0].Details["lastChar"] != "n" {
		t.Fatalf("question punctuation: %v", qp)
	}

	rec.Question = record.Some("Select the criterion that makes this a finance lease")
	if got := byCategory(run(t, rec), diag.CatQuestionNoPunctuation); len(got) != 0 {
		t.Fatalf("instruction stems are exempt: %v", got)
	}
	rec.Question = record.Some("The lessee records a right-of-use asset equal to ___")
	if got := byCategory(run(t, rec), diag.CatQuestionNoPunctuation); len(got) != 0 {
		t.Fatalf("fill-in-the-blank is exempt: %v", got)
	}
}

func TestVeryLong(t *testing.T) {
	rec := clean()
	rec.Question = record.Some(strings.Repeat("a", 801) + "?")
	rec.Explanation = record.Some(strings.Repeat("b", 1501))
	issues := run(t, rec)
	if got := byCategory(issues, diag.CatQuestionVeryLong); len(got) != 1 || got[0].Severity != diag.SevLow {
		t.Fatalf("question-very-long: %v", got)
	}
	if got := byCategory(issues, diag.CatExplanationVeryLong); len(got) != 1 || got[0].Details["length"] != 1501 {
		t.Fatalf("explanation-very-long: %v", got)
	}
}

func TestPlaceholders(t *testing.T) {
	rec := clean()
	rec.Question = record.Some("TODO: write a real question about leases here?")
	rec.Explanation = record.Some("Reference xxx is explained in Lorem Ipsum dolor.")
	issues := run(t, rec)
	if got := byCategory(issues, diag.CatPlaceholderText); len(got) != 1 || got[0].Details["marker"] != "todo" {
		t.Fatalf("placeholder-text: %v", got)
	}
	if got := byCategory(issues, diag.CatPlaceholderExplanation); len(got) != 1 || got[0].Details["marker"] != "lorem ipsum" {
		t.Fatalf("placeholder-explanation: %v", got)
	}

	rec = clean()
	rec.Explanation = record.Some("See paragraph xxx of the codification for the five criteria.")
	if got := byCategory(run(t, rec), diag.CatPlaceholderExplanation); len(got) != 0 {
		t.Fatalf("xxx only counts in questions: %v", got)
	}
}

func TestAIArtifacts(t *testing.T) {
	rec := clean()
	rec.Explanation = record.Some("The answer is B. Wait, let me recalculate: 100 x 5% = 5, so the answer is A.")
	got := byCategory(run(t, rec), diag.CatAIArtifact)
	if len(got) != 1 || got[0].Severity != diag.SevHigh {
		t.Fatalf("ai-artifact: %v", got)
	}
}

func TestLegacyFields(t *testing.T) {
	rec := clean()
	rec.LegacyAnswerKey = true
	rec.LegacyQuestionKey = true
	issues := run(t, rec)
	if len(byCategory(issues, diag.CatLegacyAnswer)) != 1 || len(byCategory(issues, diag.CatLegacyQuestion)) != 1 {
		t.Fatalf("legacy fields: %v", categories(issues))
	}
}

func TestMixedTrueFalse(t *testing.T) {
	rec := clean()
	rec.Options = record.Some([]string{"True", "false", "It depends on the lease", "Neither applies here"})
	got := byCategory(run(t, rec), diag.CatMixedTrueFalse)
	if len(got) != 1 || got[0].Severity != diag.SevLow {
		t.Fatalf("mixed-tf-mcq: %v", got)
	}

	rec.Options = record.Some([]string{"True", "False", "true", "FALSE"})
	if got := byCategory(run(t, rec), diag.CatMixedTrueFalse); len(got) != 0 {
		t.Fatalf("all true/false is not mixed: %v", got)
	}
}

func TestNearDuplicateOptions(t *testing.T) {
	rec := clean()
	rec.Options = record.Some([]string{"Cash, basis!", "cash basis", "Accrual basis", "Tax basis"})
	issues := run(t, rec)
	got := byCategory(issues, diag.CatNearDuplicateOptions)
	if len(got) != 1 || got[0].Details["optionI"] != 0 || got[0].Details["optionJ"] != 1 {
		t.Fatalf("near-duplicate-options: %v", got)
	}
	if len(byCategory(issues, diag.CatDuplicateOptions)) != 0 {
		t.Fatalf("punctuation differences are not exact duplicates")
	}
}

func TestVerySimilarOptions(t *testing.T) {
	rec := clean()
	rec.Options = record.Some([]string{
		"The lessee recognizes a right-of-use asset",
		"The lessee recognizes a right-of-use asset.s",
		"The lessor derecognizes the underlying asset",
		"Neither party records anything at commencement",
	})
	got := byCategory(run(t, rec), diag.CatVerySimilarOptions)
	if len(got) != 1 || got[0].Severity != diag.SevHigh {
		t.Fatalf("very-similar-options: %v", got)
	}
}

func TestRulesAreIndependent(t *testing.T) {
	rec := record.Record{ID: "Bare"}
	want := []diag.Category{
		diag.CatMissingCorrectAnswer,
		diag.CatMissingOptions,
		diag.CatMissingQuestionText,
		diag.CatMissingExplanation,
		diag.CatMissingTopic,
		diag.CatMissingDifficulty,
		diag.CatMissingBlueprint,
		diag.CatMissingSkillLevel,
		diag.CatMissingSection,
		diag.CatMissingCourseID,
		diag.CatUppercaseID,
	}
	if diff := cmp.Diff(want, categories(run(t, rec))); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestIssuesCarryLocation(t *testing.T) {
	rec := clean()
	rec.Topic = record.Opt[string]{}
	is := run(t, rec)[0]
	if is.File != rec.File || is.Line != 3 || is.Subject != rec.ID {
		t.Fatalf("location not carried: %+v", is)
	}
}
