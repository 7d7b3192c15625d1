package diag

// Category is the fixed tag of an issue kind. The string form is stable and
// appears verbatim in JSON output.
type Category string

// Structural completeness.
const (
	CatMissingCorrectAnswer Category = "missing-correct-answer"
	CatMissingOptions       Category = "missing-options"
	CatTooFewOptions        Category = "too-few-options"
	CatTooManyOptions       Category = "too-many-options"
	CatAnswerOutOfBounds    Category = "answer-out-of-bounds"
	CatMissingQuestionText  Category = "missing-question-text"
	CatQuestionTooShort     Category = "question-too-short"
	CatQuestionShort        Category = "question-short"
	CatEmptyOption          Category = "empty-option"
	CatSingleCharOption     Category = "single-char-option"
)

// Intra-record duplication.
const (
	CatDuplicateOptions     Category = "duplicate-options"
	CatNearDuplicateOptions Category = "near-duplicate-options"
	CatVerySimilarOptions   Category = "very-similar-options"
)

// Content quality.
const (
	CatMissingExplanation    Category = "missing-explanation"
	CatExplanationTooShort   Category = "explanation-too-short"
	CatAOTANOTANotLast       Category = "aota-nota-not-last"
	CatStandoutLength        Category = "correct-answer-standout-length"
	CatPlaceholderText       Category = "placeholder-text"
	CatPlaceholderExplanation Category = "placeholder-explanation"
	CatAIArtifact            Category = "ai-artifact"
)

// Metadata.
const (
	CatMissingDifficulty Category = "missing-difficulty"
	CatInvalidDifficulty Category = "invalid-difficulty"
	CatMissingSkillLevel Category = "missing-skilllevel"
	CatInvalidSkillLevel Category = "invalid-skilllevel"
	CatCourseIDMismatch  Category = "courseid-mismatch"
	CatMissingCourseID   Category = "missing-courseid"
	CatMissingBlueprint  Category = "missing-blueprint"
	CatMissingTopic      Category = "missing-topic"
	CatMissingSection    Category = "missing-section"
	CatInvalidSection    Category = "invalid-section"
	CatUppercaseID       Category = "uppercase-id"
	CatLegacyAnswer      Category = "legacy-answer-field"
	CatLegacyQuestion    Category = "legacy-question-field"
)

// Style and cosmetics.
const (
	CatOptionPunctuation     Category = "inconsistent-option-punctuation"
	CatQuestionNoPunctuation Category = "question-no-punctuation"
	CatQuestionVeryLong      Category = "question-very-long"
	CatExplanationVeryLong   Category = "explanation-very-long"
	CatMixedTrueFalse        Category = "mixed-tf-mcq"
)

// File-level and corpus-wide.
const (
	CatAnswerPatternBias     Category = "answer-pattern-bias"
	CatDuplicateID           Category = "duplicate-id"
	CatDuplicateQuestionText Category = "duplicate-question-text"
	CatNearDuplicateQuestion Category = "near-duplicate-question-text"
)
