// Package record defines the typed result of extracting one question block.
package record

// Record is one audited content entry. Every field except ID may be absent;
// absence is meaningful and drives the missing-field rules.
type Record struct {
	ID     string `json:"id"`
	File   string `json:"file"`   // source path, back-reference for reporting
	Offset uint32 `json:"offset"` // byte offset of the block start
	Line   uint32 `json:"line"`   // 1-based line of the id anchor

	CourseID      Opt[string] `json:"courseId,omitzero"`
	Section       Opt[string] `json:"section,omitzero"`
	BlueprintArea Opt[string] `json:"blueprintArea,omitzero"`
	BlueprintRef  Opt[string] `json:"blueprintRef,omitzero"`
	Topic         Opt[string] `json:"topic,omitzero"`
	Subtopic      Opt[string] `json:"subtopic,omitzero"`
	Difficulty    Opt[string] `json:"difficulty,omitzero"`
	SkillLevel    Opt[string] `json:"skillLevel,omitzero"`
	Question      Opt[string] `json:"question,omitzero"`
	Explanation   Opt[string] `json:"explanation,omitzero"`
	Reference     Opt[string] `json:"reference,omitzero"`

	Options       Opt[[]string] `json:"options,omitzero"`
	CorrectAnswer Opt[int]      `json:"correctAnswer,omitzero"`

	// Legacy keys seen in the block (correctOptionId, text).
	LegacyAnswerKey   bool `json:"legacyAnswerKey,omitempty"`
	LegacyQuestionKey bool `json:"legacyQuestionKey,omitempty"`
}

// OptionCount returns len(options), 0 when absent.
func (r *Record) OptionCount() int {
	return len(r.Options.V)
}

// HasOptions reports whether options are present and non-empty.
func (r *Record) HasOptions() bool {
	return r.Options.Valid && len(r.Options.V) > 0
}

// AnswerInBounds reports whether correctAnswer indexes an existing option.
func (r *Record) AnswerInBounds() bool {
	ca, ok := r.CorrectAnswer.Get()
	return ok && r.Options.Valid && ca >= 0 && ca < len(r.Options.V)
}
