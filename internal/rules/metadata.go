package rules

import (
	"contentaudit/internal/diag"
	"contentaudit/internal/textnorm"
)

func checkMetadata(c *recordCtx) {
	rec := c.rec
	if !present(rec.Topic) {
		c.medium(diag.CatMissingTopic, "Missing topic field").Emit()
	}

	if !present(rec.Difficulty) {
		c.high(diag.CatMissingDifficulty, "Missing difficulty field").Emit()
	} else if _, ok := c.difficulties[rec.Difficulty.V]; !ok {
		c.high(diag.CatInvalidDifficulty, "Invalid difficulty: %q", rec.Difficulty.V).
			With("value", rec.Difficulty.V).
			Emit()
	}

	if !present(rec.BlueprintArea) {
		c.medium(diag.CatMissingBlueprint, "Missing blueprintArea field").Emit()
	}

	if !present(rec.SkillLevel) {
		c.medium(diag.CatMissingSkillLevel, "Missing skillLevel field").Emit()
	} else if _, ok := c.skillLevels[rec.SkillLevel.V]; !ok {
		c.high(diag.CatInvalidSkillLevel, "Invalid skillLevel: %q", rec.SkillLevel.V).
			With("value", rec.SkillLevel.V).
			Emit()
	}
}

func checkSection(c *recordCtx) {
	if !present(c.rec.Section) {
		c.high(diag.CatMissingSection, "Missing section field").Emit()
		return
	}
	allowed, ok := c.sections[c.course]
	if !ok {
		return
	}
	if _, valid := allowed[c.rec.Section.V]; !valid {
		c.high(diag.CatInvalidSection, "Invalid section %q for course %s", c.rec.Section.V, c.course).
			With("value", c.rec.Section.V).
			With("course", c.course).
			Emit()
	}
}

func checkCourse(c *recordCtx) {
	if !present(c.rec.CourseID) {
		c.medium(diag.CatMissingCourseID, "Missing courseId field").Emit()
		return
	}
	if c.course != "" && c.rec.CourseID.V != c.course {
		c.high(diag.CatCourseIDMismatch, "courseId %q doesn't match expected %q", c.rec.CourseID.V, c.course).
			With("expected", c.course).
			With("actual", c.rec.CourseID.V).
			Emit()
	}
}

func checkIdentifier(c *recordCtx) {
	if !textnorm.IsLower(c.rec.ID) {
		c.medium(diag.CatUppercaseID, "ID %q should be lowercase", c.rec.ID).Emit()
	}
}

func checkLegacyFields(c *recordCtx) {
	if c.rec.LegacyAnswerKey {
		c.critical(diag.CatLegacyAnswer, "Uses legacy correctOptionId instead of correctAnswer").Emit()
	}
	if c.rec.LegacyQuestionKey {
		c.critical(diag.CatLegacyQuestion, "Uses legacy text field instead of question").Emit()
	}
}
