package extract

import (
	"go.uber.org/zap"

	"contentaudit/internal/record"
	"contentaudit/internal/source"
)

// Options configures Extract.
type Options struct {
	// Logger receives scanner problems at debug level. nil means discard.
	Logger *zap.Logger
	// Path overrides the file path stored in records; empty uses f.Path.
	Path string
}

// Extract returns one record per anchor in f, in source order.
// Record IDs are not required to be unique.
func Extract(f *source.File, opts Options) []record.Record {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	path := opts.Path
	if path == "" {
		path = f.Path
	}
	rep := &logReporter{log: logger, file: f}

	blocks := Blocks(f, rep)
	out := make([]record.Record, 0, len(blocks))
	for _, b := range blocks {
		rec := Build(b, Fields(f, b, rep))
		rec.File = path
		rec.Line = f.Position(b.IDPos).Line
		out = append(out, rec)
	}
	return out
}

// Build maps block fields onto a record. The first occurrence of each key wins;
// a key whose value has the wrong shape leaves the field absent.
func Build(b Block, fields []Field) record.Record {
	rec := record.Record{ID: b.ID, Offset: b.Start}
	seen := make(map[string]bool, len(fields))
	for i := range fields {
		fld := &fields[i]
		if seen[fld.Key] {
			continue
		}
		seen[fld.Key] = true

		if dst := stringField(&rec, fld.Key); dst != nil {
			if fld.Kind == ValueString {
				*dst = record.Some(fld.Str)
			}
			continue
		}
		switch fld.Key {
		case "options":
			if fld.Kind == ValueList {
				rec.Options = record.Some(fld.List)
			}
		case "correctAnswer":
			if fld.Kind == ValueInt {
				rec.CorrectAnswer = record.Some(fld.Int)
			}
		case "correctOptionId":
			rec.LegacyAnswerKey = true
		case "text":
			rec.LegacyQuestionKey = true
		}
	}
	// `text:` only counts as the legacy spelling when `question:` is missing.
	if rec.Question.Valid {
		rec.LegacyQuestionKey = false
	}
	return rec
}

func stringField(rec *record.Record, key string) *record.Opt[string] {
	switch key {
	case "courseId":
		return &rec.CourseID
	case "section":
		return &rec.Section
	case "blueprintArea":
		return &rec.BlueprintArea
	case "blueprintRef":
		return &rec.BlueprintRef
	case "topic":
		return &rec.Topic
	case "subtopic":
		return &rec.Subtopic
	case "difficulty":
		return &rec.Difficulty
	case "skillLevel":
		return &rec.SkillLevel
	case "question":
		return &rec.Question
	case "explanation":
		return &rec.Explanation
	case "reference":
		return &rec.Reference
	}
	return nil
}

// logReporter forwards scanner problems to zap.
type logReporter struct {
	log  *zap.Logger
	file *source.File
}

func (r *logReporter) Report(kind string, span source.Span, msg string) {
	if ce := r.log.Check(zap.DebugLevel, msg); ce != nil {
		pos := r.file.Position(span.Start)
		ce.Write(
			zap.String("kind", kind),
			zap.String("file", r.file.Path),
			zap.Uint32("line", pos.Line),
			zap.Uint32("col", pos.Col),
		)
	}
}
