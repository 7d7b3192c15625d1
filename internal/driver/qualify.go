package driver

import "bytes"

// Exclusion marks a file format that shares the question data tree but is not
// a multiple-choice question bank.
type Exclusion uint8

const (
	NotExcluded Exclusion = iota
	ExcludedNoAnswers
	ExcludedTBS
	ExcludedCaseStudy
	ExcludedWrittenCommunication
	ExcludedCBQ
)

func (e Exclusion) String() string {
	switch e {
	case NotExcluded:
		return "none"
	case ExcludedNoAnswers:
		return "no correctAnswer"
	case ExcludedTBS:
		return "task-based simulation"
	case ExcludedCaseStudy:
		return "case study"
	case ExcludedWrittenCommunication:
		return "written communication"
	case ExcludedCBQ:
		return "CBQ scenario"
	}
	return "unknown"
}

var (
	markCorrectAnswer = []byte("correctAnswer")
	markScenario      = []byte("scenario:")
	markRequirements  = []byte("requirements:")
	markTBS           = []byte("TBS")
	markCaseStudy     = []byte("CaseStudy")
	markCaseStudySnk  = []byte("case_study")
	markWCTask        = []byte("WCTask")
	markWrittenComm   = []byte("writtenCommunication")
	markCBQ           = []byte("CBQ")
)

// Qualify decides whether content is a question bank worth scanning.
// The checks are plain substring tests over the whole file.
func Qualify(content []byte) Exclusion {
	has := func(m []byte) bool { return bytes.Contains(content, m) }
	switch {
	case !has(markCorrectAnswer):
		return ExcludedNoAnswers
	case has(markTBS) && (has(markScenario) || has(markRequirements)):
		return ExcludedTBS
	case has(markCaseStudy) || has(markCaseStudySnk):
		return ExcludedCaseStudy
	case has(markWCTask) || has(markWrittenComm):
		return ExcludedWrittenCommunication
	case has(markCBQ) && has(markScenario):
		// "CBQScenario" contains "CBQ"
		return ExcludedCBQ
	}
	return NotExcluded
}
