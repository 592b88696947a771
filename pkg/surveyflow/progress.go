package surveyflow

import (
	flowTypes "github.com/survey-flow/survey-backend/pkg/surveyflow/types"
)

// Progress describes how far a visitor has come: completed counts the
// countable questions up to and including the given index, total counts all
// countable questions of the list.
type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

// ProgressAt computes the progress after showing the question at index.
// Fact slides and other records not flagged as countable are excluded from
// the math. A list without any countable question reports 0 percent.
func ProgressAt(questions []flowTypes.QuestionRecord, index int) Progress {
	completed := 0
	total := 0
	for i, q := range questions {
		if !q.CountsAsQuestion {
			continue
		}
		total++
		if i <= index {
			completed++
		}
	}

	percent := 0.0
	if total > 0 {
		percent = float64(completed) / float64(total) * 100
	}

	return Progress{
		Completed: completed,
		Total:     total,
		Percent:   percent,
	}
}

// Progress reports the session's progress at its current position.
func (s *Session) Progress() Progress {
	return ProgressAt(s.Questions, s.CurrentIndex)
}
