package render

import (
	"github.com/survey-flow/survey-backend/pkg/surveyflow"
	flowTypes "github.com/survey-flow/survey-backend/pkg/surveyflow/types"
)

const (
	STEP_KIND_FACT     = "fact"
	STEP_KIND_RADIO    = "radio"
	STEP_KIND_SLIDERS  = "sliders"
	STEP_KIND_PLAIN    = "plain"
	STEP_KIND_COMPLETE = "complete"
)

// StepView is the render-ready description of one survey step. Building it
// reads the session but never mutates it.
type StepView struct {
	Kind         string              `json:"kind"`
	SectionTitle string              `json:"sectionTitle,omitempty"`
	Icon         string              `json:"icon,omitempty"`
	Title        string              `json:"title,omitempty"`
	Question     string              `json:"question,omitempty"`
	Progress     surveyflow.Progress `json:"progress"`
	Radio        *RadioView          `json:"radio,omitempty"`
	Sliders      []SliderView        `json:"sliders,omitempty"`
	IsFirstStep  bool                `json:"isFirstStep"`
	IsLastStep   bool                `json:"isLastStep"`
}

// RadioView renders one input+label per option; the question's content id is
// the input group name.
type RadioView struct {
	GroupName string   `json:"groupName"`
	Options   []string `json:"options"`
	Selected  string   `json:"selected,omitempty"`
}

// SliderView is a single-handle range input over the option indices, with a
// label per discrete stop and a readout of the selected option's text.
type SliderView struct {
	ContentID     string   `json:"contentId"`
	Caption       string   `json:"caption,omitempty"`
	Options       []string `json:"options"`
	SelectedIndex int      `json:"selectedIndex"`
	Readout       string   `json:"readout"`
}

// BuildStepView describes the step at the given index. Multi-part slider
// groups are presented as one step with an independent slider per member;
// the shared question text is suppressed since each sub-slider carries its
// own caption. The answers map is read to restore selections, never written.
func BuildStepView(questions []flowTypes.QuestionRecord, index int, answers map[string]string) StepView {
	start, size := flowTypes.GroupAt(questions, index)
	q := questions[start]

	view := StepView{
		SectionTitle: q.Section,
		Icon:         q.Icon,
		Title:        q.Title,
		Progress:     surveyflow.ProgressAt(questions, index),
		IsFirstStep:  start == 0,
		IsLastStep:   start+size >= len(questions),
	}

	if q.ContentType == flowTypes.CONTENT_TYPE_FACT {
		view.Kind = STEP_KIND_FACT
		view.Question = q.Question
		return view
	}

	switch q.OptionType {
	case flowTypes.OPTION_TYPE_RADIO:
		view.Kind = STEP_KIND_RADIO
		view.Question = q.Question
		view.Radio = &RadioView{
			GroupName: q.ContentID,
			Options:   q.Options,
			Selected:  answers[q.ContentID],
		}
	case flowTypes.OPTION_TYPE_SLIDER:
		view.Kind = STEP_KIND_SLIDERS
		if size == 1 {
			view.Question = q.Question
		}
		for i := start; i < start+size; i++ {
			view.Sliders = append(view.Sliders, buildSliderView(questions[i], answers))
		}
	default:
		view.Kind = STEP_KIND_PLAIN
		view.Question = q.Question
	}

	return view
}

func buildSliderView(q flowTypes.QuestionRecord, answers map[string]string) SliderView {
	selected := 0
	if answer, ok := answers[q.ContentID]; ok {
		for i, opt := range q.Options {
			if opt == answer {
				selected = i
				break
			}
		}
	}

	readout := ""
	if len(q.Options) > 0 {
		readout = q.Options[selected]
	}

	return SliderView{
		ContentID:     q.ContentID,
		Caption:       q.Question,
		Options:       q.Options,
		SelectedIndex: selected,
		Readout:       readout,
	}
}

// BuildSessionView maps the session state onto a step view: a terminal view
// for completed sessions, the current step otherwise.
func BuildSessionView(session *surveyflow.Session) StepView {
	if session.State == surveyflow.SESSION_STATE_COMPLETE {
		total := surveyflow.ProgressAt(session.Questions, len(session.Questions)-1)
		return StepView{
			Kind:     STEP_KIND_COMPLETE,
			Progress: total,
		}
	}
	return BuildStepView(session.Questions, session.CurrentIndex, session.Answers)
}
