package render

import (
	"strings"
	"testing"

	"github.com/survey-flow/survey-backend/pkg/surveyflow"
	flowTypes "github.com/survey-flow/survey-backend/pkg/surveyflow/types"
)

func renderTestQuestions() []flowTypes.QuestionRecord {
	return []flowTypes.QuestionRecord{
		{
			ContentID:        "q1",
			ContentType:      flowTypes.CONTENT_TYPE_QUESTION,
			OptionType:       flowTypes.OPTION_TYPE_RADIO,
			Section:          "About you",
			Icon:             "/icons/person.svg",
			Title:            "Getting started",
			Question:         "How old are you?",
			Options:          []string{"18-30", "31-50", "51+"},
			Mandatory:        true,
			CountsAsQuestion: true,
		},
		{
			ContentID:   "fact1",
			ContentType: flowTypes.CONTENT_TYPE_FACT,
			Title:       "Did you know?",
			Question:    "Most people sleep less than they should.",
		},
		{
			ContentID:        "q5a",
			ContentType:      flowTypes.CONTENT_TYPE_QUESTION,
			OptionType:       flowTypes.OPTION_TYPE_SLIDER,
			Question:         "How often do you exercise?",
			Options:          []string{"Never", "Weekly", "Daily"},
			CountsAsQuestion: true,
		},
		{
			ContentID:        "q5b",
			ContentType:      flowTypes.CONTENT_TYPE_QUESTION,
			OptionType:       flowTypes.OPTION_TYPE_SLIDER,
			Question:         "How often do you cook?",
			Options:          []string{"Never", "Weekly", "Daily"},
			CountsAsQuestion: true,
		},
	}
}

func TestBuildStepView(t *testing.T) {
	questions := renderTestQuestions()

	t.Run("radio question", func(t *testing.T) {
		view := BuildStepView(questions, 0, map[string]string{"q1": "31-50"})
		if view.Kind != STEP_KIND_RADIO {
			t.Errorf("unexpected kind: %s", view.Kind)
		}
		if view.Radio == nil || view.Radio.GroupName != "q1" {
			t.Errorf("unexpected radio view: %+v", view.Radio)
		}
		if view.Radio.Selected != "31-50" {
			t.Errorf("unexpected selection: %s", view.Radio.Selected)
		}
		if !view.IsFirstStep {
			t.Error("first step flag expected")
		}
	})

	t.Run("fact slide has no inputs", func(t *testing.T) {
		view := BuildStepView(questions, 1, map[string]string{})
		if view.Kind != STEP_KIND_FACT {
			t.Errorf("unexpected kind: %s", view.Kind)
		}
		if view.Radio != nil || len(view.Sliders) != 0 {
			t.Error("fact slides must not carry inputs")
		}
	})

	t.Run("slider group", func(t *testing.T) {
		view := BuildStepView(questions, 2, map[string]string{"q5b": "Daily"})
		if view.Kind != STEP_KIND_SLIDERS {
			t.Errorf("unexpected kind: %s", view.Kind)
		}
		if len(view.Sliders) != 2 {
			t.Errorf("unexpected slider count: %d", len(view.Sliders))
		}
		// shared question text is suppressed, the captions carry it
		if view.Question != "" {
			t.Errorf("question should be suppressed for slider groups: %s", view.Question)
		}
		if view.Sliders[0].SelectedIndex != 0 || view.Sliders[0].Readout != "Never" {
			t.Errorf("unexpected default slider state: %+v", view.Sliders[0])
		}
		if view.Sliders[1].SelectedIndex != 2 || view.Sliders[1].Readout != "Daily" {
			t.Errorf("unexpected slider state: %+v", view.Sliders[1])
		}
		if !view.IsLastStep {
			t.Error("last step flag expected")
		}
	})

	t.Run("progress excludes facts", func(t *testing.T) {
		view := BuildStepView(questions, 1, map[string]string{})
		if view.Progress.Completed != 1 || view.Progress.Total != 3 {
			t.Errorf("unexpected progress: %+v", view.Progress)
		}
	})

	t.Run("does not mutate answers", func(t *testing.T) {
		answers := map[string]string{}
		BuildStepView(questions, 2, answers)
		if len(answers) != 0 {
			t.Errorf("answers mutated: %v", answers)
		}
	})
}

func TestBuildSessionView(t *testing.T) {
	session, err := surveyflow.NewSession("sid", "default", "wellbeing", renderTestQuestions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("showing state", func(t *testing.T) {
		view := BuildSessionView(session)
		if view.Kind != STEP_KIND_RADIO {
			t.Errorf("unexpected kind: %s", view.Kind)
		}
	})

	t.Run("complete state", func(t *testing.T) {
		session.State = surveyflow.SESSION_STATE_COMPLETE
		view := BuildSessionView(session)
		if view.Kind != STEP_KIND_COMPLETE {
			t.Errorf("unexpected kind: %s", view.Kind)
		}
		if view.Progress.Percent != 100 {
			t.Errorf("unexpected percent: %f", view.Progress.Percent)
		}
	})
}

func TestRenderStep(t *testing.T) {
	questions := renderTestQuestions()

	t.Run("radio markup", func(t *testing.T) {
		html, err := RenderStep(BuildStepView(questions, 0, map[string]string{}))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		for _, hook := range []string{
			`class="survey-form"`,
			`class="progress"`,
			`class="progress-fill"`,
			`class="progress-counter"`,
			`class="section-title"`,
			`class="question-icon"`,
			`class="options"`,
			`class="option"`,
			`class="btn-back"`,
			`class="btn-next"`,
			`name="q1"`,
		} {
			if !strings.Contains(html, hook) {
				t.Errorf("markup missing %s", hook)
			}
		}
	})

	t.Run("slider markup", func(t *testing.T) {
		html, err := RenderStep(BuildStepView(questions, 2, map[string]string{}))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		for _, hook := range []string{
			`class="slider-container"`,
			`class="slider"`,
			`class="slider-value"`,
			`max="2"`,
		} {
			if !strings.Contains(html, hook) {
				t.Errorf("markup missing %s", hook)
			}
		}
		if strings.Count(html, `class="slider-container"`) != 2 {
			t.Error("one slider per group member expected")
		}
	})
}

func TestRenderShell(t *testing.T) {
	t.Run("all regions", func(t *testing.T) {
		html, err := RenderShell(ShellView{
			LogoURL:         "/logo.png",
			BackgroundImage: "/bg.jpg",
			Intro:           "<p>Welcome</p>",
			Footer:          "<p>Imprint</p>",
			TriggerHref:     "wellbeing-survey",
			TriggerLabel:    "Get Started",
		})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		for _, hook := range []string{
			`class="survey-area"`,
			`class="logo"`,
			`class="footer-content"`,
			`background-image`,
			`data-initialized="true"`,
			`Get Started`,
		} {
			if !strings.Contains(html, hook) {
				t.Errorf("markup missing %s", hook)
			}
		}
	})

	t.Run("absent regions tolerated", func(t *testing.T) {
		html, err := RenderShell(ShellView{})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if strings.Contains(html, `class="logo"`) || strings.Contains(html, `class="footer-content"`) {
			t.Error("absent regions must not be rendered")
		}
		if strings.Contains(html, "background-image") {
			t.Error("background style only rendered when an image is present")
		}
	})
}
