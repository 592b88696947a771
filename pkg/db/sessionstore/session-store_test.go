package sessionstore

import (
	"encoding/json"
	"testing"

	"github.com/survey-flow/survey-backend/pkg/surveyflow"
	flowTypes "github.com/survey-flow/survey-backend/pkg/surveyflow/types"
)

func TestSessionSerialization(t *testing.T) {
	session, err := surveyflow.NewSession("sid-1", "default", "wellbeing", []flowTypes.QuestionRecord{
		{
			ContentID:        "q1",
			ContentType:      flowTypes.CONTENT_TYPE_QUESTION,
			OptionType:       flowTypes.OPTION_TYPE_RADIO,
			Order:            1,
			Options:          []string{"Yes", "No"},
			Mandatory:        true,
			CountsAsQuestion: true,
		},
		{
			ContentID:        "q2",
			ContentType:      flowTypes.CONTENT_TYPE_QUESTION,
			OptionType:       flowTypes.OPTION_TYPE_SLIDER,
			Order:            2,
			Options:          []string{"Low", "High"},
			CountsAsQuestion: true,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.RecordAnswer("q1", "Yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
		return
	}

	var restored surveyflow.Session
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Errorf("unexpected error: %v", err)
		return
	}

	if restored.ID != session.ID || restored.State != session.State || restored.CurrentIndex != session.CurrentIndex {
		t.Errorf("unexpected session: %+v", restored)
	}
	if restored.Answers["q1"] != "Yes" {
		t.Errorf("answers should survive the round trip: %v", restored.Answers)
	}
	if len(restored.Questions) != 2 || !restored.Questions[0].Mandatory {
		t.Errorf("questions should survive the round trip: %v", restored.Questions)
	}

	// the restored session must still be able to transition
	if err := restored.Next(); err != nil {
		t.Errorf("unexpected error: %v", err)
		return
	}
	if restored.CurrentIndex != 1 {
		t.Errorf("unexpected index: %d", restored.CurrentIndex)
	}
}
