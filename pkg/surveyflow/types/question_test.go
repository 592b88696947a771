package types

import (
	"encoding/json"
	"testing"
)

func TestQuestionRecordNormalization(t *testing.T) {
	t.Run("comma joined options", func(t *testing.T) {
		var q QuestionRecord
		err := json.Unmarshal([]byte(`{"ContentId":"q1","Options":"A, B, C"}`), &q)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if len(q.Options) != 3 || q.Options[0] != "A" || q.Options[1] != "B" || q.Options[2] != "C" {
			t.Errorf("unexpected options: %v", q.Options)
		}
	})

	t.Run("options as list", func(t *testing.T) {
		var q QuestionRecord
		err := json.Unmarshal([]byte(`{"ContentId":"q1","Options":["A","B"]}`), &q)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if len(q.Options) != 2 {
			t.Errorf("unexpected options: %v", q.Options)
		}
	})

	t.Run("missing options", func(t *testing.T) {
		var q QuestionRecord
		err := json.Unmarshal([]byte(`{"ContentId":"q1"}`), &q)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if q.Options != nil {
			t.Errorf("unexpected options: %v", q.Options)
		}
	})

	t.Run("string typed flags", func(t *testing.T) {
		var q QuestionRecord
		err := json.Unmarshal([]byte(`{"ContentId":"q1","Mandatory":"TRUE","CountsAsQuestion":"FALSE"}`), &q)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if !q.Mandatory {
			t.Error("mandatory should be true")
		}
		if q.CountsAsQuestion {
			t.Error("countsAsQuestion should be false")
		}
	})

	t.Run("native bool flags", func(t *testing.T) {
		var q QuestionRecord
		err := json.Unmarshal([]byte(`{"ContentId":"q1","Mandatory":true}`), &q)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if !q.Mandatory {
			t.Error("mandatory should be true")
		}
	})

	t.Run("order as string", func(t *testing.T) {
		var q QuestionRecord
		err := json.Unmarshal([]byte(`{"ContentId":"q1","Order":"12"}`), &q)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if q.Order != 12 {
			t.Errorf("unexpected order: %d", q.Order)
		}
	})

	t.Run("unparsable order", func(t *testing.T) {
		var q QuestionRecord
		err := json.Unmarshal([]byte(`{"ContentId":"q1","Order":"abc"}`), &q)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if q.Order != 0 {
			t.Errorf("unexpected order: %d", q.Order)
		}
	})

	t.Run("marshal unmarshal round trip", func(t *testing.T) {
		orig := QuestionRecord{
			ContentID:        "q2",
			ContentType:      CONTENT_TYPE_QUESTION,
			OptionType:       OPTION_TYPE_RADIO,
			Order:            3,
			Options:          []string{"Yes", "No"},
			Mandatory:        true,
			CountsAsQuestion: true,
		}
		data, err := json.Marshal(orig)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		var decoded QuestionRecord
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if decoded.ContentID != orig.ContentID || decoded.Order != orig.Order || !decoded.Mandatory {
			t.Errorf("unexpected record: %v", decoded)
		}
	})
}

func TestSortQuestions(t *testing.T) {
	t.Run("ascending by order", func(t *testing.T) {
		questions := []QuestionRecord{
			{ContentID: "b", Order: 2},
			{ContentID: "a", Order: 1},
			{ContentID: "c", Order: 3},
		}
		SortQuestions(questions)
		if questions[0].ContentID != "a" || questions[1].ContentID != "b" || questions[2].ContentID != "c" {
			t.Errorf("unexpected order: %v", questions)
		}
	})

	t.Run("stable on ties", func(t *testing.T) {
		questions := []QuestionRecord{
			{ContentID: "first", Order: 1},
			{ContentID: "second", Order: 1},
			{ContentID: "third", Order: 1},
		}
		SortQuestions(questions)
		if questions[0].ContentID != "first" || questions[2].ContentID != "third" {
			t.Errorf("unexpected order: %v", questions)
		}
	})
}

func TestGrouping(t *testing.T) {
	questions := []QuestionRecord{
		{ContentID: "q5a"},
		{ContentID: "q5b"},
		{ContentID: "q5c"},
		{ContentID: "q6"},
	}

	t.Run("base id stripping", func(t *testing.T) {
		if BaseContentID("q5a") != "q5" {
			t.Errorf("unexpected base id: %s", BaseContentID("q5a"))
		}
		if BaseContentID("q6") != "q6" {
			t.Errorf("unexpected base id: %s", BaseContentID("q6"))
		}
	})

	t.Run("group of three", func(t *testing.T) {
		start, size := GroupAt(questions, 0)
		if start != 0 || size != 3 {
			t.Errorf("unexpected group: start=%d size=%d", start, size)
		}
	})

	t.Run("group scan from middle member", func(t *testing.T) {
		start, size := GroupAt(questions, 1)
		if start != 0 || size != 3 {
			t.Errorf("unexpected group: start=%d size=%d", start, size)
		}
	})

	t.Run("group of one", func(t *testing.T) {
		start, size := GroupAt(questions, 3)
		if start != 3 || size != 1 {
			t.Errorf("unexpected group: start=%d size=%d", start, size)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		_, size := GroupAt(questions, 7)
		if size != 0 {
			t.Errorf("unexpected group size: %d", size)
		}
	})
}
