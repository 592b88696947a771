package types

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

const (
	CONTENT_TYPE_QUESTION = "question"
	CONTENT_TYPE_FACT     = "fact"

	OPTION_TYPE_RADIO  = "radio"
	OPTION_TYPE_SLIDER = "slider"
	OPTION_TYPE_NONE   = "none"
)

// QuestionRecord is one unit of survey content (a question or an
// informational fact) as delivered by the question bank. The upstream
// source encodes booleans as "TRUE"/"FALSE" strings and option lists as
// comma-joined strings; both are normalized while decoding so downstream
// logic never deals with string-typed flags.
type QuestionRecord struct {
	ContentID        string   `bson:"contentId" json:"ContentId"`
	ContentType      string   `bson:"contentType" json:"ContentType"`
	OptionType       string   `bson:"optionType" json:"OptionType"`
	Order            int      `bson:"order" json:"Order"`
	Section          string   `bson:"section" json:"Section"`
	Icon             string   `bson:"icon" json:"Icon"`
	Title            string   `bson:"title" json:"Title"`
	Question         string   `bson:"question" json:"Question"`
	Options          []string `bson:"options,omitempty" json:"Options,omitempty"`
	Mandatory        bool     `bson:"mandatory" json:"Mandatory"`
	CountsAsQuestion bool     `bson:"countsAsQuestion" json:"CountsAsQuestion"`
}

type questionRecordAlias struct {
	ContentID        string          `json:"ContentId"`
	ContentType      string          `json:"ContentType"`
	OptionType       string          `json:"OptionType"`
	Order            json.RawMessage `json:"Order"`
	Section          string          `json:"Section"`
	Icon             string          `json:"Icon"`
	Title            string          `json:"Title"`
	Question         string          `json:"Question"`
	Options          json.RawMessage `json:"Options"`
	Mandatory        json.RawMessage `json:"Mandatory"`
	CountsAsQuestion json.RawMessage `json:"CountsAsQuestion"`
}

func (q *QuestionRecord) UnmarshalJSON(data []byte) error {
	var aux questionRecordAlias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	q.ContentID = aux.ContentID
	q.ContentType = aux.ContentType
	q.OptionType = aux.OptionType
	q.Section = aux.Section
	q.Icon = aux.Icon
	q.Title = aux.Title
	q.Question = aux.Question
	q.Order = parseFlexibleInt(aux.Order)
	q.Options = parseFlexibleOptions(aux.Options)
	q.Mandatory = parseFlexibleBool(aux.Mandatory)
	q.CountsAsQuestion = parseFlexibleBool(aux.CountsAsQuestion)
	return nil
}

// parseFlexibleInt accepts numbers and numeric strings. Unparsable values
// end up as 0, the stable sort keeps their relative order.
func parseFlexibleInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0
		}
		return v
	}
	return 0
}

func parseFlexibleBool(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.EqualFold(strings.TrimSpace(s), "true")
	}
	return false
}

// parseFlexibleOptions accepts a list of strings or a single comma-joined
// string, which is split and trimmed.
func parseFlexibleOptions(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		if strings.TrimSpace(joined) == "" {
			return nil
		}
		parts := strings.Split(joined, ",")
		options := make([]string, len(parts))
		for i, p := range parts {
			options[i] = strings.TrimSpace(p)
		}
		return options
	}
	return nil
}

// SortQuestions orders the list ascending by Order. The sort is stable, so
// records with equal (or unparsable) Order keep their relative position.
func SortQuestions(questions []QuestionRecord) {
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})
}
