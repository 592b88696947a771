package surveyflow

import (
	"errors"
	"time"

	flowTypes "github.com/survey-flow/survey-backend/pkg/surveyflow/types"
)

const (
	SESSION_STATE_IDLE     = "idle"
	SESSION_STATE_SHOWING  = "showing"
	SESSION_STATE_COMPLETE = "complete"
)

var (
	ErrNotShowing       = errors.New("session is not showing a question")
	ErrSessionComplete  = errors.New("session is already complete")
	ErrSessionNotIdle   = errors.New("session is not idle")
	ErrNoQuestions      = errors.New("question list is empty")
	ErrUnknownContentID = errors.New("content id not part of the current group")
)

// ValidationError blocks the next transition when mandatory questions of the
// current group have no recorded answer. The session state stays unchanged.
type ValidationError struct {
	MissingIDs []string
	GroupSize  int
}

func (e *ValidationError) Error() string {
	if e.GroupSize > 1 {
		return "please answer all required questions before continuing"
	}
	return "please answer the required question before continuing"
}

// Session holds the transient state of one survey walk-through: the question
// list, the current position and the collected answers. Transitions mutate
// the session value, persistence is up to the caller.
type Session struct {
	ID           string                     `json:"id"`
	InstanceID   string                     `json:"instanceId"`
	SurveyKey    string                     `json:"surveyKey"`
	State        string                     `json:"state"`
	CurrentIndex int                        `json:"currentIndex"`
	Questions    []flowTypes.QuestionRecord `json:"questions"`
	Answers      map[string]string          `json:"answers"`
	StartedAt    int64                      `json:"startedAt"`
	LastActivity int64                      `json:"lastActivity"`
}

// NewSession starts a session directly in the showing state. Creating a
// session implies a successful question load; the idle state is only
// reachable again by backing out of the first step.
func NewSession(id string, instanceID string, surveyKey string, questions []flowTypes.QuestionRecord) (*Session, error) {
	if len(questions) < 1 {
		return nil, ErrNoQuestions
	}
	now := time.Now().Unix()
	return &Session{
		ID:           id,
		InstanceID:   instanceID,
		SurveyKey:    surveyKey,
		State:        SESSION_STATE_SHOWING,
		CurrentIndex: 0,
		Questions:    questions,
		Answers:      map[string]string{},
		StartedAt:    now,
		LastActivity: now,
	}, nil
}

// Activate restarts an idle session at the first question with empty answers.
func (s *Session) Activate() error {
	if s.State != SESSION_STATE_IDLE {
		return ErrSessionNotIdle
	}
	if len(s.Questions) < 1 {
		return ErrNoQuestions
	}
	s.State = SESSION_STATE_SHOWING
	s.CurrentIndex = 0
	s.Answers = map[string]string{}
	s.touch()
	return nil
}

// CurrentGroup returns the extent of the related-question group the session
// is currently showing.
func (s *Session) CurrentGroup() (start int, size int) {
	return flowTypes.GroupAt(s.Questions, s.CurrentIndex)
}

// RecordAnswer stores the selected value for a question of the current group.
func (s *Session) RecordAnswer(contentID string, value string) error {
	if s.State != SESSION_STATE_SHOWING {
		return ErrNotShowing
	}
	start, size := s.CurrentGroup()
	for i := start; i < start+size; i++ {
		if s.Questions[i].ContentID == contentID {
			s.Answers[contentID] = value
			s.touch()
			return nil
		}
	}
	return ErrUnknownContentID
}

// ApplySliderDefaults records the option at the initial slider position
// (index 0) for every slider question of the current group that has no
// answer yet, so a default answer exists even without interaction.
func (s *Session) ApplySliderDefaults() {
	if s.State != SESSION_STATE_SHOWING {
		return
	}
	start, size := s.CurrentGroup()
	for i := start; i < start+size; i++ {
		q := s.Questions[i]
		if q.OptionType != flowTypes.OPTION_TYPE_SLIDER || len(q.Options) < 1 {
			continue
		}
		if _, ok := s.Answers[q.ContentID]; !ok {
			s.Answers[q.ContentID] = q.Options[0]
		}
	}
}

// Next validates the current group and advances past it. Mandatory questions
// without an answer block the transition with a ValidationError. Advancing
// past the last question completes the session.
func (s *Session) Next() error {
	if s.State == SESSION_STATE_COMPLETE {
		return ErrSessionComplete
	}
	if s.State != SESSION_STATE_SHOWING {
		return ErrNotShowing
	}

	start, size := s.CurrentGroup()
	missing := []string{}
	for i := start; i < start+size; i++ {
		q := s.Questions[i]
		if !q.Mandatory || q.ContentType != flowTypes.CONTENT_TYPE_QUESTION {
			continue
		}
		if answer, ok := s.Answers[q.ContentID]; !ok || answer == "" {
			missing = append(missing, q.ContentID)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{
			MissingIDs: missing,
			GroupSize:  size,
		}
	}

	next := start + size
	if next >= len(s.Questions) {
		s.State = SESSION_STATE_COMPLETE
	} else {
		s.CurrentIndex = next
	}
	s.touch()
	return nil
}

// Back retreats to the start of the group immediately preceding the current
// one. Backing out of the first question resets the session to idle and
// discards the collected answers.
func (s *Session) Back() error {
	if s.State != SESSION_STATE_SHOWING {
		return ErrNotShowing
	}

	if s.CurrentIndex == 0 {
		s.State = SESSION_STATE_IDLE
		s.Answers = map[string]string{}
		s.touch()
		return nil
	}

	prevStart, _ := flowTypes.GroupAt(s.Questions, s.CurrentIndex-1)
	s.CurrentIndex = prevStart
	s.touch()
	return nil
}

func (s *Session) touch() {
	s.LastActivity = time.Now().Unix()
}
