package notify

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"time"

	"github.com/survey-flow/survey-backend/pkg/surveyflow"
)

type NotificationConfig struct {
	Enabled    bool           `json:"enabled" yaml:"enabled"`
	Recipients []string       `json:"recipients" yaml:"recipients"`
	Subject    string         `json:"subject" yaml:"subject"`
	SMTP       SmtpServerList `json:"smtp" yaml:"smtp"`
}

const completionEmailTemplateDef = `<h2>Survey completed</h2>
<p>A visitor finished the survey <strong>{{.SurveyKey}}</strong> on instance <strong>{{.InstanceID}}</strong>.</p>
<ul>
  <li>Session: {{.SessionID}}</li>
  <li>Answered questions: {{.AnswerCount}}</li>
  <li>Completed at: {{.CompletedAt}}</li>
</ul>
`

var completionEmailTemplate = template.Must(template.New("completion-email").Parse(completionEmailTemplateDef))

// CompletionNotifier informs the configured recipients when a survey session
// reaches the terminal state. Delivery failures are logged, never surfaced
// to the visitor.
type CompletionNotifier struct {
	config     NotificationConfig
	smtpClient *SmtpClients
}

func NewCompletionNotifier(config NotificationConfig) (*CompletionNotifier, error) {
	if !config.Enabled {
		return &CompletionNotifier{config: config}, nil
	}
	if len(config.Recipients) < 1 {
		return nil, errors.New("completion notification enabled but no recipients configured")
	}

	smtpClient, err := NewSmtpClients(config.SMTP)
	if err != nil {
		return nil, err
	}
	return &CompletionNotifier{
		config:     config,
		smtpClient: smtpClient,
	}, nil
}

func (n *CompletionNotifier) OnSessionCompleted(session *surveyflow.Session) {
	if n == nil || !n.config.Enabled || n.smtpClient == nil {
		return
	}

	var buf bytes.Buffer
	err := completionEmailTemplate.Execute(&buf, map[string]interface{}{
		"SurveyKey":   session.SurveyKey,
		"InstanceID":  session.InstanceID,
		"SessionID":   session.ID,
		"AnswerCount": len(session.Answers),
		"CompletedAt": time.Unix(session.LastActivity, 0).UTC().Format(time.RFC3339),
	})
	if err != nil {
		slog.Error("error rendering completion notification", slog.String("error", err.Error()))
		return
	}

	subject := n.config.Subject
	if subject == "" {
		subject = "Survey completed: " + session.SurveyKey
	}

	if err := n.smtpClient.SendMail(n.config.Recipients, subject, buf.String()); err != nil {
		slog.Error("error sending completion notification", slog.String("error", err.Error()), slog.String("surveyKey", session.SurveyKey))
	}
}
