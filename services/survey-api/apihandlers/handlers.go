package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	qbDB "github.com/survey-flow/survey-backend/pkg/db/questionbank"
	"github.com/survey-flow/survey-backend/pkg/db/sessionstore"
	"github.com/survey-flow/survey-backend/pkg/notify"
	"github.com/survey-flow/survey-backend/pkg/questionbank"
	"github.com/survey-flow/survey-backend/pkg/surveyflow/render"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	tokenSignKey       string
	tokenExpiresIn     time.Duration
	loader             *questionbank.Loader
	sessionStore       sessionstore.SessionStore
	questionBankDBConn *qbDB.QuestionBankDBService
	notifier           *notify.CompletionNotifier
	allowedInstanceIDs []string
	apiKeys            []string
	shellView          render.ShellView
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	loader *questionbank.Loader,
	sessionStore sessionstore.SessionStore,
	questionBankDBConn *qbDB.QuestionBankDBService,
	notifier *notify.CompletionNotifier,
	allowedInstanceIDs []string,
	apiKeys []string,
	shellView render.ShellView,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:       tokenSignKey,
		tokenExpiresIn:     tokenExpiresIn,
		loader:             loader,
		sessionStore:       sessionStore,
		questionBankDBConn: questionBankDBConn,
		notifier:           notifier,
		allowedInstanceIDs: allowedInstanceIDs,
		apiKeys:            apiKeys,
		shellView:          shellView,
	}
}
