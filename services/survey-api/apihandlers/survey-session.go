package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mw "github.com/survey-flow/survey-backend/pkg/apihelpers/middlewares"
	"github.com/survey-flow/survey-backend/pkg/db/sessionstore"
	jwthandling "github.com/survey-flow/survey-backend/pkg/jwt-handling"
	"github.com/survey-flow/survey-backend/pkg/surveyflow"
	"github.com/survey-flow/survey-backend/pkg/surveyflow/render"
	"github.com/survey-flow/survey-backend/pkg/utils"

	flowTypes "github.com/survey-flow/survey-backend/pkg/surveyflow/types"
)

func (h *HttpEndpoints) AddSurveyFlowAPI(rg *gin.RouterGroup) {
	surveyGroup := rg.Group("/survey")

	surveyGroup.GET("/shell", h.getSurveyShell)
	surveyGroup.POST("/activate", mw.RequirePayload(), h.activateSurvey)

	sessionGroup := surveyGroup.Group("/session")
	sessionGroup.Use(mw.GetAndValidateSurveySessionToken(h.tokenSignKey))
	{
		sessionGroup.GET("/step", h.getCurrentStep)
		sessionGroup.POST("/answer", mw.RequirePayload(), h.recordAnswer)
		sessionGroup.POST("/next", h.nextStep)
		sessionGroup.POST("/back", h.previousStep)
		sessionGroup.DELETE("", h.abandonSession)
	}
}

// getSurveyShell serves the block layout markup the survey is embedded in,
// rendered from the configured regions. Activation is a separate call, so
// the shell can be fetched and cached before any session exists.
func (h *HttpEndpoints) getSurveyShell(c *gin.Context) {
	html, err := render.RenderShell(h.shellView)
	if err != nil {
		slog.Error("error rendering survey shell", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error rendering survey shell"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": html})
}

func (h *HttpEndpoints) activateSurvey(c *gin.Context) {
	var req struct {
		InstanceID string `json:"instanceID"`
		Path       string `json:"path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.InstanceID == "" {
		req.InstanceID = "default"
	}
	if !utils.ContainsString(h.allowedInstanceIDs, req.InstanceID) {
		slog.Warn("instance not allowed", slog.String("instanceID", req.InstanceID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "instance not allowed"})
		return
	}

	if req.Path == "" {
		slog.Error("path is required", slog.String("instanceID", req.InstanceID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	questions, err := h.loadQuestions(c, req.InstanceID, req.Path)
	if err != nil {
		slog.Error("error loading survey questions", slog.String("instanceID", req.InstanceID), slog.String("path", req.Path), slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load survey questions, please try again"})
		return
	}

	session, err := surveyflow.NewSession(
		primitive.NewObjectID().Hex(),
		req.InstanceID,
		req.Path,
		questions,
	)
	if err != nil {
		slog.Error("error creating survey session", slog.String("instanceID", req.InstanceID), slog.String("path", req.Path), slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load survey questions, please try again"})
		return
	}

	if err := h.sessionStore.Save(c.Request.Context(), session); err != nil {
		slog.Error("error saving survey session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving survey session"})
		return
	}

	token, err := jwthandling.GenerateSurveySessionToken(
		h.tokenExpiresIn,
		session.ID,
		session.InstanceID,
		session.SurveyKey,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("error generating session token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error generating session token"})
		return
	}

	slog.Info("survey session activated", slog.String("instanceID", session.InstanceID), slog.String("surveyKey", session.SurveyKey), slog.String("sessionID", session.ID))

	c.JSON(http.StatusCreated, gin.H{
		"sessionToken": token,
		"session":      sessionStateResponse(session),
	})
}

// loadQuestions fetches the question bank from the remote endpoint and keeps
// the cached copy fresh; when the endpoint is unavailable the cached copy
// serves as fallback.
func (h *HttpEndpoints) loadQuestions(c *gin.Context, instanceID string, path string) ([]flowTypes.QuestionRecord, error) {
	questions, err := h.loader.Load(c.Request.Context(), path)
	if err == nil {
		if h.questionBankDBConn != nil {
			if dbErr := h.questionBankDBConn.SaveQuestionBank(instanceID, path, questions); dbErr != nil {
				slog.Error("error caching question bank", slog.String("instanceID", instanceID), slog.String("path", path), slog.String("error", dbErr.Error()))
			}
		}
		return questions, nil
	}

	if h.questionBankDBConn == nil {
		return nil, err
	}

	slog.Warn("falling back to cached question bank", slog.String("instanceID", instanceID), slog.String("path", path), slog.String("error", err.Error()))
	bank, dbErr := h.questionBankDBConn.GetQuestionBank(instanceID, path)
	if dbErr != nil {
		return nil, err
	}
	return bank.Questions, nil
}

func (h *HttpEndpoints) getSession(c *gin.Context) (*surveyflow.Session, bool) {
	token := c.MustGet("validatedToken").(*jwthandling.SurveySessionClaims)

	session, err := h.sessionStore.Get(c.Request.Context(), token.Subject)
	if err != nil {
		if errors.Is(err, sessionstore.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "survey session not found"})
			return nil, false
		}
		slog.Error("error fetching survey session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching survey session"})
		return nil, false
	}
	return session, true
}

func (h *HttpEndpoints) saveAndRespond(c *gin.Context, session *surveyflow.Session) {
	if err := h.sessionStore.Save(c.Request.Context(), session); err != nil {
		slog.Error("error saving survey session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving survey session"})
		return
	}
	c.JSON(http.StatusOK, sessionStateResponse(session))
}

func (h *HttpEndpoints) getCurrentStep(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionStateResponse(session))
}

func (h *HttpEndpoints) recordAnswer(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}

	var req struct {
		ContentID string `json:"contentId"`
		Value     string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.RecordAnswer(req.ContentID, req.Value); err != nil {
		switch {
		case errors.Is(err, surveyflow.ErrUnknownContentID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "content id not part of the current step"})
		default:
			c.JSON(http.StatusConflict, gin.H{"error": "session is not showing a question"})
		}
		return
	}

	h.saveAndRespond(c, session)
}

func (h *HttpEndpoints) nextStep(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}

	// untouched sliders get their initial position recorded as answer
	session.ApplySliderDefaults()

	if err := session.Next(); err != nil {
		var valErr *surveyflow.ValidationError
		if errors.As(err, &valErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": valErr.Error(), "missingIds": valErr.MissingIDs})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if session.State == surveyflow.SESSION_STATE_COMPLETE {
		slog.Info("survey session completed", slog.String("instanceID", session.InstanceID), slog.String("surveyKey", session.SurveyKey), slog.String("sessionID", session.ID))
		h.notifier.OnSessionCompleted(session)
	}

	h.saveAndRespond(c, session)
}

func (h *HttpEndpoints) previousStep(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}

	if err := session.Back(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if session.State == surveyflow.SESSION_STATE_IDLE {
		// backing out of the first question discards the session
		if err := h.sessionStore.Delete(c.Request.Context(), session.ID); err != nil {
			slog.Error("error deleting survey session", slog.String("error", err.Error()))
		}
		c.JSON(http.StatusOK, gin.H{"state": surveyflow.SESSION_STATE_IDLE})
		return
	}

	h.saveAndRespond(c, session)
}

func (h *HttpEndpoints) abandonSession(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.SurveySessionClaims)

	if err := h.sessionStore.Delete(c.Request.Context(), token.Subject); err != nil {
		slog.Error("error deleting survey session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting survey session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "survey session deleted"})
}
