package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/survey-flow/survey-backend/pkg/apihelpers/middlewares"
	"github.com/survey-flow/survey-backend/pkg/utils"
)

// AddQuestionBankManagementAPI registers the API-key protected endpoints to
// maintain the cached question banks without waiting for a visitor to
// activate a survey.
func (h *HttpEndpoints) AddQuestionBankManagementAPI(rg *gin.RouterGroup) {
	bankGroup := rg.Group("/question-banks")
	bankGroup.Use(mw.HasValidAPIKey(h.apiKeys))
	{
		bankGroup.GET("", h.listQuestionBanks)
		bankGroup.POST("/import", mw.RequirePayload(), h.importQuestionBank)
		bankGroup.DELETE("", h.deleteQuestionBank)
	}
}

func (h *HttpEndpoints) resolveInstanceID(c *gin.Context, instanceID string) (string, bool) {
	if instanceID == "" {
		instanceID = "default"
	}
	if !utils.ContainsString(h.allowedInstanceIDs, instanceID) {
		slog.Warn("instance not allowed", slog.String("instanceID", instanceID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "instance not allowed"})
		return "", false
	}
	return instanceID, true
}

func (h *HttpEndpoints) importQuestionBank(c *gin.Context) {
	if h.questionBankDBConn == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "question bank cache not configured"})
		return
	}

	var req struct {
		InstanceID string `json:"instanceID"`
		Path       string `json:"path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	instanceID, ok := h.resolveInstanceID(c, req.InstanceID)
	if !ok {
		return
	}

	if req.Path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	questions, err := h.loader.Load(c.Request.Context(), req.Path)
	if err != nil {
		slog.Error("error importing question bank", slog.String("instanceID", instanceID), slog.String("path", req.Path), slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load question bank"})
		return
	}
	if len(questions) < 1 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "question bank is empty"})
		return
	}

	if err := h.questionBankDBConn.SaveQuestionBank(instanceID, req.Path, questions); err != nil {
		slog.Error("error saving question bank", slog.String("instanceID", instanceID), slog.String("path", req.Path), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving question bank"})
		return
	}

	slog.Info("question bank imported", slog.String("instanceID", instanceID), slog.String("surveyKey", req.Path), slog.Int("questionCount", len(questions)))
	c.JSON(http.StatusOK, gin.H{
		"surveyKey":     req.Path,
		"questionCount": len(questions),
	})
}

func (h *HttpEndpoints) listQuestionBanks(c *gin.Context) {
	if h.questionBankDBConn == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "question bank cache not configured"})
		return
	}

	instanceID, ok := h.resolveInstanceID(c, c.Query("instanceID"))
	if !ok {
		return
	}

	keys, err := h.questionBankDBConn.GetSurveyKeys(instanceID)
	if err != nil {
		slog.Error("error listing question banks", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error listing question banks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"surveyKeys": keys})
}

func (h *HttpEndpoints) deleteQuestionBank(c *gin.Context) {
	if h.questionBankDBConn == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "question bank cache not configured"})
		return
	}

	instanceID, ok := h.resolveInstanceID(c, c.Query("instanceID"))
	if !ok {
		return
	}

	surveyKey := c.Query("surveyKey")
	if surveyKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "surveyKey is required"})
		return
	}

	count, err := h.questionBankDBConn.DeleteQuestionBank(instanceID, surveyKey)
	if err != nil {
		slog.Error("error deleting question bank", slog.String("instanceID", instanceID), slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting question bank"})
		return
	}
	if count < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "question bank deleted"})
}
