package apihandlers

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/survey-flow/survey-backend/pkg/surveyflow/render"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := NewHTTPHandler(
		"test-sign-key",
		0,
		nil,
		nil,
		nil,
		nil,
		[]string{"default"},
		[]string{"test-api-key"},
		render.ShellView{
			LogoURL:      "/logo.svg",
			Intro:        template.HTML("<p>Welcome</p>"),
			TriggerHref:  "#survey",
			TriggerLabel: "Start",
		},
	)
	root := router.Group("/v1")
	handlers.AddSurveyFlowAPI(root)
	handlers.AddQuestionBankManagementAPI(root)
	return router
}

func TestQuestionBankManagementAPIKey(t *testing.T) {
	router := setupTestRouter()

	t.Run("missing api key", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/v1/question-banks", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status code: %d", w.Code)
		}
	})

	t.Run("wrong api key", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/v1/question-banks", nil)
		req.Header.Set("Api-Key", "wrong-key")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status code: %d", w.Code)
		}
	})

	t.Run("valid key without cache configured", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/v1/question-banks", nil)
		req.Header.Set("Api-Key", "test-api-key")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("unexpected status code: %d", w.Code)
		}
	})

	t.Run("import requires payload", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/v1/question-banks/import", nil)
		req.Header.Set("Api-Key", "test-api-key")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			t.Error("should not accept request without payload")
		}
	})
}

func TestGetSurveyShell(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest(http.MethodGet, "/v1/survey/shell", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("unexpected status code: %d", w.Code)
		return
	}
	body := w.Body.String()
	for _, marker := range []string{
		"data-initialized",
		"survey-area",
		"logo",
		"btn-next",
	} {
		if !strings.Contains(body, marker) {
			t.Errorf("shell response should contain %s", marker)
		}
	}
}
