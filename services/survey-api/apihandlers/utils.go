package apihandlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/survey-flow/survey-backend/pkg/surveyflow"
	"github.com/survey-flow/survey-backend/pkg/surveyflow/render"
)

// sessionStateResponse maps a session onto the response body: state, the
// current step view and its rendered markup.
func sessionStateResponse(session *surveyflow.Session) gin.H {
	resp := gin.H{
		"state": session.State,
	}
	if session.State == surveyflow.SESSION_STATE_IDLE {
		return resp
	}

	view := render.BuildSessionView(session)
	resp["step"] = view

	html, err := render.RenderStep(view)
	if err != nil {
		slog.Error("error rendering survey step", slog.String("sessionID", session.ID), slog.String("error", err.Error()))
	} else {
		resp["html"] = html
	}
	return resp
}
