package main

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/survey-flow/survey-backend/pkg/apihelpers"
	"github.com/survey-flow/survey-backend/pkg/surveyflow/render"
	"github.com/survey-flow/survey-backend/pkg/utils"
	"github.com/survey-flow/survey-backend/services/survey-api/apihandlers"
)

var conf SurveyApiConfig

func main() {
	tokenExpiresIn, err := utils.ParseDurationString(conf.SessionConfig.TokenExpiresIn)
	if err != nil {
		slog.Error("Error parsing session token expiration", slog.String("error", err.Error()))
		return
	}

	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	shellView := render.ShellView{
		LogoURL:         conf.Shell.LogoURL,
		BackgroundImage: conf.Shell.BackgroundImage,
		Intro:           template.HTML(conf.Shell.IntroHTML),
		Footer:          template.HTML(conf.Shell.FooterHTML),
		TriggerHref:     conf.Shell.TriggerHref,
		TriggerLabel:    conf.Shell.TriggerLabel,
	}

	v1APIHandlers := apihandlers.NewHTTPHandler(
		conf.SessionConfig.JWTSignKey,
		tokenExpiresIn,
		questionBankLoader,
		sessionStore,
		questionBankDBService,
		completionNotifier,
		conf.AllowedInstanceIDs,
		conf.ApiKeys,
		shellView,
	)
	v1APIHandlers.AddSurveyFlowAPI(v1Root)
	v1APIHandlers.AddQuestionBankManagementAPI(v1Root)

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "survey-api-routes.txt")
	}

	// Start the server
	slog.Info("Starting Survey API on port " + conf.GinConfig.Port)
	if !conf.GinConfig.MTLS.Use {
		err := router.Run(":" + conf.GinConfig.Port)
		if err != nil {
			slog.Error("Exited Survey API", slog.String("error", err.Error()))
			return
		}
	} else {
		// Create tls config for mutual TLS
		tlsConfig, err := apihelpers.LoadTLSConfig(conf.GinConfig.MTLS.CertificatePaths)
		if err != nil {
			slog.Error("Error loading TLS config.", slog.String("error", err.Error()))
			return
		}

		server := &http.Server{
			Addr:      ":" + conf.GinConfig.Port,
			Handler:   router,
			TLSConfig: tlsConfig,
		}

		err = server.ListenAndServeTLS(conf.GinConfig.MTLS.CertificatePaths.ServerCertPath, conf.GinConfig.MTLS.CertificatePaths.ServerKeyPath)
		if err != nil {
			slog.Error("Exited Survey API", slog.String("error", err.Error()))
			return
		}
	}
}
