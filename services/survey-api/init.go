package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"github.com/survey-flow/survey-backend/pkg/apihelpers"
	"github.com/survey-flow/survey-backend/pkg/db"
	"github.com/survey-flow/survey-backend/pkg/notify"
	"github.com/survey-flow/survey-backend/pkg/questionbank"
	"github.com/survey-flow/survey-backend/pkg/utils"

	qbDB "github.com/survey-flow/survey-backend/pkg/db/questionbank"
	"github.com/survey-flow/survey-backend/pkg/db/sessionstore"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_QUESTION_BANK_DB_USERNAME   = "QUESTION_BANK_DB_USERNAME"
	ENV_QUESTION_BANK_DB_PASSWORD   = "QUESTION_BANK_DB_PASSWORD"
	ENV_QUESTION_BANK_API_KEY       = "QUESTION_BANK_API_KEY"
	ENV_SESSION_REDIS_PASSWORD      = "SESSION_REDIS_PASSWORD"
	ENV_SURVEY_SESSION_JWT_SIGN_KEY = "SURVEY_SESSION_JWT_SIGN_KEY"
)

type SurveyApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	AllowedInstanceIDs []string `json:"allowed_instance_ids" yaml:"allowed_instance_ids"`

	// API keys accepted by the question bank management endpoints
	ApiKeys []string `json:"api_keys" yaml:"api_keys"`

	// Static regions of the survey block shell
	Shell struct {
		LogoURL         string `json:"logo_url" yaml:"logo_url"`
		BackgroundImage string `json:"background_image" yaml:"background_image"`
		IntroHTML       string `json:"intro_html" yaml:"intro_html"`
		FooterHTML      string `json:"footer_html" yaml:"footer_html"`
		TriggerHref     string `json:"trigger_href" yaml:"trigger_href"`
		TriggerLabel    string `json:"trigger_label" yaml:"trigger_label"`
	} `json:"shell" yaml:"shell"`

	// Question bank endpoint config
	QuestionBank questionbank.LoaderConfig `json:"question_bank" yaml:"question_bank"`

	// Session config
	SessionConfig struct {
		JWTSignKey     string                       `json:"jwt_sign_key" yaml:"jwt_sign_key"`
		TokenExpiresIn string                       `json:"token_expires_in" yaml:"token_expires_in"`
		Redis          sessionstore.RedisConfigYaml `json:"redis" yaml:"redis"`
	} `json:"session_config" yaml:"session_config"`

	// DB configs
	DBConfigs struct {
		QuestionBankDB db.DBConfigYaml `json:"question_bank_db" yaml:"question_bank_db"`
	} `json:"db_configs" yaml:"db_configs"`

	CompletionNotifications notify.NotificationConfig `json:"completion_notifications" yaml:"completion_notifications"`
}

var (
	questionBankDBService *qbDB.QuestionBankDBService
	sessionStore          sessionstore.SessionStore
	questionBankLoader    *questionbank.Loader
	completionNotifier    *notify.CompletionNotifier
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
	)

	// Override secrets from environment variables
	secretsOverride()

	if conf.SessionConfig.JWTSignKey == "" {
		panic("Survey session JWT sign key not set")
	}

	// Init DBs
	initDBs()

	// Init session store
	initSessionStore()

	questionBankLoader = questionbank.NewLoader(conf.QuestionBank)

	completionNotifier, err = notify.NewCompletionNotifier(conf.CompletionNotifications)
	if err != nil {
		panic(err)
	}

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_QUESTION_BANK_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.QuestionBankDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_QUESTION_BANK_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.QuestionBankDB.Password = dbPassword
	}

	if apiKey := os.Getenv(ENV_QUESTION_BANK_API_KEY); apiKey != "" {
		conf.QuestionBank.APIKey = apiKey
	}

	if redisPassword := os.Getenv(ENV_SESSION_REDIS_PASSWORD); redisPassword != "" {
		conf.SessionConfig.Redis.Password = redisPassword
	}

	if signKey := os.Getenv(ENV_SURVEY_SESSION_JWT_SIGN_KEY); signKey != "" {
		conf.SessionConfig.JWTSignKey = signKey
	}
}

func initDBs() {
	// The cached question bank DB is optional, sessions can run directly
	// against the remote endpoint.
	if conf.DBConfigs.QuestionBankDB.ConnectionStr == "" {
		slog.Warn("Question bank DB not configured, running without cached question banks")
		return
	}

	var err error
	questionBankDBService, err = qbDB.NewQuestionBankDBService(db.DBConfigFromYamlObj(conf.DBConfigs.QuestionBankDB, conf.AllowedInstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Question Bank DB", slog.String("error", err.Error()))
		return
	}
}

func initSessionStore() {
	ttl, err := utils.ParseDurationString(conf.SessionConfig.Redis.SessionTTL)
	if err != nil {
		slog.Error("Error parsing session TTL", slog.String("error", err.Error()))
		panic(err)
	}

	client := sessionstore.NewRedisClient(conf.SessionConfig.Redis)
	sessionStore = sessionstore.NewRedisSessionStore(client, ttl)
}
