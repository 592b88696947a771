package main

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/survey-flow/survey-backend/pkg/db"
	"github.com/survey-flow/survey-backend/pkg/questionbank"
	"github.com/survey-flow/survey-backend/pkg/utils"

	qbDB "github.com/survey-flow/survey-backend/pkg/db/questionbank"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_QUESTION_BANK_DB_USERNAME = "QUESTION_BANK_DB_USERNAME"
	ENV_QUESTION_BANK_DB_PASSWORD = "QUESTION_BANK_DB_PASSWORD"
	ENV_QUESTION_BANK_API_KEY     = "QUESTION_BANK_API_KEY"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		QuestionBankDB db.DBConfigYaml `json:"question_bank_db" yaml:"question_bank_db"`
	} `json:"db_configs" yaml:"db_configs"`

	InstanceIDs []string `json:"instance_ids" yaml:"instance_ids"`

	// Question bank endpoint config
	QuestionBank questionbank.LoaderConfig `json:"question_bank" yaml:"question_bank"`

	// Logical or direct paths of the surveys to import
	SurveyPaths []string `json:"survey_paths" yaml:"survey_paths"`
}

var (
	conf                  config
	questionBankDBService *qbDB.QuestionBankDBService
	questionBankLoader    *questionbank.Loader
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

	// Init DBs
	questionBankDBService, err = qbDB.NewQuestionBankDBService(db.DBConfigFromYamlObj(conf.DBConfigs.QuestionBankDB, conf.InstanceIDs))
	if err != nil {
		panic(err)
	}

	questionBankLoader = questionbank.NewLoader(conf.QuestionBank)
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
}
