package main

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/survey-flow/survey-backend/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"
)

type config struct {
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	Port                string            `json:"port" yaml:"port"`
	BanksDir            string            `json:"banks_dir" yaml:"banks_dir"`
	MappingDocumentPath string            `json:"mapping_document_path" yaml:"mapping_document_path"`
	Mappings            map[string]string `json:"mappings" yaml:"mappings"`
}

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

	if conf.Port == "" {
		conf.Port = "8090"
	}
	if conf.MappingDocumentPath == "" {
		conf.MappingDocumentPath = "/path-mappings.json"
	}
	if conf.BanksDir == "" {
		panic("No banks directory configured for the question bank emulator.")
	}
}
