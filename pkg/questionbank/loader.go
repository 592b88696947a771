package questionbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/survey-flow/survey-backend/pkg/apihelpers"
	"github.com/survey-flow/survey-backend/pkg/httpclient"
	flowTypes "github.com/survey-flow/survey-backend/pkg/surveyflow/types"
)

var ErrEmptyPath = errors.New("question bank path is empty")

type LoaderConfig struct {
	RootURL              string                       `json:"root_url" yaml:"root_url"`
	MappingDocumentPath  string                       `json:"mapping_document_path" yaml:"mapping_document_path"`
	APIKey               string                       `json:"api_key" yaml:"api_key"`
	Timeout              time.Duration                `json:"timeout" yaml:"timeout"`
	MTLSCertificatePaths *apihelpers.CertificatePaths `json:"mtls_certificate_paths" yaml:"mtls_certificate_paths"`
}

// Loader fetches question banks from the remote content endpoint. Logical
// paths (anything not ending in "json") are resolved through a mapping
// document first.
type Loader struct {
	client              httpclient.ClientConfig
	mappingDocumentPath string
}

func NewLoader(config LoaderConfig) *Loader {
	return &Loader{
		client: httpclient.ClientConfig{
			RootURL:              config.RootURL,
			APIKey:               config.APIKey,
			Timeout:              config.Timeout,
			MTLSCertificatePaths: config.MTLSCertificatePaths,
		},
		mappingDocumentPath: config.MappingDocumentPath,
	}
}

// MappingDocument maps arbitrary keys to "<logicalPath>:<realPath>" entries.
type MappingDocument struct {
	Mappings map[string]string `json:"mappings"`
}

// ResolveMapping finds the entry whose part before the colon equals path and
// returns the part after it. Without a match the path is returned unchanged;
// the subsequent fetch will surface the problem.
func ResolveMapping(doc MappingDocument, path string) string {
	for _, entry := range doc.Mappings {
		before, after, found := strings.Cut(entry, ":")
		if !found {
			continue
		}
		if strings.TrimSpace(before) == path {
			return strings.TrimSpace(after)
		}
	}
	slog.Warn("no mapping entry found for path", slog.String("path", path))
	return path
}

type bankEnvelope struct {
	Data   []flowTypes.QuestionRecord `json:"data"`
	Total  int                        `json:"total"`
	Offset int                        `json:"offset"`
	Limit  int                        `json:"limit"`
}

// ParseBankPayload extracts the question list from a bank response. Both the
// envelope shape ({ data: [...] }) and a bare array are accepted; any other
// valid JSON yields an empty list. Malformed JSON is an error.
func ParseBankPayload(payload []byte) ([]flowTypes.QuestionRecord, error) {
	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" {
		return nil, errors.New("empty question bank response")
	}

	switch trimmed[0] {
	case '[':
		var records []flowTypes.QuestionRecord
		if err := json.Unmarshal(payload, &records); err != nil {
			return nil, fmt.Errorf("error parsing question bank response: %v", err)
		}
		return records, nil
	case '{':
		var envelope bankEnvelope
		if err := json.Unmarshal(payload, &envelope); err != nil {
			return nil, fmt.Errorf("error parsing question bank response: %v", err)
		}
		if envelope.Data == nil {
			return []flowTypes.QuestionRecord{}, nil
		}
		return envelope.Data, nil
	default:
		if !json.Valid(payload) {
			return nil, errors.New("question bank response is not valid JSON")
		}
		return []flowTypes.QuestionRecord{}, nil
	}
}

// Load resolves the path, fetches the question bank and returns the
// normalized records ordered ascending by their Order value.
func (l *Loader) Load(ctx context.Context, path string) ([]flowTypes.QuestionRecord, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}

	resolved := path
	if !strings.HasSuffix(path, "json") {
		doc, err := l.fetchMappingDocument(ctx)
		if err != nil {
			return nil, err
		}
		resolved = ResolveMapping(doc, path)
	}

	payload, err := l.client.RunHTTPGet(ctx, resolved)
	if err != nil {
		slog.Error("error fetching question bank", slog.String("path", resolved), slog.String("error", err.Error()))
		return nil, err
	}

	records, err := ParseBankPayload(payload)
	if err != nil {
		return nil, err
	}

	flowTypes.SortQuestions(records)
	return records, nil
}

func (l *Loader) fetchMappingDocument(ctx context.Context) (MappingDocument, error) {
	var doc MappingDocument

	payload, err := l.client.RunHTTPGet(ctx, l.mappingDocumentPath)
	if err != nil {
		slog.Error("error fetching mapping document", slog.String("path", l.mappingDocumentPath), slog.String("error", err.Error()))
		return doc, err
	}

	if err := json.Unmarshal(payload, &doc); err != nil {
		return doc, fmt.Errorf("error parsing mapping document: %v", err)
	}
	return doc, nil
}
