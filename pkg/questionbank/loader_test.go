package questionbank

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/survey-flow/survey-backend/pkg/apihelpers"
)

func TestResolveMapping(t *testing.T) {
	doc := MappingDocument{
		Mappings: map[string]string{
			"entry1": "/surveys/wellbeing:/content/dam/surveys/wellbeing.json",
			"entry2": "/surveys/sleep:/content/dam/surveys/sleep.json",
		},
	}

	t.Run("matching entry", func(t *testing.T) {
		resolved := ResolveMapping(doc, "/surveys/sleep")
		if resolved != "/content/dam/surveys/sleep.json" {
			t.Errorf("unexpected path: %s", resolved)
		}
	})

	t.Run("no match keeps path", func(t *testing.T) {
		resolved := ResolveMapping(doc, "/surveys/unknown")
		if resolved != "/surveys/unknown" {
			t.Errorf("unexpected path: %s", resolved)
		}
	})
}

func TestNewLoaderClientConfig(t *testing.T) {
	certPaths := &apihelpers.CertificatePaths{
		ServerCertPath: "cert.pem",
		ServerKeyPath:  "key.pem",
		CACertPath:     "ca.pem",
	}
	loader := NewLoader(LoaderConfig{
		RootURL:              "https://bank.example.com",
		APIKey:               "key",
		Timeout:              5 * time.Second,
		MTLSCertificatePaths: certPaths,
	})

	if loader.client.MTLSCertificatePaths != certPaths {
		t.Error("mTLS certificate paths should be passed to the http client")
	}
	if loader.client.APIKey != "key" {
		t.Errorf("unexpected api key: %s", loader.client.APIKey)
	}
}

func TestParseBankPayload(t *testing.T) {
	t.Run("envelope shape", func(t *testing.T) {
		records, err := ParseBankPayload([]byte(`{"data":[{"ContentId":"q1","Order":"2"},{"ContentId":"q2","Order":"1"}],"total":2,"offset":0,"limit":10}`))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if len(records) != 2 {
			t.Errorf("unexpected record count: %d", len(records))
		}
	})

	t.Run("bare array shape", func(t *testing.T) {
		records, err := ParseBankPayload([]byte(`[{"ContentId":"q1"}]`))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if len(records) != 1 {
			t.Errorf("unexpected record count: %d", len(records))
		}
	})

	t.Run("object without data", func(t *testing.T) {
		records, err := ParseBankPayload([]byte(`{"total":0}`))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if len(records) != 0 {
			t.Errorf("unexpected record count: %d", len(records))
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ParseBankPayload([]byte(`{"data":[`))
		if err == nil {
			t.Error("should produce error")
		}
	})
}

func TestLoad(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/paths.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"mappings":{"entry1":"/surveys/wellbeing:/banks/wellbeing.json"}}`))
	})
	mux.HandleFunc("/banks/wellbeing.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"ContentId":"q2","Order":"2","Options":"A, B","Mandatory":"TRUE","ContentType":"question"},
			{"ContentId":"q1","Order":"1","ContentType":"fact"}
		]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	loader := NewLoader(LoaderConfig{
		RootURL:             server.URL,
		MappingDocumentPath: "/paths.json",
		Timeout:             5 * time.Second,
	})

	t.Run("direct json path", func(t *testing.T) {
		records, err := loader.Load(context.Background(), "/banks/wellbeing.json")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if len(records) != 2 {
			t.Errorf("unexpected record count: %d", len(records))
			return
		}
		if records[0].ContentID != "q1" || records[1].ContentID != "q2" {
			t.Errorf("records should be sorted by order: %v", records)
		}
		if records[1].Options[0] != "A" || records[1].Options[1] != "B" {
			t.Errorf("options should be normalized: %v", records[1].Options)
		}
		if !records[1].Mandatory {
			t.Error("mandatory flag should be normalized to bool")
		}
	})

	t.Run("logical path via mapping", func(t *testing.T) {
		records, err := loader.Load(context.Background(), "/surveys/wellbeing")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if len(records) != 2 {
			t.Errorf("unexpected record count: %d", len(records))
		}
	})

	t.Run("unknown logical path fails on fetch", func(t *testing.T) {
		_, err := loader.Load(context.Background(), "/surveys/unknown")
		if err == nil {
			t.Error("should produce error")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := loader.Load(context.Background(), "")
		if err == nil {
			t.Error("should produce error")
		}
	})
}
