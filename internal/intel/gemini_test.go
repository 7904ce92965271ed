package intel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

const testKey = "test-secret-key"

// generateBody is the part of a generateContent request the tests inspect.
type generateBody struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		ResponseMIMEType string `json:"responseMimeType"`
		ResponseSchema   struct {
			Required []string `json:"required"`
		} `json:"responseSchema"`
	} `json:"generationConfig"`
}

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	})
	return string(b)
}

func newTestGemini(t *testing.T, endpoint string) *Gemini {
	t.Helper()
	g, err := NewGemini(context.Background(), GeminiConfig{
		Endpoint: endpoint,
		Model:    "test-model",
		APIKey:   testKey,
		Timeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("NewGemini() error: %v", err)
	}
	return g
}

func TestGeminiGenerate(t *testing.T) {
	var (
		gotPath, gotHeader, gotQuery string
		gotReq                       generateBody
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotHeader = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		report := `{"title":"BLOOD MOON","description":"They are many. They are hungry.","threatLevel":"Gamma","mutationNote":"Runners have learned to flank."}`
		fmt.Fprint(w, candidateBody(report))
	}))
	defer srv.Close()

	r, err := newTestGemini(t, srv.URL).Generate(context.Background(), 3)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if !strings.HasSuffix(gotPath, "/v1beta/models/test-model:generateContent") {
		t.Errorf("request path = %q", gotPath)
	}
	if gotHeader != testKey {
		t.Errorf("x-goog-api-key = %q, expected the key", gotHeader)
	}
	if strings.Contains(gotQuery, testKey) || strings.Contains(gotPath, testKey) {
		t.Errorf("key must not appear in the URL: %q?%q", gotPath, gotQuery)
	}
	if len(gotReq.Contents) != 1 || !strings.Contains(gotReq.Contents[0].Parts[0].Text, "Wave 3") {
		t.Errorf("prompt should mention the wave, got %+v", gotReq.Contents)
	}
	if gotReq.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Errorf("responseMimeType = %q", gotReq.GenerationConfig.ResponseMIMEType)
	}
	if len(gotReq.GenerationConfig.ResponseSchema.Required) != len(reportFields) {
		t.Errorf("schema should require %d fields, got %v", len(reportFields), gotReq.GenerationConfig.ResponseSchema.Required)
	}

	if r.Title != "BLOOD MOON" || r.ThreatLevel != "Gamma" {
		t.Errorf("unexpected report %+v", r)
	}
}

func TestGeminiGenerateFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"client error", http.StatusBadRequest, `{"error":{"code":400,"message":"bad","status":"INVALID_ARGUMENT"}}`},
		{"not json", http.StatusOK, "<html>"},
		{"no candidates", http.StatusOK, `{"candidates":[]}`},
		{"malformed report", http.StatusOK, candidateBody("not json at all")},
		{"missing field", http.StatusOK, candidateBody(`{"title":"X","description":"Y","threatLevel":"Z"}`)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			}))
			defer srv.Close()

			if _, err := newTestGemini(t, srv.URL).Generate(context.Background(), 2); err == nil {
				t.Error("Generate() should fail")
			}
		})
	}
}

func TestGeminiKeyStaysOutOfLogs(t *testing.T) {
	// A closed server makes the transport fail with an error that quotes the URL
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	var buf bytes.Buffer
	b := NewBriefer(newTestGemini(t, endpoint), time.Second, log.New(&buf))

	if got := b.Brief(context.Background(), 2); got != Fallback() {
		t.Errorf("Brief() = %+v, expected the fallback", got)
	}
	if !strings.Contains(buf.String(), "intel unavailable") {
		t.Errorf("failure should be logged, got %q", buf.String())
	}
	if strings.Contains(buf.String(), testKey) {
		t.Errorf("API key leaked into log output: %q", buf.String())
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), GeminiConfig{})
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("NewGemini() error = %v, expected ErrNoAPIKey", err)
	}
}

func TestNewGeminiDefaults(t *testing.T) {
	g, err := NewGemini(context.Background(), GeminiConfig{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewGemini() error: %v", err)
	}
	if g.model != DefaultModel {
		t.Errorf("model = %q, expected %q", g.model, DefaultModel)
	}
}
