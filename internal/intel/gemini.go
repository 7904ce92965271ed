package intel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// Gemini API defaults.
const (
	DefaultEndpoint   = "https://generativelanguage.googleapis.com/"
	DefaultAPIVersion = "v1beta"
	DefaultModel      = "gemini-3-flash-preview"
)

const promptTemplate = `Generate a short tactical intel report for Wave %d of a zombie apocalypse survival game.
The player is fighting off hordes. Provide a scary title, a brief 2-sentence description of the current situation,
a threat level (Alpha, Beta, Gamma, Omega), and a specific "mutation note" describing a new threat.`

// reportFields are the JSON keys of Report, all required.
var reportFields = []string{"title", "description", "threatLevel", "mutationNote"}

// GeminiConfig configures a Gemini source. Empty fields select the defaults.
type GeminiConfig struct {
	Endpoint   string
	APIVersion string
	Model      string
	APIKey     string
	Timeout    time.Duration
}

// Gemini asks the Gemini API for a JSON briefing.
type Gemini struct {
	client *genai.Client
	model  string
}

// ErrNoAPIKey is returned when a Gemini source is built without a key.
var ErrNoAPIKey = errors.New("intel: no API key")

// NewGemini creates a Gemini source. The key travels in a request header,
// never in the URL.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.Endpoint,
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("intel: create client: %w", err)
	}
	return &Gemini{client: client, model: cfg.Model}, nil
}

// generateConfig asks for a JSON object with every Report field.
func generateConfig() *genai.GenerateContentConfig {
	props := make(map[string]*genai.Schema, len(reportFields))
	for _, name := range reportFields {
		props[name] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: props,
			Required:   reportFields,
		},
	}
}

// Generate requests a briefing for wave.
func (g *Gemini) Generate(ctx context.Context, wave int) (Report, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(fmt.Sprintf(promptTemplate, wave)), generateConfig())
	if err != nil {
		return Report{}, fmt.Errorf("intel: request failed: %w", err)
	}
	return parseReport(resp.Text())
}

// parseReport decodes the JSON text of a response.
func parseReport(text string) (Report, error) {
	if text == "" {
		return Report{}, fmt.Errorf("intel: response has no text")
	}
	var r Report
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return Report{}, fmt.Errorf("intel: decode report: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Report{}, err
	}
	return r, nil
}
