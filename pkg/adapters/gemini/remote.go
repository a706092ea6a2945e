// Package gemini implements generator.Remote on the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/aretw0/edubrinca/pkg/core"
	"github.com/aretw0/edubrinca/pkg/generator"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// APIKeyEnvVars are consulted, in order, when Config.APIKey is empty.
var APIKeyEnvVars = []string{"GEMINI_API_KEY", "API_KEY"}

var (
	ErrMissingAPIKey = errors.New("gemini api key is not configured")
	ErrInvalidAPIKey = errors.New("gemini api key is not plausible")
)

// Config holds the configuration for the Gemini backend.
type Config struct {
	APIKey string
	Model  string
	Logger *slog.Logger
}

// models is the subset of *genai.Models the backend calls.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Remote is a generator.Remote backed by Gemini structured output.
type Remote struct {
	apiKey string
	model  string
	logger *slog.Logger

	mu     sync.Mutex
	models models
}

// New creates the backend. The client is created on the first Generate call.
func New(cfg Config) *Remote {
	if cfg.APIKey == "" {
		cfg.APIKey = KeyFromEnv()
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Remote{apiKey: cfg.APIKey, model: cfg.Model, logger: cfg.Logger}
}

// KeyFromEnv returns the first non-empty key among APIKeyEnvVars.
func KeyFromEnv() string {
	for _, name := range APIKeyEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// Ready checks that a plausible API key is configured. It makes no network call.
func (r *Remote) Ready(ctx context.Context) error {
	return checkKey(r.apiKey)
}

func checkKey(key string) error {
	switch {
	case key == "":
		return ErrMissingAPIKey
	case key == "undefined", key == "null":
		return ErrMissingAPIKey
	case len(key) < 8, strings.ContainsAny(key, " \t\r\n"):
		return ErrInvalidAPIKey
	}
	return nil
}

func (r *Remote) client(ctx context.Context) (models, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.models != nil {
		return r.models, nil
	}
	if err := checkKey(r.apiKey); err != nil {
		return nil, err
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  r.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	r.models = c.Models
	return r.models, nil
}

// Generate performs one structured generation call.
func (r *Remote) Generate(ctx context.Context, call generator.RemoteCall) (generator.RemoteResult, error) {
	schema, ok := responseSchemas[call.Kind]
	if !ok {
		return generator.RemoteResult{}, fmt.Errorf("no response schema for kind %q", call.Kind)
	}
	m, err := r.client(ctx)
	if err != nil {
		return generator.RemoteResult{}, err
	}

	prompt := call.Prompt
	config := &genai.GenerateContentConfig{}
	if call.Grounding {
		// Search grounding cannot be combined with a JSON response schema,
		// so the schema travels in the prompt instead.
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
		prompt += "\n\n" + schemaInstruction(call.Kind)
	} else {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = schema
	}

	r.logger.Debug("gemini request", "model", r.model, "kind", call.Kind, "grounding", call.Grounding)
	resp, err := m.GenerateContent(ctx, r.model, genai.Text(prompt), config)
	if err != nil {
		return generator.RemoteResult{}, fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return generator.RemoteResult{}, errors.New("gemini returned no candidates")
	}

	text := resp.Text()
	if call.Grounding {
		text = extractJSON(text)
	}
	return generator.RemoteResult{Text: text, Sources: sources(resp)}, nil
}

// sources collects the web grounding chunks of the first candidate.
// A missing title falls back to the URI.
func sources(resp *genai.GenerateContentResponse) []core.Source {
	out := []core.Source{}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return out
	}
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = chunk.Web.URI
		}
		out = append(out, core.Source{URI: chunk.Web.URI, Title: title})
	}
	return out
}

// extractJSON trims markdown fences and prose around the outermost object.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return text
	}
	return text[start : end+1]
}

var _ generator.Remote = (*Remote)(nil)
