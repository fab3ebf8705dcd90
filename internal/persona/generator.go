package persona

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sahanamn290/github-analysis/internal/constants"
	"google.golang.org/genai"
)

// ErrMissingAPIKey is returned when no Gemini API key is configured.
var ErrMissingAPIKey = errors.New("missing Gemini API key")

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator generates text with Google's Gemini API.
type GeminiGenerator struct {
	model  string
	apiKey func() string
}

// NewGeminiGenerator creates a generator for model. An empty model selects
// constants.DefaultPersonaModel. The API key is read from the environment
// on every call so a key exported after startup is picked up.
func NewGeminiGenerator(model string) *GeminiGenerator {
	if model == "" {
		model = constants.DefaultPersonaModel
	}
	return &GeminiGenerator{
		model:  model,
		apiKey: APIKeyFromEnv,
	}
}

// APIKeyFromEnv returns the Gemini API key from GEMINI_API_KEY,
// falling back to GOOGLE_API_KEY.
func APIKeyFromEnv() string {
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
}

// Model returns the configured model name.
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Generate sends prompt to Gemini and returns the response text.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	apiKey := g.apiKey()
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return resp.Text(), nil
}
