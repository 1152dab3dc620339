package insights

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the generation model used unless configured otherwise.
const DefaultModel = "gemini-2.5-flash"

// GeminiGenerator produces commentary via the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGemini builds a generator for the given API key. An empty model falls
// back to DefaultModel.
func NewGemini(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// MonthlyInsights sends the rendered prompt and returns the response text.
func (g *GeminiGenerator) MonthlyInsights(ctx context.Context, monthLabel string, days []DayDigest) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(monthLabel, days)), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from %s", g.model)
	}
	return text, nil
}
