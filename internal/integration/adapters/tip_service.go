// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/money-saver/backend/internal/application/adapter"
)

// GeminiTipService implements the SavingsTipService using Google Gemini.
type GeminiTipService struct {
	apiKey    string
	modelName string
}

// NewGeminiTipService creates a new Gemini tip service instance.
func NewGeminiTipService(apiKey string) *GeminiTipService {
	return &GeminiTipService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiTipService) IsAvailable() bool {
	return s.apiKey != ""
}

// GenerateTip asks the model for a short savings tip tailored to the user's
// current progress.
func (s *GeminiTipService) GenerateTip(ctx context.Context, req adapter.TipRequest) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.7)

	prompt := s.buildPrompt(req)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	tip, err := extractText(resp)
	if err != nil {
		return "", err
	}
	return tip, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiTipService) buildPrompt(req adapter.TipRequest) string {
	var sb strings.Builder

	sb.WriteString("You write one short, friendly money-saving tip for a weekly savings reminder email.\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- At most two sentences, plain text, no markdown, no emoji.\n")
	sb.WriteString("- Encouraging tone, never guilt-tripping.\n")
	sb.WriteString("- Do not mention being an AI or repeat the numbers back verbatim.\n\n")
	sb.WriteString("Context:\n")
	if req.UserName != "" {
		sb.WriteString(fmt.Sprintf("- The reader's name is %s.\n", req.UserName))
	}
	sb.WriteString(fmt.Sprintf("- They have %d plan(s) behind schedule.\n", req.PlansBehind))
	sb.WriteString(fmt.Sprintf("- They have %s left to save across all plans.\n", req.TotalRemaining))
	sb.WriteString("\nRespond with the tip only.\n")

	return sb.String()
}

// extractText pulls the first text part out of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return strings.TrimSpace(string(text)), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

// Ensure GeminiTipService implements adapter.SavingsTipService.
var _ adapter.SavingsTipService = (*GeminiTipService)(nil)
