// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/pocketwatch/backend/internal/domain/entity"
)

// GeminiService suggests a category for a transaction title using Google
// Gemini. It implements adapter.CategorySuggester.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Suggest asks Gemini to place the title into one of the known categories.
func (s *GeminiService) Suggest(ctx context.Context, title string) (entity.Category, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(s.buildPrompt(title)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	category, err := s.parseResponse(resp)
	if err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return category, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiService) buildPrompt(title string) string {
	var sb strings.Builder

	sb.WriteString("You are a personal-finance assistant. Classify one transaction title into exactly one budgeting category.\n\n")

	sb.WriteString("AVAILABLE CATEGORIES (use ONLY these exact names):\n")
	for _, category := range entity.Categories() {
		sb.WriteString(fmt.Sprintf("- %s\n", category))
	}

	sb.WriteString(fmt.Sprintf("\nTRANSACTION TITLE: %q\n", title))

	sb.WriteString(`
Respond with a single JSON object:
{
  "category": "one of the category names above",
  "confidence": 0.0-1.0
}

If no category clearly applies, use "Other".

RESPONSE FORMAT: return only the JSON object, no additional text.
`)

	return sb.String()
}

// geminiSuggestion represents the raw response from Gemini.
type geminiSuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// parseResponse parses the Gemini response into a category.
func (s *GeminiService) parseResponse(resp *genai.GenerateContentResponse) (entity.Category, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	if textContent == "" {
		return "", fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var suggestion geminiSuggestion
	if err := json.Unmarshal([]byte(textContent), &suggestion); err != nil {
		return "", fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	category := entity.Category(suggestion.Category)
	if !entity.IsValidCategory(category) {
		return entity.CategoryOther, nil
	}

	return category, nil
}
