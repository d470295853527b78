package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aura-finance/backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// Generator is the part of the genai client the agent uses. *genai.Models implements it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini categorizes with a Gemini model.
type Gemini struct {
	generator Generator
	model     string
	timeout   time.Duration
}

var _ Categorizer = Gemini{}

// NewGeminiClient creates the genai client for the Gemini Developer API.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return client, nil
}

// NewGemini returns an agent that calls model through generator. Every call
// is cancelled after timeout.
func NewGemini(generator Generator, model string, timeout time.Duration) Gemini {
	return Gemini{
		generator: generator,
		model:     model,
		timeout:   timeout,
	}
}

type categorizeResponse struct {
	Vendor      string           `json:"vendor"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    string           `json:"category"`
	Confidence  string           `json:"confidence"`
	Description string           `json:"description"`
}

type recategorizeResponse struct {
	Category  string `json:"category"`
	Reasoning string `json:"reasoning"`
}

func (g Gemini) Categorize(ctx context.Context, in Input) (Categorization, error) {
	var r categorizeResponse
	err := g.generate(ctx, categorizePrompt(in), &r)
	if err != nil {
		return Categorization{}, err
	}

	category, ok := findCategory(in.Categories, r.Category)
	if !ok {
		return Categorization{}, fmt.Errorf("%w: category %q is not one of the users categories", ErrInvalidResponse, r.Category)
	}

	if strings.TrimSpace(r.Vendor) == "" {
		return Categorization{}, fmt.Errorf("%w: no vendor", ErrInvalidResponse)
	}

	c := Categorization{
		Vendor:       strings.TrimSpace(r.Vendor),
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Confidence:   confidence(r.Confidence),
		Description:  strings.TrimSpace(r.Description),
	}

	if r.Amount != nil {
		c.Amount = r.Amount.Abs()
		c.HasAmount = true
	}

	return c, nil
}

func (g Gemini) Recategorize(ctx context.Context, in RecategorizeInput) (Proposal, error) {
	var r recategorizeResponse
	err := g.generate(ctx, recategorizePrompt(in), &r)
	if err != nil {
		return Proposal{}, err
	}

	category, ok := findCategory(in.Categories, r.Category)
	if !ok {
		return Proposal{}, fmt.Errorf("%w: category %q is not one of the users categories", ErrInvalidResponse, r.Category)
	}

	return Proposal{
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Reasoning:    strings.TrimSpace(r.Reasoning),
	}, nil
}

// generate sends the prompt and decodes the JSON answer into target.
func (g Gemini) generate(ctx context.Context, prompt string, target any) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](0),
	}

	start := time.Now()
	resp, err := g.generator.GenerateContent(ctx, g.model, contents, config)
	log.Debug().Str("model", g.model).Dur("duration", time.Since(start)).Err(err).Msg("Agent")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	raw := resp.Text()
	if raw == "" {
		return fmt.Errorf("%w: empty response from model", ErrInvalidResponse)
	}

	err = json.Unmarshal([]byte(cleanModelJSON(raw)), target)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return nil
}

// cleanModelJSON removes Markdown fences and text around the JSON object
// in case the model ignored the instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}

	return strings.TrimSpace(s)
}

func findCategory(categories []models.Category, name string) (models.Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return models.Category{}, false
}

func confidence(s string) models.Confidence {
	switch models.Confidence(strings.ToLower(strings.TrimSpace(s))) {
	case models.ConfidenceHigh:
		return models.ConfidenceHigh
	case models.ConfidenceMedium:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
