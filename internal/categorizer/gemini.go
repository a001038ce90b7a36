package categorizer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/iYassr/projectbudget/internal/logging"
	"github.com/iYassr/projectbudget/internal/models"
)

// AIClient is the minimal surface the AI strategy needs from a language
// model. GeminiClient is the production implementation.
type AIClient interface {
	Classify(ctx context.Context, prompt string) (string, error)
	Close() error
}

// GeminiClient wraps the Gemini API with retry and client-side rate limiting.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel

	mu          sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

// NewGeminiClient creates a Gemini client for the given model. requestsPerMinute
// caps the outgoing request rate; values below 1 disable the limiter.
func NewGeminiClient(ctx context.Context, apiKey, model string, requestsPerMinute int) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	var minInterval time.Duration
	if requestsPerMinute > 0 {
		minInterval = time.Minute / time.Duration(requestsPerMinute)
	}

	return &GeminiClient{
		client:      client,
		model:       client.GenerativeModel(model),
		minInterval: minInterval,
	}, nil
}

// Classify sends the prompt to Gemini and returns the raw response text.
// Transient API errors are retried with a short backoff.
func (g *GeminiClient) Classify(ctx context.Context, prompt string) (string, error) {
	if err := g.throttle(ctx); err != nil {
		return "", err
	}

	var responseText string
	err := retry.Do(
		func() error {
			resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
			if err != nil {
				return fmt.Errorf("Gemini API error: %w", err)
			}
			if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
				return fmt.Errorf("no response from Gemini API")
			}
			responseText = fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(2*time.Second),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", err
	}
	return responseText, nil
}

// Close releases the underlying API client.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// throttle blocks until the configured request interval has elapsed since the
// previous request.
func (g *GeminiClient) throttle(ctx context.Context) error {
	if g.minInterval <= 0 {
		return nil
	}

	g.mu.Lock()
	wait := g.minInterval - time.Since(g.lastRequest)
	if wait < 0 {
		wait = 0
	}
	g.lastRequest = time.Now().Add(wait)
	g.mu.Unlock()

	if wait == 0 {
		return nil
	}
	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AIStrategy categorizes expenses with a language model. A failed or
// unavailable client is treated as a miss so the chain can fall through.
type AIStrategy struct {
	client     AIClient
	categories []models.CategoryConfig
	timeout    time.Duration
	logger     logging.Logger
}

// NewAIStrategy creates an AIStrategy. A nil client disables the strategy.
func NewAIStrategy(client AIClient, categories []models.CategoryConfig, timeout time.Duration, logger logging.Logger) *AIStrategy {
	return &AIStrategy{client: client, categories: categories, timeout: timeout, logger: logger}
}

// Name returns the name of this strategy.
func (s *AIStrategy) Name() string {
	return "ai"
}

// Categorize asks the model to pick one of the known categories for the
// expense. Responses naming an unknown category are treated as a miss.
func (s *AIStrategy) Categorize(ctx context.Context, expense models.Expense) (models.Category, bool, error) {
	if s.client == nil {
		return models.Category{}, false, nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	response, err := s.client.Classify(ctx, s.buildPrompt(expense))
	if err != nil {
		s.logger.Warn("AI categorization failed",
			logging.Field{Key: logging.FieldMerchant, Value: expense.Merchant},
			logging.Field{Key: "error", Value: err.Error()})
		return models.Category{}, false, nil
	}

	name := s.extractCategory(response)
	if name == "" {
		s.logger.Debug("AI response did not name a known category",
			logging.Field{Key: logging.FieldMerchant, Value: expense.Merchant})
		return models.Category{}, false, nil
	}

	return models.Category{
		Name:       name,
		Confidence: ConfidenceAI,
		Method:     MethodAI,
	}, true, nil
}

// buildPrompt assembles the classification prompt from the expense and the
// category catalog.
func (s *AIStrategy) buildPrompt(expense models.Expense) string {
	names := make([]string, 0, len(s.categories))
	for _, category := range s.categories {
		names = append(names, category.Name)
	}

	return fmt.Sprintf(`Categorize the following financial transaction:
Merchant: %s
Amount: %s %s
Date: %s
Message: %s

Please assign this transaction to exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]
Description: [Brief explanation of why you chose this category]`,
		expense.Merchant,
		expense.Amount.String(),
		expense.Currency,
		expense.Date,
		expense.RawMessage,
		strings.Join(names, ", "))
}

// extractCategory parses the model response and returns the named category,
// or "" when the response does not resolve to a known category.
func (s *AIStrategy) extractCategory(response string) string {
	var name string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			name = strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
			name = strings.Trim(name, "[]")
			break
		}
	}

	// Unstructured response: look for a known category name anywhere in it.
	if name == "" {
		for _, category := range s.categories {
			if strings.Contains(response, category.Name) {
				return category.Name
			}
		}
		return ""
	}

	for _, category := range s.categories {
		if strings.EqualFold(name, category.Name) {
			return category.Name
		}
	}
	return ""
}
