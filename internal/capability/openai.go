package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const defaultTimeout = 10 * time.Second

// OpenAIClassifier scores texts against the configured label set through an
// OpenAI-compatible chat completion endpoint.
type OpenAIClassifier struct {
	client *openai.Client
	config Config
}

// NewOpenAIClassifier creates a classifier provider.
func NewOpenAIClassifier(cfg Config) (*OpenAIClassifier, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	return &OpenAIClassifier{client: client, config: cfg}, nil
}

// Name returns the provider name.
func (c *OpenAIClassifier) Name() string { return "openai" }

// IsAvailable checks the endpoint with a lightweight models call.
func (c *OpenAIClassifier) IsAvailable(ctx context.Context) bool {
	_, err := c.client.ListModels(ctx)
	return err == nil
}

// Classify asks the model to score every label for the text and parses the
// JSON score vector from the reply. Scores outside [0,1] are clamped.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (map[string]float64, error) {
	ctx, cancel := withTimeout(ctx, c.config.Timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Classify the user message into the labels below. Respond with only a JSON object mapping every label to a confidence between 0 and 1.\n\nLabels: %s\n\nMessage: %s",
		strings.Join(c.config.Labels, ", "), text)

	content, err := c.complete(ctx, "You classify campus helpdesk messages. Reply with JSON only.", prompt)
	if err != nil {
		return nil, err
	}

	var scores map[string]float64
	if err := json.Unmarshal([]byte(extractJSON(content)), &scores); err != nil {
		return nil, fmt.Errorf("parse classifier scores: %w", err)
	}

	for label, score := range scores {
		scores[label] = clamp01(score)
	}
	return scores, nil
}

func (c *OpenAIClassifier) complete(ctx context.Context, system, user string) (string, error) {
	return complete(ctx, c.client, c.config.Model, system, user)
}

// OpenAIExtractor locates answer substrings within supplied contexts through
// an OpenAI-compatible chat completion endpoint.
type OpenAIExtractor struct {
	client *openai.Client
	config Config
}

// NewOpenAIExtractor creates an extractor provider.
func NewOpenAIExtractor(cfg Config) (*OpenAIExtractor, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	return &OpenAIExtractor{client: client, config: cfg}, nil
}

// Name returns the provider name.
func (e *OpenAIExtractor) Name() string { return "openai" }

// IsAvailable checks the endpoint with a lightweight models call.
func (e *OpenAIExtractor) IsAvailable(ctx context.Context) bool {
	_, err := e.client.ListModels(ctx)
	return err == nil
}

// Extract asks the model to copy the exact substring of the context that
// answers the question. The span offsets are recomputed locally against the
// context, so a paraphrased reply degrades to an empty answer instead of a
// bogus span.
func (e *OpenAIExtractor) Extract(ctx context.Context, question, passage string) (*Extraction, error) {
	ctx, cancel := withTimeout(ctx, e.config.Timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Find the answer to the question inside the context. The answer must be an exact substring of the context. If the context does not contain an answer, use an empty string and score 0.\nRespond with only a JSON object: {\"answer\": \"...\", \"score\": 0.0}\n\nQuestion: %s\n\nContext: %s",
		question, passage)

	content, err := complete(ctx, e.client, e.config.Model,
		"You extract answer spans from reference passages. Reply with JSON only.", prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Answer string  `json:"answer"`
		Score  float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), &parsed); err != nil {
		return nil, fmt.Errorf("parse extraction: %w", err)
	}

	result := &Extraction{
		Answer: strings.TrimSpace(parsed.Answer),
		Score:  clamp01(parsed.Score),
	}
	if result.Answer == "" {
		return result, nil
	}

	start := strings.Index(passage, result.Answer)
	if start < 0 {
		// Not a verbatim span; treat as no answer.
		return &Extraction{}, nil
	}
	result.Start = start
	result.End = start + len(result.Answer)
	return result, nil
}

func newClient(cfg Config) (*openai.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("capability API key is required")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientConfig), nil
}

func complete(ctx context.Context, client *openai.Client, modelName, system, user string) (string, error) {
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("capability API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty capability response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// extractJSON trims code fences and surrounding prose around a JSON object.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
