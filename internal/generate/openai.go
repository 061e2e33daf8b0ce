package generate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dgallion1/flashgen/internal/document"
	"github.com/dgallion1/flashgen/internal/flashcard"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient generates flashcards with an OpenAI chat model. Chat
// completions take text, not documents, so the chunk's text is extracted
// locally and embedded in the prompt. BaseURL may point at any
// OpenAI-compatible server.
type OpenAIClient struct {
	client   *openai.Client
	model    string
	timeout  time.Duration
	fallback bool
	stats    *Stats
}

func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration, fallbackPdftotext bool, stats *Stats) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &OpenAIClient{
		client:   openai.NewClientWithConfig(config),
		model:    model,
		timeout:  timeout,
		fallback: fallbackPdftotext,
		stats:    stats,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, doc []byte) (cards []flashcard.Flashcard, err error) {
	start := time.Now()
	defer func() { record(c.stats, start, len(cards), err) }()

	text, err := document.ExtractText(doc, c.fallback)
	if err != nil {
		return nil, &CallError{Provider: "openai", Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &CallError{Provider: "openai", Err: errors.New("document has no extractable text")}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildTextPrompt(text)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &CallError{Provider: "openai", Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &CallError{Provider: "openai", Err: errors.New("no choices in response")}
	}
	return DecodeBatch(resp.Choices[0].Message.Content)
}
