package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgallion1/flashgen/internal/flashcard"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient generates flashcards with a Google Gemini model. Each chunk's
// PDF bytes are sent inline alongside the prompt, so no local text
// extraction is needed.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	stats   *Stats
}

func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration, stats *Stats) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &GeminiClient{
		client:  client,
		model:   model,
		timeout: timeout,
		stats:   stats,
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, doc []byte) (cards []flashcard.Flashcard, err error) {
	start := time.Now()
	defer func() { record(c.stats, start, len(cards), err) }()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.client.GenerativeModel(c.model)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: "application/pdf", Data: doc},
		genai.Text(FlashcardPrompt),
	)
	if err != nil {
		return nil, &CallError{Provider: "gemini", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &CallError{Provider: "gemini", Err: errors.New("empty response")}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return DecodeBatch(sb.String())
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
