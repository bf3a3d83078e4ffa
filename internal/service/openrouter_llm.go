package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/starprofs/server/internal/models"
)

// OpenRouterLLM streams chat completions from OpenRouter's OpenAI-compatible
// API. Any OpenAI-compatible endpoint works by overriding baseURL.
type OpenRouterLLM struct {
	client *openai.Client
	model  string
}

// NewOpenRouterLLM builds the client for the given model identifier.
func NewOpenRouterLLM(apiKey, model, baseURL string) *OpenRouterLLM {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenRouterLLM{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// StreamChat opens a streamed completion and forwards each delta on the
// returned channel. The provider connection is closed when the stream ends,
// fails, or ctx is cancelled.
func (o *OpenRouterLLM) StreamChat(ctx context.Context, messages []models.ChatMessage) (<-chan Chunk, error) {
	req := openai.ChatCompletionRequest{
		Model:    o.model,
		Stream:   true,
		Messages: make([]openai.ChatCompletionMessage, len(messages)),
	}
	for i, m := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}

	stream, err := o.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openrouter: %w", err)
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)
		defer stream.Close()
		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				// Consumer gone; nobody cares about the error.
				if ctx.Err() != nil {
					return
				}
				select {
				case out <- Chunk{Err: fmt.Errorf("openrouter stream: %w", err)}:
				case <-ctx.Done():
				}
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			delta := resp.Choices[0].Delta.Content
			if delta == "" {
				continue
			}
			select {
			case out <- Chunk{Content: delta}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
