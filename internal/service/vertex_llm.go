package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/starprofs/server/internal/models"
)

// VertexLLM streams chat completions from a Gemini model on Vertex AI.
// Alternative to OpenRouterLLM for Google Cloud deployments.
type VertexLLM struct {
	client    *genai.Client
	modelName string
}

// NewVertexLLM creates the Vertex AI client for the given model.
func NewVertexLLM(ctx context.Context, projectID, location, modelName string) (*VertexLLM, error) {
	var opts []option.ClientOption
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := genai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vertex client: %w", err)
	}

	return &VertexLLM{client: client, modelName: modelName}, nil
}

// StreamChat maps the assembled message list onto a Gemini chat session and
// streams the reply. A leading system message becomes the system
// instruction; prior turns become session history; the final message is
// sent. The first provider response is pulled eagerly so authentication and
// quota failures surface before any bytes are committed downstream.
func (l *VertexLLM) StreamChat(ctx context.Context, messages []models.ChatMessage) (<-chan Chunk, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("vertex: empty message list")
	}

	model := l.client.GenerativeModel(l.modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.8)
	model.SetTopK(40)

	rest := messages
	if rest[0].Role == models.RoleSystem {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(rest[0].Content)},
		}
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return nil, fmt.Errorf("vertex: no user message to send")
	}

	cs := model.StartChat()
	for _, m := range rest[:len(rest)-1] {
		role := "user"
		if m.Role == models.RoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	iter := cs.SendMessageStream(ctx, genai.Text(rest[len(rest)-1].Content))

	first, err := iter.Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return nil, fmt.Errorf("vertex generate: %w", err)
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)
		resp := first
		for resp != nil {
			for _, text := range candidateText(resp) {
				select {
				case out <- Chunk{Content: text}:
				case <-ctx.Done():
					return
				}
			}
			var err error
			resp, err = iter.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				select {
				case out <- Chunk{Err: fmt.Errorf("vertex stream: %w", err)}:
				case <-ctx.Done():
				}
				return
			}
		}
	}()
	return out, nil
}

// candidateText extracts the text parts of the first candidate, if any.
func candidateText(resp *genai.GenerateContentResponse) []string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var parts []string
	for _, p := range resp.Candidates[0].Content.Parts {
		if text, ok := p.(genai.Text); ok && text != "" {
			parts = append(parts, string(text))
		}
	}
	return parts
}

// Close closes the underlying Vertex AI client.
func (l *VertexLLM) Close() error {
	return l.client.Close()
}
