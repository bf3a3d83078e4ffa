package service

import (
	"context"
	"fmt"
	"log"

	"github.com/starprofs/server/internal/models"
)

// topK is the number of reviews pulled from the vector index per query.
const topK = 3

// ReviewRepository exposes nearest-neighbour search over the professor
// review embeddings. Implementations return at most topK matches ordered by
// descending similarity; an empty namespace yields an empty slice, not an
// error.
type ReviewRepository interface {
	Search(ctx context.Context, vector []float32, topK int) ([]models.ReviewMatch, error)
}

// ChatService turns a client transcript into a streamed, retrieval-grounded
// answer: embed the newest message, search the review index, assemble the
// prompt, stream the completion. One call per request; no state is kept
// across calls.
type ChatService interface {
	Answer(ctx context.Context, transcript []models.ChatMessage) (<-chan Chunk, error)
}

type chatService struct {
	embedder EmbeddingClient
	reviews  ReviewRepository
	llm      CompletionStreamer
}

// NewChatService wires the three provider clients and returns ChatService.
func NewChatService(embedder EmbeddingClient, reviews ReviewRepository, llm CompletionStreamer) ChatService {
	return &chatService{
		embedder: embedder,
		reviews:  reviews,
		llm:      llm,
	}
}

// Answer runs the four pipeline stages in order. Each stage's input depends
// on the previous stage's output, so there is no parallelism within a
// request. Any failure before the stream opens is returned as err; the
// handler owns what happens after bytes start flowing.
func (s *chatService) Answer(ctx context.Context, transcript []models.ChatMessage) (<-chan Chunk, error) {
	if len(transcript) == 0 {
		return nil, fmt.Errorf("transcript is empty")
	}
	query := transcript[len(transcript)-1].Content

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	log.Printf("Generated embedding vector of length %d", len(vec))

	matches, err := s.reviews.Search(ctx, vec, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	log.Printf("Vector search returned %d results", len(matches))

	prompt := assemblePrompt(transcript, matches)

	stream, err := s.llm.StreamChat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}
	return stream, nil
}
