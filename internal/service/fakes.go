package service

import (
	"context"

	"github.com/starprofs/server/internal/models"
)

// In-memory provider fakes for tests and offline development.

type staticEmbedder struct {
	dim int
}

func (s staticEmbedder) Embed(context.Context, string) ([]float32, error) {
	return make([]float32, s.dim), nil
}

// NewStaticEmbedder returns an EmbeddingClient that always produces a zero
// vector of the given dimensionality.
func NewStaticEmbedder(dim int) EmbeddingClient {
	return staticEmbedder{dim: dim}
}

type staticReviews struct {
	matches []models.ReviewMatch
}

func (s staticReviews) Search(_ context.Context, _ []float32, topK int) ([]models.ReviewMatch, error) {
	if len(s.matches) > topK {
		return s.matches[:topK], nil
	}
	return s.matches, nil
}

// NewStaticReviews returns a ReviewRepository that serves a fixed result set.
func NewStaticReviews(matches []models.ReviewMatch) ReviewRepository {
	return staticReviews{matches: matches}
}

type scriptedStreamer struct {
	chunks []Chunk
}

func (s scriptedStreamer) StreamChat(ctx context.Context, _ []models.ChatMessage) (<-chan Chunk, error) {
	out := make(chan Chunk)
	go func() {
		defer close(out)
		for _, c := range s.chunks {
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// NewScriptedStreamer returns a CompletionStreamer that replays the given
// chunks in order.
func NewScriptedStreamer(chunks ...Chunk) CompletionStreamer {
	return scriptedStreamer{chunks: chunks}
}
