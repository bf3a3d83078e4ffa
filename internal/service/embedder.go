package service

import "context"

// EmbeddingClient converts a text query into a fixed-length vector aligned
// with the vectors stored in the review index.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
