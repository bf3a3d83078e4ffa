package service

import (
	"context"

	"github.com/starprofs/server/internal/models"
)

// Chunk is one increment of a streamed completion. A stream that fails
// mid-generation delivers a final Chunk with Err set and then closes;
// already-delivered content stands.
type Chunk struct {
	Content string
	Err     error
}

// CompletionStreamer submits an assembled message list to a hosted chat
// model and exposes the generated reply incrementally.
//
// A failure before generation starts is returned as err. The returned
// channel is closed when the provider signals end-of-turn, when the stream
// fails, or when ctx is cancelled; implementations must release the provider
// connection on every one of those paths. Streams are not resumable.
type CompletionStreamer interface {
	StreamChat(ctx context.Context, messages []models.ChatMessage) (<-chan Chunk, error)
}
